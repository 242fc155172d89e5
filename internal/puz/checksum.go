package puz

import "math/bits"

// Checksum folds data into the running 16-bit checksum seed. Each byte
// rotates the accumulator right by one bit and then adds the byte.
func Checksum(data []byte, seed uint16) uint16 {
	c := seed
	for _, b := range data {
		c = bits.RotateLeft16(c, -1)
		c += uint16(b)
	}
	return c
}

var (
	maskLow  = [4]byte{'I', 'C', 'H', 'E'}
	maskHigh = [4]byte{'A', 'T', 'E', 'D'}
)

// Checksums are the four checksum fields of the header.
type Checksums struct {
	Overall    uint16
	CIB        uint16
	MaskedLow  [4]byte
	MaskedHigh [4]byte
}

// stringsChecksum folds the string section into seed. Title, author,
// copyright and notes count with their terminator and only when non-empty;
// clues count without it.
func (f *File) stringsChecksum(seed uint16) uint16 {
	c := seed
	for _, s := range [][]byte{f.Title, f.Author, f.Copyright} {
		if len(s) > 0 {
			c = Checksum(s, c)
			c = Checksum([]byte{0}, c)
		}
	}
	for _, clue := range f.Clues {
		if len(clue) > 0 {
			c = Checksum(clue, c)
		}
	}
	if len(f.Notes) > 0 {
		c = Checksum(f.Notes, c)
		c = Checksum([]byte{0}, c)
	}
	return c
}

// ComputeChecksums derives every header checksum from the file contents.
func (f *File) ComputeChecksums() Checksums {
	cib := Checksum(f.cib(), 0)

	overall := cib
	overall = Checksum(f.Solution, overall)
	overall = Checksum(f.State, overall)
	overall = f.stringsChecksum(overall)

	regions := [4]uint16{
		cib,
		Checksum(f.Solution, 0),
		Checksum(f.State, 0),
		f.stringsChecksum(0),
	}

	sums := Checksums{Overall: overall, CIB: cib}
	for i, r := range regions {
		sums.MaskedLow[i] = maskLow[i] ^ byte(r)
		sums.MaskedHigh[i] = maskHigh[i] ^ byte(r>>8)
	}
	return sums
}
