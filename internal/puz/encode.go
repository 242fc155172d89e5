package puz

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"img2puz/internal/errors"
	"img2puz/internal/puzzle"
)

// Encode serializes p. The player grid is always written empty.
func Encode(p *puzzle.Puzzle) ([]byte, error) {
	f, err := FromPuzzle(p)
	if err != nil {
		return nil, err
	}
	return f.Bytes(), nil
}

// FromPuzzle converts p into file fields, rejecting anything the format
// cannot hold.
func FromPuzzle(p *puzzle.Puzzle) (*File, error) {
	clues := p.Clues()
	if len(clues) > math.MaxUint16 {
		return nil, errors.NewEncoding("clues", fmt.Sprintf("%d clues do not fit the clue count field", len(clues)))
	}

	cells := p.Cells()
	f := &File{
		Width:    p.Width(),
		Height:   p.Height(),
		Type:     TypeNormal,
		Solution: make([]byte, len(cells)),
		State:    make([]byte, len(cells)),
		Clues:    make([][]byte, len(clues)),
	}

	for i, c := range cells {
		switch {
		case c.IsBlack:
			f.Solution[i] = BlackCell
			f.State[i] = BlackCell
		case c.Solution != 0:
			f.Solution[i] = c.Solution
			f.State[i] = EmptyCell
		default:
			f.Solution[i] = EmptyCell
			f.State[i] = EmptyCell
		}
	}

	meta := p.Metadata()
	var err error
	if f.Title, err = encodeString("title", meta.Title); err != nil {
		return nil, err
	}
	if f.Author, err = encodeString("author", meta.Author); err != nil {
		return nil, err
	}
	if f.Copyright, err = encodeString("copyright", meta.Copyright); err != nil {
		return nil, err
	}
	for i, c := range clues {
		if f.Clues[i], err = encodeString(fmt.Sprintf("%d-%s clue", c.Number, c.Direction), c.Text); err != nil {
			return nil, err
		}
	}
	if f.Notes, err = encodeString("notes", meta.Notes); err != nil {
		return nil, err
	}
	return f, nil
}

// Bytes lays out the header and body with freshly computed checksums.
func (f *File) Bytes() []byte {
	sums := f.ComputeChecksums()

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, sums.Overall)
	buf.WriteString(Magic)
	binary.Write(&buf, binary.LittleEndian, sums.CIB)
	buf.Write(sums.MaskedLow[:])
	buf.Write(sums.MaskedHigh[:])
	buf.WriteString(Version)
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // scrambled checksum
	buf.Write(make([]byte, 12))                        // reserved
	buf.Write(f.cib())

	buf.Write(f.Solution)
	buf.Write(f.State)

	for _, s := range [][]byte{f.Title, f.Author, f.Copyright} {
		buf.Write(s)
		buf.WriteByte(0)
	}
	for _, c := range f.Clues {
		buf.Write(c)
		buf.WriteByte(0)
	}
	buf.Write(f.Notes)
	buf.WriteByte(0)

	return buf.Bytes()
}
