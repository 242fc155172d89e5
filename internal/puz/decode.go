package puz

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"img2puz/internal/errors"
)

// Decode parses a puzzle file. Checksums are recorded in Stored but not
// checked; call Verify for that. Extension sections after the notes are
// ignored.
func Decode(data []byte) (*File, error) {
	if len(data) < headerSize {
		return nil, errors.NewInvalidRequest("invalid puz file: too short")
	}
	if string(data[2:14]) != Magic {
		return nil, errors.NewInvalidRequest("invalid puz file: missing magic bytes")
	}

	f := &File{
		Width:          int(data[cibOffset]),
		Height:         int(data[cibOffset+1]),
		Type:           binary.LittleEndian.Uint16(data[cibOffset+4:]),
		ScrambledState: binary.LittleEndian.Uint16(data[cibOffset+6:]),
		Version:        strings.TrimRight(string(data[0x18:0x1C]), "\x00"),
	}
	numClues := int(binary.LittleEndian.Uint16(data[cibOffset+2:]))

	f.Stored.Overall = binary.LittleEndian.Uint16(data[0:])
	f.Stored.CIB = binary.LittleEndian.Uint16(data[0x0E:])
	copy(f.Stored.MaskedLow[:], data[0x10:0x14])
	copy(f.Stored.MaskedHigh[:], data[0x14:0x18])

	numCells := f.Width * f.Height
	body := data[headerSize:]
	if len(body) < 2*numCells {
		return nil, errors.NewInvalidRequest("invalid puz file: truncated grid")
	}
	f.Solution = body[:numCells]
	f.State = body[numCells : 2*numCells]
	body = body[2*numCells:]

	readString := func(name string) ([]byte, error) {
		end := bytes.IndexByte(body, 0)
		if end < 0 {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid puz file: unterminated %s", name))
		}
		s := body[:end]
		body = body[end+1:]
		return s, nil
	}

	var err error
	if f.Title, err = readString("title"); err != nil {
		return nil, err
	}
	if f.Author, err = readString("author"); err != nil {
		return nil, err
	}
	if f.Copyright, err = readString("copyright"); err != nil {
		return nil, err
	}
	f.Clues = make([][]byte, numClues)
	for i := range f.Clues {
		if f.Clues[i], err = readString(fmt.Sprintf("clue %d", i+1)); err != nil {
			return nil, err
		}
	}
	// files older than 1.3 may end without notes
	if len(body) > 0 {
		if f.Notes, err = readString("notes"); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Verify recomputes every checksum and reports the ones that differ from
// the stored values.
func (f *File) Verify() error {
	got := f.ComputeChecksums()
	var bad []string
	if got.Overall != f.Stored.Overall {
		bad = append(bad, fmt.Sprintf("overall stored 0x%04X computed 0x%04X", f.Stored.Overall, got.Overall))
	}
	if got.CIB != f.Stored.CIB {
		bad = append(bad, fmt.Sprintf("cib stored 0x%04X computed 0x%04X", f.Stored.CIB, got.CIB))
	}
	if got.MaskedLow != f.Stored.MaskedLow {
		bad = append(bad, fmt.Sprintf("masked low stored % X computed % X", f.Stored.MaskedLow, got.MaskedLow))
	}
	if got.MaskedHigh != f.Stored.MaskedHigh {
		bad = append(bad, fmt.Sprintf("masked high stored % X computed % X", f.Stored.MaskedHigh, got.MaskedHigh))
	}
	if len(bad) > 0 {
		return errors.NewInvalidRequest("checksum mismatch: " + strings.Join(bad, "; "))
	}
	return nil
}
