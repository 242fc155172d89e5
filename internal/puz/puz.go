/*
Package puz implements the Across Lite binary crossword format.

A file is a 0x34 byte header followed by the body. The header holds the
overall checksum, the "ACROSS&DOWN" magic, the checksum of the CIB region,
eight bytes of masked region checksums, the version string, and at 0x2C the
CIB itself: width, height, clue count, puzzle type and scrambled state.

The body is the solution grid and the player grid, one byte per cell in
row-major order ('.' for black cells, '-' for empty ones), followed by
NUL-terminated ISO-8859-1 strings: title, author, copyright, every clue in
numbering order (across before down when numbers tie) and the notes.
*/
package puz

import (
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"img2puz/internal/errors"
	"img2puz/internal/puzzle"
)

const (
	headerSize = 0x34
	cibOffset  = 0x2C
	cibSize    = 8

	Magic   = "ACROSS&DOWN\x00"
	Version = "1.3\x00"

	BlackCell byte = '.'
	EmptyCell byte = '-'

	TypeNormal uint16 = 0x0001

	// MaxStringBytes is the longest string accepted in the string section.
	MaxStringBytes = math.MaxUint16
)

// File is the decoded content of a puzzle file. String fields hold the raw
// ISO-8859-1 bytes without their terminator.
type File struct {
	Width          int
	Height         int
	Type           uint16
	ScrambledState uint16

	Solution []byte
	State    []byte

	Title     []byte
	Author    []byte
	Copyright []byte
	Clues     [][]byte
	Notes     []byte

	// Version and Stored are only set by Decode.
	Version string
	Stored  Checksums
}

func (f *File) cib() []byte {
	b := make([]byte, cibSize)
	b[0] = byte(f.Width)
	b[1] = byte(f.Height)
	binary.LittleEndian.PutUint16(b[2:], uint16(len(f.Clues)))
	binary.LittleEndian.PutUint16(b[4:], f.Type)
	binary.LittleEndian.PutUint16(b[6:], f.ScrambledState)
	return b
}

var punctuation = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"–", "-", "—", "--",
	"…", "...",
)

// encodeString converts s to ISO-8859-1. Typographic quotes, dashes and the
// ellipsis are folded to ASCII first.
func encodeString(field, s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, errors.NewEncoding(field, "is not valid UTF-8")
	}
	s = punctuation.Replace(s)

	out := make([]byte, 0, len(s))
	for _, r := range s {
		if r == 0 {
			return nil, errors.NewEncoding(field, "contains NUL byte")
		}
		b, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			return nil, errors.NewEncoding(field, "character "+string(r)+" cannot be written in ISO-8859-1")
		}
		out = append(out, b)
	}
	if len(out) > MaxStringBytes {
		return nil, errors.NewEncoding(field, "is longer than 65535 bytes")
	}
	return out, nil
}

func decodeString(b []byte) string {
	decoded, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(decoded)
}

func (f *File) TitleText() string     { return decodeString(f.Title) }
func (f *File) AuthorText() string    { return decodeString(f.Author) }
func (f *File) CopyrightText() string { return decodeString(f.Copyright) }
func (f *File) NotesText() string     { return decodeString(f.Notes) }

// ClueTexts returns the clues decoded to UTF-8.
func (f *File) ClueTexts() []string {
	out := make([]string, len(f.Clues))
	for i, c := range f.Clues {
		out[i] = decodeString(c)
	}
	return out
}

// Grid rebuilds the black/white grid and any known solution letters.
func (f *File) Grid() (*puzzle.Grid, error) {
	black := make([]bool, len(f.Solution))
	for i, b := range f.Solution {
		black[i] = b == BlackCell
	}
	g, err := puzzle.NewGrid(f.Width, f.Height, black)
	if err != nil {
		return nil, err
	}
	for i, b := range f.Solution {
		if b != BlackCell && b != EmptyCell {
			g.Cells[i].Solution = b
		}
	}
	return g, nil
}
