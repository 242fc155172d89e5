package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"img2puz/internal/errors"
)

func TestSplitClueBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "Feline", []string{"Feline"}},
		{"trailing newlines", "One\nTwo\n\n\n", []string{"One", "Two"}},
		{"crlf", "One\r\nTwo\r\n", []string{"One", "Two"}},
		{"bare cr", "One\rTwo", []string{"One", "Two"}},
		{"interior blank lines", "One\n\n  \nTwo", []string{"One", "Two"}},
		{"surrounding whitespace", "  One \t\n\tTwo  ", []string{"One", "Two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitClueBlock(tt.input))
		})
	}
}

func plusNumbering(t *testing.T) *Numbering {
	t.Helper()
	g, err := ParseGrid("...", ".#.", "...")
	require.NoError(t, err)
	n, err := Number(g)
	require.NoError(t, err)
	return n
}

func TestBindClues(t *testing.T) {
	n := plusNumbering(t)

	clues, err := BindClues(n, "Top row\nBottom row\n", "Left column\nRight column")
	require.NoError(t, err)

	assert.Equal(t, []Clue{
		{Number: 1, Direction: DirectionAcross, Text: "Top row"},
		{Number: 1, Direction: DirectionDown, Text: "Left column"},
		{Number: 2, Direction: DirectionDown, Text: "Right column"},
		{Number: 3, Direction: DirectionAcross, Text: "Bottom row"},
	}, clues)
}

func TestBindClues_NumberPrefix(t *testing.T) {
	n := plusNumbering(t)

	clues, err := BindClues(n, "1. Top row\n3) Bottom row", "1 . Left column\n7. Right column")
	require.NoError(t, err)

	assert.Equal(t, "Top row", clues[0].Text)
	assert.Equal(t, "Left column", clues[1].Text)
	// 7 is not this slot's number, so the text is kept as typed
	assert.Equal(t, "7. Right column", clues[2].Text)
	assert.Equal(t, "Bottom row", clues[3].Text)
}

func TestBindClues_NumberLikeText(t *testing.T) {
	n := plusNumbering(t)

	clues, err := BindClues(n, "1.5 liters\n3)Bottom", "1.\n2) Right")
	require.NoError(t, err)

	assert.Equal(t, "1.5 liters", clues[0].Text)
	assert.Equal(t, "1.", clues[1].Text)
	assert.Equal(t, "Right", clues[2].Text)
	assert.Equal(t, "3)Bottom", clues[3].Text)
}

func TestBindClues_CountMismatch(t *testing.T) {
	n := plusNumbering(t)

	tests := []struct {
		name      string
		across    string
		down      string
		direction string
		expected  int
		got       int
	}{
		{"too many across", "a\nb\nc", "d\ne", "across", 2, 3},
		{"too few across", "a", "d\ne", "across", 2, 1},
		{"too many down", "a\nb", "d\ne\nf", "down", 2, 3},
		{"empty down", "a\nb", "\n\n", "down", 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BindClues(n, tt.across, tt.down)
			require.Error(t, err)
			cErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrClueCountMismatch, cErr.Code)
			assert.Equal(t, tt.direction, cErr.Details["direction"])
			assert.Equal(t, tt.expected, cErr.Details["expected"])
			assert.Equal(t, tt.got, cErr.Details["got"])
		})
	}
}

func TestBindClues_FourAcrossFiveLines(t *testing.T) {
	// four across slots, one per row
	g, err := ParseGrid("...", "...", "...", "...")
	require.NoError(t, err)
	n, err := Number(g)
	require.NoError(t, err)
	require.Equal(t, 4, n.Count(DirectionAcross))

	_, err = BindClues(n, "a\nb\nc\nd\ne", "x\ny\nz")
	cErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrClueCountMismatch, cErr.Code)
	assert.Equal(t, "across: expected 4 clues, got 5", cErr.Message)
}

func TestBindClues_NulByte(t *testing.T) {
	n := plusNumbering(t)

	_, err := BindClues(n, "Top\x00row\nBottom", "Left\nRight")
	assert.True(t, errors.Is(err, errors.ErrEncoding), "got %v", err)
}
