package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"img2puz/internal/errors"
)

func TestNewGrid(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		black   []bool
		wantErr errors.ErrorCode
	}{
		{"valid 2x1", 2, 1, []bool{false, false}, ""},
		{"zero width", 0, 3, nil, errors.ErrExtraction},
		{"over limit", 256, 1, make([]bool, 256), errors.ErrExtraction},
		{"mask length", 2, 2, []bool{false}, errors.ErrExtraction},
		{"all black", 2, 1, []bool{true, true}, errors.ErrGridTopology},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.width, tt.height, tt.black)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Len(t, g.Cells, tt.width*tt.height)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestGridSetSolution(t *testing.T) {
	g, err := ParseGrid("...", ".#.", "...")
	require.NoError(t, err)

	require.NoError(t, g.SetSolution("cat\nA.E\nTEA\n"))
	assert.Equal(t, "CAT\nA#E\nTEA\n", g.String())

	t.Run("partial", func(t *testing.T) {
		g, _ := ParseGrid("...", ".#.", "...")
		require.NoError(t, g.SetSolution("C-T\n?#\nTEA"))
		assert.Equal(t, "C.T\n.#.\nTEA\n", g.String())
	})

	t.Run("layout mismatch", func(t *testing.T) {
		g, _ := ParseGrid("...", ".#.", "...")
		err := g.SetSolution("CAT\nAXE\nTEA")
		assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
	})

	t.Run("wrong row count", func(t *testing.T) {
		g, _ := ParseGrid("...", ".#.", "...")
		err := g.SetSolution("CAT")
		assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
	})
}

func TestAssemble(t *testing.T) {
	g, err := ParseGrid("...", ".#.", "...")
	require.NoError(t, err)

	p, err := Assemble(g, "Top\nBottom", "Left\nRight", Metadata{Title: "Plus"})
	require.NoError(t, err)

	assert.Equal(t, 3, p.Width())
	assert.Equal(t, 3, p.Height())
	assert.Len(t, p.Clues(), 4)
	assert.Len(t, p.Slots(), 4)
	assert.Equal(t, "Plus", p.Metadata().Title)

	// the puzzle keeps its own copy of the grid
	g.Cells[0].IsBlack = true
	assert.False(t, p.Cells()[0].IsBlack)
}

func TestNew_MissingClue(t *testing.T) {
	g, err := ParseGrid("...", ".#.", "...")
	require.NoError(t, err)
	n, err := Number(g)
	require.NoError(t, err)

	clues := []Clue{
		{Number: 1, Direction: DirectionAcross, Text: "Top"},
		{Number: 1, Direction: DirectionDown, Text: "Left"},
		{Number: 3, Direction: DirectionAcross, Text: "Bottom"},
	}
	_, err = New(g, n, clues, Metadata{})
	cErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrIncompletePuzzle, cErr.Code)
	assert.Equal(t, 2, cErr.Details["number"])
	assert.Equal(t, "down", cErr.Details["direction"])
}

func TestNew_ReordersClues(t *testing.T) {
	g, err := ParseGrid("...", ".#.", "...")
	require.NoError(t, err)
	n, err := Number(g)
	require.NoError(t, err)

	clues := []Clue{
		{Number: 3, Direction: DirectionAcross, Text: "Bottom"},
		{Number: 2, Direction: DirectionDown, Text: "Right"},
		{Number: 1, Direction: DirectionDown, Text: "Left"},
		{Number: 1, Direction: DirectionAcross, Text: "Top"},
	}
	p, err := New(g, n, clues, Metadata{})
	require.NoError(t, err)

	var texts []string
	for _, c := range p.Clues() {
		texts = append(texts, c.Text)
	}
	assert.Equal(t, []string{"Top", "Left", "Right", "Bottom"}, texts)
}

func TestNew_ExtraClue(t *testing.T) {
	g, err := ParseGrid("...", ".#.", "...")
	require.NoError(t, err)
	n, err := Number(g)
	require.NoError(t, err)

	clues := []Clue{
		{Number: 1, Direction: DirectionAcross, Text: "Top"},
		{Number: 1, Direction: DirectionDown, Text: "Left"},
		{Number: 2, Direction: DirectionDown, Text: "Right"},
		{Number: 3, Direction: DirectionAcross, Text: "Bottom"},
		{Number: 4, Direction: DirectionAcross, Text: "Nowhere"},
	}
	_, err = New(g, n, clues, Metadata{})
	assert.True(t, errors.Is(err, errors.ErrInternal))
}
