package puzzle

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"img2puz/internal/errors"
)

func getNumberMap(g *Grid, n *Numbering) map[string]int {
	m := make(map[string]int)
	for i, c := range g.Cells {
		if num := n.NumberAt(i); num != 0 {
			m[fmt.Sprintf("%d,%d", c.Col, c.Row)] = num
		}
	}
	return m
}

func TestNumber(t *testing.T) {
	t.Run("Empty 3x3 Grid", func(t *testing.T) {
		// 1 2 3
		// 4 . .
		// 5 . .
		g, err := ParseGrid("...", "...", "...")
		require.NoError(t, err)

		n, err := Number(g)
		require.NoError(t, err)

		expected := map[string]int{
			"0,0": 1, "1,0": 2, "2,0": 3,
			"0,1": 4,
			"0,2": 5,
		}
		assert.Equal(t, expected, getNumberMap(g, n))
		assert.Equal(t, 3, n.Count(DirectionAcross))
		assert.Equal(t, 3, n.Count(DirectionDown))
	})

	t.Run("Plus pattern", func(t *testing.T) {
		// 1 . 2
		// . # .
		// 3 . .
		g, err := ParseGrid("...", ".#.", "...")
		require.NoError(t, err)

		n, err := Number(g)
		require.NoError(t, err)

		assert.Equal(t, []Slot{
			{Number: 1, Direction: DirectionAcross, Start: 0, Length: 3},
			{Number: 1, Direction: DirectionDown, Start: 0, Length: 3},
			{Number: 2, Direction: DirectionDown, Start: 2, Length: 3},
			{Number: 3, Direction: DirectionAcross, Start: 6, Length: 3},
		}, n.Slots)
		assert.Empty(t, n.Isolated)
		assert.Equal(t, 0, n.NumberAt(4))
	})

	t.Run("Lonely letters (no 1-letter words)", func(t *testing.T) {
		// . # .
		// # # #
		// . . .
		g, err := ParseGrid(".#.", "###", "...")
		require.NoError(t, err)

		n, err := Number(g)
		require.NoError(t, err)

		results := getNumberMap(g, n)
		assert.Equal(t, map[string]int{"0,2": 1}, results)
		assert.Equal(t, []int{0, 2}, n.Isolated)
	})

	t.Run("No entries", func(t *testing.T) {
		g, err := ParseGrid(".#", "#.")
		require.NoError(t, err)

		_, err = Number(g)
		assert.True(t, errors.Is(err, errors.ErrGridTopology), "got %v", err)
	})

	t.Run("Single row", func(t *testing.T) {
		g, err := ParseGrid("..#..")
		require.NoError(t, err)

		n, err := Number(g)
		require.NoError(t, err)
		assert.Equal(t, 2, n.Count(DirectionAcross))
		assert.Equal(t, 0, n.Count(DirectionDown))
	})
}

func TestSlotLookup(t *testing.T) {
	g, err := ParseGrid("...", ".#.", "...")
	require.NoError(t, err)
	n, err := Number(g)
	require.NoError(t, err)

	across, down := n.SlotsAt(g.Index(0, 2))
	assert.Equal(t, 0, across)
	assert.Equal(t, 2, down)

	across, down = n.SlotsAt(g.Index(1, 0))
	assert.Equal(t, -1, across)
	assert.Equal(t, 1, down)

	assert.Equal(t, []int{2, 5, 8}, n.Slots[2].Cells(g.Width))
	assert.Equal(t, []int{6, 7, 8}, n.Slots[3].Cells(g.Width))
}

func TestNumberProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		width, height := 2+rng.Intn(14), 2+rng.Intn(14)
		black := make([]bool, width*height)
		for j := range black {
			black[j] = rng.Intn(5) == 0
		}
		black[0] = false
		g, err := NewGrid(width, height, black)
		require.NoError(t, err)

		n, err := Number(g)
		if err != nil {
			require.True(t, errors.Is(err, errors.ErrGridTopology))
			continue
		}

		starts := make(map[int]bool)
		numbers := make(map[int]bool)
		prev := 0
		for _, s := range n.Slots {
			starts[s.Start] = true
			numbers[s.Number] = true
			require.GreaterOrEqual(t, s.Number, prev, "slot numbers must not decrease")
			require.GreaterOrEqual(t, s.Length, 2)
			prev = s.Number
		}
		require.Equal(t, len(starts), len(numbers))
		for num := 1; num <= len(numbers); num++ {
			require.True(t, numbers[num], "numbers must be contiguous from 1, missing %d", num)
		}

		// every white cell is in at most one slot per direction, and isolated
		// cells are in none
		for idx, c := range g.Cells {
			across, down := n.SlotsAt(idx)
			if c.IsBlack {
				require.Equal(t, -1, across)
				require.Equal(t, -1, down)
			}
		}
	}
}
