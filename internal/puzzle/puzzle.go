package puzzle

import (
	"fmt"

	"img2puz/internal/errors"
)

type Metadata struct {
	Title     string
	Author    string
	Copyright string
	Notes     string
}

// Puzzle is a validated crossword ready for encoding. It is not modified
// after construction.
type Puzzle struct {
	grid      *Grid
	numbering *Numbering
	clues     []Clue
	meta      Metadata
}

type clueKey struct {
	number    int
	direction Direction
}

// New checks that every slot of n has exactly one clue and assembles the
// puzzle. Clues are reordered to match the slot order.
func New(g *Grid, n *Numbering, clues []Clue, meta Metadata) (*Puzzle, error) {
	byKey := make(map[clueKey]Clue, len(clues))
	for _, c := range clues {
		k := clueKey{c.Number, c.Direction}
		if _, dup := byKey[k]; dup {
			return nil, errors.NewInternal(fmt.Errorf("duplicate clue for %d-%s", c.Number, c.Direction))
		}
		byKey[k] = c
	}

	ordered := make([]Clue, 0, len(n.Slots))
	for _, s := range n.Slots {
		c, ok := byKey[clueKey{s.Number, s.Direction}]
		if !ok {
			return nil, errors.NewIncompletePuzzle(s.Number, string(s.Direction))
		}
		ordered = append(ordered, c)
		delete(byKey, clueKey{s.Number, s.Direction})
	}
	for k := range byKey {
		return nil, errors.NewInternal(fmt.Errorf("clue %d-%s has no matching slot", k.number, k.direction))
	}

	return &Puzzle{
		grid:      g.Clone(),
		numbering: n,
		clues:     ordered,
		meta:      meta,
	}, nil
}

// Assemble numbers g, binds the two clue blocks and builds the puzzle.
func Assemble(g *Grid, acrossBlock, downBlock string, meta Metadata) (*Puzzle, error) {
	n, err := Number(g)
	if err != nil {
		return nil, err
	}
	clues, err := BindClues(n, acrossBlock, downBlock)
	if err != nil {
		return nil, err
	}
	return New(g, n, clues, meta)
}

func (p *Puzzle) Width() int  { return p.grid.Width }
func (p *Puzzle) Height() int { return p.grid.Height }

// Cells returns a copy of the grid cells in row-major order.
func (p *Puzzle) Cells() []Cell {
	out := make([]Cell, len(p.grid.Cells))
	copy(out, p.grid.Cells)
	return out
}

// Clues returns a copy of the clues in file order.
func (p *Puzzle) Clues() []Clue {
	out := make([]Clue, len(p.clues))
	copy(out, p.clues)
	return out
}

// Slots returns a copy of the numbered slots.
func (p *Puzzle) Slots() []Slot {
	out := make([]Slot, len(p.numbering.Slots))
	copy(out, p.numbering.Slots)
	return out
}

// Isolated returns the flat indices of white cells outside every slot.
func (p *Puzzle) Isolated() []int {
	out := make([]int, len(p.numbering.Isolated))
	copy(out, p.numbering.Isolated)
	return out
}

func (p *Puzzle) Metadata() Metadata { return p.meta }

// Grid returns a copy of the puzzle grid.
func (p *Puzzle) Grid() *Grid { return p.grid.Clone() }
