package puzzle

import (
	"img2puz/internal/errors"
)

type Direction string

const (
	DirectionAcross Direction = "across"
	DirectionDown   Direction = "down"
)

// Slot is a numbered run of white cells. Start is the flat row-major index of
// its first cell.
type Slot struct {
	Number    int
	Direction Direction
	Start     int
	Length    int
}

// Cells returns the flat indices covered by the slot.
func (s Slot) Cells(width int) []int {
	step := 1
	if s.Direction == DirectionDown {
		step = width
	}
	out := make([]int, s.Length)
	for i := range out {
		out[i] = s.Start + i*step
	}
	return out
}

// Numbering is the result of numbering a grid. Slots are ordered by number,
// across before down when a cell starts both.
type Numbering struct {
	Slots []Slot

	// Isolated lists white cells that belong to no slot in either direction.
	Isolated []int

	numbers []int
	across  []int
	down    []int
}

// Number assigns entry numbers to every cell that starts an across or down
// run of at least two white cells, scanning row by row.
func Number(g *Grid) (*Numbering, error) {
	n := &Numbering{
		numbers: make([]int, len(g.Cells)),
		across:  make([]int, len(g.Cells)),
		down:    make([]int, len(g.Cells)),
	}
	for i := range g.Cells {
		n.across[i] = -1
		n.down[i] = -1
	}

	counter := 1
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.IsWhite(y, x) {
				continue
			}

			startsAcross := !g.IsWhite(y, x-1) && g.IsWhite(y, x+1)
			startsDown := !g.IsWhite(y-1, x) && g.IsWhite(y+1, x)

			if startsAcross || startsDown {
				start := g.Index(y, x)
				if startsAcross {
					length := 0
					for g.IsWhite(y, x+length) {
						length++
					}
					n.add(Slot{Number: counter, Direction: DirectionAcross, Start: start, Length: length}, g.Width)
				}
				if startsDown {
					length := 0
					for g.IsWhite(y+length, x) {
						length++
					}
					n.add(Slot{Number: counter, Direction: DirectionDown, Start: start, Length: length}, g.Width)
				}
				n.numbers[start] = counter
				counter++
			}
		}
	}

	if len(n.Slots) == 0 {
		return nil, errors.NewGridTopology("grid has no entries of two or more white cells")
	}

	for i, c := range g.Cells {
		if !c.IsBlack && n.across[i] < 0 && n.down[i] < 0 {
			n.Isolated = append(n.Isolated, i)
		}
	}
	return n, nil
}

func (n *Numbering) add(s Slot, width int) {
	idx := len(n.Slots)
	n.Slots = append(n.Slots, s)
	lookup := n.across
	if s.Direction == DirectionDown {
		lookup = n.down
	}
	for _, c := range s.Cells(width) {
		lookup[c] = idx
	}
}

// NumberAt returns the entry number printed in cell i, or 0.
func (n *Numbering) NumberAt(i int) int {
	return n.numbers[i]
}

// SlotsAt returns the indices into Slots of the across and down slots that
// contain cell i, or -1 for none.
func (n *Numbering) SlotsAt(i int) (across, down int) {
	return n.across[i], n.down[i]
}

// Count returns the number of slots in direction d.
func (n *Numbering) Count(d Direction) int {
	count := 0
	for _, s := range n.Slots {
		if s.Direction == d {
			count++
		}
	}
	return count
}
