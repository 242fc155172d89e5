package extract

import (
	"image"
	"math"

	"img2puz/internal/puzzle"
)

// span is an inclusive pixel interval.
type span struct{ lo, hi int }

// bands splits extent pixels starting at origin into n equal bands and
// returns the interior of each, with margin*pitch trimmed from both sides.
func bands(origin, extent, n int, margin float64) []span {
	p := float64(extent) / float64(n)
	out := make([]span, n)
	for i := range out {
		start := float64(origin) + float64(i)*p
		end := start + p
		lo := int(math.Floor(start + margin*p))
		hi := int(math.Ceil(end-margin*p)) - 1
		if hi < lo {
			hi = lo
		}
		out[i] = span{lo, hi}
	}
	return out
}

// consistentCounts returns every cell count n in [2, 255] for which, in each
// band interior along one axis, at most tolerance of the perpendicular pixel
// lines are inconsistent (mixing dark and light pixels). vertical selects the
// y axis.
func (l *luma) consistentCounts(box image.Rectangle, vertical bool, margin, tolerance float64) []int {
	origin, extent := box.Min.X, box.Dx()
	first, lines := box.Min.Y, box.Dy()
	if vertical {
		origin, extent = box.Min.Y, box.Dy()
		first, lines = box.Min.X, box.Dx()
	}

	maxN := min(puzzle.MaxDimension, extent)
	if maxN < 2 {
		return nil
	}
	interiors := make([][]span, maxN+1)
	bad := make([][]int, maxN+1)
	for n := 2; n <= maxN; n++ {
		interiors[n] = bands(origin, extent, n, margin)
		bad[n] = make([]int, n)
	}

	prefix := make([]int32, extent+1)
	for line := first; line < first+lines; line++ {
		for i := 0; i < extent; i++ {
			x, y := origin+i, line
			if vertical {
				x, y = line, origin+i
			}
			prefix[i+1] = prefix[i]
			if l.dark[y*l.w+x] {
				prefix[i+1]++
			}
		}
		for n := 2; n <= maxN; n++ {
			for i, s := range interiors[n] {
				count := prefix[s.hi-origin+1] - prefix[s.lo-origin]
				if count != 0 && int(count) != s.hi-s.lo+1 {
					bad[n][i]++
				}
			}
		}
	}

	allowed := int(tolerance * float64(lines))
	var out []int
	for n := 2; n <= maxN; n++ {
		ok := true
		for _, b := range bad[n] {
			if b > allowed {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, n)
		}
	}
	return out
}

// choosePitch picks the smallest column count, and for it the smallest row
// count, whose cells are roughly square. Without any square pairing the
// smallest consistent count on each axis wins.
func choosePitch(cols, rows []int, box image.Rectangle) (int, int, bool) {
	if len(cols) == 0 || len(rows) == 0 {
		return 0, 0, false
	}
	for _, n := range cols {
		for _, m := range rows {
			ratio := (float64(box.Dx()) / float64(n)) / (float64(box.Dy()) / float64(m))
			if ratio >= 0.8 && ratio <= 1.25 {
				return n, m, true
			}
		}
	}
	return cols[0], rows[0], true
}

// lineFraction is the share of dark pixels a pixel line needs to count as a
// gridline.
const lineFraction = 0.9

// gridlineCount reads the cell count along one axis from the gridlines
// drawn across box. Both edges of box must be gridlines, the thinnest line
// must be well under a cell pitch, and every interior line of the lattice
// but one in ten must sit near its expected position. It returns the largest
// such count, or 0 when box has no gridline lattice. vertical selects the y
// axis.
func (l *luma) gridlineCount(box image.Rectangle, vertical bool) int {
	origin, extent := box.Min.X, box.Dx()
	first, lines := box.Min.Y, box.Dy()
	if vertical {
		origin, extent = box.Min.Y, box.Dy()
		first, lines = box.Min.X, box.Dx()
	}
	if extent < 2 || lines < 1 {
		return 0
	}

	isLine := make([]bool, extent)
	for i := range isLine {
		dark := 0
		for line := first; line < first+lines; line++ {
			x, y := origin+i, line
			if vertical {
				x, y = line, origin+i
			}
			if l.dark[y*l.w+x] {
				dark++
			}
		}
		isLine[i] = float64(dark) >= lineFraction*float64(lines)
	}
	if !isLine[0] || !isLine[extent-1] {
		return 0
	}

	prefix := make([]int, extent+1)
	thinnest, run := extent, 0
	for i, on := range isLine {
		prefix[i+1] = prefix[i]
		if on {
			prefix[i+1]++
			run++
			continue
		}
		if run > 0 {
			thinnest = min(thinnest, run)
			run = 0
		}
	}
	if run > 0 {
		thinnest = min(thinnest, run)
	}

	for n := min(puzzle.MaxDimension, extent/2); n >= 2; n-- {
		p := float64(extent) / float64(n)
		if 3*float64(thinnest) >= p {
			continue
		}
		tol := max(1, int(p/8))
		misses := 0
		for k := 1; k < n; k++ {
			at := int(math.Round(float64(k) * p))
			lo, hi := max(0, at-tol), min(extent-1, at+tol)
			if prefix[hi+1] == prefix[lo] {
				misses++
			}
		}
		if misses <= (n-1)/10 {
			return n
		}
	}
	return 0
}
