package extract

import (
	"image"
)

// luma is a grayscale copy of the source image with its dark mask.
type luma struct {
	w, h int
	pix  []uint8
	dark []bool
	rng  Range
}

// newLuma converts img to 8-bit luminance, compositing transparent pixels
// over white.
func newLuma(img image.Image, cls Classifier) *luma {
	b := img.Bounds()
	l := &luma{w: b.Dx(), h: b.Dy(), rng: Range{Min: 255, Max: 0}}
	l.pix = make([]uint8, l.w*l.h)

	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			bgd := 0xffff - a
			r, g, bl = r+bgd, g+bgd, bl+bgd
			v := uint8((19595*r + 38470*g + 7471*bl + 1<<15) >> 24)
			l.pix[y*l.w+x] = v
			if v < l.rng.Min {
				l.rng.Min = v
			}
			if v > l.rng.Max {
				l.rng.Max = v
			}
		}
	}

	l.dark = make([]bool, len(l.pix))
	for i, v := range l.pix {
		l.dark[i] = cls.IsDark(float64(v), l.rng)
	}
	return l
}

func (l *luma) at(x, y int) uint8 {
	return l.pix[y*l.w+x]
}

// mean returns the average luminance over the inclusive rectangle sx × sy.
func (l *luma) mean(sx, sy span) float64 {
	var sum, n int
	for y := sy.lo; y <= sy.hi; y++ {
		row := l.pix[y*l.w:]
		for x := sx.lo; x <= sx.hi; x++ {
			sum += int(row[x])
			n++
		}
	}
	return float64(sum) / float64(n)
}

type side int

const (
	sideTop side = iota
	sideBottom
	sideLeft
	sideRight
)

// paddedBox strips uniform background bands from the image edges. It returns
// false when there is no padding, or when some stripped side is not closed by
// a dark frame line, since white edge cells would then look like padding.
func (l *luma) paddedBox() (image.Rectangle, bool) {
	tol := l.rng.Span() / 10
	if tol < 8 {
		tol = 8
	}
	bg := int(l.at(0, 0))
	near := func(x, y int) bool {
		d := int(l.at(x, y)) - bg
		return d >= -tol && d <= tol
	}
	if !near(l.w-1, 0) || !near(0, l.h-1) || !near(l.w-1, l.h-1) {
		return image.Rectangle{}, false
	}

	rowUniform := func(y int) bool {
		for x := 0; x < l.w; x++ {
			if !near(x, y) {
				return false
			}
		}
		return true
	}
	colUniform := func(x int) bool {
		for y := 0; y < l.h; y++ {
			if !near(x, y) {
				return false
			}
		}
		return true
	}

	top, bottom, left, right := 0, l.h, 0, l.w
	for top < bottom && rowUniform(top) {
		top++
	}
	for bottom > top && rowUniform(bottom-1) {
		bottom--
	}
	for left < right && colUniform(left) {
		left++
	}
	for right > left && colUniform(right-1) {
		right--
	}

	box := image.Rect(left, top, right, bottom)
	if box.Empty() || box == image.Rect(0, 0, l.w, l.h) {
		return image.Rectangle{}, false
	}

	depth := min(box.Dx(), box.Dy()) / 50
	if depth < 3 {
		depth = 3
	}
	stripped := map[side]bool{
		sideTop:    top > 0,
		sideBottom: bottom < l.h,
		sideLeft:   left > 0,
		sideRight:  right < l.w,
	}
	for s, ok := range stripped {
		if ok && !l.framed(box, s, depth) {
			return image.Rectangle{}, false
		}
	}
	return box, true
}

// framed reports whether one of the first depth lines inside box on side s
// is at least 90% dark.
func (l *luma) framed(box image.Rectangle, s side, depth int) bool {
	for k := 0; k < depth; k++ {
		var dark, total int
		switch s {
		case sideTop, sideBottom:
			y := box.Min.Y + k
			if s == sideBottom {
				y = box.Max.Y - 1 - k
			}
			if y < box.Min.Y || y >= box.Max.Y {
				return false
			}
			for x := box.Min.X; x < box.Max.X; x++ {
				if l.dark[y*l.w+x] {
					dark++
				}
				total++
			}
		case sideLeft, sideRight:
			x := box.Min.X + k
			if s == sideRight {
				x = box.Max.X - 1 - k
			}
			if x < box.Min.X || x >= box.Max.X {
				return false
			}
			for y := box.Min.Y; y < box.Max.Y; y++ {
				if l.dark[y*l.w+x] {
					dark++
				}
				total++
			}
		}
		if total > 0 && dark*10 >= total*9 {
			return true
		}
	}
	return false
}
