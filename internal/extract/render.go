package extract

import (
	"image"
	"image/color"

	"img2puz/internal/puzzle"
)

// RenderOptions controls Render. Sizes are in pixels.
type RenderOptions struct {
	Cell    int
	Line    int
	Padding int
}

// Render draws g as a black-and-white picture: white cells, black cells and,
// when Line is positive, gridlines around every cell. Extract reads the
// result back to the same grid shape.
func Render(g *puzzle.Grid, o RenderOptions) *image.Gray {
	if o.Cell < 1 {
		o.Cell = 1
	}
	pitch := o.Cell + o.Line
	w := 2*o.Padding + g.Width*pitch + o.Line
	h := 2*o.Padding + g.Height*pitch + o.Line

	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	fill := func(x0, y0, x1, y1 int) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}

	if o.Line > 0 {
		for i := 0; i <= g.Width; i++ {
			x := o.Padding + i*pitch
			fill(x, o.Padding, x+o.Line, h-o.Padding)
		}
		for i := 0; i <= g.Height; i++ {
			y := o.Padding + i*pitch
			fill(o.Padding, y, w-o.Padding, y+o.Line)
		}
	}
	for _, c := range g.Cells {
		if !c.IsBlack {
			continue
		}
		x := o.Padding + o.Line + c.Col*pitch
		y := o.Padding + o.Line + c.Row*pitch
		fill(x, y, x+o.Cell, y+o.Cell)
	}
	return img
}
