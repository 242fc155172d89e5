// Package extract recovers a crossword grid's shape from a picture of it:
// dimensions plus which cells are black. Letters in cells are not read.
package extract

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"runtime"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"img2puz/internal/errors"
	"img2puz/internal/puzzle"
)

// minContrast is the smallest luminance span accepted as a picture of a grid.
const minContrast = 32

type Options struct {
	// Classifier decides dark pixels and black cells.
	Classifier Classifier
	// Margin is the fraction of a cell's pitch ignored on each side when
	// sampling its interior, so gridlines never count toward the cell.
	Margin float64
	// RowTolerance is the fraction of pixel lines in a band allowed to be
	// inconsistent before a pitch is rejected.
	RowTolerance float64
	// MaxPixels bounds the decoded image size.
	MaxPixels int
	// Workers bounds concurrent cell classification. Zero means GOMAXPROCS.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		Classifier:   LuminanceThreshold{Fraction: 0.5},
		Margin:       0.2,
		RowTolerance: 0.02,
		MaxPixels:    40_000_000,
	}
}

type Extractor struct {
	opts Options
}

func New(opts Options) *Extractor {
	def := DefaultOptions()
	if opts.Classifier == nil {
		opts.Classifier = def.Classifier
	}
	if opts.Margin <= 0 || opts.Margin >= 0.5 {
		opts.Margin = def.Margin
	}
	if opts.RowTolerance < 0 || opts.RowTolerance >= 1 {
		opts.RowTolerance = def.RowTolerance
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = def.MaxPixels
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Extractor{opts: opts}
}

// Extract decodes data with the default options.
func Extract(data []byte) (*puzzle.Grid, error) {
	return New(DefaultOptions()).Extract(data)
}

// Extract decodes a PNG, JPEG, GIF, BMP or WebP image and returns its grid.
func (e *Extractor) Extract(data []byte) (*puzzle.Grid, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewExtraction("cannot decode image: %v", err)
	}
	if cfg.Width*cfg.Height > e.opts.MaxPixels {
		return nil, errors.NewExtraction("image is %dx%d, larger than %d pixels", cfg.Width, cfg.Height, e.opts.MaxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.NewExtraction("cannot decode %s image: %v", format, err)
	}
	return e.ExtractImage(img)
}

// ExtractImage returns the grid drawn in img.
func (e *Extractor) ExtractImage(img image.Image) (*puzzle.Grid, error) {
	b := img.Bounds()
	if b.Dx() < 2 || b.Dy() < 2 {
		return nil, errors.NewExtraction("image is %dx%d, too small to hold a grid", b.Dx(), b.Dy())
	}

	l := newLuma(img, e.opts.Classifier)
	if l.rng.Span() < minContrast {
		return nil, errors.NewExtraction("image has no usable contrast (luminance %d..%d)", l.rng.Min, l.rng.Max)
	}

	// Try the framed content first, then the whole picture.
	boxes := []image.Rectangle{}
	if box, ok := l.paddedBox(); ok {
		boxes = append(boxes, box)
	}
	boxes = append(boxes, image.Rect(0, 0, l.w, l.h))

	var lastErr error
	for _, box := range boxes {
		g, err := e.gridIn(l, box)
		if err == nil {
			return g, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// pitchIn finds the grid size inside box. Gridlines decide it when box is
// framed by them; otherwise the cell bands must be consistent.
func (e *Extractor) pitchIn(l *luma, box image.Rectangle) (int, int, bool) {
	var width, height int
	var g errgroup.Group
	g.Go(func() error {
		width = l.gridlineCount(box, false)
		return nil
	})
	g.Go(func() error {
		height = l.gridlineCount(box, true)
		return nil
	})
	_ = g.Wait()
	if width > 0 && height > 0 {
		return width, height, true
	}

	var cols, rows []int
	g.Go(func() error {
		cols = l.consistentCounts(box, false, e.opts.Margin, e.opts.RowTolerance)
		return nil
	})
	g.Go(func() error {
		rows = l.consistentCounts(box, true, e.opts.Margin, e.opts.RowTolerance)
		return nil
	})
	_ = g.Wait()
	return choosePitch(cols, rows, box)
}

func (e *Extractor) gridIn(l *luma, box image.Rectangle) (*puzzle.Grid, error) {
	if box.Dx() < 2 || box.Dy() < 2 {
		return nil, errors.NewExtraction("grid region %dx%d has fewer than 2 rows or columns", box.Dx(), box.Dy())
	}

	width, height, ok := e.pitchIn(l, box)
	if !ok {
		return nil, errors.NewExtraction("no consistent cell pitch between 2 and %d cells in %dx%d region", puzzle.MaxDimension, box.Dx(), box.Dy())
	}

	xs := bands(box.Min.X, box.Dx(), width, e.opts.Margin)
	ys := bands(box.Min.Y, box.Dy(), height, e.opts.Margin)

	black := make([]bool, width*height)
	var cg errgroup.Group
	cg.SetLimit(e.opts.Workers)
	for row, sy := range ys {
		cg.Go(func() error {
			for col, sx := range xs {
				black[row*width+col] = e.opts.Classifier.IsDark(l.mean(sx, sy), l.rng)
			}
			return nil
		})
	}
	_ = cg.Wait()

	grid, err := puzzle.NewGrid(width, height, black)
	if err != nil {
		if errors.Is(err, errors.ErrGridTopology) {
			return nil, errors.NewExtraction("no white cell found in %dx%d grid", width, height)
		}
		return nil, err
	}
	log.Printf("extract: %dx%d grid from %dx%d region at (%d,%d)", width, height, box.Dx(), box.Dy(), box.Min.X, box.Min.Y)
	return grid, nil
}
