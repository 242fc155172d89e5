package app

import (
	"fmt"
	"strings"

	"img2puz/internal/errors"
	"img2puz/internal/extract"
	"img2puz/internal/puz"
	"img2puz/internal/puzzle"
)

// Request is everything needed to build one puzzle file.
type Request struct {
	Image       []byte
	AcrossClues string
	DownClues   string
	Title       string
	Author      string
	Copyright   string
	Notes       string
	// Solution optionally fills answer letters, one line per grid row.
	Solution string
}

type Options struct {
	Extract extract.Options
}

func DefaultOptions() Options {
	return Options{Extract: extract.DefaultOptions()}
}

type Result struct {
	Puz       []byte
	Width     int
	Height    int
	ClueCount int
	// Grid is the extracted layout, one line per row.
	Grid     string
	Warnings []string
}

// Generate runs the whole pipeline: extract the grid, number it, bind the
// clues and encode the file. It either returns a complete file or an error.
func Generate(req Request, opts Options) (*Result, error) {
	if len(req.Image) == 0 {
		return nil, errors.NewInvalidRequest("image is required")
	}

	grid, err := extract.New(opts.Extract).Extract(req.Image)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Solution) != "" {
		if err := grid.SetSolution(req.Solution); err != nil {
			return nil, err
		}
	}

	p, err := puzzle.Assemble(grid, req.AcrossClues, req.DownClues, puzzle.Metadata{
		Title:     req.Title,
		Author:    req.Author,
		Copyright: req.Copyright,
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, err
	}

	data, err := puz.Encode(p)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Puz:       data,
		Width:     p.Width(),
		Height:    p.Height(),
		ClueCount: len(p.Clues()),
		Grid:      grid.String(),
	}
	for _, i := range p.Isolated() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("cell at row %d, column %d is not part of any entry", i/p.Width()+1, i%p.Width()+1))
	}
	return res, nil
}
