package main

import (
	"bytes"
	"flag"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"

	"img2puz/internal/app"
	"img2puz/internal/extract"
	"img2puz/internal/puz"
	"img2puz/internal/puzzle"
)

var sampleRows = []string{
	"ABCDE",
	"F#G#H",
	"IJKLM",
	"N#O#P",
	"QRSTU",
}

func main() {
	dir := flag.String("dir", ".", "output directory")
	flag.Parse()

	res, err := writeSample(*dir)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %dx%d sample with %d clues to %s", res.Width, res.Height, res.ClueCount, *dir)
}

// writeSample renders the sample grid, converts it and writes sample.png and
// sample.puz into dir.
func writeSample(dir string) (*app.Result, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	g, err := puzzle.ParseGrid(sampleRows...)
	if err != nil {
		return nil, err
	}

	var img bytes.Buffer
	if err := png.Encode(&img, extract.Render(g, extract.RenderOptions{Cell: 24, Line: 2, Padding: 12})); err != nil {
		return nil, err
	}

	res, err := app.Generate(app.Request{
		Image:       img.Bytes(),
		AcrossClues: "First row\nMiddle row\nLast row",
		DownClues:   "First column\nMiddle column\nLast column",
		Title:       "Sample Title",
		Author:      "Sample Author",
		Copyright:   "Sample Copyright",
		Notes:       "Notes",
		Solution:    strings.ReplaceAll(strings.Join(sampleRows, "\n"), "#", "."),
	}, app.DefaultOptions())
	if err != nil {
		return nil, err
	}

	// the fixture must read back cleanly
	f, err := puz.Decode(res.Puz)
	if err != nil {
		return nil, err
	}
	if err := f.Verify(); err != nil {
		return nil, err
	}

	if err := os.WriteFile(filepath.Join(dir, "sample.png"), img.Bytes(), 0644); err != nil {
		return nil, err
	}
	if err := os.WriteFile(filepath.Join(dir, "sample.puz"), res.Puz, 0644); err != nil {
		return nil, err
	}
	return res, nil
}
