package main

import (
	"encoding/json"
	"fmt"
	"image/png"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"img2puz/internal/app"
	"img2puz/internal/errors"
	"img2puz/internal/extract"
	"img2puz/internal/puz"
	"img2puz/internal/puzzle"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp() *cli.App {
	a := &cli.App{
		Name:    "img2puz",
		Usage:   "Turn a crossword grid image and clue lists into an Across Lite .puz file",
		Version: Version,
		Commands: []*cli.Command{
			convertCmd(),
			inspectCmd(),
			renderCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	a.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return a
}

type convertOutput struct {
	Output    string   `json:"output"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	ClueCount int      `json:"clue_count"`
	Grid      []string `json:"grid"`
	Warnings  []string `json:"warnings,omitempty"`
}

func convertCmd() *cli.Command {
	def := extract.DefaultOptions()
	return &cli.Command{
		Name:  "convert",
		Usage: "Convert a grid image plus across/down clue files into a .puz file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "image", Aliases: []string{"i"}, Required: true, Usage: "Grid image (PNG, JPEG, GIF, BMP or WebP)"},
			&cli.StringFlag{Name: "across", Aliases: []string{"a"}, Usage: "File with one across clue per line"},
			&cli.StringFlag{Name: "down", Aliases: []string{"d"}, Usage: "File with one down clue per line"},
			&cli.StringFlag{Name: "solution", Usage: "Optional file with answer rows ('.' or '#' for black cells)"},
			&cli.StringFlag{Name: "title", Usage: "Puzzle title"},
			&cli.StringFlag{Name: "author", Usage: "Puzzle author"},
			&cli.StringFlag{Name: "copyright", Usage: "Copyright line"},
			&cli.StringFlag{Name: "notes", Usage: "Notes shown with the puzzle"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "out.puz", Usage: "Output file"},
			&cli.Float64Flag{Name: "threshold", Value: 0.5, Usage: "Black cell luminance fraction"},
			&cli.Float64Flag{Name: "margin", Value: def.Margin, Usage: "Fraction of each cell ignored at its edges"},
			&cli.Float64Flag{Name: "row-tolerance", Value: def.RowTolerance, Usage: "Fraction of inconsistent pixel lines tolerated per cell band"},
		},
		Action: func(c *cli.Context) error {
			image, err := os.ReadFile(c.String("image"))
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			across, err := readOptional(c.String("across"))
			if err != nil {
				return outputError(err)
			}
			down, err := readOptional(c.String("down"))
			if err != nil {
				return outputError(err)
			}
			solution, err := readOptional(c.String("solution"))
			if err != nil {
				return outputError(err)
			}

			opts := app.DefaultOptions()
			opts.Extract.Classifier = extract.LuminanceThreshold{Fraction: c.Float64("threshold")}
			opts.Extract.Margin = c.Float64("margin")
			opts.Extract.RowTolerance = c.Float64("row-tolerance")

			res, err := app.Generate(app.Request{
				Image:       image,
				AcrossClues: across,
				DownClues:   down,
				Title:       c.String("title"),
				Author:      c.String("author"),
				Copyright:   c.String("copyright"),
				Notes:       c.String("notes"),
				Solution:    solution,
			}, opts)
			if err != nil {
				return outputError(err)
			}

			if err := os.WriteFile(c.String("output"), res.Puz, 0644); err != nil {
				return outputError(errors.NewInternal(err))
			}

			return outputJSON(c, convertOutput{
				Output:    c.String("output"),
				Width:     res.Width,
				Height:    res.Height,
				ClueCount: res.ClueCount,
				Grid:      strings.Split(strings.TrimSuffix(res.Grid, "\n"), "\n"),
				Warnings:  res.Warnings,
			})
		},
	}
}

type inspectClue struct {
	Number    int    `json:"number"`
	Direction string `json:"direction"`
	Text      string `json:"text"`
}

type inspectOutput struct {
	Version     string        `json:"version"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Title       string        `json:"title"`
	Author      string        `json:"author"`
	Copyright   string        `json:"copyright"`
	Notes       string        `json:"notes,omitempty"`
	Grid        []string      `json:"grid"`
	Clues       []inspectClue `json:"clues"`
	ChecksumsOK bool          `json:"checksums_ok"`
	Problems    []string      `json:"problems,omitempty"`
}

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Print a .puz file's header, grid and clues and verify its checksums",
		ArgsUsage: "<file.puz>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return outputError(errors.NewInvalidRequest("exactly one .puz file is required"))
			}
			data, err := os.ReadFile(c.Args().First())
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}

			f, err := puz.Decode(data)
			if err != nil {
				return outputError(err)
			}

			out := inspectOutput{
				Version:     f.Version,
				Width:       f.Width,
				Height:      f.Height,
				Title:       f.TitleText(),
				Author:      f.AuthorText(),
				Copyright:   f.CopyrightText(),
				Notes:       f.NotesText(),
				ChecksumsOK: true,
				Clues:       []inspectClue{},
			}
			if err := f.Verify(); err != nil {
				out.ChecksumsOK = false
				out.Problems = append(out.Problems, err.Error())
			}

			g, err := f.Grid()
			if err != nil {
				return outputError(err)
			}
			out.Grid = strings.Split(strings.TrimSuffix(g.String(), "\n"), "\n")

			texts := f.ClueTexts()
			n, err := puzzle.Number(g)
			switch {
			case err != nil:
				out.Problems = append(out.Problems, err.Error())
			case len(n.Slots) != len(texts):
				out.Problems = append(out.Problems, fmt.Sprintf("grid has %d entries but the file carries %d clues", len(n.Slots), len(texts)))
			default:
				for i, s := range n.Slots {
					out.Clues = append(out.Clues, inspectClue{Number: s.Number, Direction: string(s.Direction), Text: texts[i]})
				}
			}

			return outputJSON(c, out)
		},
	}
}

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "Draw a text grid ('#' black, anything else white) as a PNG image",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "grid", Aliases: []string{"g"}, Required: true, Usage: "File with one row of the grid per line"},
			&cli.IntFlag{Name: "cell", Value: 24, Usage: "Cell size in pixels"},
			&cli.IntFlag{Name: "line", Value: 2, Usage: "Gridline thickness in pixels"},
			&cli.IntFlag{Name: "padding", Value: 12, Usage: "Blank border in pixels"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "grid.png", Usage: "Output file"},
		},
		Action: func(c *cli.Context) error {
			text, err := readOptional(c.String("grid"))
			if err != nil {
				return outputError(err)
			}
			g, err := puzzle.ParseGrid(strings.Fields(text)...)
			if err != nil {
				return outputError(err)
			}

			f, err := os.Create(c.String("output"))
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			defer f.Close()

			img := extract.Render(g, extract.RenderOptions{Cell: c.Int("cell"), Line: c.Int("line"), Padding: c.Int("padding")})
			if err := png.Encode(f, img); err != nil {
				return outputError(errors.NewInternal(err))
			}

			b := img.Bounds()
			return outputJSON(c, map[string]any{
				"output": c.String("output"),
				"width":  b.Dx(),
				"height": b.Dy(),
			})
		},
	}
}

// readOptional returns the contents of path, or "" when path is empty.
func readOptional(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.NewInvalidRequest(err.Error())
	}
	return string(data), nil
}

func outputJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if cErr, ok := errors.As(err); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", cErr.Code, cErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
