package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"image/png"
	"log"
	"os"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"img2puz/internal/app"
	"img2puz/internal/db"
	"img2puz/internal/extract"
	"img2puz/internal/puzzle"
	"img2puz/sql/schema"
)

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "img2puz.db"
	}

	dbConn, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		log.Fatal(err)
	}
	defer dbConn.Close()

	goose.SetBaseFS(schema.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		log.Fatal(err)
	}
	if err := goose.Up(dbConn, "."); err != nil {
		log.Fatal(err)
	}

	queries := db.New(dbConn)
	service := app.NewService(queries, dbConn, app.DefaultOptions())
	defer service.Shutdown()
	ctx := context.Background()

	puzzles := []struct {
		title  string
		rows   []string
		across string
		down   string
	}{
		{
			"Plus",
			[]string{"...", ".#.", "..."},
			"Top row\nBottom row",
			"Left column\nRight column",
		},
		{
			"Window",
			[]string{".....", ".#.#.", ".....", ".#.#.", "....."},
			"Sill\nMullion\nLintel",
			"Jamb\nSash\nFrame",
		},
		{
			"Open Four",
			[]string{"....", "....", "....", "...."},
			"One\nTwo\nThree\nFour",
			"Five\nSix\nSeven\nEight",
		},
	}

	fmt.Println("Seeding conversions...")
	for _, p := range puzzles {
		g, err := puzzle.ParseGrid(p.rows...)
		if err != nil {
			log.Fatal(err)
		}
		var img bytes.Buffer
		if err := png.Encode(&img, extract.Render(g, extract.RenderOptions{Cell: 24, Line: 2, Padding: 12})); err != nil {
			log.Fatal(err)
		}

		conv, _, err := service.Convert(ctx, app.Request{
			Image:       img.Bytes(),
			AcrossClues: p.across,
			DownClues:   p.down,
			Title:       p.title,
			Author:      "Seed",
		})
		if err != nil {
			fmt.Printf("Skipping %s: %v\n", p.title, err)
			continue
		}
		fmt.Printf("Created conversion: %s (ID: %s)\n", conv.Title, conv.ID)
	}
}
