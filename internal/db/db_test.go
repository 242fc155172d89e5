package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: is its own database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	goose.SetDialect("sqlite3")
	if err := goose.Up(db, "../../sql/schema"); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestCreateConversion(t *testing.T) {
	q := New(openTestDB(t))
	ctx := context.Background()

	now := time.Now().UTC().Round(0)

	conv, err := q.CreateConversion(ctx, CreateConversionParams{
		ID:        "conv-1",
		Title:     "Plus",
		Author:    "Ann",
		Width:     3,
		Height:    3,
		ClueCount: 4,
		Digest:    "abc123",
		Puz:       []byte("ACROSS&DOWN"),
		CreatedAt: now,
	})

	if err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}
	if conv.ID != "conv-1" {
		t.Errorf("expected id conv-1, got: %v", conv.ID)
	}
	if conv.ClueCount != 4 {
		t.Errorf("expected 4 clues, got: %v", conv.ClueCount)
	}
	if string(conv.Puz) != "ACROSS&DOWN" {
		t.Errorf("expected puz bytes to survive, got: %q", conv.Puz)
	}
	if !conv.CreatedAt.Equal(now) {
		t.Errorf("expected timestamp of createdAt to match %v, got: %v", now, conv.CreatedAt)
	}

	got, err := q.GetConversion(ctx, "conv-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Digest != "abc123" {
		t.Errorf("expected digest abc123, got: %v", got.Digest)
	}
}

func TestGetConversion_Missing(t *testing.T) {
	q := New(openTestDB(t))

	_, err := q.GetConversion(context.Background(), "nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got: %v", err)
	}
}

func TestListConversions(t *testing.T) {
	q := New(openTestDB(t))
	ctx := context.Background()

	base := time.Now().UTC().Round(0)
	for i, id := range []string{"old", "mid", "new"} {
		_, err := q.CreateConversion(ctx, CreateConversionParams{
			ID:        id,
			Width:     3,
			Height:    3,
			ClueCount: 4,
			Digest:    id,
			Puz:       make([]byte, 10*(i+1)),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	rows, err := q.ListConversions(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got: %d", len(rows))
	}
	if rows[0].ID != "new" || rows[1].ID != "mid" {
		t.Errorf("expected newest first, got: %s, %s", rows[0].ID, rows[1].ID)
	}
	if rows[0].Size != 30 {
		t.Errorf("expected size 30, got: %d", rows[0].Size)
	}

	count, err := q.CountConversions(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("expected 3 conversions, got: %d", count)
	}
}

func TestWithTx_Rollback(t *testing.T) {
	conn := openTestDB(t)
	q := New(conn)
	ctx := context.Background()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = q.WithTx(tx).CreateConversion(ctx, CreateConversionParams{
		ID:        "tx",
		Digest:    "d",
		Puz:       []byte{1},
		Width:     1,
		Height:    2,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatal(err)
	}

	if _, err := q.GetConversion(ctx, "tx"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected rolled back row to be gone, got: %v", err)
	}
}
