package errors

import (
	"fmt"
	"testing"
)

func TestConvertError_Error(t *testing.T) {
	err := &ConvertError{
		Code:    ErrExtraction,
		Status:  422,
		Message: "image has no contrast",
	}

	expected := "EXTRACTION_ERROR: image has no contrast"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewClueCountMismatch(t *testing.T) {
	err := NewClueCountMismatch("across", 4, 5)

	if err.Code != ErrClueCountMismatch {
		t.Errorf("Code = %q, want %q", err.Code, ErrClueCountMismatch)
	}
	if err.Status != 422 {
		t.Errorf("Status = %d, want 422", err.Status)
	}
	if err.Details["direction"] != "across" {
		t.Errorf("Details[direction] = %v, want across", err.Details["direction"])
	}
	if err.Details["expected"] != 4 {
		t.Errorf("Details[expected] = %v, want 4", err.Details["expected"])
	}
	if err.Details["got"] != 5 {
		t.Errorf("Details[got] = %v, want 5", err.Details["got"])
	}
	if err.Message != "across: expected 4 clues, got 5" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewIncompletePuzzle(t *testing.T) {
	err := NewIncompletePuzzle(7, "down")

	if err.Code != ErrIncompletePuzzle {
		t.Errorf("Code = %q, want %q", err.Code, ErrIncompletePuzzle)
	}
	if err.Status != 500 {
		t.Errorf("Status = %d, want 500", err.Status)
	}
	if err.Message != "no clue bound to 7-down" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestNewEncoding(t *testing.T) {
	err := NewEncoding("title", "contains NUL byte")

	if err.Code != ErrEncoding {
		t.Errorf("Code = %q, want %q", err.Code, ErrEncoding)
	}
	if err.Details["field"] != "title" {
		t.Errorf("Details[field] = %v, want title", err.Details["field"])
	}
}

func TestNewInternal(t *testing.T) {
	if got := NewInternal(nil).Message; got != "internal error" {
		t.Errorf("Message = %q, want %q", got, "internal error")
	}
	if got := NewInternal(fmt.Errorf("disk full")).Message; got != "disk full" {
		t.Errorf("Message = %q, want %q", got, "disk full")
	}
}

func TestIs(t *testing.T) {
	err := NewExtraction("grid has %d columns", 1)

	if !Is(err, ErrExtraction) {
		t.Error("Is(err, ErrExtraction) = false, want true")
	}
	if Is(err, ErrEncoding) {
		t.Error("Is(err, ErrEncoding) = true, want false")
	}

	wrapped := fmt.Errorf("converting: %w", err)
	if !Is(wrapped, ErrExtraction) {
		t.Error("Is(wrapped, ErrExtraction) = false, want true")
	}

	if Is(fmt.Errorf("plain"), ErrExtraction) {
		t.Error("Is(plain error) = true, want false")
	}
	if Is(nil, ErrExtraction) {
		t.Error("Is(nil) = true, want false")
	}
}

func TestAs(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewNotFound("abc"))

	cErr, ok := As(wrapped)
	if !ok {
		t.Fatal("As() ok = false, want true")
	}
	if cErr.Status != 404 {
		t.Errorf("Status = %d, want 404", cErr.Status)
	}

	if _, ok := As(fmt.Errorf("plain")); ok {
		t.Error("As(plain) ok = true, want false")
	}
}
