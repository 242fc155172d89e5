package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies the kind of a conversion failure.
type ErrorCode string

const (
	ErrExtraction        ErrorCode = "EXTRACTION_ERROR"    // 422
	ErrGridTopology      ErrorCode = "GRID_TOPOLOGY_ERROR" // 422
	ErrClueCountMismatch ErrorCode = "CLUE_COUNT_MISMATCH" // 422
	ErrIncompletePuzzle  ErrorCode = "INCOMPLETE_PUZZLE"   // 500
	ErrEncoding          ErrorCode = "ENCODING_ERROR"      // 422
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"     // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"           // 404
	ErrInternal          ErrorCode = "INTERNAL"            // 500
)

// ConvertError is a structured error with code, status, and details.
type ConvertError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ConvertError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewExtraction creates a 422 error for images that do not yield a grid.
func NewExtraction(format string, args ...any) *ConvertError {
	return &ConvertError{
		Code:    ErrExtraction,
		Status:  422,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewGridTopology creates a 422 error for grids that contain no entries.
func NewGridTopology(msg string) *ConvertError {
	return &ConvertError{
		Code:    ErrGridTopology,
		Status:  422,
		Message: msg,
	}
}

// NewClueCountMismatch creates a 422 error when a clue block does not match the slot count.
func NewClueCountMismatch(direction string, expected, got int) *ConvertError {
	return &ConvertError{
		Code:    ErrClueCountMismatch,
		Status:  422,
		Message: fmt.Sprintf("%s: expected %d clues, got %d", direction, expected, got),
		Details: map[string]any{"direction": direction, "expected": expected, "got": got},
	}
}

// NewIncompletePuzzle creates a 500 error for a slot left without a clue.
func NewIncompletePuzzle(number int, direction string) *ConvertError {
	return &ConvertError{
		Code:    ErrIncompletePuzzle,
		Status:  500,
		Message: fmt.Sprintf("no clue bound to %d-%s", number, direction),
		Details: map[string]any{"number": number, "direction": direction},
	}
}

// NewEncoding creates a 422 error for a field the puzzle format cannot represent.
func NewEncoding(field, reason string) *ConvertError {
	return &ConvertError{
		Code:    ErrEncoding,
		Status:  422,
		Message: fmt.Sprintf("%s: %s", field, reason),
		Details: map[string]any{"field": field},
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ConvertError {
	return &ConvertError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing conversion.
func NewNotFound(identifier string) *ConvertError {
	return &ConvertError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("conversion not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ConvertError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ConvertError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if err, or anything it wraps, is a ConvertError with the given code.
func Is(err error, code ErrorCode) bool {
	var cErr *ConvertError
	if stderrors.As(err, &cErr) {
		return cErr.Code == code
	}
	return false
}

// As returns the ConvertError in err's chain, if any.
func As(err error) (*ConvertError, bool) {
	var cErr *ConvertError
	ok := stderrors.As(err, &cErr)
	return cErr, ok
}
