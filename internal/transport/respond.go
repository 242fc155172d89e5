package transport

import (
	"encoding/json"
	stderrors "errors"
	"log"
	"net/http"

	"img2puz/internal/errors"
)

type errorBody struct {
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
	Details map[string]any   `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("writing response: %v", err)
	}
}

// writeError maps err onto its HTTP status. Errors without a code are
// reported as internal.
func writeError(w http.ResponseWriter, err error) {
	cErr, ok := errors.As(err)
	if !ok {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			cErr = errors.NewInvalidRequest(err.Error())
			cErr.Status = http.StatusRequestEntityTooLarge
		} else {
			cErr = errors.NewInternal(err)
		}
	}
	if cErr.Status >= 500 {
		log.Printf("request failed: %v", cErr)
	}
	writeJSON(w, cErr.Status, map[string]errorBody{
		"error": {Code: cErr.Code, Message: cErr.Message, Details: cErr.Details},
	})
}
