package transport

import (
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"img2puz/internal/app"
	"img2puz/internal/errors"
)

// multipart parts beyond this are spilled to temporary files
const formMemory = 8 << 20

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength > s.maxUploadBytes {
		writeError(w, &http.MaxBytesError{Limit: s.maxUploadBytes})
		return
	}
	if err := r.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if !stderrors.As(err, &tooLarge) {
			err = errors.NewInvalidRequest(fmt.Sprintf("invalid form: %v", err))
		}
		writeError(w, err)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, errors.NewInvalidRequest("image is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, err)
		return
	}

	req := app.Request{
		Image:       data,
		AcrossClues: r.FormValue("across_clues"),
		DownClues:   r.FormValue("down_clues"),
		Title:       r.FormValue("title"),
		Author:      r.FormValue("author"),
		Copyright:   r.FormValue("copyright"),
		Notes:       r.FormValue("notes"),
		Solution:    r.FormValue("solution"),
	}

	conv, res, err := s.Service.Convert(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	// remembered for the next visit to the form
	s.SessionManager.Put(r.Context(), "author", req.Author)
	s.SessionManager.Put(r.Context(), "copyright", req.Copyright)

	for _, warning := range res.Warnings {
		w.Header().Add("X-Puz-Warning", warning)
	}
	w.Header().Set("X-Conversion-Id", conv.ID)
	writePuz(w, r, "out.puz", conv.Digest, res.Puz)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	conv, err := s.Service.GetConversion(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writePuz(w, r, conv.ID+".puz", conv.Digest, conv.Puz)
}

func writePuz(w http.ResponseWriter, r *http.Request, filename, digest string, data []byte) {
	etag := `"` + digest + `"`
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type conversionJSON struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Width     int64     `json:"width"`
	Height    int64     `json:"height"`
	ClueCount int64     `json:"clue_count"`
	Size      int64     `json:"size"`
	Digest    string    `json:"digest"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url"`
}

func (s *Server) handleListConversions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rows, err := s.Service.RecentConversions(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]conversionJSON, 0, len(rows))
	for _, c := range rows {
		out = append(out, conversionJSON{
			ID:        c.ID,
			Title:     c.Title,
			Author:    c.Author,
			Width:     c.Width,
			Height:    c.Height,
			ClueCount: c.ClueCount,
			Size:      c.Size,
			Digest:    c.Digest,
			CreatedAt: c.CreatedAt,
			URL:       "/conversions/" + c.ID + ".puz",
		})
	}
	writeJSON(w, http.StatusOK, out)
}
