package transport

import (
	"log"
	"net/http"
	"strconv"

	"img2puz/internal/web/components"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	author := s.SessionManager.GetString(r.Context(), "author")
	copyright := s.SessionManager.GetString(r.Context(), "copyright")

	recent, err := s.Service.RecentConversions(r.Context(), 20)
	if err != nil {
		log.Printf("loading recent conversions: %v", err)
	}

	components.Layout("img2puz", components.Home(author, copyright, recent)).Render(r.Context(), w)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.Service.Ping(r.Context()); err != nil {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("X-Uptime-Seconds", strconv.FormatInt(int64(s.Service.Uptime().Seconds()), 10))
	w.Write([]byte("ok"))
}
