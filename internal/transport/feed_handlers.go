package transport

import (
	"log"
	"net/http"

	"github.com/nats-io/nats.go"
	"github.com/starfederation/datastar-go/datastar"

	"img2puz/internal/app"
	"img2puz/internal/web/components"
)

// handleFeed streams the recent conversions list, patching it each time a
// conversion is announced on NATS.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if s.Service.NC == nil {
		http.Error(w, "live updates unavailable", http.StatusServiceUnavailable)
		return
	}

	msgs := make(chan *nats.Msg, 16)
	sub, err := s.Service.NC.ChanSubscribe(app.SubjectConversions, msgs)
	if err != nil {
		http.Error(w, "live updates unavailable", http.StatusServiceUnavailable)
		return
	}
	defer sub.Unsubscribe()

	sse := datastar.NewSSE(w, r)
	if err := s.patchRecent(sse, r); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-msgs:
			if err := s.patchRecent(sse, r); err != nil {
				log.Printf("feed closed: %v", err)
				return
			}
		}
	}
}

func (s *Server) patchRecent(sse *datastar.ServerSentEventGenerator, r *http.Request) error {
	recent, err := s.Service.RecentConversions(r.Context(), 20)
	if err != nil {
		return err
	}
	return sse.PatchElementTempl(components.RecentList(recent))
}
