package transport

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"img2puz/internal/app"
)

type Server struct {
	Service        *app.Service
	Router         *chi.Mux
	SessionManager *scs.SessionManager

	maxUploadBytes int64
}

func NewServer(svc *app.Service, db *sql.DB, maxUploadBytes int64, isProd bool) *Server {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.New(db)
	sessionManager.Lifetime = time.Hour * 24 * 7 * 6
	sessionManager.Cookie.Secure = isProd
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode

	s := &Server{
		Service:        svc,
		Router:         chi.NewRouter(),
		SessionManager: sessionManager,
		maxUploadBytes: maxUploadBytes,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.Logger)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
			next.ServeHTTP(w, r)
		})
	})

	fs := http.FileServer(http.Dir("internal/web/static"))
	s.Router.Handle("/static/*", http.StripPrefix("/static/", fs))

	s.Router.Get("/healthz", s.handleHealth)

	// session-backed routes
	s.Router.Group(func(r chi.Router) {
		r.Use(s.SessionManager.LoadAndSave)
		r.Get("/", s.handleHome)
		r.Post("/convert", s.handleConvert)
	})

	s.Router.Get("/conversions", s.handleListConversions)
	s.Router.Get("/conversions/feed", s.handleFeed)
	s.Router.Get("/conversions/{id}.puz", s.handleDownload)
}
