package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/talkgest/internal/cache"
	"github.com/dgallion1/talkgest/internal/config"
	"github.com/dgallion1/talkgest/internal/parsoid"
	"github.com/dgallion1/talkgest/internal/stats"
)

// PageFetcher retrieves rendered page HTML.
type PageFetcher interface {
	FetchHTML(ctx context.Context, domain, title, revision string) (*parsoid.Page, error)
}

// Server is the HTTP API server for talkgest.
type Server struct {
	router  chi.Router
	fetcher PageFetcher
	cache   cache.Cache
	stats   *stats.Window
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server. A nil cache disables caching.
func NewServer(fetcher PageFetcher, c cache.Cache, st *stats.Window, log *slog.Logger, cfg config.Config) *Server {
	if c == nil {
		c = cache.Noop{}
	}
	if st == nil {
		st = stats.NewWindow(cfg.StatsWindow)
	}
	s := &Server{
		fetcher: fetcher,
		cache:   c,
		stats:   st,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Get("/{domain}/v1/page/talk/{title}", s.handleTalk)
	r.Get("/{domain}/v1/page/talk/{title}/{revision}", s.handleTalk)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		if s.cfg.TalkgestAPIKey != "" {
			r.Use(AuthMiddleware(s.cfg.TalkgestAPIKey, s.log))
		}

		r.Post("/api/talk/parse", s.handleParse)
		r.Get("/api/stats/parse", s.handleParseStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
