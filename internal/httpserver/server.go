// internal/httpserver/server.go
//
// HTTP server wiring for the antonym game.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/difficulties", "/debug/words".
//   - Game endpoint: GET /ws, one websocket per player (see ws.go).
//   - Graceful shutdown that tears down every live session.
//
// Notes:
//   - CORS and the websocket origin check share CLIENT_ORIGIN.
//   - The timeout middleware only wraps the plain JSON routes; a websocket
//     outlives any request deadline.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/catch-the-antonym/internal/config"
	"github.com/robalobadob/catch-the-antonym/internal/store"
	"github.com/robalobadob/catch-the-antonym/internal/words"
)

// Server bundles router, live-connection registry and the word catalog.
type Server struct {
	r        *chi.Mux
	store    store.Store
	catalog  *words.Catalog
	cfg      config.Config
	clock    clock.Clock
	upgrader websocket.Upgrader
	http     *http.Server
	started  time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, catalog *words.Catalog, st store.Store) *Server {
	s := &Server{
		r:       chi.NewRouter(),
		store:   st,
		catalog: catalog,
		cfg:     cfg,
		clock:   clock.New(),
	}
	s.started = s.clock.Now()
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(cors(cfg.ClientOrigin))

	s.r.Get("/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second))
		r.Use(jsonContentType)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"catch-the-antonym","endpoints":["/health","/difficulties","GET /ws"]}`))
		})
		r.Get("/health", s.handleHealth)
		r.Get("/difficulties", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(s.catalog.Tiers())
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(s.catalog.Stats())
		})
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSONError(w, http.StatusNotFound, "not_found")
		})
	})

	return s
}

// Start serves HTTP on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops every live session, then the HTTP server.
// Hijacked websocket connections are not tracked by http.Server, hence StopAll.
func (s *Server) Shutdown(ctx context.Context) error {
	n := s.store.StopAll()
	log.Info().Int("sessions", n).Msg("stopping live sessions")
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":       true,
		"pairs":    s.catalog.Len(),
		"sessions": s.store.Len(),
		"uptime":   s.clock.Since(s.started).Round(time.Second).String(),
	})
}

// checkOrigin accepts the configured client origin, same-host pages and
// non-browser clients that send no Origin header.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.cfg.ClientOrigin {
		return true
	}
	u, err := url.Parse(origin)
	return err == nil && u.Host == r.Host
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
