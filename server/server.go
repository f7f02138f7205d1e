package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"landing_page_studio/generator"
	"landing_page_studio/pages"
	"landing_page_studio/studio"
)

//go:embed web/dist
var embeddedStatic embed.FS

// completionTimeout bounds one model request issued from an HTTP handler.
const completionTimeout = 90 * time.Second

// SessionIdleTTL is how long an untouched browser session is kept in memory.
const SessionIdleTTL = 12 * time.Hour

type Server struct {
	agent    *generator.Agent
	pages    pages.Store
	logger   *slog.Logger
	store    *sessionStore
	staticFS http.Handler
}

type sessionEntry struct {
	studio   *studio.Studio
	lastSeen time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	now      func() time.Time
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*sessionEntry), now: time.Now}
}

func (s *sessionStore) set(id string, st *studio.Studio) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &sessionEntry{studio: st, lastSeen: s.now()}
}

// get returns the session and marks it as used.
func (s *sessionStore) get(id string) (*studio.Studio, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.studio, true
}

// prune drops sessions idle for longer than ttl and reports how many went.
func (s *sessionStore) prune(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-ttl)
	n := 0
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *sessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func New(agent *generator.Agent, store pages.Store, logger *slog.Logger) (*Server, error) {
	if agent == nil {
		return nil, errors.New("generator agent required")
	}
	if store == nil {
		return nil, errors.New("page store required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	sub, err := fs.Sub(embeddedStatic, "web/dist")
	if err != nil {
		return nil, err
	}

	return &Server{
		agent:    agent,
		pages:    store,
		logger:   logger,
		store:    newStore(),
		staticFS: http.FileServer(http.FS(sub)),
	}, nil
}

// PruneSessions evicts idle sessions every interval until ctx is done.
func (s *Server) PruneSessions(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.prune(ttl); n > 0 {
				s.logger.Info("evicted idle sessions", "count", n, "remaining", s.store.count())
			}
		}
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/sessions", s.handleSessionCreate)
	mux.HandleFunc("GET /api/sessions/{id}", s.withStudio(s.handleSessionGet))
	mux.HandleFunc("POST /api/sessions/{id}/messages", s.withStudio(s.handleSubmit))
	mux.HandleFunc("PUT /api/sessions/{id}/content", s.withStudio(s.handleEdit))
	mux.HandleFunc("PUT /api/sessions/{id}/theme", s.withStudio(s.handleTheme))
	mux.HandleFunc("PUT /api/sessions/{id}/view", s.withStudio(s.handleView))
	mux.HandleFunc("POST /api/sessions/{id}/new", s.withStudio(s.handleNew))
	mux.HandleFunc("POST /api/sessions/{id}/select", s.withStudio(s.handleSelect))
	mux.HandleFunc("DELETE /api/sessions/{id}/pages/{pageID}", s.withStudio(s.handleSessionDelete))
	mux.HandleFunc("GET /api/pages", s.handlePageList)
	mux.HandleFunc("GET /api/pages/{pageID}", s.handlePageGet)
	mux.HandleFunc("DELETE /api/pages/{pageID}", s.handlePageDelete)
	mux.HandleFunc("GET /api/pages/{pageID}/export", s.handlePageExport)
	mux.HandleFunc("GET /api/sessions/{id}/export", s.withStudio(s.handleSessionExport))
	mux.Handle("/", s.staticHandler())
	return s.logMiddleware(mux)
}

func (s *Server) staticHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		s.staticFS.ServeHTTP(w, r)
	})
}

// --- Helpers ---

func newSessionID() string {
	return uuid.NewString()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResp struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResp{Error: err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
