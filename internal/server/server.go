// Package server hosts layout engines over HTTP.
//
// Documents live in a [store.Store]. Opening a document loads it into an
// in-memory engine session that serves every editing request for that ID
// until the document is deleted or the server stops. Sessions are
// serialized per document; different documents are edited concurrently.
//
// All endpoints speak JSON. Errors carry the pkg/errors code:
//
//	{"error": {"code": "INVALID_ADDRESS", "message": "..."}}
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mosaic/pkg/content"
	"github.com/matzehuels/mosaic/pkg/engine"
	"github.com/matzehuels/mosaic/pkg/store"
)

// Server routes HTTP requests to engine sessions.
type Server struct {
	store   store.Store
	logger  *log.Logger
	decoder content.Decoder
	router  chi.Router

	mu       sync.Mutex
	sessions map[string]*session
}

// session is one open document.
type session struct {
	mu     sync.Mutex
	name   string
	engine *engine.Engine
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDecoder sets how tile markup is decoded when documents are opened
// and content is replaced.
func WithDecoder(d content.Decoder) Option {
	return func(s *Server) {
		if d != nil {
			s.decoder = d
		}
	}
}

// New creates a server backed by st.
func New(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:    st,
		logger:   log.Default(),
		decoder:  content.Decode,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/documents", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleSnapshot)
			r.Delete("/", s.handleDelete)

			r.Post("/select", s.handleEvent(engine.OpSelect))
			r.Post("/hover", s.handleEvent(engine.OpHover))
			r.Post("/drop", s.handleEvent(engine.OpDrop))
			r.Post("/delete", s.handleEvent(engine.OpDelete))
			r.Put("/content", s.handleEvent(engine.OpContent))
			r.Post("/events", s.handleEvents)

			r.Post("/save", s.handleSave)
			r.Get("/export", s.handleExport)
			r.Get("/outline.svg", s.handleOutline)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down", "sessions", s.openSessions())
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// openSessions returns the number of documents with a live engine.
func (s *Server) openSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
