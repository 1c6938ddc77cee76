// Package devserver serves the task backend HTTP contract from a local
// SQLite store, for running the client without the real service.
package devserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/pdxmph/tarefas-tui/internal/task"
)

// BasePath is where the task routes are mounted
const BasePath = "/tarefa"

// Store is the persistence the handlers need
type Store interface {
	Create(ctx context.Context, t task.Task) (task.Record, error)
	List(ctx context.Context) ([]task.Record, error)
	Get(ctx context.Context, id string) (task.Record, error)
	Update(ctx context.Context, id string, t task.Task) (task.Record, error)
	Delete(ctx context.Context, id string) error
}

// NewRouter builds the HTTP handler for the task routes
func NewRouter(store Store, logger *zerolog.Logger) http.Handler {
	h := &handlers{store: store, log: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(*logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))

	r.Route(BasePath, func(r chi.Router) {
		r.Post("/registrar", h.create)
		r.Get("/buscarTodos", h.list)
		r.Get("/buscarPorTarefa/{id}", h.get)
		r.Put("/atualizar/{id}", h.update)
		r.Post("/atualizar/{id}", h.update)
		r.Delete("/deletar/{id}", h.delete)
	})

	return r
}

// Server is the development backend's HTTP server
type Server struct {
	srv *http.Server
	log *zerolog.Logger
}

// New creates a server listening on addr
func New(addr string, store Store, logger *zerolog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(store, logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: logger,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.srv.Addr).Str("base", BasePath).Msg("development backend listening")
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down development backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}
