package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the read-only game log routes.
func NewRouter(logger *slog.Logger, repo gameLogRepo) http.Handler {
	h := &handlers{
		logger: logger.With("component", "rest"),
		repo:   repo,
	}

	r := chi.NewRouter()
	r.Get("/ping", h.ping)
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", h.listSessions)
		r.Get("/{id}/games", h.listGames)
		r.Get("/{id}/games/{n}", h.getGame)
	})

	return r
}

// Start serves handler on port until ctx is cancelled.
func Start(ctx context.Context, logger *slog.Logger, port string, handler http.Handler) error {
	log := logger.With("component", "rest", "method", "Start")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shut down HTTP server", "error", err)
		}
	}()

	log.Info("starting HTTP server", "port", port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
