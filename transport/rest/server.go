package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-duel/internal/config"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type statsReader interface {
	Stats(ctx context.Context) (*entity.Stats, error)
}

type Server struct {
	logger *slog.Logger
	stats  statsReader
	ws     http.Handler
}

func New(logger *slog.Logger, stats statsReader, ws http.Handler) *Server {
	return &Server{
		logger: logger.With("component", "http"),
		stats:  stats,
		ws:     ws,
	}
}

// Routes - every endpoint served on the http port.
func (that *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", indexHandler)
	mux.HandleFunc("GET /ping", NewPingHandler().PingHandler)
	mux.HandleFunc("GET /stats", NewStatsHandler(that.logger, that.stats).StatsHandler)
	mux.Handle("/ws", that.ws)

	return mux
}

// Start - serves Routes until ctx is done, then shuts the server down gracefully.
func (that *Server) Start(ctx context.Context, port string, conf config.HTTP) error {
	log := that.logger.With("method", "Start")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Routes(),
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
		IdleTimeout:  conf.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
