package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-duel/internal/config"
	"github.com/rocketscienceinc/tictactoe-duel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-duel/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-duel/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-duel/transport/rest"
	"github.com/rocketscienceinc/tictactoe-duel/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	statsRepo, closeStats, err := initStats(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeStats()

	hub := websocket.NewHub(logger)
	defer hub.Stop()

	gameManager := usecase.NewGameManager(logger, hub, statsRepo, usecase.Options{
		Room:      conf.Room,
		MoveDelay: conf.MoveDelay,
	})

	wsServer := websocket.New(logger, hub, gameManager)
	httpServer := rest.New(logger, statsRepo, wsServer.Handler(ctx))

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "room", conf.Room, "moveDelay", conf.MoveDelay)
		httpErrCh <- httpServer.Start(ctx, conf.HTTPPort, conf.HTTP)
	}()

	select {
	case err = <-httpErrCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		hub.Stop()
		return <-httpErrCh
	}
}

// initStats - picks the result ledger: redis when stats are enabled, in-process otherwise.
func initStats(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.StatsRepository, func(), error) {
	if !conf.Stats.Enabled {
		log.Info("Stats are kept in memory")
		return repository.NewMemoryStats(conf.Stats.RecentLimit), func() {}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Stats are kept in redis", "addr", redisAddrString)

	closeStats := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewStatsRepository(redisStorage.Connection, conf.Stats.RecentLimit), closeStats, nil
}
