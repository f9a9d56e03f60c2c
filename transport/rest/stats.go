package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type StatsHandler interface {
	StatsHandler(w http.ResponseWriter, r *http.Request)
}

type statsHandler struct {
	logger *slog.Logger
	stats  statsReader
}

func NewStatsHandler(logger *slog.Logger, stats statsReader) StatsHandler {
	return &statsHandler{
		logger: logger,
		stats:  stats,
	}
}

func (that *statsHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "StatsHandler")

	stats, err := that.stats.Stats(r.Context())
	if err != nil {
		log.Error("failed to get stats", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(stats); err != nil {
		log.Error("failed to encode stats", "error", err)
	}
}
