package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

// memoryStats keeps the ledger in process when redis is disabled.
type memoryStats struct {
	mu     sync.RWMutex
	totals entity.StatsTotals
	recent []entity.GameResult
	limit  int
}

func NewMemoryStats(recentLimit int) StatsRepository {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	return &memoryStats{
		recent: make([]entity.GameResult, 0, recentLimit),
		limit:  recentLimit,
	}
}

func (that *memoryStats) Record(_ context.Context, result *entity.GameResult) error {
	field, err := totalsField(result.Winner)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	switch field {
	case fieldXWins:
		that.totals.XWins++
	case fieldOWins:
		that.totals.OWins++
	case fieldDraws:
		that.totals.Draws++
	}

	// newest first, same order as LPUSH
	that.recent = append([]entity.GameResult{*result}, that.recent...)
	if len(that.recent) > that.limit {
		that.recent = that.recent[:that.limit]
	}

	return nil
}

func (that *memoryStats) Stats(_ context.Context) (*entity.Stats, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	recent := make([]entity.GameResult, len(that.recent))
	copy(recent, that.recent)

	return &entity.Stats{
		Totals: that.totals,
		Recent: recent,
	}, nil
}
