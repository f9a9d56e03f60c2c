package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

const (
	statsTotalsKey = "stats:totals"
	statsRecentKey = "stats:recent"

	fieldXWins = "x_wins"
	fieldOWins = "o_wins"
	fieldDraws = "draws"
)

const DefaultRecentLimit = 20

var ErrUnknownWinner = errors.New("unknown winner")

type StatsRepository interface {
	Record(ctx context.Context, result *entity.GameResult) error
	Stats(ctx context.Context) (*entity.Stats, error)
}

type dbStats struct {
	client      *redis.Client
	recentLimit int64
}

func NewStatsRepository(client *redis.Client, recentLimit int) StatsRepository {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	return &dbStats{
		client:      client,
		recentLimit: int64(recentLimit),
	}
}

func (that *dbStats) Record(ctx context.Context, result *entity.GameResult) error {
	field, err := totalsField(result.Winner)
	if err != nil {
		return err
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal game result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, statsTotalsKey, field, 1)
		pipe.LPush(ctx, statsRecentKey, resultJSON)
		pipe.LTrim(ctx, statsRecentKey, 0, that.recentLimit-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record game result: %w", err)
	}

	return nil
}

func (that *dbStats) Stats(ctx context.Context) (*entity.Stats, error) {
	totals, err := that.client.HGetAll(ctx, statsTotalsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get totals: %w", err)
	}

	stats := &entity.Stats{Recent: []entity.GameResult{}}

	for field, value := range totals {
		count, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", field, err)
		}

		switch field {
		case fieldXWins:
			stats.Totals.XWins = count
		case fieldOWins:
			stats.Totals.OWins = count
		case fieldDraws:
			stats.Totals.Draws = count
		}
	}

	recent, err := that.client.LRange(ctx, statsRecentKey, 0, that.recentLimit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent results: %w", err)
	}

	for _, raw := range recent {
		var result entity.GameResult
		if err = json.Unmarshal([]byte(raw), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game result: %w", err)
		}

		stats.Recent = append(stats.Recent, result)
	}

	return stats, nil
}

func totalsField(winner string) (string, error) {
	switch winner {
	case string(entity.MarkX):
		return fieldXWins, nil
	case string(entity.MarkO):
		return fieldOWins, nil
	case entity.WinnerDraw:
		return fieldDraws, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownWinner, winner)
	}
}
