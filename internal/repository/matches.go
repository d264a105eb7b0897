package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const matchesSchema = `
CREATE TABLE IF NOT EXISTS matches (
	id UUID PRIMARY KEY,
	winner TEXT NOT NULL,
	loser TEXT NOT NULL,
	winner_faction TEXT NOT NULL,
	loser_faction TEXT NOT NULL,
	turns INT NOT NULL,
	duration_ms BIGINT NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
)`

// MatchResult records the outcome of one finished match.
type MatchResult struct {
	ID            uuid.UUID
	Winner        string
	Loser         string
	WinnerFaction string
	LoserFaction  string
	Turns         int
	Duration      time.Duration
	FinishedAt    time.Time
}

// MatchStore persists match results.
type MatchStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewMatchStore wraps a pool.
func NewMatchStore(pool *pgxpool.Pool, logger *zap.Logger) *MatchStore {
	return &MatchStore{pool: pool, logger: logger}
}

// EnsureSchema creates the matches table when it does not exist yet.
func (s *MatchStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, matchesSchema); err != nil {
		return fmt.Errorf("ensure matches schema: %w", err)
	}
	return nil
}

// RecordMatch inserts one finished match.
func (s *MatchStore) RecordMatch(ctx context.Context, result MatchResult) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO matches (id, winner, loser, winner_faction, loser_faction, turns, duration_ms, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		result.ID,
		result.Winner,
		result.Loser,
		result.WinnerFaction,
		result.LoserFaction,
		result.Turns,
		result.Duration.Milliseconds(),
		result.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("record match %s: %w", result.ID, err)
	}

	s.logger.Info("match recorded",
		zap.String("match_id", result.ID.String()),
		zap.String("winner", result.Winner),
		zap.Int("turns", result.Turns),
	)
	return nil
}

// Close releases the underlying pool.
func (s *MatchStore) Close() {
	s.pool.Close()
}
