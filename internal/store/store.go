// Package store persists game results to PostgreSQL.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/mayankkejriwal/GNOME-p3-sub000/internal/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS game_results (
	game_id       TEXT PRIMARY KEY,
	tournament_id TEXT NOT NULL,
	seed          BIGINT NOT NULL,
	winner        TEXT NOT NULL,
	reason        TEXT NOT NULL,
	turns         INTEGER NOT NULL,
	time_steps    INTEGER NOT NULL,
	die_rolls     INTEGER NOT NULL,
	duration_ms   BIGINT NOT NULL,
	standings     JSONB NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Record is one stored game result.
type Record struct {
	TournamentID string
	Seed         int64
	Result       game.Result
	CreatedAt    time.Time
}

// Store writes and reads game results.
type Store struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// New connects to dsn and verifies the connection.
func New(ctx context.Context, dsn string, maxConns int32, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("results store connected", zap.Int32("max_conns", cfg.MaxConns))
	return &Store{pool: pool, logger: logger}, nil
}

// EnsureSchema creates the results table if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveResult stores one finished game. Saving the same game twice replaces
// the earlier row.
func (s *Store) SaveResult(ctx context.Context, tournamentID string, seed int64, res *game.Result) error {
	standings, err := json.Marshal(res.Standings)
	if err != nil {
		return fmt.Errorf("failed to encode standings: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO game_results (
			game_id, tournament_id, seed, winner, reason,
			turns, time_steps, die_rolls, duration_ms, standings
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (game_id) DO UPDATE SET
			tournament_id = EXCLUDED.tournament_id,
			seed = EXCLUDED.seed,
			winner = EXCLUDED.winner,
			reason = EXCLUDED.reason,
			turns = EXCLUDED.turns,
			time_steps = EXCLUDED.time_steps,
			die_rolls = EXCLUDED.die_rolls,
			duration_ms = EXCLUDED.duration_ms,
			standings = EXCLUDED.standings
	`,
		res.GameID, tournamentID, seed, res.Winner, string(res.Reason),
		res.Turns, res.TimeSteps, res.DieRolls, res.Duration.Milliseconds(), standings,
	)
	if err != nil {
		return fmt.Errorf("failed to save result %s: %w", res.GameID, err)
	}
	s.logger.Debug("result saved", zap.String("game_id", res.GameID), zap.String("winner", res.Winner))
	return nil
}

// ListResults returns the results of a tournament in insertion order. An
// empty tournamentID lists every result.
func (s *Store) ListResults(ctx context.Context, tournamentID string) ([]Record, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT game_id, tournament_id, seed, winner, reason,
		       turns, time_steps, die_rolls, duration_ms, standings, created_at
		FROM game_results
		WHERE $1 = '' OR tournament_id = $1
		ORDER BY created_at, game_id
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	records, err := pgx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	return records, nil
}

func scanRecord(row pgx.CollectableRow) (Record, error) {
	var (
		rec        Record
		reason     string
		durationMS int64
		standings  []byte
	)
	err := row.Scan(
		&rec.Result.GameID, &rec.TournamentID, &rec.Seed, &rec.Result.Winner, &reason,
		&rec.Result.Turns, &rec.Result.TimeSteps, &rec.Result.DieRolls, &durationMS, &standings,
		&rec.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}
	rec.Result.Reason = game.StopReason(reason)
	rec.Result.Duration = time.Duration(durationMS) * time.Millisecond
	if err := json.Unmarshal(standings, &rec.Result.Standings); err != nil {
		return Record{}, fmt.Errorf("failed to decode standings of %s: %w", rec.Result.GameID, err)
	}
	return rec, nil
}

// WinCounts tallies wins per winner name for a tournament.
func (s *Store) WinCounts(ctx context.Context, tournamentID string) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT winner, COUNT(*) FROM game_results
		WHERE tournament_id = $1 AND winner <> ''
		GROUP BY winner
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query win counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			winner string
			n      int64
		)
		if err := rows.Scan(&winner, &n); err != nil {
			return nil, fmt.Errorf("failed to scan win count: %w", err)
		}
		counts[winner] = int(n)
	}
	return counts, rows.Err()
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}
