package leaderboard

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore backs shared deployments where several players submit
// to the same board.
type PostgresStore struct {
	db *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, db *pgxpool.Pool) (*PostgresStore, error) {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS scores (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			score BIGINT NOT NULL,
			level INT NOT NULL,
			difficulty TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(ctx, `CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC)`)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Submit(ctx context.Context, e Entry) error {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return ErrEmptyName
	}
	recordedAt := e.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO scores (name, score, level, difficulty, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`, name, e.Score, e.Level, e.Difficulty, recordedAt)
	return err
}

func (s *PostgresStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(ctx, `
		SELECT name, score, level, difficulty, recorded_at
		FROM scores
		ORDER BY score DESC, recorded_at ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Score, &e.Level, &e.Difficulty, &e.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases nothing: the pool is owned by the caller.
func (s *PostgresStore) Close() error {
	return nil
}
