// Package leaderboard persists finished-run scores and serves the
// global top list.
package leaderboard

import (
	"context"
	"errors"
	"time"
)

var ErrEmptyName = errors.New("leaderboard: empty player name")

type Entry struct {
	Name       string    `json:"name"`
	Score      int       `json:"score"`
	Level      int       `json:"level"`
	Difficulty string    `json:"difficulty"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Store is implemented by the sqlite and postgres backends.
type Store interface {
	Submit(ctx context.Context, e Entry) error
	Top(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}
