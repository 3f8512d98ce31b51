package leaderboard

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSubmitAndTopOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{Name: "ada", Score: 1200, Level: 3, Difficulty: "medium", RecordedAt: base},
		{Name: "bob", Score: 4100, Level: 5, Difficulty: "hard", RecordedAt: base.Add(time.Hour)},
		{Name: "cleo", Score: 4100, Level: 4, Difficulty: "hard", RecordedAt: base.Add(2 * time.Hour)},
		{Name: "dee", Score: 300, Level: 1, Difficulty: "easy", RecordedAt: base.Add(3 * time.Hour)},
	}
	for _, e := range entries {
		if err := s.Submit(ctx, e); err != nil {
			t.Fatalf("submit %s: %v", e.Name, err)
		}
	}

	top, err := s.Top(ctx, 3)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("len=%d want 3", len(top))
	}
	// Highest score first; ties broken by earlier submission.
	wantNames := []string{"bob", "cleo", "ada"}
	for i, name := range wantNames {
		if top[i].Name != name {
			t.Fatalf("rank %d = %q want %q (full: %+v)", i, top[i].Name, name, top)
		}
	}
	if top[0].Score != 4100 || top[0].Level != 5 || top[0].Difficulty != "hard" {
		t.Fatalf("row fields lost: %+v", top[0])
	}
	if !top[0].RecordedAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("recorded_at=%v want %v", top[0].RecordedAt, base.Add(time.Hour))
	}
}

func TestSubmitRejectsBlankName(t *testing.T) {
	s := newTestStore(t)
	err := s.Submit(context.Background(), Entry{Name: "   ", Score: 10})
	if err != ErrEmptyName {
		t.Fatalf("err=%v want ErrEmptyName", err)
	}
}

func TestTopDefaultsLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	for i := 0; i < 15; i++ {
		if err := s.Submit(ctx, Entry{Name: "p", Score: i, Level: 1, Difficulty: "easy"}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	top, err := s.Top(ctx, 0)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 10 {
		t.Fatalf("len=%d want the default 10", len(top))
	}
}

func TestTopSurfacesCorruptTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scores (name, score, level, difficulty, recorded_at)
		VALUES ('mallory', 999, 1, 'easy', 'not-a-timestamp')
	`)
	if err != nil {
		t.Fatalf("seed corrupt row: %v", err)
	}

	if _, err := s.Top(ctx, 5); err == nil {
		t.Fatal("expected an error for an unparseable recorded_at")
	}
}

func TestTopEmptyBoard(t *testing.T) {
	s := newTestStore(t)
	top, err := s.Top(context.Background(), 5)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 0 {
		t.Fatalf("len=%d want 0", len(top))
	}
}
