package game

import "testing"

func TestParseDifficulty(t *testing.T) {
	valid := map[string]Difficulty{
		"easy":    DifficultyEasy,
		"Medium":  DifficultyMedium,
		" hard ":  DifficultyHard,
		"HARD":    DifficultyHard,
		"medium ": DifficultyMedium,
	}
	for in, want := range valid {
		got, err := ParseDifficulty(in)
		if err != nil || got != want {
			t.Fatalf("ParseDifficulty(%q) = %v, %v; want %v", in, got, err, want)
		}
	}

	for _, in := range []string{"", "brutal", "ez", "impossible"} {
		if _, err := ParseDifficulty(in); err != ErrUnknownDifficulty {
			t.Fatalf("ParseDifficulty(%q) err=%v want ErrUnknownDifficulty", in, err)
		}
	}
}

func TestDifficultyVolatility(t *testing.T) {
	tests := []struct {
		diff Difficulty
		vol  float64
		pool PoolID
	}{
		{DifficultyEasy, 0.2, PoolMild},
		{DifficultyMedium, 0.5, PoolModerate},
		{DifficultyHard, 0.9, PoolBrutal},
	}
	for _, tc := range tests {
		cfg := difficultyTable[tc.diff]
		if !almostEqual(cfg.Volatility, tc.vol) || cfg.EventPool != tc.pool {
			t.Fatalf("%s: got %+v", tc.diff, cfg)
		}
	}
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.005, 1.0}, // float 1.005 sits just below the midpoint
		{2.675, 2.67},
		{-150.456, -150.46},
		{100, 100},
	}
	for _, tc := range tests {
		if got := RoundCents(tc.in); !almostEqual(got, tc.want) {
			t.Fatalf("RoundCents(%v)=%v want %v", tc.in, got, tc.want)
		}
	}
}
