package game

import "testing"

func TestGoalForLevel(t *testing.T) {
	tests := []struct {
		level int
		diff  Difficulty
		want  float64
	}{
		{1, DifficultyEasy, 500},
		{1, DifficultyMedium, 1000},
		{1, DifficultyHard, 2000},
		{2, DifficultyEasy, 1000},
		{3, DifficultyEasy, 2500},
		{5, DifficultyEasy, 10000},
		{6, DifficultyEasy, 18000},
		{7, DifficultyEasy, 32400},
		{6, DifficultyMedium, 36000},
	}
	for _, tc := range tests {
		if got := goalForLevel(tc.level, tc.diff); !almostEqual(got, tc.want) {
			t.Fatalf("level=%d diff=%s got=%v want=%v", tc.level, tc.diff, got, tc.want)
		}
	}
}

func TestLevelLabel(t *testing.T) {
	if got := levelLabel(1); got != "Corner Store" {
		t.Fatalf("label=%q", got)
	}
	if got := levelLabel(9); got != "Empire 9" {
		t.Fatalf("label=%q", got)
	}
}

func TestAdvanceLevelRequiresWin(t *testing.T) {
	e := newTestEngine(t, DifficultyEasy, noEventMidRoll())
	if err := e.AdvanceLevel(); err != ErrLevelNotCleared {
		t.Fatalf("err=%v want ErrLevelNotCleared", err)
	}
}

func TestAdvanceLevelCarriesStateAndResetsCounters(t *testing.T) {
	e := newTestEngine(t, DifficultyEasy, noEventMidRoll())
	e.state.Cash = 495
	e.upgrades.Insurance.Tier = 2
	if _, err := e.ResolveTurn(TurnInput{Price: 5}); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	e.upgrades.Marketing.TurnsLeft = 2
	if e.Status() != StatusWon {
		t.Fatalf("status=%s want won", e.Status())
	}

	if err := e.AdvanceLevel(); err != nil {
		t.Fatalf("advance: %v", err)
	}
	s := e.state
	if s.CurrentLevel != 2 || !almostEqual(s.GoalCash, 1000) {
		t.Fatalf("level=%d goal=%v, want 2/1000", s.CurrentLevel, s.GoalCash)
	}
	if s.Turn != 1 || !s.GameActive {
		t.Fatalf("turn=%d active=%v, want fresh active level", s.Turn, s.GameActive)
	}
	// Cash and inventory carry forward; the rest resets.
	if !almostEqual(s.Cash, 595) || s.Inventory != 80 {
		t.Fatalf("cash=%v inventory=%d, want carried 595/80", s.Cash, s.Inventory)
	}
	if len(s.History.Turns) != 0 || s.Stockouts != 0 || len(s.PricesCharged) != 0 {
		t.Fatal("per-level counters must reset")
	}
	if e.upgrades.Marketing.TurnsLeft != 0 {
		t.Fatalf("marketing turnsLeft=%d want 0 at level start", e.upgrades.Marketing.TurnsLeft)
	}
	if e.upgrades.Insurance.BlocksLeft != 2 {
		t.Fatalf("insurance blocks=%d want refreshed to 2", e.upgrades.Insurance.BlocksLeft)
	}
}

func TestStartLevelSizesPipelineForFastShipping(t *testing.T) {
	e := newTestEngine(t, DifficultyEasy, noEventMidRoll())
	if len(e.state.Pipeline) != 2 {
		t.Fatalf("pipeline len=%d want 2 by default", len(e.state.Pipeline))
	}
	e.upgrades.FastShipping.Tier = 1
	e.startLevel(2)
	if len(e.state.Pipeline) != 1 {
		t.Fatalf("pipeline len=%d want 1 with fast shipping", len(e.state.Pipeline))
	}
}

func TestUnlockAccumulatesAcrossLevels(t *testing.T) {
	e := newTestEngine(t, DifficultyEasy, noEventMidRoll())
	e.state.CurrentLevel = 2
	if !e.unlocked(UpgradeForecast) || !e.unlocked(UpgradeWarehouse) {
		t.Fatal("level 2 must keep level 1 unlocks and add its own")
	}
	if e.unlocked(UpgradeInsurance) {
		t.Fatal("insurance stays locked until level 3")
	}
	e.state.CurrentLevel = 7
	if !e.unlocked(UpgradeInsurance) || !e.unlocked(UpgradeFastShipping) {
		t.Fatal("every upgrade unlocks past the defined levels")
	}
}
