package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultBalance(t *testing.T) {
	bal := DefaultBalance()
	if bal.MaxTurns != 20 {
		t.Fatalf("max turns=%d want 20", bal.MaxTurns)
	}
	if !almostEqual(bal.OrderFee, 10) || !almostEqual(bal.ExpeditedFee, 20) {
		t.Fatalf("fees=%v/%v want 10/20", bal.OrderFee, bal.ExpeditedFee)
	}
	if !almostEqual(bal.EventChance, 0.25) {
		t.Fatalf("event chance=%v want 0.25", bal.EventChance)
	}
	if !almostEqual(bal.MarketingBoost, 1.4) || bal.MarketingTurns != 3 {
		t.Fatalf("marketing=%v/%d want 1.4/3", bal.MarketingBoost, bal.MarketingTurns)
	}
}

func TestLoadBalanceOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	raw := "max_turns: 30\norder_fee: 12.5\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	bal, err := LoadBalance(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if bal.MaxTurns != 30 || !almostEqual(bal.OrderFee, 12.5) {
		t.Fatalf("overrides not applied: %+v", bal)
	}
	// Everything not mentioned keeps its default.
	if !almostEqual(bal.ExpeditedFee, 20) || bal.StartingInventory != 100 {
		t.Fatalf("defaults lost: %+v", bal)
	}
}

func TestLoadBalanceMissingFile(t *testing.T) {
	if _, err := LoadBalance(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
