package game

import "testing"

func TestEventPoolsShape(t *testing.T) {
	want := map[PoolID]int{PoolMild: 4, PoolModerate: 6, PoolBrutal: 7}
	for pool, n := range want {
		events := eventPools[pool]
		if len(events) != n {
			t.Fatalf("pool=%s len=%d want %d", pool, len(events), n)
		}
		for _, ev := range events {
			if ev.Kind != EventGood && ev.Kind != EventBad {
				t.Fatalf("pool=%s event %q has kind %q", pool, ev.Message, ev.Kind)
			}
			if ev.Message == "" {
				t.Fatalf("pool=%s has an event without a message", pool)
			}
		}
	}
}

func TestRollEventChance(t *testing.T) {
	if ev := rollEvent(PoolMild, EventChance, &seqRand{vals: []float64{0.26}}); ev != nil {
		t.Fatalf("roll above chance returned %q", ev.Message)
	}
	ev := rollEvent(PoolMild, EventChance, &seqRand{vals: []float64{0.25, 0.0}})
	if ev == nil {
		t.Fatal("roll at chance boundary must fire")
	}
	if ev.Message != eventPools[PoolMild][0].Message {
		t.Fatalf("selection=%q want first pool entry", ev.Message)
	}
}

func TestRollEventSelectionClamped(t *testing.T) {
	// A draw arbitrarily close to 1 must still land inside the pool.
	ev := rollEvent(PoolBrutal, EventChance, &seqRand{vals: []float64{0.0, 0.999999999}})
	if ev == nil {
		t.Fatal("expected an event")
	}
	last := eventPools[PoolBrutal][len(eventPools[PoolBrutal])-1]
	if ev.Message != last.Message {
		t.Fatalf("selection=%q want last pool entry", ev.Message)
	}
}

func TestApplyMergesDeltaOverDefaults(t *testing.T) {
	m := defaultModifiers()
	if m.DemandBoost != 1 {
		t.Fatalf("default boost=%v want 1", m.DemandBoost)
	}

	Event{Delta: Modifiers{DemandBoost: 0.7}}.apply(&m)
	if m.DemandBoost != 0.7 {
		t.Fatalf("boost=%v want 0.7", m.DemandBoost)
	}
	if m.UnitCostOverride != nil || m.ShipmentDelay || m.CancelShipment {
		t.Fatal("untouched fields must keep defaults")
	}

	m = defaultModifiers()
	Event{Delta: Modifiers{UnitCostOverride: costOverride(4), CashPenalty: 100}}.apply(&m)
	if m.UnitCostOverride == nil || *m.UnitCostOverride != 4 {
		t.Fatalf("override=%v want 4", m.UnitCostOverride)
	}
	if m.CashPenalty != 100 || m.DemandBoost != 1 {
		t.Fatalf("penalty=%v boost=%v, want 100/1", m.CashPenalty, m.DemandBoost)
	}
}
