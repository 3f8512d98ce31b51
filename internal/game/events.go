package game

type EventKind string

const (
	EventGood EventKind = "good"
	EventBad  EventKind = "bad"
)

type PoolID string

const (
	PoolMild     PoolID = "mild"
	PoolModerate PoolID = "moderate"
	PoolBrutal   PoolID = "brutal"
)

// Modifiers is the per-turn accumulator an event writes into. A fresh
// one is built every turn; at most one event contributes to it.
type Modifiers struct {
	DemandBoost      float64
	UnitCostOverride *float64
	FreeUnits        int
	CashBonus        float64
	CashPenalty      float64
	InventoryLossPct float64
	ShipmentDelay    bool
	CancelShipment   bool
}

func defaultModifiers() Modifiers {
	return Modifiers{DemandBoost: 1}
}

// Event is plain data: a kind, a player-facing message and a declarative
// modifier delta. No behaviour hides in the table.
type Event struct {
	Kind    EventKind
	Message string
	Delta   Modifiers
}

// apply merges the event's delta into the turn accumulator. Zero values
// in the delta leave the accumulator's defaults alone.
func (ev Event) apply(m *Modifiers) {
	d := ev.Delta
	if d.DemandBoost != 0 {
		m.DemandBoost = d.DemandBoost
	}
	if d.UnitCostOverride != nil {
		m.UnitCostOverride = d.UnitCostOverride
	}
	m.FreeUnits += d.FreeUnits
	m.CashBonus += d.CashBonus
	m.CashPenalty += d.CashPenalty
	if d.InventoryLossPct != 0 {
		m.InventoryLossPct = d.InventoryLossPct
	}
	if d.ShipmentDelay {
		m.ShipmentDelay = true
	}
	if d.CancelShipment {
		m.CancelShipment = true
	}
}

func costOverride(v float64) *float64 {
	return &v
}

var eventPools = map[PoolID][]Event{
	PoolMild: {
		{Kind: EventGood, Message: "Great weather boosts foot traffic! Demand +15% this turn.", Delta: Modifiers{DemandBoost: 1.15}},
		{Kind: EventGood, Message: "A local blog mentioned your store! Demand +20% this turn.", Delta: Modifiers{DemandBoost: 1.20}},
		{Kind: EventBad, Message: "Rainy day keeps customers home. Demand -15% this turn.", Delta: Modifiers{DemandBoost: 0.85}},
		{Kind: EventBad, Message: "Minor delivery delay: incoming shipment pushed back 1 turn.", Delta: Modifiers{ShipmentDelay: true}},
	},
	PoolModerate: {
		{Kind: EventGood, Message: "Local event drives a surge! Demand +35% this turn.", Delta: Modifiers{DemandBoost: 1.35}},
		{Kind: EventGood, Message: "Supplier discount this turn: unit cost reduced to $1.", Delta: Modifiers{UnitCostOverride: costOverride(1)}},
		{Kind: EventGood, Message: "Free bonus shipment of 20 units arrives immediately!", Delta: Modifiers{FreeUnits: 20}},
		{Kind: EventBad, Message: "Port congestion delays all incoming shipments by 1 turn.", Delta: Modifiers{ShipmentDelay: true}},
		{Kind: EventBad, Message: "Supplier issues: unit cost raised to $4 this turn.", Delta: Modifiers{UnitCostOverride: costOverride(4)}},
		{Kind: EventBad, Message: "Competitor sale nearby. Demand -30% this turn.", Delta: Modifiers{DemandBoost: 0.70}},
	},
	PoolBrutal: {
		{Kind: EventGood, Message: "You went viral! Demand doubled this turn.", Delta: Modifiers{DemandBoost: 2.0}},
		{Kind: EventGood, Message: "Won a local business award! Demand +50% for this turn.", Delta: Modifiers{DemandBoost: 1.50}},
		{Kind: EventGood, Message: "Mystery investor drops $150 cash into your account!", Delta: Modifiers{CashBonus: 150}},
		{Kind: EventBad, Message: "Warehouse fire! You lose 40% of your current inventory.", Delta: Modifiers{InventoryLossPct: 0.40}},
		{Kind: EventBad, Message: "Supply chain crisis: all incoming shipments cancelled this turn.", Delta: Modifiers{CancelShipment: true}},
		{Kind: EventBad, Message: "Tax audit! You owe $100 immediately.", Delta: Modifiers{CashPenalty: 100}},
		{Kind: EventBad, Message: "Market crash: demand drops 60% this turn.", Delta: Modifiers{DemandBoost: 0.40}},
	},
}

// rollEvent returns nil three turns out of four; otherwise a uniform
// pick from the difficulty's pool.
func rollEvent(pool PoolID, chance float64, rng Rand) *Event {
	if rng.Float64() > chance {
		return nil
	}
	events := eventPools[pool]
	idx := int(rng.Float64() * float64(len(events)))
	if idx >= len(events) {
		idx = len(events) - 1
	}
	ev := events[idx]
	return &ev
}
