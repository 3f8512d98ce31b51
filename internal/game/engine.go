package game

import (
	"fmt"
	"log/slog"
	"math"
	mathrand "math/rand"
	"time"
)

// Engine owns one run's GameState and UpgradeState. It is not safe for
// concurrent use; callers serialize turn submissions (the API server
// holds a lock, the CLI is single-threaded).
type Engine struct {
	log      *slog.Logger
	rand     Rand
	bal      Balance
	state    *GameState
	upgrades *UpgradeState
	status   RunStatus
}

// NewEngine starts a run at level 1 with fresh upgrades. A nil rng gets
// a time-seeded source; a nil logger falls back to slog.Default.
func NewEngine(d Difficulty, bal Balance, rng Rand, logger *slog.Logger) (*Engine, error) {
	if _, ok := difficultyTable[d]; !ok {
		return nil, ErrUnknownDifficulty
	}
	if rng == nil {
		rng = mathrand.New(mathrand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		log:  logger,
		rand: rng,
		bal:  bal,
		state: &GameState{
			Difficulty: d,
			Cash:       bal.StartingCash,
			Inventory:  bal.StartingInventory,
		},
		upgrades: &UpgradeState{},
	}
	e.startLevel(1)
	return e, nil
}

func (e *Engine) Status() RunStatus {
	return e.status
}

func (e *Engine) Active() bool {
	return e.state.GameActive
}

// ResolveTurn runs the full effect pipeline for one turn. The step
// order is load-bearing: event roll, instant effects, arrival, pipeline
// shift, ordering, sale, storage penalty, stockout penalty, terminal
// checks.
func (e *Engine) ResolveTurn(in TurnInput) (TurnReport, error) {
	if !e.state.GameActive {
		return TurnReport{}, ErrEngineInactive
	}
	if in.Price < MinPrice {
		return TurnReport{}, ErrInvalidPrice
	}
	if in.OrderQty < 0 {
		in.OrderQty = 0
	}

	s, u := e.state, e.upgrades
	cfg := difficultyTable[s.Difficulty]
	rep := TurnReport{Turn: s.Turn, Status: StatusActive, GoalCash: s.GoalCash}

	// 1. Marketing decay. The boost applies on the same turns the
	// counter burns down, so sample activity before decrementing.
	marketingActive := u.MarketingActive()
	if u.Marketing.TurnsLeft > 0 {
		u.Marketing.TurnsLeft--
	}

	// 2. Event roll, with insurance absorbing bad events.
	mods := defaultModifiers()
	if ev := rollEvent(cfg.EventPool, e.bal.EventChance, e.rand); ev != nil {
		er := &EventReport{Kind: ev.Kind, Message: ev.Message}
		if ev.Kind == EventBad && u.Insurance.BlocksLeft > 0 {
			u.Insurance.BlocksLeft--
			er.Blocked = true
		} else {
			ev.apply(&mods)
		}
		rep.Event = er
	}

	// 3. Instant effects, before any shipment handling.
	if rep.Event != nil && !rep.Event.Blocked {
		s.Cash += mods.CashBonus
		s.Cash -= mods.CashPenalty
		s.Inventory += mods.FreeUnits
		rep.Event.CashBonus = mods.CashBonus
		rep.Event.CashPenalty = mods.CashPenalty
		rep.Event.FreeUnits = mods.FreeUnits
		if mods.InventoryLossPct > 0 {
			lost := int(math.Floor(float64(s.Inventory) * mods.InventoryLossPct))
			s.Inventory -= lost
			rep.Event.InventoryLost = lost
		}
	}

	// 4. Shipment arrival. A cancelled shipment is voided outright: no
	// refund, no requeue.
	arriving := s.Pipeline[0]
	rep.Arrival = ArrivalReport{Units: arriving, Cancelled: mods.CancelShipment}
	if !mods.CancelShipment {
		s.Inventory += arriving
	}

	// 5. Pipeline shift. A delay leaves the head in place, so the same
	// units arrive again next turn and a full lead turn is lost.
	if mods.ShipmentDelay {
		rep.Delayed = true
	} else if len(s.Pipeline) == 2 {
		s.Pipeline[0], s.Pipeline[1] = s.Pipeline[1], 0
	} else {
		s.Pipeline[0] = 0
	}

	// 6. Ordering. An unaffordable order forfeits the rest of the turn:
	// the counter still advances but no sale resolves.
	if in.OrderQty > 0 {
		unitCost, label := u.BulkUnitCost(in.OrderQty)
		if mods.UnitCostOverride != nil {
			unitCost, label = *mods.UnitCostOverride, ""
		}
		fee := e.bal.OrderFee
		if in.Expedited {
			fee += e.bal.ExpeditedFee
		}
		total := float64(in.OrderQty)*unitCost + fee
		ord := &OrderReport{
			Qty:           in.OrderQty,
			UnitCost:      unitCost,
			DiscountLabel: label,
			Fee:           fee,
			TotalCost:     total,
			Expedited:     in.Expedited,
		}
		rep.Order = ord
		if total > s.Cash {
			ord.Rejected = true
			s.Turn++
			rep.Cash = s.Cash
			rep.Inventory = s.Inventory
			e.log.Debug("order rejected", "turn", rep.Turn, "cost", total, "cash", RoundCents(s.Cash))
			return rep, nil
		}
		s.Cash -= total
		if in.Expedited || len(s.Pipeline) == 1 {
			s.Pipeline[0] += in.OrderQty
			ord.LeadTurns = 1
		} else {
			s.Pipeline[1] = in.OrderQty
			ord.LeadTurns = 2
		}
	}

	// 7. Demand and sale. Marketing folds into the demand roll before
	// its rounding; the event boost rounds a second time:
	// demand = round(round(base*factor*mkt) * boost).
	preSale := s.Inventory
	base := math.Max(0, e.bal.DemandIntercept-e.bal.DemandSlope*in.Price)
	factor := (1 - cfg.Volatility) + e.rand.Float64()*2*cfg.Volatility
	roll := base * factor
	if marketingActive {
		roll *= e.bal.MarketingBoost
	}
	rawDemand := math.Round(roll)
	demand := int(math.Round(rawDemand * mods.DemandBoost))
	if demand < 0 {
		demand = 0
	}
	sold := demand
	if sold > s.Inventory {
		sold = s.Inventory
	}
	revenue := float64(sold) * in.Price
	unmet := demand - sold
	s.Inventory -= sold
	s.Cash += revenue
	s.TotalRevenue += revenue
	s.PricesCharged = append(s.PricesCharged, in.Price)
	rep.Sale = &SaleReport{
		Price:       in.Price,
		Demand:      demand,
		UnitsSold:   sold,
		Revenue:     revenue,
		UnmetDemand: unmet,
	}

	// 8. External storage penalty on overflow.
	if excess := s.Inventory - u.WarehouseCapacity(); excess > 0 {
		penalty := float64(excess) * e.bal.ExternalStorageCost
		s.Cash -= penalty
		rep.Storage = &StorageReport{ExcessUnits: excess, Penalty: penalty}
	}

	// 9. Stockout penalty. Only a true stockout counts, judged on
	// pre-sale inventory; partial fulfillment is not penalized.
	if preSale == 0 && demand > 0 {
		s.Stockouts++
		penalty := float64(unmet) * e.bal.MissedOrderPenalty
		s.Cash -= penalty
		rep.Stockout = &StockoutReport{UnmetDemand: unmet, Penalty: penalty}
	}

	// 10. Bookkeeping.
	s.History.append(fmt.Sprintf("T%d", s.Turn), s.Inventory, in.Price, demand, RoundCents(s.Cash))
	s.TurnProfits = append(s.TurnProfits, RoundCents(s.Cash))

	// 11. Terminal checks, win before bankruptcy before timeout.
	switch {
	case s.Cash >= s.GoalCash:
		e.status = StatusWon
		s.GameActive = false
	case s.Cash <= 0 && s.Inventory == 0:
		e.status = StatusBankrupt
		s.GameActive = false
	case s.Turn >= e.bal.MaxTurns:
		e.status = StatusTimedOut
		s.GameActive = false
	default:
		s.Turn++
	}
	rep.Status = e.status
	rep.GoalReached = s.Cash >= s.GoalCash
	rep.Cash = s.Cash
	rep.Inventory = s.Inventory

	e.log.Debug("turn resolved",
		"turn", rep.Turn,
		"demand", demand,
		"sold", sold,
		"cash", RoundCents(s.Cash),
		"inventory", s.Inventory,
		"status", e.status,
	)
	return rep, nil
}

// QuoteOrder prices an order without placing it. Event-driven unit cost
// overrides are unknowable ahead of the roll and are not included.
func (e *Engine) QuoteOrder(qty int, expedited bool) OrderQuote {
	if qty < 0 {
		qty = 0
	}
	unitCost, label := e.upgrades.BulkUnitCost(qty)
	fee := e.bal.OrderFee
	if expedited {
		fee += e.bal.ExpeditedFee
	}
	return OrderQuote{
		Qty:           qty,
		UnitCost:      unitCost,
		DiscountLabel: label,
		Fee:           fee,
		TotalCost:     float64(qty)*unitCost + fee,
	}
}

// ForecastDemand returns the noise-free expected demand at a price.
// Available only with the forecasting upgrade; the preview folds in an
// active marketing boost but cannot see future events.
func (e *Engine) ForecastDemand(price float64) (int, bool) {
	if !e.upgrades.HasForecasting() {
		return 0, false
	}
	expected := math.Max(0, e.bal.DemandIntercept-e.bal.DemandSlope*price)
	if e.upgrades.MarketingActive() {
		expected *= e.bal.MarketingBoost
	}
	return int(math.Round(expected)), true
}

// Snapshot returns a read-only copy of the run state.
func (e *Engine) Snapshot() Snapshot {
	s := e.state
	u := e.upgrades
	return Snapshot{
		Difficulty:   s.Difficulty,
		Level:        s.CurrentLevel,
		LevelLabel:   levelLabel(s.CurrentLevel),
		GoalCash:     s.GoalCash,
		Cash:         s.Cash,
		Inventory:    s.Inventory,
		Turn:         s.Turn,
		MaxTurns:     e.bal.MaxTurns,
		Pipeline:     append([]int(nil), s.Pipeline...),
		GameActive:   s.GameActive,
		Status:       e.status,
		Stockouts:    s.Stockouts,
		TotalRevenue: s.TotalRevenue,
		Upgrades: UpgradeSnapshot{
			WarehouseTier:        u.Warehouse.Tier,
			MarketingTier:        u.Marketing.Tier,
			MarketingTurnsLeft:   u.Marketing.TurnsLeft,
			ForecastTier:         u.Forecast.Tier,
			FastShippingTier:     u.FastShipping.Tier,
			InsuranceTier:        u.Insurance.Tier,
			InsuranceBlocksLeft:  u.Insurance.BlocksLeft,
			SupplierContractTier: u.SupplierContract.Tier,
		},
	}
}

// HUD returns the summary strip for the turn controls.
func (e *Engine) HUD() HUDView {
	s := e.state
	u := e.upgrades
	return HUDView{
		Cash:               s.Cash,
		Inventory:          s.Inventory,
		Turn:               s.Turn,
		MaxTurns:           e.bal.MaxTurns,
		IncomingUnits:      s.Pipeline[0],
		WarehouseCapacity:  u.WarehouseCapacity(),
		UnitCost:           u.EffectiveUnitCost(),
		Level:              s.CurrentLevel,
		LevelLabel:         levelLabel(s.CurrentLevel),
		GoalCash:           s.GoalCash,
		ForecastUnlocked:   u.HasForecasting(),
		MarketingTurnsLeft: u.Marketing.TurnsLeft,
		InsuranceBlocks:    u.Insurance.BlocksLeft,
	}
}

// History returns a copy of the charting series.
func (e *Engine) History() History {
	return e.state.History.clone()
}

// Summary condenses the run for the end screen. Best and worst turns
// are judged by the cash level recorded in history.
func (e *Engine) Summary() RunSummary {
	s := e.state
	out := RunSummary{
		Status:    e.status,
		Won:       e.status == StatusWon || s.Cash >= s.GoalCash,
		Level:     s.CurrentLevel,
		FinalCash: RoundCents(s.Cash),
		Profit:    RoundCents(s.Cash - e.bal.StartingCash),
		Stockouts: s.Stockouts,
	}
	if len(s.PricesCharged) > 0 {
		var sum float64
		for _, p := range s.PricesCharged {
			sum += p
		}
		out.AvgPrice = RoundCents(sum / float64(len(s.PricesCharged)))
	}
	if len(s.History.Cash) > 0 {
		best, worst := 0, 0
		for i, c := range s.History.Cash {
			if c > s.History.Cash[best] {
				best = i
			}
			if c < s.History.Cash[worst] {
				worst = i
			}
		}
		out.BestTurn = s.History.Turns[best]
		out.BestCash = s.History.Cash[best]
		out.WorstTurn = s.History.Turns[worst]
		out.WorstCash = s.History.Cash[worst]
	}
	return out
}

// FinalScore is the rounded cash handed to the leaderboard.
func (e *Engine) FinalScore() int {
	return int(math.Round(e.state.Cash))
}

// Level returns the current level number.
func (e *Engine) Level() int {
	return e.state.CurrentLevel
}
