package game

type RunStatus string

const (
	StatusActive   RunStatus = "active"
	StatusWon      RunStatus = "won"
	StatusBankrupt RunStatus = "bankrupt"
	StatusTimedOut RunStatus = "timed_out"
)

// TurnInput carries the three per-turn decisions supplied by the player.
type TurnInput struct {
	Price     float64 `json:"price"`
	OrderQty  int     `json:"order_qty"`
	Expedited bool    `json:"expedited"`
}

// TurnReport is the full account of one resolved turn, sufficient for a
// UI to render the turn log without recomputing anything.
type TurnReport struct {
	Turn          int             `json:"turn"`
	Event         *EventReport    `json:"event,omitempty"`
	Arrival       ArrivalReport   `json:"arrival"`
	Delayed       bool            `json:"delayed"`
	Order         *OrderReport    `json:"order,omitempty"`
	Sale          *SaleReport     `json:"sale,omitempty"`
	Storage       *StorageReport  `json:"storage,omitempty"`
	Stockout      *StockoutReport `json:"stockout,omitempty"`
	Status        RunStatus       `json:"status"`
	Cash          float64         `json:"cash"`
	Inventory     int             `json:"inventory"`
	GoalCash      float64         `json:"goal_cash"`
	GoalReached   bool            `json:"goal_reached"`
}

// EventReport records the rolled event and the instant effects it had.
// A blocked event carries zeroed effect fields.
type EventReport struct {
	Kind          EventKind `json:"kind"`
	Message       string    `json:"message"`
	Blocked       bool      `json:"blocked"`
	CashBonus     float64   `json:"cash_bonus,omitempty"`
	CashPenalty   float64   `json:"cash_penalty,omitempty"`
	FreeUnits     int       `json:"free_units,omitempty"`
	InventoryLost int       `json:"inventory_lost,omitempty"`
}

type ArrivalReport struct {
	Units     int  `json:"units"`
	Cancelled bool `json:"cancelled"`
}

type OrderReport struct {
	Qty           int     `json:"qty"`
	UnitCost      float64 `json:"unit_cost"`
	DiscountLabel string  `json:"discount_label,omitempty"`
	Fee           float64 `json:"fee"`
	TotalCost     float64 `json:"total_cost"`
	Expedited     bool    `json:"expedited"`
	LeadTurns     int     `json:"lead_turns"`
	Rejected      bool    `json:"rejected"`
}

type SaleReport struct {
	Price       float64 `json:"price"`
	Demand      int     `json:"demand"`
	UnitsSold   int     `json:"units_sold"`
	Revenue     float64 `json:"revenue"`
	UnmetDemand int     `json:"unmet_demand"`
}

type StorageReport struct {
	ExcessUnits int     `json:"excess_units"`
	Penalty     float64 `json:"penalty"`
}

type StockoutReport struct {
	UnmetDemand int     `json:"unmet_demand"`
	Penalty     float64 `json:"penalty"`
}

// OrderQuote prices an order without placing it, for input previews.
type OrderQuote struct {
	Qty           int     `json:"qty"`
	UnitCost      float64 `json:"unit_cost"`
	DiscountLabel string  `json:"discount_label,omitempty"`
	Fee           float64 `json:"fee"`
	TotalCost     float64 `json:"total_cost"`
}

// Snapshot is the read-only copy of run state handed to presentation.
type Snapshot struct {
	Difficulty   Difficulty      `json:"difficulty"`
	Level        int             `json:"level"`
	LevelLabel   string          `json:"level_label"`
	GoalCash     float64         `json:"goal_cash"`
	Cash         float64         `json:"cash"`
	Inventory    int             `json:"inventory"`
	Turn         int             `json:"turn"`
	MaxTurns     int             `json:"max_turns"`
	Pipeline     []int           `json:"pipeline"`
	GameActive   bool            `json:"game_active"`
	Status       RunStatus       `json:"status"`
	Stockouts    int             `json:"stockouts"`
	TotalRevenue float64         `json:"total_revenue"`
	Upgrades     UpgradeSnapshot `json:"upgrades"`
}

type UpgradeSnapshot struct {
	WarehouseTier        int `json:"warehouse_tier"`
	MarketingTier        int `json:"marketing_tier"`
	MarketingTurnsLeft   int `json:"marketing_turns_left"`
	ForecastTier         int `json:"forecast_tier"`
	FastShippingTier     int `json:"fast_shipping_tier"`
	InsuranceTier        int `json:"insurance_tier"`
	InsuranceBlocksLeft  int `json:"insurance_blocks_left"`
	SupplierContractTier int `json:"supplier_contract_tier"`
}

// HUDView is the summary strip shown above the turn controls.
type HUDView struct {
	Cash               float64 `json:"cash"`
	Inventory          int     `json:"inventory"`
	Turn               int     `json:"turn"`
	MaxTurns           int     `json:"max_turns"`
	IncomingUnits      int     `json:"incoming_units"`
	WarehouseCapacity  int     `json:"warehouse_capacity"`
	UnitCost           float64 `json:"unit_cost"`
	Level              int     `json:"level"`
	LevelLabel         string  `json:"level_label"`
	GoalCash           float64 `json:"goal_cash"`
	ForecastUnlocked   bool    `json:"forecast_unlocked"`
	MarketingTurnsLeft int     `json:"marketing_turns_left"`
	InsuranceBlocks    int     `json:"insurance_blocks"`
}

// RunSummary condenses a finished (or in-flight) run for the end screen
// and the leaderboard hand-off.
type RunSummary struct {
	Status    RunStatus `json:"status"`
	Won       bool      `json:"won"`
	Level     int       `json:"level"`
	FinalCash float64   `json:"final_cash"`
	Profit    float64   `json:"profit"`
	Stockouts int       `json:"stockouts"`
	AvgPrice  float64   `json:"avg_price"`
	BestTurn  string    `json:"best_turn,omitempty"`
	BestCash  float64   `json:"best_cash"`
	WorstTurn string    `json:"worst_turn,omitempty"`
	WorstCash float64   `json:"worst_cash"`
}
