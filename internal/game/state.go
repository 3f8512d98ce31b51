package game

// GameState is the single mutable record for one run. It is owned by the
// Engine; everything handed to callers is a copy.
type GameState struct {
	Cash       float64
	Inventory  int
	Turn       int
	Pipeline   []int
	Difficulty Difficulty

	CurrentLevel int
	GoalCash     float64
	GameActive   bool

	Stockouts     int
	TotalRevenue  float64
	TurnProfits   []float64
	PricesCharged []float64

	History History
}

// History holds the five parallel series the charting layer consumes.
// One entry is appended per resolved turn; cash is rounded to cents.
type History struct {
	Turns     []string  `json:"turns"`
	Inventory []int     `json:"inventory"`
	Price     []float64 `json:"price"`
	Demand    []int     `json:"demand"`
	Cash      []float64 `json:"cash"`
}

func (h *History) append(label string, inventory int, price float64, demand int, cash float64) {
	h.Turns = append(h.Turns, label)
	h.Inventory = append(h.Inventory, inventory)
	h.Price = append(h.Price, price)
	h.Demand = append(h.Demand, demand)
	h.Cash = append(h.Cash, cash)
}

func (h History) clone() History {
	return History{
		Turns:     append([]string(nil), h.Turns...),
		Inventory: append([]int(nil), h.Inventory...),
		Price:     append([]float64(nil), h.Price...),
		Demand:    append([]int(nil), h.Demand...),
		Cash:      append([]float64(nil), h.Cash...),
	}
}

// UpgradeState persists across levels. Tiers never decrease; only the
// marketing and insurance counters reset at level start.
type UpgradeState struct {
	Warehouse        TierState
	Marketing        MarketingState
	Forecast         TierState
	FastShipping     TierState
	Insurance        InsuranceState
	SupplierContract TierState
}

type TierState struct {
	Tier int
}

type MarketingState struct {
	Tier      int
	TurnsLeft int
}

type InsuranceState struct {
	Tier       int
	BlocksLeft int
}
