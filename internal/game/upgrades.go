package game

type UpgradeID string

const (
	UpgradeWarehouse        UpgradeID = "warehouse"
	UpgradeMarketing        UpgradeID = "marketing"
	UpgradeForecast         UpgradeID = "forecast"
	UpgradeFastShipping     UpgradeID = "fast_shipping"
	UpgradeInsurance        UpgradeID = "insurance"
	UpgradeSupplierContract UpgradeID = "supplier_contract"
)

// Per-upgrade tier tables. Index = tier already owned; the cost tables
// are indexed by the tier being bought.
var (
	warehouseCapacities = []int{BaseWarehouseCap, 200, 300, 500}
	warehouseCosts      = []float64{150, 300, 600}

	// Marketing is repeatable; past the last entry every purchase costs
	// the final price.
	marketingCosts = []float64{80, 120, 160}

	forecastCosts     = []float64{100}
	fastShippingCosts = []float64{250}

	insuranceCosts          = []float64{100, 200, 300}
	insuranceBlocksPerLevel = []int{0, 1, 2, 3}

	supplierUnitCosts = []float64{UnitCost, 1.5, 1.0}
	supplierCosts     = []float64{200, 400}
)

type bulkTier struct {
	MinQty   int
	Discount float64
	Label    string
}

// Best-matching threshold wins; gated behind the supplier contract.
var bulkTiers = []bulkTier{
	{MinQty: 75, Discount: 0.30, Label: "30% bulk discount"},
	{MinQty: 50, Discount: 0.20, Label: "20% bulk discount"},
	{MinQty: 25, Discount: 0.10, Label: "10% bulk discount"},
}

// The derivations below are pure reads of the current tiers and
// counters, recomputed on demand so a purchase takes effect at once.

func (u *UpgradeState) WarehouseCapacity() int {
	return warehouseCapacities[u.Warehouse.Tier]
}

func (u *UpgradeState) EffectiveUnitCost() float64 {
	return supplierUnitCosts[u.SupplierContract.Tier]
}

func (u *UpgradeState) HasForecasting() bool {
	return u.Forecast.Tier > 0
}

func (u *UpgradeState) HasFastShipping() bool {
	return u.FastShipping.Tier > 0
}

func (u *UpgradeState) InsuranceBlocks() int {
	return u.Insurance.BlocksLeft
}

func (u *UpgradeState) MarketingActive() bool {
	return u.Marketing.TurnsLeft > 0
}

func (u *UpgradeState) HasSupplierContract() bool {
	return u.SupplierContract.Tier > 0
}

// BulkUnitCost returns the per-unit cost for an order of qty units and
// the discount label applied, if any. Without a supplier contract the
// base cost always applies regardless of quantity.
func (u *UpgradeState) BulkUnitCost(qty int) (float64, string) {
	base := u.EffectiveUnitCost()
	if !u.HasSupplierContract() {
		return base, ""
	}
	for _, t := range bulkTiers {
		if qty >= t.MinQty {
			return base * (1 - t.Discount), t.Label
		}
	}
	return base, ""
}

// UpgradeOffer describes one shop row for presentation layers.
type UpgradeOffer struct {
	ID         UpgradeID `json:"id"`
	Tier       int       `json:"tier"`
	MaxTier    int       `json:"max_tier"`
	Repeatable bool      `json:"repeatable"`
	NextCost   float64   `json:"next_cost"`
	Affordable bool      `json:"affordable"`
	Locked     bool      `json:"locked"`
}

// nextTierCost reports the price of the next purchase of id, or false
// when the upgrade is already maxed out.
func (u *UpgradeState) nextTierCost(id UpgradeID) (float64, bool) {
	switch id {
	case UpgradeWarehouse:
		if u.Warehouse.Tier >= len(warehouseCosts) {
			return 0, false
		}
		return warehouseCosts[u.Warehouse.Tier], true
	case UpgradeMarketing:
		idx := u.Marketing.Tier
		if idx >= len(marketingCosts) {
			idx = len(marketingCosts) - 1
		}
		return marketingCosts[idx], true
	case UpgradeForecast:
		if u.Forecast.Tier >= len(forecastCosts) {
			return 0, false
		}
		return forecastCosts[u.Forecast.Tier], true
	case UpgradeFastShipping:
		if u.FastShipping.Tier >= len(fastShippingCosts) {
			return 0, false
		}
		return fastShippingCosts[u.FastShipping.Tier], true
	case UpgradeInsurance:
		if u.Insurance.Tier >= len(insuranceCosts) {
			return 0, false
		}
		return insuranceCosts[u.Insurance.Tier], true
	case UpgradeSupplierContract:
		if u.SupplierContract.Tier >= len(supplierCosts) {
			return 0, false
		}
		return supplierCosts[u.SupplierContract.Tier], true
	}
	return 0, false
}

func (u *UpgradeState) tier(id UpgradeID) int {
	switch id {
	case UpgradeWarehouse:
		return u.Warehouse.Tier
	case UpgradeMarketing:
		return u.Marketing.Tier
	case UpgradeForecast:
		return u.Forecast.Tier
	case UpgradeFastShipping:
		return u.FastShipping.Tier
	case UpgradeInsurance:
		return u.Insurance.Tier
	case UpgradeSupplierContract:
		return u.SupplierContract.Tier
	}
	return 0
}

func maxTier(id UpgradeID) int {
	switch id {
	case UpgradeWarehouse:
		return len(warehouseCosts)
	case UpgradeMarketing:
		return len(marketingCosts)
	case UpgradeForecast:
		return len(forecastCosts)
	case UpgradeFastShipping:
		return len(fastShippingCosts)
	case UpgradeInsurance:
		return len(insuranceCosts)
	case UpgradeSupplierContract:
		return len(supplierCosts)
	}
	return 0
}

// BuyUpgrade deducts the next tier's cost and applies its effect. It
// reports false, with no state change, when the upgrade is locked for
// the current level, already at max tier, or unaffordable.
func (e *Engine) BuyUpgrade(id UpgradeID) bool {
	if !e.unlocked(id) {
		return false
	}
	u := e.upgrades
	cost, ok := u.nextTierCost(id)
	if !ok || cost > e.state.Cash {
		return false
	}

	switch id {
	case UpgradeWarehouse:
		u.Warehouse.Tier++
	case UpgradeMarketing:
		if u.Marketing.Tier < len(marketingCosts) {
			u.Marketing.Tier++
		}
		// Repeat purchases reset the campaign, they do not stack.
		u.Marketing.TurnsLeft = e.bal.MarketingTurns
	case UpgradeForecast:
		u.Forecast.Tier++
	case UpgradeFastShipping:
		u.FastShipping.Tier++
		// Collapsing to the 1-slot lane drops any standard-lane units
		// still in transit.
		if len(e.state.Pipeline) > 1 {
			e.state.Pipeline = e.state.Pipeline[:1]
		}
	case UpgradeInsurance:
		u.Insurance.Tier++
		u.Insurance.BlocksLeft++
	case UpgradeSupplierContract:
		u.SupplierContract.Tier++
	default:
		return false
	}

	e.state.Cash -= cost
	e.log.Debug("upgrade purchased", "upgrade", id, "cost", cost, "cash", RoundCents(e.state.Cash))
	return true
}

// ListUpgrades returns one shop row per upgrade in catalog order.
func (e *Engine) ListUpgrades() []UpgradeOffer {
	ids := []UpgradeID{
		UpgradeWarehouse,
		UpgradeMarketing,
		UpgradeForecast,
		UpgradeFastShipping,
		UpgradeInsurance,
		UpgradeSupplierContract,
	}
	out := make([]UpgradeOffer, 0, len(ids))
	for _, id := range ids {
		offer := UpgradeOffer{
			ID:         id,
			Tier:       e.upgrades.tier(id),
			MaxTier:    maxTier(id),
			Repeatable: id == UpgradeMarketing,
			Locked:     !e.unlocked(id),
		}
		if cost, ok := e.upgrades.nextTierCost(id); ok {
			offer.NextCost = cost
			offer.Affordable = !offer.Locked && cost <= e.state.Cash
		}
		out = append(out, offer)
	}
	return out
}
