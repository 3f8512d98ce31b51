package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Balance holds the turn-engine coefficients. Operators can override
// individual values from a YAML file; anything not set keeps its default.
type Balance struct {
	StartingCash        float64 `yaml:"starting_cash"`
	StartingInventory   int     `yaml:"starting_inventory"`
	OrderFee            float64 `yaml:"order_fee"`
	ExpeditedFee        float64 `yaml:"expedited_fee"`
	ExternalStorageCost float64 `yaml:"external_storage_cost"`
	MissedOrderPenalty  float64 `yaml:"missed_order_penalty"`
	MaxTurns            int     `yaml:"max_turns"`
	EventChance         float64 `yaml:"event_chance"`
	DemandIntercept     float64 `yaml:"demand_intercept"`
	DemandSlope         float64 `yaml:"demand_slope"`
	MarketingBoost      float64 `yaml:"marketing_boost"`
	MarketingTurns      int     `yaml:"marketing_turns"`
}

func DefaultBalance() Balance {
	return Balance{
		StartingCash:        StartingCash,
		StartingInventory:   StartingInventory,
		OrderFee:            OrderFee,
		ExpeditedFee:        ExpeditedFee,
		ExternalStorageCost: ExternalStorageCost,
		MissedOrderPenalty:  MissedOrderPenalty,
		MaxTurns:            MaxTurns,
		EventChance:         EventChance,
		DemandIntercept:     DemandIntercept,
		DemandSlope:         DemandSlope,
		MarketingBoost:      MarketingBoost,
		MarketingTurns:      MarketingTurns,
	}
}

// LoadBalance reads a YAML override file on top of the defaults.
func LoadBalance(path string) (Balance, error) {
	bal := DefaultBalance()
	raw, err := os.ReadFile(path)
	if err != nil {
		return bal, fmt.Errorf("read balance file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &bal); err != nil {
		return bal, fmt.Errorf("parse balance file: %w", err)
	}
	return bal, nil
}
