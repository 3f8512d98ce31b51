package game

import (
	"fmt"
	"math"
)

type LevelSpec struct {
	GoalCash float64
	Label    string
	Unlocks  []UpgradeID
}

var levelTable = []LevelSpec{
	{GoalCash: 500, Label: "Corner Store", Unlocks: []UpgradeID{UpgradeWarehouse, UpgradeMarketing}},
	{GoalCash: 1000, Label: "Main Street", Unlocks: []UpgradeID{UpgradeForecast, UpgradeSupplierContract}},
	{GoalCash: 2500, Label: "Regional Hub", Unlocks: []UpgradeID{UpgradeFastShipping, UpgradeInsurance}},
	{GoalCash: 5000, Label: "National Chain"},
	{GoalCash: 10000, Label: "Global Network"},
}

// Past the defined levels the goal keeps growing geometrically.
const levelGoalGrowth = 1.8

// goalForLevel combines the per-level base goal with the difficulty's
// goal factor, so level 1 targets 500/1000/2000 on easy/medium/hard.
func goalForLevel(n int, d Difficulty) float64 {
	factor := difficultyTable[d].GoalFactor
	if n <= len(levelTable) {
		return math.Round(levelTable[n-1].GoalCash * factor)
	}
	base := levelTable[len(levelTable)-1].GoalCash
	return math.Round(base * factor * math.Pow(levelGoalGrowth, float64(n-len(levelTable))))
}

func levelLabel(n int) string {
	if n <= len(levelTable) {
		return levelTable[n-1].Label
	}
	return fmt.Sprintf("Empire %d", n)
}

// unlocked reports whether the upgrade is available at the current
// level. Every upgrade is open once the player has passed the levels
// that introduce them.
func (e *Engine) unlocked(id UpgradeID) bool {
	level := e.state.CurrentLevel
	if level > len(levelTable) {
		return true
	}
	for i := 0; i < level && i < len(levelTable); i++ {
		for _, u := range levelTable[i].Unlocks {
			if u == id {
				return true
			}
		}
	}
	return false
}

// startLevel re-arms the per-level state. Cash, inventory and upgrade
// tiers carry over; turn counters, pipeline, history and the marketing
// and insurance counters do not.
func (e *Engine) startLevel(n int) {
	s := e.state
	s.CurrentLevel = n
	s.GoalCash = goalForLevel(n, s.Difficulty)
	s.Turn = 1
	if e.upgrades.HasFastShipping() {
		s.Pipeline = make([]int, 1)
	} else {
		s.Pipeline = make([]int, 2)
	}
	s.Stockouts = 0
	s.TotalRevenue = 0
	s.TurnProfits = nil
	s.PricesCharged = nil
	s.History = History{}
	e.upgrades.Marketing.TurnsLeft = 0
	e.upgrades.Insurance.BlocksLeft = insuranceBlocksPerLevel[e.upgrades.Insurance.Tier]
	s.GameActive = true
	e.status = StatusActive

	e.log.Info("level started",
		"level", n,
		"label", levelLabel(n),
		"goal", s.GoalCash,
		"cash", RoundCents(s.Cash),
		"inventory", s.Inventory,
	)
}

// AdvanceLevel moves a won run to the next level. Anything else is an
// ErrLevelNotCleared.
func (e *Engine) AdvanceLevel() error {
	if e.status != StatusWon {
		return ErrLevelNotCleared
	}
	e.startLevel(e.state.CurrentLevel + 1)
	return nil
}
