package game

import (
	"errors"
	"math"
	"strings"
)

const (
	StartingCash      = 100.0
	StartingInventory = 100

	UnitCost            = 2.0
	OrderFee            = 10.0
	BaseWarehouseCap    = 100
	ExternalStorageCost = 5.0
	MissedOrderPenalty  = 2.0
	ExpeditedFee        = 20.0
	MaxTurns            = 20

	// One turn in four rolls a random event.
	EventChance = 0.25

	DemandIntercept = 50.0
	DemandSlope     = 6.0

	MarketingBoost = 1.4
	MarketingTurns = 3

	MinPrice = 1.0
)

var (
	ErrInvalidPrice      = errors.New("price must be at least $1")
	ErrEngineInactive    = errors.New("run already ended")
	ErrLevelNotCleared   = errors.New("level goal not reached")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Rand is the uniform [0,1) source the engine draws from. *math/rand.Rand
// satisfies it; tests substitute a scripted sequence.
type Rand interface {
	Float64() float64
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

type difficultySettings struct {
	Label      string
	Volatility float64
	EventPool  PoolID
	GoalFactor float64
}

var difficultyTable = map[Difficulty]difficultySettings{
	DifficultyEasy:   {Label: "Easy", Volatility: 0.2, EventPool: PoolMild, GoalFactor: 1},
	DifficultyMedium: {Label: "Medium", Volatility: 0.5, EventPool: PoolModerate, GoalFactor: 2},
	DifficultyHard:   {Label: "Hard", Volatility: 0.9, EventPool: PoolBrutal, GoalFactor: 4},
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := difficultyTable[d]; !ok {
		return "", ErrUnknownDifficulty
	}
	return d, nil
}

func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// RoundCents rounds to 2-decimal display precision. Cash is kept at full
// float precision between turns; only history entries and scores round.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
