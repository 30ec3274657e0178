// Package points is the reward calculation engine. Everything here is
// pure arithmetic: no I/O, no persistence, and no failure modes.
package points

import (
	"math"
	"strings"
)

type WasteType string

const (
	FoodWaste       WasteType = "Foodwaste"
	ElectronicWaste WasteType = "Electroicwaste"
	Other           WasteType = "other"
)

// Base points per kg by waste category.
var multipliers = map[WasteType]float64{
	FoodWaste:       10,
	ElectronicWaste: 15,
	Other:           6,
}

// Frequency bonus: 5% per 5 verified reports, uncapped.
const (
	frequencyBonusThreshold = 5
	frequencyBonusPercent   = 5
)

// Quantity bonus: 10% for reports of 50kg or more.
const (
	quantityBonusThreshold = 50
	quantityBonusPercent   = 10
)

// ParseWasteType maps a free-form category string onto the closed
// enumeration. Unknown values coerce to Other rather than erroring;
// a mistyped category should never block a verified report.
func ParseWasteType(s string) WasteType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "foodwaste", "food waste", "food":
		return FoodWaste
	case "electroicwaste", "electronicwaste", "electronic waste", "e-waste":
		return ElectronicWaste
	default:
		return Other
	}
}

type Input struct {
	WasteType       WasteType
	Amount          float64 // kilograms
	SubmissionCount int     // verified reports by this user
}

type Breakdown struct {
	WasteType       WasteType `json:"waste_type"`
	Amount          float64   `json:"amount"`
	Multiplier      float64   `json:"multiplier"`
	SubmissionCount int       `json:"submission_count"`
	FrequencyLevel  int       `json:"frequency_level"`
}

type Calculation struct {
	TotalPoints          int       `json:"total_points"`
	BasePoints           int       `json:"base_points"`
	QuantityBonusPoints  int       `json:"quantity_bonus_points"`
	FrequencyBonusPoints int       `json:"frequency_bonus_points"`
	Breakdown            Breakdown `json:"breakdown"`
}

// Calculate computes the award for a verified waste report. Each stage
// is rounded before summing; reordering the rounding changes totals.
func Calculate(in Input) Calculation {
	mult, ok := multipliers[in.WasteType]
	if !ok {
		mult = multipliers[Other]
	}
	base := int(math.Round(mult * in.Amount))

	quantity := 0
	if in.Amount >= quantityBonusThreshold {
		quantity = int(math.Round(float64(base) * quantityBonusPercent / 100))
	}

	frequency := 0
	level := in.SubmissionCount / frequencyBonusThreshold
	if level > 0 {
		pct := float64(level * frequencyBonusPercent)
		frequency = int(math.Round(float64(base) * pct / 100))
	}

	return Calculation{
		TotalPoints:          base + quantity + frequency,
		BasePoints:           base,
		QuantityBonusPoints:  quantity,
		FrequencyBonusPoints: frequency,
		Breakdown: Breakdown{
			WasteType:       in.WasteType,
			Amount:          in.Amount,
			Multiplier:      mult,
			SubmissionCount: in.SubmissionCount,
			FrequencyLevel:  level,
		},
	}
}

// Level maps a cumulative point total onto the 1..5 tier ladder.
func Level(totalPoints int) int {
	switch {
	case totalPoints >= 5000:
		return 5
	case totalPoints >= 3000:
		return 4
	case totalPoints >= 1500:
		return 3
	case totalPoints >= 500:
		return 2
	default:
		return 1
	}
}

var levelNames = map[int]string{
	1: "Bronze",
	2: "Silver",
	3: "Gold",
	4: "Platinum",
	5: "Diamond",
}

// LevelName returns the display name for a tier. Names are derived for
// display only and never stored.
func LevelName(level int) string {
	if n, ok := levelNames[level]; ok {
		return n
	}
	return "Bronze"
}
