package services

import (
	"fmt"
	"strconv"
	"strings"
)

// Walking burns roughly 85 kcal per kilometre at a casual pace.
const caloriesPerKm = 85.0

// WalkMeter expresses a calorie count as an equivalent walking distance
// with a canned description for the UI.
type WalkMeter struct {
	Distance string `json:"distance"`
	Message  string `json:"message"`
}

// WalkMeterForCalories converts a calorie figure, given as the free-text
// value stored on the recipe, into a walk distance tier. Non-numeric or
// missing input yields a sentinel rather than an error.
func WalkMeterForCalories(calories string) WalkMeter {
	trimmed := strings.TrimSpace(calories)
	if trimmed == "" {
		return walkMeterUnavailable()
	}
	kcal, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || kcal < 0 {
		return walkMeterUnavailable()
	}
	return walkMeterFromKcal(kcal)
}

// WalkMeterForValue is the numeric entry point used when calories were
// already reconciled.
func WalkMeterForValue(kcal float64) WalkMeter {
	if kcal < 0 {
		return walkMeterUnavailable()
	}
	return walkMeterFromKcal(kcal)
}

func walkMeterFromKcal(kcal float64) WalkMeter {
	km := kcal / caloriesPerKm

	switch {
	case km == 0:
		return WalkMeter{Distance: "0 km", Message: "No walking needed!"}
	case km < 0.5:
		return WalkMeter{
			Distance: fmt.Sprintf("%.0fm", km*1000),
			Message:  "Just a quick stroll around the block",
		}
	case km < 1.5:
		return WalkMeter{
			Distance: fmt.Sprintf("%.1f km", km),
			Message:  "A pleasant park stroll",
		}
	case km < 3:
		return WalkMeter{
			Distance: fmt.Sprintf("%.1f km", km),
			Message:  "A good workout walk",
		}
	case km < 6:
		return WalkMeter{
			Distance: fmt.Sprintf("%.1f km", km),
			Message:  "Time for a power walk!",
		}
	case km < 10:
		return WalkMeter{
			Distance: fmt.Sprintf("%.1f km", km),
			Message:  "That's a serious hike!",
		}
	case km < 20:
		return WalkMeter{
			Distance: fmt.Sprintf("%.1f km", km),
			Message:  "Marathon training territory!",
		}
	default:
		return WalkMeter{
			Distance: fmt.Sprintf("%.0f km", km),
			Message:  "That's an ultra-marathon!",
		}
	}
}

func walkMeterUnavailable() WalkMeter {
	return WalkMeter{
		Distance: "N/A",
		Message:  "Walk data not available",
	}
}
