package services

import (
	"strings"
	"testing"
)

func TestWalkMeterTiers(t *testing.T) {
	cases := []struct {
		calories string
		distance string
		message  string
	}{
		{"85", "1.0 km", "A pleasant park stroll"},
		{"170", "2.0 km", "A good workout walk"},
		{"400", "4.7 km", "Time for a power walk!"},
		{"600", "7.1 km", "That's a serious hike!"},
		{"1200", "14.1 km", "Marathon training territory!"},
		{"1700", "20 km", "That's an ultra-marathon!"},
	}

	for _, tc := range cases {
		result := WalkMeterForCalories(tc.calories)
		if !strings.Contains(result.Distance, tc.distance) {
			t.Errorf("WalkMeterForCalories(%s).Distance = %q, want containing %q", tc.calories, result.Distance, tc.distance)
		}
		if !strings.Contains(result.Message, tc.message) {
			t.Errorf("WalkMeterForCalories(%s).Message = %q, want containing %q", tc.calories, result.Message, tc.message)
		}
	}
}

func TestWalkMeterEdgeCases(t *testing.T) {
	result := WalkMeterForCalories("N/A")
	if result.Distance != "N/A" {
		t.Errorf("Distance = %q, want N/A", result.Distance)
	}
	if !strings.Contains(result.Message, "Walk data not available") {
		t.Errorf("Message = %q, want walk-data-unavailable sentinel", result.Message)
	}

	result = WalkMeterForCalories("0")
	if !strings.Contains(result.Distance, "0 km") {
		t.Errorf("Distance for zero calories = %q, want containing %q", result.Distance, "0 km")
	}

	// Distances under half a kilometre read in metres
	result = WalkMeterForCalories("10")
	if !strings.Contains(result.Distance, "118m") {
		t.Errorf("Distance for 10 kcal = %q, want containing %q", result.Distance, "118m")
	}
}

func TestWalkMeterInvalidInput(t *testing.T) {
	for _, input := range []string{"", "invalid", "abc", "-50"} {
		result := WalkMeterForCalories(input)
		if result.Distance != "N/A" {
			t.Errorf("WalkMeterForCalories(%q).Distance = %q, want N/A", input, result.Distance)
		}
		if !strings.Contains(result.Message, "Walk data not available") {
			t.Errorf("WalkMeterForCalories(%q).Message = %q, want sentinel", input, result.Message)
		}
	}
}

func TestWalkMeterForValue(t *testing.T) {
	result := WalkMeterForValue(170)
	if !strings.Contains(result.Distance, "2.0 km") {
		t.Errorf("WalkMeterForValue(170).Distance = %q, want 2.0 km", result.Distance)
	}
	if result := WalkMeterForValue(-1); result.Distance != "N/A" {
		t.Errorf("negative calories should be unavailable, got %q", result.Distance)
	}
}
