package services

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"tastory-backend/models"
)

// quantityPattern matches a leading number (with optional a/b fraction)
// followed by an optional unit word, e.g. "2 cups", "1.5 tbsp", "1/2 tsp",
// "46".
var quantityPattern = regexp.MustCompile(`^([0-9]*\.?[0-9]+(?:/[0-9]+)?)\s*([a-zA-Z]*)`)

// IngredientCalories is one line of a calorie calculation.
type IngredientCalories struct {
	Ingredient string  `json:"ingredient"`
	Quantity   string  `json:"quantity"`
	Calories   float64 `json:"calories"`
}

// CalorieBreakdown is the result of computing a recipe's calories from
// its ingredient list.
type CalorieBreakdown struct {
	TotalCalories      float64              `json:"total_calories"`
	CaloriesPerServing float64              `json:"calories_per_serving"`
	Servings           int                  `json:"servings"`
	Details            []IngredientCalories `json:"calculation_details"`
}

// NutritionResult reconciles the calculated and stored calorie values
// into a single display figure with an audit trail.
type NutritionResult struct {
	DisplayCalories float64           `json:"displayCalories"`
	Source          string            `json:"source"` // calculated | database | none
	Calculated      *CalorieBreakdown `json:"calculated,omitempty"`
	Stored          *float64          `json:"storedPerServing,omitempty"`
	Servings        int               `json:"servings"`
}

// NormalizeIngredientName lowercases the name and strips descriptive
// modifiers so "Fresh Chopped Tomato" looks up as "tomato".
func NormalizeIngredientName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	words := strings.Fields(name)
	kept := words[:0]
	for _, w := range words {
		if !modifierWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// ParseQuantity extracts a numeric quantity and unit from a free-text
// quantity string. Unparseable input defaults to one piece.
func ParseQuantity(raw string) (float64, string) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return 1.0, "piece"
	}

	m := quantityPattern.FindStringSubmatch(raw)
	if m == nil {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v, "piece"
		}
		return 1.0, "piece"
	}

	numPart, unit := m[1], m[2]
	if unit == "" {
		unit = "piece"
	}

	if num, den, found := strings.Cut(numPart, "/"); found {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 == nil && err2 == nil && d != 0 {
			return n / d, unit
		}
		return 1.0, unit
	}

	v, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 1.0, unit
	}
	return v, unit
}

// CalculateIngredientCalories estimates the calories one ingredient line
// contributes. Known ingredients use the table; unknown ones fall back to
// a coarse category heuristic. Never negative.
func CalculateIngredientCalories(name, quantityStr string) float64 {
	normalized := NormalizeIngredientName(name)
	quantity, unit := ParseQuantity(quantityStr)

	perUnit, found := lookupIngredient(normalized)
	if !found {
		return estimateUnknownIngredient(normalized, quantity)
	}

	multiplier, ok := unitToCups[unit]
	if !ok {
		multiplier = 1.0
	}

	return math.Max(0, perUnit*quantity*multiplier)
}

func lookupIngredient(normalized string) (float64, bool) {
	if normalized == "" {
		return 0, false
	}
	for _, entry := range ingredientTable {
		if strings.Contains(normalized, entry.Name) || strings.Contains(entry.Name, normalized) {
			return entry.Calories, true
		}
	}
	return 0, false
}

func estimateUnknownIngredient(name string, quantity float64) float64 {
	switch {
	case containsAny(name, "oil", "fat", "butter"):
		return quantity * 120
	case containsAny(name, "vegetable", "fruit", "herb", "spice"):
		return quantity * 25
	case containsAny(name, "meat", "protein", "fish"):
		return quantity * 200
	case containsAny(name, "grain", "flour", "rice", "pasta"):
		return quantity * 150
	default:
		return quantity * 50
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// CalculateRecipeCalories sums per-ingredient calories over the aligned
// ingredient/quantity prefix and divides by servings. Returns nil when
// either sequence is empty.
func CalculateRecipeCalories(ingredients, quantities []string, servings int) *CalorieBreakdown {
	if len(ingredients) == 0 || len(quantities) == 0 {
		return nil
	}

	n := len(ingredients)
	if len(quantities) < n {
		n = len(quantities)
	}

	total := 0.0
	details := make([]IngredientCalories, 0, n)
	for i := 0; i < n; i++ {
		cal := CalculateIngredientCalories(ingredients[i], quantities[i])
		total += cal
		details = append(details, IngredientCalories{
			Ingredient: ingredients[i],
			Quantity:   quantities[i],
			Calories:   cal,
		})
	}

	if servings < 1 {
		servings = 1
	}

	return &CalorieBreakdown{
		TotalCalories:      round1(total),
		CaloriesPerServing: round1(total / float64(servings)),
		Servings:           servings,
		Details:            details,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// EstimateServings guesses a serving count from the recipe name when the
// record carries none. Sharing dishes split further than baked goods.
func EstimateServings(name string) int {
	n := strings.ToLower(name)
	switch {
	case containsAny(n, "fondue", "soup", "stew", "casserole", "dip"):
		return 6
	case containsAny(n, "cake", "pie", "bread", "loaf"):
		return 8
	case containsAny(n, "salad", "side"):
		return 4
	default:
		return 4
	}
}

// ResolveServings picks the serving count for a recipe: the explicit
// servings field, then the yield field, then the name heuristic. Always
// at least 1.
func ResolveServings(r *models.Recipe) int {
	if v, ok := parseServings(string(r.Servings)); ok {
		if v < 1 {
			return 1
		}
		return v
	}
	if v, ok := parseServings(string(r.Yield)); ok {
		if v < 1 {
			return 1
		}
		return v
	}
	return EstimateServings(r.Name)
}

func parseServings(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v, true
	}
	// Yield strings like "8 servings" or "1 loaf" carry a leading number.
	if m := quantityPattern.FindStringSubmatch(strings.ToLower(raw)); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil && v == math.Trunc(v) {
			return int(v), true
		}
	}
	return 0, false
}

// ReconcileNutrition resolves the display calorie value for a recipe.
// A successful ingredient-level calculation wins over the stored figure,
// which itself wins over nothing.
func ReconcileNutrition(r *models.Recipe) NutritionResult {
	servings := ResolveServings(r)

	calculated := CalculateRecipeCalories(r.IngredientParts, r.IngredientQuantities, servings)
	if calculated != nil && calculated.TotalCalories > 0 {
		return NutritionResult{
			DisplayCalories: calculated.CaloriesPerServing,
			Source:          "calculated",
			Calculated:      calculated,
			Stored:          storedPerServing(r, servings),
			Servings:        servings,
		}
	}

	if stored := storedPerServing(r, servings); stored != nil {
		return NutritionResult{
			DisplayCalories: *stored,
			Source:          "database",
			Calculated:      calculated,
			Stored:          stored,
			Servings:        servings,
		}
	}

	return NutritionResult{
		Source:   "none",
		Servings: servings,
	}
}

func storedPerServing(r *models.Recipe, servings int) *float64 {
	if r.Calories == nil || *r.Calories <= 0 {
		return nil
	}
	if servings < 1 {
		servings = 1
	}
	v := round1(*r.Calories / float64(servings))
	return &v
}
