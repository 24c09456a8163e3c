package services

import "strings"

// cuisineRule ties a cuisine tag to the dish names, ingredients, and
// transliterations that signal it.
type cuisineRule struct {
	Tag   string
	Terms []string
}

// cuisineRules is scanned in order; the first matching cuisine wins, so
// more distinctive cuisines sit before broadly-termed ones.
var cuisineRules = []cuisineRule{
	{Tag: "indian", Terms: []string{
		"biryani", "curry", "masala", "tikka", "paneer", "dal", "naan",
		"samosa", "tandoori", "korma", "vindaloo", "dosa", "idli", "chutney",
		"pav bhaji", "bhaji", "malai", "paratha", "roti",
		"chana", "aloo", "saag", "ghee", "garam",
	}},
	{Tag: "chinese", Terms: []string{
		"stir fry", "stir-fry", "fried rice", "chow mein", "lo mein",
		"dumpling", "wonton", "spring roll", "szechuan", "sichuan",
		"kung pao", "sweet and sour", "dim sum", "hoisin", "bok choy",
		"general tso", "egg roll",
	}},
	{Tag: "italian", Terms: []string{
		"pasta", "pizza", "spaghetti", "lasagna", "risotto", "gnocchi",
		"carbonara", "bolognese", "bruschetta", "tiramisu", "pesto",
		"ravioli", "parmesan", "mozzarella", "marinara", "alfredo",
		"focaccia", "minestrone",
	}},
	{Tag: "mexican", Terms: []string{
		"taco", "burrito", "quesadilla", "enchilada", "fajita", "salsa",
		"guacamole", "tortilla", "nachos", "tamale", "carnitas",
		"chimichanga", "pico de gallo", "churro",
	}},
	{Tag: "thai", Terms: []string{
		"pad thai", "tom yum", "green curry", "red curry", "thai basil",
		"satay", "massaman", "papaya salad", "lemongrass", "thai",
	}},
	{Tag: "japanese", Terms: []string{
		"sushi", "ramen", "tempura", "teriyaki", "udon", "miso",
		"sashimi", "katsu", "yakitori", "bento", "wasabi", "edamame",
	}},
	{Tag: "mediterranean", Terms: []string{
		"hummus", "falafel", "shawarma", "gyro", "tzatziki", "pita",
		"tabbouleh", "baklava", "kebab", "couscous", "feta", "olive",
	}},
	{Tag: "american", Terms: []string{
		"burger", "hot dog", "mac and cheese", "bbq", "barbecue",
		"meatloaf", "pancake", "apple pie", "coleslaw",
		"cornbread", "buffalo wing",
	}},
}

// DetectCuisine classifies the raw query into at most one cuisine tag.
// A cuisine matches when a trigger term appears inside the full query, or
// when any single query token is contained in (or contains) a trigger
// term. Returns "" when nothing matches.
func DetectCuisine(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ""
	}
	tokens := strings.Fields(q)

	for _, rule := range cuisineRules {
		for _, term := range rule.Terms {
			if strings.Contains(q, term) {
				return rule.Tag
			}
			for _, token := range tokens {
				// Short tokens skip the superstring check so connectives
				// like "and" cannot match inside a multiword term.
				if len(token) < 4 {
					continue
				}
				if strings.Contains(term, token) || strings.Contains(token, term) {
					return rule.Tag
				}
			}
		}
	}
	return ""
}

// CuisineTerms returns the trigger terms for a detected tag. The exact
// lexical strategy appends these as an extra match clause.
func CuisineTerms(tag string) []string {
	for _, rule := range cuisineRules {
		if rule.Tag == tag {
			return rule.Terms
		}
	}
	return nil
}
