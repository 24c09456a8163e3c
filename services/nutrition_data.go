package services

// ingredientEntry maps one ingredient name to calories per common unit.
type ingredientEntry struct {
	Name     string
	Calories float64
}

// ingredientTable lists ingredient calorie values per common unit. Units
// vary by category: vegetables and grains per cup, proteins per 100g,
// oils per tablespoon, seasonings per teaspoon. Matching is by substring
// in either direction and the FIRST matching entry wins, so more specific
// names sit before the generic ones they contain.
var ingredientTable = []ingredientEntry{
	// Vegetables (per cup unless noted)
	{"cabbage", 22},
	{"onion", 64},
	{"carrot", 52},
	{"carrots", 52},
	{"celery", 16},
	{"tomato", 32},
	{"potato", 116},
	{"potatoes", 116},
	{"broccoli", 25},
	{"spinach", 7},
	{"lettuce", 5},
	{"bell pepper", 30},
	{"mushroom", 15},
	{"mushrooms", 15},
	{"garlic", 4}, // per clove
	{"ginger", 1}, // per teaspoon

	// Proteins (per 100g unless noted)
	{"chicken breast", 165},
	{"chicken", 165},
	{"beef", 250},
	{"ground beef", 250},
	{"pork", 242},
	{"salmon", 208},
	{"tuna", 132},
	{"eggs", 155}, // per 100g
	{"egg", 70},   // per large egg
	{"beans", 127}, // per cup cooked
	{"black beans", 227},
	{"kidney beans", 225},
	{"chickpeas", 269},

	// Grains and starches (per cup cooked)
	{"rice", 205},
	{"white rice", 205},
	{"brown rice", 216},
	{"pasta", 220},
	{"bread", 80},  // per slice
	{"flour", 455}, // per cup
	{"oats", 154},
	{"quinoa", 222},

	// Dairy (per cup unless noted)
	{"milk", 149},
	{"cheese", 113}, // per oz
	{"butter", 102}, // per tablespoon
	{"yogurt", 154},
	{"cream", 821}, // heavy cream per cup
	{"sour cream", 493},

	// Oils and fats (per tablespoon)
	{"olive oil", 119},
	{"vegetable oil", 120},
	{"oil", 120},
	{"coconut oil", 117},

	// Liquids (per cup)
	{"water", 0},
	{"broth", 15},
	{"chicken broth", 15},
	{"vegetable broth", 12},
	{"tomato juice", 41},
	{"wine", 125},

	// Seasonings (per teaspoon)
	{"salt", 0},
	{"pepper", 6},
	{"sugar", 16},
	{"honey", 21},   // per tablespoon
	{"vanilla", 12}, // per teaspoon

	// Nuts and seeds (per oz)
	{"almonds", 164},
	{"walnuts", 185},
	{"peanuts", 161},
	{"sunflower seeds", 165},

	// Fruits (per medium fruit or cup)
	{"apple", 95},
	{"banana", 105},
	{"orange", 65},
	{"lemon", 17},
	{"berries", 84},      // per cup
	{"strawberries", 49}, // per cup
}

// unitToCups converts volume, weight, and count units to the cup base
// used by the calorie table. Weight factors are rough by necessity.
var unitToCups = map[string]float64{
	// Volume
	"cup":         1.0,
	"cups":        1.0,
	"tablespoon":  1.0 / 16,
	"tablespoons": 1.0 / 16,
	"tbsp":        1.0 / 16,
	"teaspoon":    1.0 / 48,
	"teaspoons":   1.0 / 48,
	"tsp":         1.0 / 48,
	"pint":        2.0,
	"quart":       4.0,
	"liter":       4.227,
	"ml":          1.0 / 236.6,
	"fluid ounce": 1.0 / 8,
	"fl oz":       1.0 / 8,

	// Weight
	"pound": 2.0,
	"lb":    2.0,
	"ounce": 1.0 / 8,
	"oz":    1.0 / 8,
	"gram":  1.0 / 240,
	"g":     1.0 / 240,
	"kg":    4.2,

	// Count
	"piece":  1.0,
	"pieces": 1.0,
	"slice":  1.0,
	"slices": 1.0,
	"clove":  1.0,
	"cloves": 1.0,
}

// modifierWords are descriptive prefixes stripped before table lookup.
var modifierWords = map[string]bool{
	"fresh":    true,
	"dried":    true,
	"chopped":  true,
	"diced":    true,
	"sliced":   true,
	"minced":   true,
	"cooked":   true,
	"raw":      true,
	"frozen":   true,
	"canned":   true,
	"organic":  true,
	"large":    true,
	"small":    true,
	"medium":   true,
	"whole":    true,
	"ground":   true,
	"shredded": true,
	"grated":   true,
}
