package services

import (
	"sort"
	"strings"
)

// Tunable matching bounds for the fuzzy pass. These were tuned against a
// corpus of real misspelled queries; short common-letter words can still
// false-positive, which is why the exact table is consulted first.
const (
	similarityThreshold = 0.7
	maxLengthDelta      = 2
)

// spellCorrections maps known-misspelled cooking terms to canonical forms.
// Covers cuisine names, dish names, and common ingredients seen in query
// logs.
var spellCorrections = map[string]string{
	// Dishes
	"biriyani":  "biryani",
	"biryani":   "biryani",
	"briyani":   "biryani",
	"spagetti":  "spaghetti",
	"spageti":   "spaghetti",
	"lasagne":   "lasagna",
	"lasagnia":  "lasagna",
	"quesedila": "quesadilla",
	"buritto":   "burrito",
	"burito":    "burrito",
	"tikka":     "tikka",
	"tika":      "tikka",
	"masala":    "masala",
	"masla":     "masala",
	"mali":      "malai",
	"malai":     "malai",
	"paneer":    "paneer",
	"panner":    "paneer",
	"ramen":     "ramen",
	"ramon":     "ramen",
	"gnochi":    "gnocchi",
	"guacamoli": "guacamole",
	"gucamole":  "guacamole",
	"padthai":   "pad thai",
	"fajita":    "fajita",
	"fahita":    "fajita",
	"paela":     "paella",
	"rissoto":   "risotto",
	"risoto":    "risotto",
	"hummous":   "hummus",
	"humus":     "hummus",
	"falafal":   "falafel",
	"felafel":   "falafel",
	"shwarma":   "shawarma",
	"shaorma":   "shawarma",

	// Ingredients
	"chiken":    "chicken",
	"chicken":   "chicken",
	"chickin":   "chicken",
	"chikken":   "chicken",
	"tumeric":   "turmeric",
	"tomatos":   "tomato",
	"tomatoe":   "tomato",
	"potatos":   "potato",
	"potatoe":   "potato",
	"vegitable": "vegetable",
	"vegatable": "vegetable",
	"vegtable":  "vegetable",
	"brocolli":  "broccoli",
	"brocoli":   "broccoli",
	"zuchini":   "zucchini",
	"zucchinni": "zucchini",
	"avacado":   "avocado",
	"avocodo":   "avocado",
	"mozarella": "mozzarella",
	"mozzarela": "mozzarella",
	"parmesean": "parmesan",
	"parmasan":  "parmesan",
	"cinammon":  "cinnamon",
	"cinamon":   "cinnamon",
	"corriander": "coriander",
	"cummin":    "cumin",
	"shrimps":   "shrimp",
	"sammon":    "salmon",
	"samon":     "salmon",
	"yoghurt":   "yogurt",
	"yougurt":   "yogurt",
	"caulifower": "cauliflower",
	"colliflower": "cauliflower",

	// Cuisines
	"italien":      "italian",
	"itallian":     "italian",
	"mexian":       "mexican",
	"mexicain":     "mexican",
	"indain":       "indian",
	"chineese":     "chinese",
	"chinease":     "chinese",
	"japaneese":    "japanese",
	"mediteranean": "mediterranean",
	"meditteranean": "mediterranean",
}

// spellKeys is the corrections table in sorted key order. The fuzzy pass
// scans it instead of the map so that similarity ties always resolve to the
// same key.
var spellKeys = func() []string {
	keys := make([]string, 0, len(spellCorrections))
	for key := range spellCorrections {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}()

// SpellCorrection reports the outcome of correcting one query.
type SpellCorrection struct {
	Original       string `json:"originalQuery"`
	Corrected      string `json:"correctedQuery"`
	HasCorrections bool   `json:"wasUsed"`
}

// CorrectQuery corrects each whitespace token of the query independently.
// A token is first looked up verbatim in the corrections table; failing
// that, the best table key by character-set overlap wins if it clears the
// similarity threshold and the lengths are close. Correcting an already
// correct query returns it unchanged.
func CorrectQuery(query string) SpellCorrection {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return SpellCorrection{}
	}

	lowered := strings.ToLower(trimmed)
	tokens := strings.Fields(lowered)
	corrected := make([]string, len(tokens))
	changed := false

	for i, token := range tokens {
		fixed := correctToken(token)
		corrected[i] = fixed
		if fixed != token {
			changed = true
		}
	}

	return SpellCorrection{
		Original:       lowered,
		Corrected:      strings.Join(corrected, " "),
		HasCorrections: changed,
	}
}

func correctToken(token string) string {
	if fixed, ok := spellCorrections[token]; ok {
		return fixed
	}

	bestScore := 0.0
	best := token
	for _, key := range spellKeys {
		delta := len(token) - len(key)
		if delta < -maxLengthDelta || delta > maxLengthDelta {
			continue
		}
		score := charsetSimilarity(token, key)
		if score > similarityThreshold && score > bestScore {
			bestScore = score
			best = spellCorrections[key]
		}
	}
	return best
}

// charsetSimilarity scores two words by shared distinct characters over the
// longer word's length. Cheap and order-insensitive, which suits the kind
// of transposition typos cooking queries tend to contain.
func charsetSimilarity(a, b string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var setA, setB [256]bool
	for i := 0; i < len(a); i++ {
		setA[a[i]] = true
	}
	for i := 0; i < len(b); i++ {
		setB[b[i]] = true
	}

	shared := 0
	for c := 0; c < 256; c++ {
		if setA[c] && setB[c] {
			shared++
		}
	}

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	return float64(shared) / float64(maxLen)
}
