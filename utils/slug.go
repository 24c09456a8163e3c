package utils

import (
	"strconv"
	"strings"
)

// Slugify reduces a recipe name to the compact form used in food.com URLs:
// lowercase with everything except letters and digits removed, so
// "Chicken Biryani" becomes "chickenbiryani".
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RecipeURL builds the public food.com URL for a recipe.
func RecipeURL(name string, id int64) string {
	slug := Slugify(name)
	if slug == "" || id == 0 {
		return ""
	}
	return "https://www.food.com/recipe/" + slug + "-" + strconv.FormatInt(id, 10)
}
