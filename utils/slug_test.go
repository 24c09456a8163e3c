package utils

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"Chicken Biryani", "chickenbiryani"},
		{"Pizza Margherita", "pizzamargherita"},
		{"Chocolate Chip Cookies", "chocolatechipcookies"},
		{"Mom's Apple Pie!", "momsapplepie"},
		{"Fish & Chips", "fishchips"},
		{"", ""},
		{"   ", ""},
		{"---", ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.expected {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.expected)
		}
	}
}

func TestRecipeURL(t *testing.T) {
	got := RecipeURL("Chicken Biryani", 42)
	want := "https://www.food.com/recipe/chickenbiryani-42"
	if got != want {
		t.Errorf("RecipeURL = %q, want %q", got, want)
	}

	if got := RecipeURL("", 42); got != "" {
		t.Errorf("RecipeURL with empty name = %q, want empty", got)
	}
	if got := RecipeURL("Chicken", 0); got != "" {
		t.Errorf("RecipeURL with zero id = %q, want empty", got)
	}
}
