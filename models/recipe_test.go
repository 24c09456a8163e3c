package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func decodeRecipe(t *testing.T, doc bson.M) Recipe {
	t.Helper()
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	var r Recipe
	if err := bson.Unmarshal(raw, &r); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	return r
}

func TestStringListFromArray(t *testing.T) {
	r := decodeRecipe(t, bson.M{
		"RecipeId":              int64(1),
		"Name":                  "Chicken Biryani",
		"RecipeIngredientParts": bson.A{"rice", "chicken", ""},
	})

	if len(r.IngredientParts) != 2 {
		t.Fatalf("got %d ingredients, want 2 (blank entries dropped)", len(r.IngredientParts))
	}
	if r.IngredientParts[0] != "rice" || r.IngredientParts[1] != "chicken" {
		t.Errorf("ingredients = %v", r.IngredientParts)
	}
}

func TestStringListFromJSONString(t *testing.T) {
	r := decodeRecipe(t, bson.M{
		"RecipeId":              int64(1),
		"Name":                  "Chicken Biryani",
		"RecipeIngredientParts": `["rice", "chicken"]`,
	})

	if len(r.IngredientParts) != 2 {
		t.Fatalf("got %d ingredients, want 2", len(r.IngredientParts))
	}
	if r.IngredientParts[0] != "rice" {
		t.Errorf("first ingredient = %q, want rice", r.IngredientParts[0])
	}
}

func TestStringListFromBareString(t *testing.T) {
	r := decodeRecipe(t, bson.M{
		"RecipeId":              int64(1),
		"Name":                  "Toast",
		"RecipeIngredientParts": "bread",
	})

	if len(r.IngredientParts) != 1 || r.IngredientParts[0] != "bread" {
		t.Errorf("ingredients = %v, want [bread]", r.IngredientParts)
	}
}

func TestStringListEmptySentinel(t *testing.T) {
	r := decodeRecipe(t, bson.M{
		"RecipeId":              int64(1),
		"Name":                  "Mystery",
		"RecipeIngredientParts": "character(0)",
	})

	if len(r.IngredientParts) != 0 {
		t.Errorf("ingredients = %v, want empty for R's empty-vector sentinel", r.IngredientParts)
	}
}

func TestFlexStringNumericForms(t *testing.T) {
	r := decodeRecipe(t, bson.M{
		"RecipeId":       int64(1),
		"Name":           "Test",
		"RecipeServings": int32(4),
	})
	if r.Servings != "4" {
		t.Errorf("int32 servings = %q, want 4", r.Servings)
	}

	r = decodeRecipe(t, bson.M{
		"RecipeId":       int64(1),
		"Name":           "Test",
		"RecipeServings": 4.0,
	})
	if r.Servings != "4" {
		t.Errorf("double servings = %q, want 4", r.Servings)
	}

	r = decodeRecipe(t, bson.M{
		"RecipeId":       int64(1),
		"Name":           "Test",
		"RecipeServings": "NaN",
	})
	if r.Servings != "" {
		t.Errorf("NaN servings = %q, want empty", r.Servings)
	}
}

func TestDisplayImage(t *testing.T) {
	r := Recipe{
		MainImage: "https://img.example.com/main.jpg",
		Images:    StringList{"https://img.example.com/alt.jpg"},
	}
	if got := r.DisplayImage(); got != "https://img.example.com/main.jpg" {
		t.Errorf("DisplayImage = %q, want the main image", got)
	}

	r = Recipe{Images: StringList{"https://img.example.com/alt.jpg"}}
	if got := r.DisplayImage(); got != "https://img.example.com/alt.jpg" {
		t.Errorf("DisplayImage = %q, want the first list image", got)
	}

	r = Recipe{MainImage: "not-a-url", Images: StringList{"also not"}}
	if r.HasImage() {
		t.Error("HasImage = true for non-http image values")
	}

	r = Recipe{}
	if r.HasImage() {
		t.Error("HasImage = true for a recipe without images")
	}
}
