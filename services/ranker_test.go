package services

import (
	"testing"

	"tastory-backend/models"
)

func recipeWithImage(id int64) models.Recipe {
	return models.Recipe{
		RecipeID:  id,
		Name:      "Recipe",
		MainImage: models.FlexString("https://img.example.com/recipe.jpg"),
	}
}

func recipeWithoutImage(id int64) models.Recipe {
	return models.Recipe{RecipeID: id, Name: "Recipe"}
}

func TestRankImagesFirst(t *testing.T) {
	rk := NewRanker(10, 3)
	candidates := []models.Recipe{
		recipeWithoutImage(1),
		recipeWithImage(2),
		recipeWithoutImage(3),
		recipeWithImage(4),
	}

	ranked := rk.Rank(candidates)

	// Every recipe with an image must precede every recipe without one.
	seenWithout := false
	for _, r := range ranked {
		if r.HasImage() {
			if seenWithout {
				t.Fatalf("recipe %d with image appears after an image-less recipe", r.RecipeID)
			}
		} else {
			seenWithout = true
		}
	}

	// Retrieval order is preserved inside each partition.
	wantOrder := []int64{2, 4, 1, 3}
	for i, r := range ranked {
		if r.RecipeID != wantOrder[i] {
			t.Errorf("position %d = recipe %d, want %d", i, r.RecipeID, wantOrder[i])
		}
	}
}

func TestPaginateTotalPagesFormula(t *testing.T) {
	rk := NewRanker(10, 3)

	cases := []struct {
		count     int
		wantPages int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{11, 2},
		{25, 3},
		{30, 3},
		{31, 3}, // capped at MaxPages
		{100, 3},
	}

	for _, tc := range cases {
		candidates := make([]models.Recipe, tc.count)
		for i := range candidates {
			candidates[i] = recipeWithImage(int64(i + 1))
		}

		page := rk.Paginate(candidates, 1)
		if page.TotalPages != tc.wantPages {
			t.Errorf("count %d: TotalPages = %d, want %d", tc.count, page.TotalPages, tc.wantPages)
		}
		if page.TotalResults != tc.count {
			t.Errorf("count %d: TotalResults = %d, want %d", tc.count, page.TotalResults, tc.count)
		}
	}
}

func TestPaginateClampsPastEnd(t *testing.T) {
	rk := NewRanker(10, 3)
	candidates := make([]models.Recipe, 15)
	for i := range candidates {
		candidates[i] = recipeWithImage(int64(i + 1))
	}

	page := rk.Paginate(candidates, 99)
	if page.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, want clamp to 2", page.CurrentPage)
	}
	if len(page.Recipes) != 5 {
		t.Errorf("page size = %d, want 5", len(page.Recipes))
	}

	page = rk.Paginate(candidates, 0)
	if page.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1 for page 0", page.CurrentPage)
	}
}

func TestPaginateIdenticalAcrossCalls(t *testing.T) {
	rk := NewRanker(10, 3)
	candidates := []models.Recipe{
		recipeWithoutImage(1),
		recipeWithImage(2),
		recipeWithImage(3),
	}

	first := rk.Paginate(candidates, 1)
	second := rk.Paginate(candidates, 1)
	for i := range first.Recipes {
		if first.Recipes[i].RecipeID != second.Recipes[i].RecipeID {
			t.Fatal("identical input produced different page ordering")
		}
	}
}

func TestPaginateEmpty(t *testing.T) {
	rk := NewRanker(10, 3)
	page := rk.Paginate(nil, 1)
	if page.TotalPages != 1 || page.TotalResults != 0 || len(page.Recipes) != 0 {
		t.Errorf("empty input: got %+v", page)
	}
}
