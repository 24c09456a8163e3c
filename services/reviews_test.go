package services

import (
	"testing"

	"tastory-backend/models"
)

func TestPickTopReview(t *testing.T) {
	candidates := []models.Review{
		{RecipeID: 1, Rating: 4, Text: "Pretty good, would make again."},
		{RecipeID: 1, Rating: 5, Text: "Great!"},
		{RecipeID: 1, Rating: 5, Text: "Absolutely wonderful, the whole family asked for seconds."},
		{RecipeID: 1, Rating: 3, Text: "It was fine."},
	}

	top := PickTopReview(candidates)
	if top == nil {
		t.Fatal("expected a review, got nil")
	}
	if top.Rating != 5 {
		t.Errorf("Rating = %d, want 5", top.Rating)
	}
	// Ties on rating break by longest text.
	if top.Text != candidates[2].Text {
		t.Errorf("Text = %q, want the longer five-star review", top.Text)
	}
}

func TestPickTopReviewEmpty(t *testing.T) {
	if top := PickTopReview(nil); top != nil {
		t.Errorf("expected nil for no candidates, got %+v", top)
	}
}
