package services

import (
	"context"

	"tastory-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReviewService serves the "top review" lookup for result cards.
type ReviewService struct {
	reviews *mongo.Collection
}

func NewReviewService(reviews *mongo.Collection) *ReviewService {
	return &ReviewService{reviews: reviews}
}

// TopReview returns the best review for a recipe: highest rating, ties
// broken by the longest text. Returns nil when the recipe has no reviews.
func (s *ReviewService) TopReview(ctx context.Context, recipeID int64) (*models.Review, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "Rating", Value: -1}}).
		SetLimit(5)

	cursor, err := s.reviews.Find(ctx, bson.M{"RecipeId": recipeID}, opts)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	defer cursor.Close(ctx)

	var candidates []models.Review
	if err := cursor.All(ctx, &candidates); err != nil {
		return nil, classifyStoreError(err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	return PickTopReview(candidates), nil
}

// PickTopReview selects the highest-rated review, preferring the longest
// text among equals.
func PickTopReview(candidates []models.Review) *models.Review {
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Rating > best.Rating {
			best = c
			continue
		}
		if c.Rating == best.Rating && len(c.Text) > len(best.Text) {
			best = c
		}
	}
	return &best
}
