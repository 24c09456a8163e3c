package services

import (
	"context"
	"errors"

	"tastory-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// RecipeService serves single-recipe lookups outside the search path.
type RecipeService struct {
	recipes *mongo.Collection
}

func NewRecipeService(recipes *mongo.Collection) *RecipeService {
	return &RecipeService{recipes: recipes}
}

// GetByID fetches one recipe by its numeric id.
func (s *RecipeService) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.recipes.FindOne(ctx, bson.M{"RecipeId": id}).Decode(&recipe)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecipeNotFound
		}
		return nil, classifyStoreError(err)
	}
	return &recipe, nil
}

// CalorieAudit compares the stored calorie figure against the
// ingredient-level calculation for one recipe.
type CalorieAudit struct {
	Recipe struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		Servings int    `json:"servings"`
	} `json:"recipe"`
	ExistingCalories   *float64          `json:"existingCalories"`
	CalculatedCalories *CalorieBreakdown `json:"calculatedCalories"`
}

// AuditCalories runs the reconciliation engine for a single recipe and
// reports both sides so discrepancies can be inspected.
func (s *RecipeService) AuditCalories(ctx context.Context, id int64) (*CalorieAudit, error) {
	recipe, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	servings := ResolveServings(recipe)

	audit := &CalorieAudit{
		ExistingCalories:   recipe.Calories,
		CalculatedCalories: CalculateRecipeCalories(recipe.IngredientParts, recipe.IngredientQuantities, servings),
	}
	audit.Recipe.ID = recipe.RecipeID
	audit.Recipe.Name = recipe.Name
	audit.Recipe.Servings = servings
	return audit, nil
}
