package services

import (
	"context"
	"strings"
	"time"

	"tastory-backend/internal/logger"
	"tastory-backend/internal/telemetry"
	"tastory-backend/models"
	"tastory-backend/utils"
)

// Embedder maps query text to a fixed-length vector, or reports that no
// vector could be produced.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// RecipeCard is one fully-enriched recipe in a search response.
type RecipeCard struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Image         string              `json:"image,omitempty"`
	Calories      float64             `json:"calories"`
	CalorieSource string              `json:"calorieSource"`
	WalkMeter     WalkMeter           `json:"walkMeter"`
	Rating        float64             `json:"rating"`
	Reviews       int                 `json:"reviews"`
	TopReview     *models.Review      `json:"topReview,omitempty"`
	URL           string              `json:"url,omitempty"`
	Ingredients   []string            `json:"ingredients"`
	Instructions  []string            `json:"instructions"`
	Nutrition     *NutritionBreakdown `json:"nutrition,omitempty"`
}

// NutritionBreakdown carries the stored macro fields plus the calculated
// calorie audit trail.
type NutritionBreakdown struct {
	Fat           *float64             `json:"fat,omitempty"`
	SaturatedFat  *float64             `json:"saturatedFat,omitempty"`
	Cholesterol   *float64             `json:"cholesterol,omitempty"`
	Sodium        *float64             `json:"sodium,omitempty"`
	Carbohydrates *float64             `json:"carbohydrates,omitempty"`
	Fiber         *float64             `json:"fiber,omitempty"`
	Sugar         *float64             `json:"sugar,omitempty"`
	Protein       *float64             `json:"protein,omitempty"`
	Details       []IngredientCalories `json:"calculationDetails,omitempty"`
}

// SearchResponse is the payload of one search call.
type SearchResponse struct {
	Success         bool             `json:"success"`
	Recipes         []RecipeCard     `json:"recipes"`
	CurrentPage     int              `json:"currentPage"`
	TotalPages      int              `json:"totalPages"`
	TotalResults    int              `json:"totalResults"`
	Cuisine         string           `json:"cuisine,omitempty"`
	SpellCorrection *SpellCorrection `json:"spellCorrection,omitempty"`
}

// SearchService runs the full query-to-page pipeline.
type SearchService struct {
	embedder     Embedder
	orchestrator *Orchestrator
	ranker       *Ranker
	reviews      *ReviewService
	metrics      *telemetry.Metrics
}

func NewSearchService(embedder Embedder, orchestrator *Orchestrator, ranker *Ranker, reviews *ReviewService, metrics *telemetry.Metrics) *SearchService {
	return &SearchService{
		embedder:     embedder,
		orchestrator: orchestrator,
		ranker:       ranker,
		reviews:      reviews,
		metrics:      metrics,
	}
}

// Search normalizes the query, retrieves candidates through the fallback
// chain, ranks and slices the requested page, then enriches every recipe
// on it.
func (s *SearchService) Search(ctx context.Context, query string, page int) (*SearchResponse, error) {
	start := time.Now()

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, ErrNoQuery
	}

	correction := CorrectQuery(trimmed)
	cuisine := DetectCuisine(trimmed)

	normalized := NormalizedQuery{
		Raw:       trimmed,
		Corrected: correction.Corrected,
		Terms:     strings.Fields(correction.Corrected),
		Cuisine:   cuisine,
	}

	if s.embedder != nil {
		vector, err := s.embedder.Embed(ctx, correction.Corrected)
		if err != nil {
			// Any embedding failure routes the query through the lexical
			// chain; it is never fatal to the search.
			logger.Debug("Embedding unavailable", "query", correction.Corrected, "error", err)
			if s.metrics != nil {
				s.metrics.RecordEmbeddingFailure("primary")
			}
		} else {
			normalized.Embedding = vector
		}
	}

	candidates, strategy, err := s.orchestrator.Retrieve(ctx, normalized)
	if err != nil {
		return nil, err
	}

	paged := s.ranker.Paginate(candidates, page)

	cards := make([]RecipeCard, 0, len(paged.Recipes))
	for i := range paged.Recipes {
		cards = append(cards, s.buildCard(ctx, &paged.Recipes[i]))
	}

	if s.metrics != nil {
		s.metrics.RecordSearch(strategy, paged.TotalResults, time.Since(start).Seconds())
	}

	resp := &SearchResponse{
		Success:      true,
		Recipes:      cards,
		CurrentPage:  paged.CurrentPage,
		TotalPages:   paged.TotalPages,
		TotalResults: paged.TotalResults,
		Cuisine:      cuisine,
	}
	if correction.HasCorrections {
		resp.SpellCorrection = &correction
	}
	return resp, nil
}

// NormalizedQueryText returns the corrected, lowercased form used as the
// search log key.
func (s *SearchService) NormalizedQueryText(query string) string {
	return CorrectQuery(query).Corrected
}

func (s *SearchService) buildCard(ctx context.Context, r *models.Recipe) RecipeCard {
	nutrition := ReconcileNutrition(r)

	card := RecipeCard{
		ID:            r.RecipeID,
		Name:          r.Name,
		Image:         r.DisplayImage(),
		Calories:      nutrition.DisplayCalories,
		CalorieSource: nutrition.Source,
		URL:           utils.RecipeURL(r.Name, r.RecipeID),
		Ingredients:   combineIngredients(r.IngredientParts, r.IngredientQuantities),
		Instructions:  r.Instructions,
	}

	switch nutrition.Source {
	case "calculated", "database":
		card.WalkMeter = WalkMeterForValue(nutrition.DisplayCalories)
	default:
		card.WalkMeter = walkMeterUnavailable()
	}

	if r.Rating != nil {
		card.Rating = *r.Rating
	}
	if r.ReviewCount != nil {
		card.Reviews = *r.ReviewCount
	}

	card.Nutrition = buildBreakdown(r, nutrition)

	if s.reviews != nil {
		top, err := s.reviews.TopReview(ctx, r.RecipeID)
		if err != nil {
			logger.Debug("Top review lookup failed", "recipe", r.RecipeID, "error", err)
		} else {
			card.TopReview = top
		}
	}

	return card
}

// combineIngredients joins aligned quantity and name sequences into
// human-readable lines, e.g. "2 cups rice". Extra entries on either side
// fall back to the bare value.
func combineIngredients(parts, quantities []string) []string {
	if len(parts) == 0 {
		return []string{}
	}

	lines := make([]string, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i < len(quantities) {
			if qty := strings.TrimSpace(quantities[i]); qty != "" {
				lines = append(lines, qty+" "+part)
				continue
			}
		}
		lines = append(lines, part)
	}
	return lines
}

func buildBreakdown(r *models.Recipe, n NutritionResult) *NutritionBreakdown {
	b := &NutritionBreakdown{
		Fat:           r.FatContent,
		SaturatedFat:  r.SaturatedFatContent,
		Cholesterol:   r.CholesterolContent,
		Sodium:        r.SodiumContent,
		Carbohydrates: r.CarbohydrateContent,
		Fiber:         r.FiberContent,
		Sugar:         r.SugarContent,
		Protein:       r.ProteinContent,
	}
	if n.Calculated != nil {
		b.Details = n.Calculated.Details
	}
	return b
}
