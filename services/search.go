package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"tastory-backend/internal/logger"
	"tastory-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NormalizedQuery is the orchestrator's input: the corrected query, its
// terms, an optional cuisine tag, and the embedding when one could be
// produced.
type NormalizedQuery struct {
	Raw       string
	Corrected string
	Terms     []string
	Cuisine   string
	Embedding []float32
}

// Strategy is one retrieval method in the fallback chain.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, q NormalizedQuery) ([]models.Recipe, error)
}

// Orchestrator runs the retrieval chain: vector search when an embedding
// exists, then exact lexical match, then fuzzy match, with the text index
// reserved for vector timeouts. A StoreQueryError surfaces only when every
// attempted strategy raised one.
type Orchestrator struct {
	vector       Strategy
	exact        Strategy
	fuzzy        Strategy
	text         Strategy
	minThreshold int
}

func NewOrchestrator(vector, exact, fuzzy, text Strategy, minThreshold int) *Orchestrator {
	if minThreshold < 1 {
		minThreshold = 5
	}
	return &Orchestrator{
		vector:       vector,
		exact:        exact,
		fuzzy:        fuzzy,
		text:         text,
		minThreshold: minThreshold,
	}
}

// Retrieve returns the candidate set and the name of the strategy that
// produced it.
func (o *Orchestrator) Retrieve(ctx context.Context, q NormalizedQuery) ([]models.Recipe, string, error) {
	if q.Corrected == "" {
		return nil, "", ErrNoQuery
	}

	attempted := 0
	queryErrs := 0

	// Vector results are accepted outright when non-empty; re-checking
	// them against the lexical strategies adds latency without improving
	// the page.
	if o.vector != nil && len(q.Embedding) > 0 {
		attempted++
		candidates, err := o.vector.Attempt(ctx, q)
		switch {
		case err == nil && len(candidates) > 0:
			return candidates, o.vector.Name(), nil
		case errors.Is(err, ErrStoreTimeout):
			if o.text != nil {
				attempted++
				candidates, terr := o.text.Attempt(ctx, q)
				if terr == nil && len(candidates) > 0 {
					return candidates, o.text.Name(), nil
				}
				if errors.Is(terr, ErrStoreQueryError) {
					queryErrs++
				}
			}
		case errors.Is(err, ErrStoreQueryError):
			queryErrs++
			logger.Warn("Vector search failed, falling back to lexical", "error", err)
		}
	}

	var merged []models.Recipe

	attempted++
	exact, err := o.exact.Attempt(ctx, q)
	if err != nil {
		if errors.Is(err, ErrStoreQueryError) {
			queryErrs++
		}
	} else {
		merged = exact
	}

	if len(merged) >= o.minThreshold {
		return merged, o.exact.Name(), nil
	}

	attempted++
	fuzzy, err := o.fuzzy.Attempt(ctx, q)
	if err != nil {
		if errors.Is(err, ErrStoreQueryError) {
			queryErrs++
		}
	} else if len(fuzzy) > 0 {
		before := len(merged)
		merged = dedupeByID(merged, fuzzy)
		if before > 0 {
			return merged, o.exact.Name(), nil
		}
		return merged, o.fuzzy.Name(), nil
	}

	if len(merged) > 0 {
		return merged, o.exact.Name(), nil
	}

	if queryErrs > 0 && queryErrs >= attempted {
		return nil, "", ErrStoreQueryError
	}

	// Empty is a valid terminal state, not an error.
	return nil, "none", nil
}

// dedupeByID merges candidate lists preserving first-seen order, so exact
// matches stay ahead of fuzzy ones.
func dedupeByID(lists ...[]models.Recipe) []models.Recipe {
	seen := make(map[int64]bool)
	var out []models.Recipe
	for _, list := range lists {
		for _, r := range list {
			if seen[r.RecipeID] {
				continue
			}
			seen[r.RecipeID] = true
			out = append(out, r)
		}
	}
	return out
}

// lexicalFields are the recipe fields lexical strategies match against.
var lexicalFields = []string{
	"Name", "RecipeCategory", "Keywords", "RecipeIngredientParts", "Description",
}

const defaultSearchTimeout = 30 * time.Second

// withSearchDeadline bounds a store query. Gin request contexts carry no
// deadline of their own, so every strategy applies one before touching the
// store; a slow cluster then surfaces ErrStoreTimeout instead of stalling
// the request.
func withSearchDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// VectorStrategy performs approximate nearest-neighbor search against the
// precomputed embedding field via Atlas $vectorSearch.
type VectorStrategy struct {
	Recipes       *mongo.Collection
	IndexName     string
	Path          string
	NumCandidates int
	Limit         int
	Timeout       time.Duration
}

func (s *VectorStrategy) Name() string { return "vector" }

func (s *VectorStrategy) Attempt(ctx context.Context, q NormalizedQuery) ([]models.Recipe, error) {
	if len(q.Embedding) == 0 {
		return nil, ErrEmbeddingUnavailable
	}

	numCandidates := s.NumCandidates
	if numCandidates < 1 {
		numCandidates = 200
	}
	limit := s.Limit
	if limit < 1 {
		limit = 100
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}

	ctx, cancel := withSearchDeadline(ctx, timeout)
	defer cancel()

	queryVector := make(bson.A, len(q.Embedding))
	for i, v := range q.Embedding {
		queryVector[i] = float64(v)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$vectorSearch", Value: bson.D{
			{Key: "index", Value: s.IndexName},
			{Key: "path", Value: s.Path},
			{Key: "queryVector", Value: queryVector},
			{Key: "numCandidates", Value: numCandidates},
			{Key: "limit", Value: limit},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "search_score", Value: bson.D{{Key: "$meta", Value: "vectorSearchScore"}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: s.Path, Value: 0}}}},
	}

	cursor, err := s.Recipes.Aggregate(ctx, pipeline, options.Aggregate().SetMaxTime(timeout))
	if err != nil {
		return nil, classifyStoreError(err)
	}
	defer cursor.Close(ctx)

	var results []models.Recipe
	if err := cursor.All(ctx, &results); err != nil {
		return nil, classifyStoreError(err)
	}
	return results, nil
}

// ExactStrategy requires every query term to match as a whole word in at
// least one searchable field. A detected cuisine adds one more required
// clause built from that cuisine's trigger terms.
type ExactStrategy struct {
	Recipes *mongo.Collection
	Limit   int
	Timeout time.Duration
}

func (s *ExactStrategy) Name() string { return "exact" }

func (s *ExactStrategy) Attempt(ctx context.Context, q NormalizedQuery) ([]models.Recipe, error) {
	if len(q.Terms) == 0 {
		return nil, nil
	}

	var clauses bson.A
	for _, term := range q.Terms {
		clauses = append(clauses, bson.M{"$or": fieldDisjunction(wordBoundaryRegex(term))})
	}
	if q.Cuisine != "" {
		var cuisineOr bson.A
		for _, term := range CuisineTerms(q.Cuisine) {
			cuisineOr = append(cuisineOr, fieldDisjunction(substringRegex(term))...)
		}
		if len(cuisineOr) > 0 {
			clauses = append(clauses, bson.M{"$or": cuisineOr})
		}
	}

	filter := bson.M{"$and": clauses}
	return runLexicalQuery(ctx, s.Recipes, filter, s.Limit, s.Timeout)
}

// FuzzyStrategy relaxes the join to OR-of-terms with plain substring
// matching. Only consulted when exact matching came up short.
type FuzzyStrategy struct {
	Recipes *mongo.Collection
	Limit   int
	Timeout time.Duration
}

func (s *FuzzyStrategy) Name() string { return "fuzzy" }

func (s *FuzzyStrategy) Attempt(ctx context.Context, q NormalizedQuery) ([]models.Recipe, error) {
	if len(q.Terms) == 0 {
		return nil, nil
	}

	var clauses bson.A
	for _, term := range q.Terms {
		clauses = append(clauses, fieldDisjunction(substringRegex(term))...)
	}

	filter := bson.M{"$or": clauses}
	return runLexicalQuery(ctx, s.Recipes, filter, s.Limit, s.Timeout)
}

// TextStrategy queries the relevance-scored text index. Reserved for
// vector-search timeouts rather than routine fallback.
type TextStrategy struct {
	Recipes *mongo.Collection
	Limit   int
	Timeout time.Duration
}

func (s *TextStrategy) Name() string { return "text" }

func (s *TextStrategy) Attempt(ctx context.Context, q NormalizedQuery) ([]models.Recipe, error) {
	limit := s.Limit
	if limit < 1 {
		limit = 30
	}

	ctx, cancel := withSearchDeadline(ctx, s.Timeout)
	defer cancel()

	filter := bson.M{"$text": bson.M{"$search": q.Corrected}}
	opts := options.Find().
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetSort(bson.M{"score": bson.M{"$meta": "textScore"}}).
		SetLimit(int64(limit))

	cursor, err := s.Recipes.Find(ctx, filter, opts)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	defer cursor.Close(ctx)

	var results []models.Recipe
	if err := cursor.All(ctx, &results); err != nil {
		return nil, classifyStoreError(err)
	}
	return results, nil
}

func runLexicalQuery(ctx context.Context, coll *mongo.Collection, filter bson.M, limit int, timeout time.Duration) ([]models.Recipe, error) {
	if limit < 1 {
		limit = 30
	}

	ctx, cancel := withSearchDeadline(ctx, timeout)
	defer cancel()

	cursor, err := coll.Find(ctx, filter, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, classifyStoreError(err)
	}
	defer cursor.Close(ctx)

	var results []models.Recipe
	if err := cursor.All(ctx, &results); err != nil {
		return nil, classifyStoreError(err)
	}
	return results, nil
}

// fieldDisjunction spreads one regex condition across the searchable
// fields.
func fieldDisjunction(re primitive.Regex) bson.A {
	out := make(bson.A, 0, len(lexicalFields))
	for _, field := range lexicalFields {
		out = append(out, bson.M{field: re})
	}
	return out
}

func wordBoundaryRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: `\b` + regexp.QuoteMeta(term) + `\b`, Options: "i"}
}

func substringRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}
