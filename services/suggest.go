package services

import (
	"context"
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	suggestMinChars = 2
	suggestLimit    = 7
)

// SuggestService backs the search box autocomplete with prefix-anchored
// name matches.
type SuggestService struct {
	recipes *mongo.Collection
}

func NewSuggestService(recipes *mongo.Collection) *SuggestService {
	return &SuggestService{recipes: recipes}
}

// Suggest returns up to seven unique recipe names starting with the given
// prefix. Prefixes shorter than two characters return nothing.
func (s *SuggestService) Suggest(ctx context.Context, prefix string) ([]string, error) {
	prefix = strings.TrimSpace(prefix)
	if len(prefix) < suggestMinChars {
		return []string{}, nil
	}

	filter := bson.M{"Name": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(prefix),
		Options: "i",
	}}
	opts := options.Find().
		SetProjection(bson.M{"Name": 1}).
		SetLimit(suggestLimit * 3)

	cursor, err := s.recipes.Find(ctx, filter, opts)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Name string `bson:"Name"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classifyStoreError(err)
	}

	seen := make(map[string]bool)
	names := make([]string, 0, suggestLimit)
	for _, d := range docs {
		key := strings.ToLower(strings.TrimSpace(d.Name))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, d.Name)
		if len(names) == suggestLimit {
			break
		}
	}
	return names, nil
}
