package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Retrieval error taxonomy. The orchestrator routes the fallback chain on
// these: an unavailable embedding skips to lexical search, a store timeout
// fails soft to the text index, and a query error only surfaces when every
// strategy raised one.
var (
	ErrNoQuery              = errors.New("query must not be empty")
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")
	ErrStoreTimeout         = errors.New("search timed out")
	ErrStoreQueryError      = errors.New("search query failed")
	ErrRecipeNotFound       = errors.New("recipe not found")
)

// classifyStoreError maps a driver error onto the retrieval taxonomy.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || mongo.IsTimeout(err) {
		return ErrStoreTimeout
	}
	return ErrStoreQueryError
}
