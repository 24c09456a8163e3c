package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tastory-backend/internal/logger"
	"tastory-backend/models"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Task type identifiers
const (
	TypeSearchLog     = "search:log"
	TypeBackfillCount = "search:backfill_count"
)

// SearchLogPayload records a single normalized query against a session.
type SearchLogPayload struct {
	Query        string    `json:"query"`
	SessionID    string    `json:"session_id"`
	ResultsCount int       `json:"results_count"`
	Timestamp    time.Time `json:"timestamp"`
}

// BackfillCountPayload updates the result count of an already-written log
// entry once retrieval finishes after the log was enqueued.
type BackfillCountPayload struct {
	Query        string    `json:"query"`
	SessionID    string    `json:"session_id"`
	ResultsCount int       `json:"results_count"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewSearchLogTask creates a task that persists a search log entry.
func NewSearchLogTask(query, sessionID string, resultsCount int) (*asynq.Task, error) {
	payload, err := json.Marshal(SearchLogPayload{
		Query:        query,
		SessionID:    sessionID,
		ResultsCount: resultsCount,
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search log payload: %w", err)
	}

	return asynq.NewTask(TypeSearchLog, payload,
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
		asynq.Queue("default"),
	), nil
}

// NewBackfillCountTask creates a task that corrects the results_count of the
// most recent log entry for a session/query pair.
func NewBackfillCountTask(query, sessionID string, resultsCount int) (*asynq.Task, error) {
	payload, err := json.Marshal(BackfillCountPayload{
		Query:        query,
		SessionID:    sessionID,
		ResultsCount: resultsCount,
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backfill payload: %w", err)
	}

	return asynq.NewTask(TypeBackfillCount, payload,
		asynq.MaxRetry(backfillMaxRetry),
		asynq.Timeout(15*time.Second),
		asynq.Queue("low"),
		// The log insert runs on the default queue; give it a head start
		// so the first backfill attempt usually finds the entry.
		asynq.ProcessIn(backfillDelay),
	), nil
}

const (
	backfillMaxRetry = 2
	backfillDelay    = 3 * time.Second
)

// backfillShouldRetry reports whether a backfill that found no log entry
// should be retried. The entry may simply not have been inserted yet, so
// the miss is retried until the task's retry budget runs out.
func backfillShouldRetry(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return true
	}
	return retried < backfillMaxRetry
}

// TaskProcessor handles background task processing for search logging.
type TaskProcessor struct {
	searchLogs *mongo.Collection
}

func NewTaskProcessor(searchLogs *mongo.Collection) *TaskProcessor {
	return &TaskProcessor{searchLogs: searchLogs}
}

// HandleSearchLog persists a search log entry. Logging is best effort:
// permanent failures are dropped rather than retried forever.
func (p *TaskProcessor) HandleSearchLog(ctx context.Context, t *asynq.Task) error {
	var payload SearchLogPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	entry := models.SearchLogEntry{
		Query:        payload.Query,
		Timestamp:    payload.Timestamp,
		SessionID:    payload.SessionID,
		ResultsCount: payload.ResultsCount,
	}

	if _, err := p.searchLogs.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert search log: %w", err)
	}

	logger.Debug("Search log persisted", "query", payload.Query, "session", payload.SessionID)
	return nil
}

// HandleBackfillCount updates the results_count on the latest matching log
// entry. A missing entry usually means the insert task has not run yet, so
// the miss is retried; once retries are exhausted the count stays zero,
// which the trending aggregation tolerates.
func (p *TaskProcessor) HandleBackfillCount(ctx context.Context, t *asynq.Task) error {
	var payload BackfillCountPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	filter := bson.M{
		"query":      payload.Query,
		"session_id": payload.SessionID,
	}
	update := bson.M{"$set": bson.M{"results_count": payload.ResultsCount}}

	opts := options.FindOneAndUpdate().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	res := p.searchLogs.FindOneAndUpdate(ctx, filter, update, opts)
	if err := res.Err(); err != nil {
		if err == mongo.ErrNoDocuments {
			if backfillShouldRetry(ctx) {
				return fmt.Errorf("no log entry yet for query %q, session %s", payload.Query, payload.SessionID)
			}
			logger.Warn("Backfill gave up, log entry never appeared",
				"query", payload.Query, "session", payload.SessionID)
			return nil
		}
		return fmt.Errorf("failed to backfill results count: %w", err)
	}

	return nil
}
