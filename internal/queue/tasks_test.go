package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
)

func TestNewBackfillCountTaskPayload(t *testing.T) {
	task, err := NewBackfillCountTask("chicken biryani", "sess-1", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TypeBackfillCount {
		t.Errorf("task type = %q, want %q", task.Type(), TypeBackfillCount)
	}

	var payload BackfillCountPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("payload did not round-trip: %v", err)
	}
	if payload.Query != "chicken biryani" || payload.SessionID != "sess-1" || payload.ResultsCount != 42 {
		t.Errorf("payload = %+v, want query/session/count preserved", payload)
	}
}

func TestBackfillRetriesOutsideServerContext(t *testing.T) {
	// Without asynq's retry metadata the miss must stay retryable; only
	// an exhausted retry budget drops the count on the floor.
	if !backfillShouldRetry(context.Background()) {
		t.Error("backfillShouldRetry returned false for a plain context")
	}
}

func TestHandleSearchLogBadPayloadSkipsRetry(t *testing.T) {
	p := NewTaskProcessor(nil)
	task := asynq.NewTask(TypeSearchLog, []byte("{not json"))

	err := p.HandleSearchLog(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("err = %v, want SkipRetry for a malformed payload", err)
	}
}

func TestHandleBackfillCountBadPayloadSkipsRetry(t *testing.T) {
	p := NewTaskProcessor(nil)
	task := asynq.NewTask(TypeBackfillCount, []byte("{not json"))

	err := p.HandleBackfillCount(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("err = %v, want SkipRetry for a malformed payload", err)
	}
}
