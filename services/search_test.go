package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tastory-backend/models"
)

// fakeStrategy scripts one strategy's outcome for orchestrator tests.
type fakeStrategy struct {
	name    string
	results []models.Recipe
	err     error
	calls   int
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Attempt(ctx context.Context, q NormalizedQuery) ([]models.Recipe, error) {
	f.calls++
	return f.results, f.err
}

func recipes(ids ...int64) []models.Recipe {
	out := make([]models.Recipe, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Recipe{RecipeID: id})
	}
	return out
}

func queryWithEmbedding() NormalizedQuery {
	return NormalizedQuery{
		Corrected: "chicken biryani",
		Terms:     []string{"chicken", "biryani"},
		Embedding: []float32{0.1, 0.2, 0.3},
	}
}

func TestOrchestratorVectorAcceptedOutright(t *testing.T) {
	vector := &fakeStrategy{name: "vector", results: recipes(1, 2)}
	exact := &fakeStrategy{name: "exact", results: recipes(3, 4, 5, 6, 7)}
	fuzzy := &fakeStrategy{name: "fuzzy"}

	o := NewOrchestrator(vector, exact, fuzzy, nil, 5)
	got, strategy, err := o.Retrieve(context.Background(), queryWithEmbedding())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != "vector" {
		t.Errorf("strategy = %q, want vector", strategy)
	}
	if len(got) != 2 {
		t.Errorf("got %d results, want 2", len(got))
	}
	if exact.calls != 0 {
		t.Error("exact strategy should not run when vector succeeds")
	}
}

func TestOrchestratorSkipsVectorWithoutEmbedding(t *testing.T) {
	vector := &fakeStrategy{name: "vector", results: recipes(1)}
	exact := &fakeStrategy{name: "exact", results: recipes(2, 3, 4, 5, 6)}
	fuzzy := &fakeStrategy{name: "fuzzy"}

	o := NewOrchestrator(vector, exact, fuzzy, nil, 5)
	q := queryWithEmbedding()
	q.Embedding = nil

	got, strategy, err := o.Retrieve(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vector.calls != 0 {
		t.Error("vector strategy ran without an embedding")
	}
	if strategy != "exact" || len(got) != 5 {
		t.Errorf("got strategy %q with %d results, want exact with 5", strategy, len(got))
	}
}

func TestOrchestratorVectorTimeoutFallsToText(t *testing.T) {
	vector := &fakeStrategy{name: "vector", err: ErrStoreTimeout}
	exact := &fakeStrategy{name: "exact"}
	fuzzy := &fakeStrategy{name: "fuzzy"}
	text := &fakeStrategy{name: "text", results: recipes(9, 10)}

	o := NewOrchestrator(vector, exact, fuzzy, text, 5)
	got, strategy, err := o.Retrieve(context.Background(), queryWithEmbedding())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != "text" {
		t.Errorf("strategy = %q, want text", strategy)
	}
	if len(got) != 2 {
		t.Errorf("got %d results, want 2", len(got))
	}
	if text.calls != 1 {
		t.Errorf("text strategy ran %d times, want 1", text.calls)
	}
}

func TestOrchestratorFuzzyMergeDedupes(t *testing.T) {
	exact := &fakeStrategy{name: "exact", results: recipes(1, 2)}
	fuzzy := &fakeStrategy{name: "fuzzy", results: recipes(2, 3, 4)}

	o := NewOrchestrator(nil, exact, fuzzy, nil, 5)
	q := queryWithEmbedding()
	q.Embedding = nil

	got, strategy, err := o.Retrieve(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != "exact" {
		t.Errorf("strategy = %q, want exact (exact results present)", strategy)
	}

	wantOrder := []int64{1, 2, 3, 4}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d results, want %d", len(got), len(wantOrder))
	}
	for i, id := range wantOrder {
		if got[i].RecipeID != id {
			t.Errorf("position %d = %d, want %d (exact results must come first)", i, got[i].RecipeID, id)
		}
	}
}

func TestOrchestratorExactAboveThresholdSkipsFuzzy(t *testing.T) {
	exact := &fakeStrategy{name: "exact", results: recipes(1, 2, 3, 4, 5)}
	fuzzy := &fakeStrategy{name: "fuzzy", results: recipes(6)}

	o := NewOrchestrator(nil, exact, fuzzy, nil, 5)
	q := queryWithEmbedding()
	q.Embedding = nil

	_, _, err := o.Retrieve(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fuzzy.calls != 0 {
		t.Error("fuzzy strategy ran despite exact meeting the threshold")
	}
}

func TestOrchestratorEmptyIsNotAnError(t *testing.T) {
	exact := &fakeStrategy{name: "exact"}
	fuzzy := &fakeStrategy{name: "fuzzy"}

	o := NewOrchestrator(nil, exact, fuzzy, nil, 5)
	q := queryWithEmbedding()
	q.Embedding = nil

	got, strategy, err := o.Retrieve(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 || strategy != "none" {
		t.Errorf("got %d results via %q, want 0 via none", len(got), strategy)
	}
}

func TestOrchestratorSurfacesQueryErrorOnlyWhenAllFail(t *testing.T) {
	exact := &fakeStrategy{name: "exact", err: ErrStoreQueryError}
	fuzzy := &fakeStrategy{name: "fuzzy", err: ErrStoreQueryError}

	o := NewOrchestrator(nil, exact, fuzzy, nil, 5)
	q := queryWithEmbedding()
	q.Embedding = nil

	_, _, err := o.Retrieve(context.Background(), q)
	if !errors.Is(err, ErrStoreQueryError) {
		t.Errorf("err = %v, want ErrStoreQueryError when every strategy fails", err)
	}

	// One healthy strategy recovers the search.
	exact = &fakeStrategy{name: "exact", err: ErrStoreQueryError}
	fuzzy = &fakeStrategy{name: "fuzzy", results: recipes(1)}
	o = NewOrchestrator(nil, exact, fuzzy, nil, 5)

	got, strategy, err := o.Retrieve(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != "fuzzy" || len(got) != 1 {
		t.Errorf("got strategy %q with %d results, want fuzzy with 1", strategy, len(got))
	}
}

// stalledStrategy bounds its work the way the store-backed strategies do
// and then never makes progress, so its deadline always lapses.
type stalledStrategy struct {
	name    string
	timeout time.Duration
}

func (s *stalledStrategy) Name() string { return s.name }

func (s *stalledStrategy) Attempt(ctx context.Context, q NormalizedQuery) ([]models.Recipe, error) {
	ctx, cancel := withSearchDeadline(ctx, s.timeout)
	defer cancel()
	<-ctx.Done()
	return nil, classifyStoreError(ctx.Err())
}

func TestWithSearchDeadlineBoundsQueries(t *testing.T) {
	// A non-positive timeout still yields a deadline, so no store query
	// can run unbounded.
	ctx, cancel := withSearchDeadline(context.Background(), 0)
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Fatal("no deadline applied for the default timeout")
	}

	short, cancelShort := withSearchDeadline(context.Background(), time.Millisecond)
	defer cancelShort()
	<-short.Done()
	if got := classifyStoreError(short.Err()); !errors.Is(got, ErrStoreTimeout) {
		t.Errorf("lapsed deadline classified as %v, want ErrStoreTimeout", got)
	}
}

func TestOrchestratorLexicalTimeoutSurfacesAndAdvances(t *testing.T) {
	stalled := &stalledStrategy{name: "exact", timeout: time.Millisecond}

	// The attempt itself reports a timeout, not a generic query error.
	if _, err := stalled.Attempt(context.Background(), queryWithEmbedding()); !errors.Is(err, ErrStoreTimeout) {
		t.Fatalf("stalled attempt returned %v, want ErrStoreTimeout", err)
	}

	// The chain recovers by advancing past the timed-out strategy.
	fuzzy := &fakeStrategy{name: "fuzzy", results: recipes(7, 8)}
	o := NewOrchestrator(nil, &stalledStrategy{name: "exact", timeout: time.Millisecond}, fuzzy, nil, 5)
	q := queryWithEmbedding()
	q.Embedding = nil

	got, strategy, err := o.Retrieve(context.Background(), q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strategy != "fuzzy" || len(got) != 2 {
		t.Errorf("got strategy %q with %d results, want fuzzy with 2", strategy, len(got))
	}
}

func TestOrchestratorRejectsEmptyQuery(t *testing.T) {
	o := NewOrchestrator(nil, &fakeStrategy{name: "exact"}, &fakeStrategy{name: "fuzzy"}, nil, 5)
	_, _, err := o.Retrieve(context.Background(), NormalizedQuery{})
	if !errors.Is(err, ErrNoQuery) {
		t.Errorf("err = %v, want ErrNoQuery", err)
	}
}
