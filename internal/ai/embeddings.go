package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"tastory-backend/internal/config"

	"github.com/go-resty/resty/v2"
	"github.com/google/generative-ai-go/genai"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// ErrUnavailable signals that no embedding could be produced for the query.
// Callers treat it as a soft failure and fall back to lexical retrieval.
var ErrUnavailable = errors.New("embeddings unavailable")

// EmbeddingService turns query text into a fixed-length vector using the
// configured provider. Provider calls run behind a circuit breaker and a
// client-side rate limiter so a degraded provider cannot stall the search
// path.
type EmbeddingService struct {
	cfg         *config.Config
	breaker     *gobreaker.CircuitBreaker
	rateLimiter *rate.Limiter
	genaiClient *genai.Client
	httpClient  *resty.Client
}

func NewEmbeddingService(ctx context.Context, cfg *config.Config) (*EmbeddingService, error) {
	svc := &EmbeddingService{
		cfg: cfg,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "EmbeddingsAPI",
			MaxRequests: 5,
			Interval:    10 * time.Second,
			Timeout:     60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Printf("Circuit breaker %s: %s -> %s", name, from, to)
			},
		}),
		rateLimiter: rate.NewLimiter(rate.Limit(2), 5),
	}

	switch cfg.EmbeddingsProvider {
	case "google", "":
		if cfg.GeminiAPIKey == "" {
			// Not fatal: the service stays up and reports ErrUnavailable,
			// which routes every search through the lexical chain.
			return svc, nil
		}
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create genai client: %w", err)
		}
		svc.genaiClient = client

	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return svc, nil
		}
		svc.httpClient = resty.New().
			SetTimeout(15 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond).
			SetHeader("Authorization", "Bearer "+cfg.OpenAIAPIKey).
			SetHeader("Content-Type", "application/json")

	default:
		return nil, fmt.Errorf("unknown embeddings provider: %s", cfg.EmbeddingsProvider)
	}

	return svc, nil
}

// Embed returns an embedding vector for the given text, or ErrUnavailable
// when the provider is not configured, rate limited out, or tripped.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty input", ErrUnavailable)
	}
	if s.genaiClient == nil && s.httpClient == nil {
		return nil, fmt.Errorf("%w: no provider configured", ErrUnavailable)
	}

	if !s.rateLimiter.Allow() {
		return nil, fmt.Errorf("%w: rate limited", ErrUnavailable)
	}

	result, err := s.breaker.Execute(func() (interface{}, error) {
		switch s.cfg.EmbeddingsProvider {
		case "openai":
			return s.embedOpenAI(ctx, text)
		default:
			return s.embedGoogle(ctx, text)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return result.([]float32), nil
}

func (s *EmbeddingService) embedGoogle(ctx context.Context, text string) ([]float32, error) {
	model := s.genaiClient.EmbeddingModel(s.cfg.GoogleEmbeddingsModel)
	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	// genai SDK returns []float32 for Embedding.Values
	return resp.Embedding.Values, nil
}

type openAIEmbeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openAIEmbeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (s *EmbeddingService) embedOpenAI(ctx context.Context, text string) ([]float32, error) {
	var out openAIEmbeddingResponse

	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetBody(openAIEmbeddingRequest{
			Model: s.cfg.OpenAIEmbeddingsModel,
			Input: text,
		}).
		SetResult(&out).
		Post(s.cfg.OpenAIAPIURL)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		if out.Error != nil {
			return nil, fmt.Errorf("openai embeddings: %s", out.Error.Message)
		}
		return nil, fmt.Errorf("openai embeddings: status %d", resp.StatusCode())
	}
	if len(out.Data) == 0 || len(out.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	vec := make([]float32, len(out.Data[0].Embedding))
	for i, v := range out.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}

// Close releases the underlying provider client.
func (s *EmbeddingService) Close() {
	if s.genaiClient != nil {
		s.genaiClient.Close()
	}
}
