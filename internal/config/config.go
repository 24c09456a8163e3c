package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI             string
	DBName               string
	RecipesCollection    string
	ReviewsCollection    string
	SearchLogsCollection string
	Port                 string
	GinMode              string
	CORSOrigins          []string

	// Redis Configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// Vector search
	VectorSearchEnabled bool
	VectorIndexName     string
	VectorField         string
	VectorDimensions    int
	SearchTimeoutSecs   int

	// Atlas text search (last-resort strategy)
	TextSearchEnabled bool

	// Embeddings configuration
	EmbeddingsProvider    string // "google" (default), "openai"
	GeminiAPIKey          string
	GoogleEmbeddingsModel string
	OpenAIAPIKey          string
	OpenAIEmbeddingsModel string
	OpenAIAPIURL          string

	// Search pipeline tuning
	ItemsPerPage        int
	MaxPages            int
	MinResultsThreshold int
	LexicalResultCap    int

	// Trending
	TrendingCacheTTLSecs   int
	TrendingMinCount       int
	SearchLogRetentionDays int

	// Rate limiting
	RateLimitReqs   int
	RateLimitWindow int

	// Tracing
	TracingEnabled bool
	OTLPEndpoint   string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		MongoURI:             getEnv("MONGODB_URI", "mongodb://localhost:27017/tastory"),
		DBName:               getEnv("DB_NAME", "tastory"),
		RecipesCollection:    getEnv("RECIPES_COLLECTION", "recipes"),
		ReviewsCollection:    getEnv("REVIEWS_COLLECTION", "reviews"),
		SearchLogsCollection: getEnv("SEARCH_LOGS_COLLECTION", "search_logs"),
		Port:                 getEnv("PORT", "8080"),
		GinMode:              getEnv("GIN_MODE", "debug"),
		CORSOrigins:          strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"), ","),

		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		// Vector search
		VectorSearchEnabled: getEnvBool("MONGODB_VECTOR_ENABLED", true),
		VectorIndexName:     getEnv("MONGODB_VECTOR_INDEX", "idx_recipes_vector"),
		VectorField:         getEnv("MONGODB_VECTOR_FIELD", "recipe_embedding_all_MiniLM_L6_v2"),
		VectorDimensions:    getEnvInt("VECTOR_DIM", 384),
		SearchTimeoutSecs:   getEnvInt("SEARCH_TIMEOUT_SECONDS", 30),

		TextSearchEnabled: getEnvBool("MONGODB_TEXT_ENABLED", false),

		// Embeddings
		EmbeddingsProvider:    getEnv("EMBEDDINGS_PROVIDER", "google"),
		GeminiAPIKey:          getEnv("GEMINI_API_KEY", ""),
		GoogleEmbeddingsModel: getEnv("GOOGLE_EMBEDDINGS_MODEL", "text-embedding-004"),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIEmbeddingsModel: getEnv("OPENAI_EMBEDDINGS_MODEL", "text-embedding-3-small"),
		OpenAIAPIURL:          getEnv("OPENAI_API_URL", "https://api.openai.com/v1/embeddings"),

		// Search pipeline tuning
		ItemsPerPage:        getEnvInt("ITEMS_PER_PAGE", 10),
		MaxPages:            getEnvInt("MAX_PAGES", 3),
		MinResultsThreshold: getEnvInt("MIN_RESULTS_THRESHOLD", 5),
		LexicalResultCap:    getEnvInt("LEXICAL_RESULT_CAP", 30),

		// Trending
		TrendingCacheTTLSecs:   getEnvInt("TRENDING_CACHE_TTL_SECONDS", 600),
		TrendingMinCount:       getEnvInt("TRENDING_MIN_COUNT", 3),
		SearchLogRetentionDays: getEnvInt("SEARCH_LOG_RETENTION_DAYS", 7),

		// Rate limiting
		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		// Tracing
		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", "localhost:4317"),
	}

	// The embeddings key is optional: without it the vector strategy is
	// skipped and the lexical chain takes over. Everything else has usable
	// defaults, but nonsense pagination values are rejected up front.
	if cfg.ItemsPerPage < 1 {
		return nil, fmt.Errorf("ITEMS_PER_PAGE must be at least 1")
	}
	if cfg.MaxPages < 1 {
		return nil, fmt.Errorf("MAX_PAGES must be at least 1")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
