package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tastory-backend/internal/ai"
	"tastory-backend/internal/config"
	"tastory-backend/internal/logger"
	"tastory-backend/internal/telemetry"
	"tastory-backend/middleware"
	"tastory-backend/routes"
	"tastory-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	// Tracing is opt-in; most deployments run without a collector
	if cfg.TracingEnabled {
		shutdown, err := telemetry.InitTracer("tastory-backend", cfg.OTLPEndpoint)
		if err != nil {
			log.Fatal("Failed to initialize tracer:", err)
		}
		defer shutdown()
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Fatal("Failed to initialize metrics:", err)
	}

	// Connect to MongoDB
	mongoClient, err := config.ConnectMongoDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()

	db := mongoClient.Database(cfg.DBName)
	recipes := db.Collection(cfg.RecipesCollection)
	reviews := db.Collection(cfg.ReviewsCollection)
	searchLogs := db.Collection(cfg.SearchLogsCollection)

	// Redis backs the rate limiter and the trending cache
	rdb, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer rdb.Close()

	// Asynq client for best-effort search log writes
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer asynqClient.Close()

	// Embedding provider; without an API key every search uses the
	// lexical chain
	embedder, err := ai.NewEmbeddingService(context.Background(), cfg)
	if err != nil {
		log.Fatal("Failed to initialize embedding service:", err)
	}
	defer embedder.Close()

	// Retrieval chain
	searchTimeout := time.Duration(cfg.SearchTimeoutSecs) * time.Second
	var vector services.Strategy
	if cfg.VectorSearchEnabled {
		vector = &services.VectorStrategy{
			Recipes:       recipes,
			IndexName:     cfg.VectorIndexName,
			Path:          cfg.VectorField,
			NumCandidates: 200,
			Limit:         100,
			Timeout:       searchTimeout,
		}
	}
	exact := &services.ExactStrategy{Recipes: recipes, Limit: cfg.LexicalResultCap, Timeout: searchTimeout}
	fuzzy := &services.FuzzyStrategy{Recipes: recipes, Limit: cfg.LexicalResultCap, Timeout: searchTimeout}
	var text services.Strategy
	if cfg.TextSearchEnabled {
		text = &services.TextStrategy{Recipes: recipes, Limit: cfg.LexicalResultCap, Timeout: searchTimeout}
	}
	orchestrator := services.NewOrchestrator(vector, exact, fuzzy, text, cfg.MinResultsThreshold)

	ranker := services.NewRanker(cfg.ItemsPerPage, cfg.MaxPages)
	reviewService := services.NewReviewService(reviews)
	searchService := services.NewSearchService(embedder, orchestrator, ranker, reviewService, metrics)
	trendingService := services.NewTrendingService(searchLogs, rdb,
		time.Duration(cfg.TrendingCacheTTLSecs)*time.Second, cfg.TrendingMinCount, searchTimeout)
	suggestService := services.NewSuggestService(recipes)
	recipeService := services.NewRecipeService(recipes)

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SessionIDMiddleware())
	if cfg.TracingEnabled {
		router.Use(middleware.TracingMiddleware())
		router.Use(middleware.EnrichTrace())
	}
	router.Use(middleware.MetricsMiddleware(metrics))
	router.Use(middleware.RateLimitMiddleware(rdb, cfg))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "X-Session-ID"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "tastory-backend",
			"message": "Recipe discovery API. POST /chat with a query to search.",
		})
	})

	// Setup routes
	routes.SetupSearchRoutes(router, searchService, asynqClient)
	routes.SetupTrendingRoutes(router, trendingService, metrics)
	routes.SetupSuggestRoutes(router, suggestService)
	routes.SetupRecipeRoutes(router, recipeService)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
