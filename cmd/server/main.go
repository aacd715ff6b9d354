package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"retail-insight/internal/config"
	"retail-insight/internal/handler"
	"retail-insight/internal/repository"
	"retail-insight/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("Retail Insight Analyst")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection (optional; backs the vector index
	// and query/feedback logs)
	var repo *repository.PostgresRepository
	if cfg.PostgreSQL.Enabled {
		repo, err = repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()

		if err := repo.InitSchema(context.Background()); err != nil {
			log.Fatalf("Failed to initialize database schema: %v", err)
		}
		log.Println("✅ Connected to PostgreSQL database")
	} else {
		log.Println("⚠️  PostgreSQL is disabled - vector search and query logging will not work")
		log.Println("   Set DATABASE_URL environment variable to enable them")
	}

	// Initialize OpenAI client
	var openaiClient *service.OpenAIClient
	if cfg.OpenAI.Enabled {
		openaiClient = service.NewOpenAIClient(&cfg.OpenAI)
		log.Printf("✅ OpenAI client initialized")
		log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
		log.Printf("   - Chat model: %s", cfg.OpenAI.ChatModel)
		log.Printf("   - Embedding model: %s", cfg.OpenAI.EmbeddingModel)
		log.Printf("   - Chat Temperature: %.2f", cfg.OpenAI.ChatTemperature)
		log.Printf("   - Chat MaxTokens: %d", cfg.OpenAI.ChatMaxTokens)
	} else {
		log.Println("⚠️  OpenAI is disabled - unmatched questions get a fixed apology answer")
		log.Println("   Set OPENAI_API_KEY environment variable to enable the generative fallback")
	}

	// Initialize services
	store := repository.NewDatasetStore()

	var generator service.Generator
	if openaiClient != nil {
		generator = openaiClient
	}
	var queryLogger service.QueryLogger
	if repo != nil {
		queryLogger = repo
	}
	engine := service.NewInsightEngine(generator, queryLogger, cfg.Engine)

	var indexer *service.Indexer
	if repo != nil && openaiClient != nil {
		indexer = service.NewIndexer(repo, openaiClient)
	}

	log.Println("✅ Services initialized")

	// Initialize handlers
	datasetHandler := handler.NewDatasetHandler(store, cfg.Engine.SampleRows)
	queryHandler := handler.NewQueryHandler(engine, store)
	vectorHandler := handler.NewVectorHandler(indexer, store)
	feedbackHandler := handler.NewFeedbackHandler(repo)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.Server.MaxUploadMB << 20

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "retail-insight",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Dataset endpoints
		apiV1.POST("/datasets", datasetHandler.Upload)
		apiV1.GET("/datasets", datasetHandler.List)
		apiV1.GET("/datasets/:id", datasetHandler.Get)
		apiV1.DELETE("/datasets/:id", datasetHandler.Delete)

		// Query endpoint
		apiV1.POST("/query", queryHandler.Query)

		// Vector index endpoints
		apiV1.POST("/datasets/:id/index", vectorHandler.Index)
		apiV1.POST("/datasets/:id/similar", vectorHandler.Similar)

		// Feedback endpoint
		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API base: http://localhost:%d/api/v1", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
