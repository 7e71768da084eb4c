package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBodySize = 1 << 20 // 1 MiB

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"JWT_SECRET_KEY",
		"ANALYZER_API_KEY",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	// Initialize JWT
	utils.InitJWT()
}

func setupRouter(notesService *usecase.NotesService, analysisService *usecase.AnalysisService) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(maxRequestBodySize))

	// Public routes (no authentication required)
	router.GET("/api/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected routes (authentication required)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		notes := protected.Group("/notes")
		{
			notes.POST("", func(c *gin.Context) {
				handler.CreateNoteHandler(c, notesService)
			})
			notes.GET("", func(c *gin.Context) {
				handler.GetUserNotesHandler(c, notesService)
			})
			notes.GET("/:id", func(c *gin.Context) {
				handler.GetNoteHandler(c, notesService)
			})
			notes.PUT("/:id", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, notesService)
			})
			notes.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteNoteHandler(c, notesService)
			})
		}

		protected.POST("/analyze", func(c *gin.Context) {
			handler.TriggerAnalysisHandler(c, analysisService)
		})

		logs := protected.Group("/analysis-logs")
		{
			logs.GET("", func(c *gin.Context) {
				handler.GetAnalysisLogsHandler(c, analysisService)
			})
			logs.GET("/:id", func(c *gin.Context) {
				handler.GetAnalysisLogHandler(c, analysisService)
			})
		}
	}

	return router
}

func main() {
	// Open SQLite database and make sure the schema exists
	db, err := repository.OpenDatabase(config.LoadDatabaseConfig())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	notesRepo := repository.GetNotesRepo(db)
	logRepo := repository.GetAnalysisLogRepo(db)

	analyzer, err := services.NewOpenAIAnalyzer(config.LoadAnalyzerConfig())
	if err != nil {
		log.Fatalf("Failed to initialize analyzer: %v", err)
	}

	// Redis cache is optional; the service runs without it
	var logCache *services.AnalysisLogCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cacheTTL := utils.GetEnvAsDuration("ANALYSIS_CACHE_TTL", 5*time.Minute)
		logCache, err = services.NewAnalysisLogCache(redisURL, cacheTTL)
		if err != nil {
			log.Printf("Analysis log cache disabled: %v", err)
		}
	}

	analysisService := &usecase.AnalysisService{
		NotesRepo: notesRepo,
		LogRepo:   logRepo,
		Analyzer:  analyzer,
		Cache:     logCache,
	}
	notesService := &usecase.NotesService{
		NotesRepo: notesRepo,
		Analysis:  analysisService,
	}

	// Set up router
	router := setupRouter(notesService, analysisService)

	// Get port from environment variable or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
