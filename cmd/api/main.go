package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/meeting-intelligence/pkg/validator"

	"github.com/johnquangdev/meeting-intelligence/internal/adapter/handler"
	"github.com/johnquangdev/meeting-intelligence/internal/adapter/repository"
	"github.com/johnquangdev/meeting-intelligence/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-intelligence/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-intelligence/internal/infrastructure/external/search"
	"github.com/johnquangdev/meeting-intelligence/internal/infrastructure/external/transcripts"
	"github.com/johnquangdev/meeting-intelligence/internal/infrastructure/storage"
	aiuse "github.com/johnquangdev/meeting-intelligence/internal/usecase/ai"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/chat"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/dashboard"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/ingest"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/matcher"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-intelligence/internal/usecase/publish"
	pkgai "github.com/johnquangdev/meeting-intelligence/pkg/ai"
	"github.com/johnquangdev/meeting-intelligence/pkg/config"
	"github.com/johnquangdev/meeting-intelligence/pkg/jobcontext"
)

// @title           Meeting Intelligence API
// @version         1.0
// @description     Turns meeting transcripts into project insights, dashboards and chat context
// @BasePath        /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	for _, env := range cfg.Missing() {
		logger.Warn("⚠️  Credential not configured; the dependent feature will degrade", zap.String("env", env))
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.RequestID())

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply migrations only when explicitly enabled in config.
	if cfg.Database.AutoMigrate {
		log.Println("🔄 Applying embedded sql-migrate migrations ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; run cmd/migrate in CI/CD/production")
	}

	// Summary cache: Redis when configured, process memory otherwise
	var summaryCache dashboard.SummaryCache
	if cfg.Redis.Host != "" {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(startCtx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		summaryCache = cache.NewRedisStore(redisClient)
	} else {
		log.Println("⚠️  REDIS_HOST not set, caching executive summaries in memory")
		memoryStore := cache.NewMemoryStore()
		defer memoryStore.Close()
		summaryCache = memoryStore
	}

	// Initialize blob storage
	log.Println("🗄️  Connecting to blob storage...")
	blobStore, err := storage.NewMinIOClient(startCtx, &cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	projectRepo := repository.NewProjectRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	insightRepo := repository.NewInsightRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize external clients
	log.Println("🤖 Initializing AI components...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	extractor := aiuse.NewExtractor(groqClient, cfg.Groq.MaxTranscriptChars, logger)
	searchClient := search.NewClient(&cfg.Search, logger)
	source := newTranscriptSource(cfg, logger)
	log.Printf("🎙️  Transcript source: %s", source.Name())

	// Initialize use cases
	projectMatcher := matcher.NewMatcher(projectRepo, cfg.Matcher.Keywords, logger)
	orchestrator := ingest.NewOrchestrator(
		source,
		projectMatcher,
		extractor,
		meeting.NewRecorder(meetingRepo, logger),
		publish.NewPublisher(blobStore, logger),
		searchClient,
		ingest.Options{
			BatchSize:   cfg.Sync.BatchSize,
			Concurrency: cfg.Sync.Concurrency,
			Retry:       jobcontext.DefaultRetryPolicy,
		},
		logger,
	)
	aggregator := dashboard.NewAggregator(
		projectRepo, insightRepo, meetingRepo, taskRepo,
		extractor, summaryCache, cfg.Redis.SummaryTTL, logger,
	)
	injector := chat.NewInjector(projectMatcher, projectRepo, meetingRepo, insightRepo, searchClient, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(
		cfg,
		handler.NewSyncHandler(orchestrator, logger),
		handler.NewDashboardHandler(aggregator, logger),
		handler.NewChatHandler(injector, logger),
		handler.NewDocumentsHandler(blobStore, logger),
	)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	// let in-flight index resyncs finish
	done := make(chan struct{})
	go func() {
		orchestrator.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		log.Println("⚠️  Index resync still running at shutdown")
	}

	log.Println("✅ Server stopped gracefully")
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func newTranscriptSource(cfg *config.Config, logger *zap.Logger) ingest.TranscriptSource {
	switch strings.ToLower(cfg.Transcripts.Source) {
	case "assemblyai":
		return transcripts.NewAssemblyAIClient(&cfg.Transcripts, logger)
	default:
		return transcripts.NewFirefliesClient(&cfg.Transcripts, logger)
	}
}
