package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"journal-craft/config"
	"journal-craft/handlers"
	"journal-craft/helper"
	"journal-craft/middleware"
	"journal-craft/repositories"
	"journal-craft/services"
)

const version = "1.0.0"

// draftStorageKey mirrors the storage key the editor frontend used for its
// local drafts.
const draftStorageKey = "journal_craft_current_article"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	httpHelper, err := helper.NewHTTPHelper()
	if err != nil {
		logger.Fatal("initializing validator", zap.Error(err))
	}

	// Draft storage backend
	var draftRepo repositories.DraftRepository
	switch cfg.DraftStore {
	case "postgres":
		db, err := config.InitDB(cfg.DBDSN)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		draftRepo, err = repositories.NewDraftRepository(db)
		if err != nil {
			logger.Fatal("migrating drafts table", zap.Error(err))
		}
	case "memory":
		draftRepo = repositories.NewMemoryDraftRepository()
	default:
		draftRepo = repositories.NewFileDraftRepository(cfg.DraftFile)
	}

	// Initialize services
	latexService := services.NewLatexService()
	compileService := services.NewCompileService(latexService, logger,
		cfg.LatexBin, cfg.AssetsDir, cfg.ScratchDir, cfg.CompileTimeout)
	previewService := services.NewPreviewService(latexService)
	articleStore := services.NewArticleStore(draftRepo, logger, draftStorageKey, cfg.DraftDebounce)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(version)
	compileHandler := handlers.NewCompileHandler(compileService, httpHelper, !cfg.IsProduction())
	previewHandler := handlers.NewPreviewHandler(previewService, httpHelper)
	draftHandler := handlers.NewDraftHandler(articleStore, httpHelper)

	// Setup router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins, cfg.IsProduction()))

	generalLimiter := middleware.NewRateLimiter(cfg.GeneralRatePerMin)
	compileLimiter := middleware.NewRateLimiter(cfg.CompileRatePerMin)

	api := router.Group("/api")
	api.Use(generalLimiter.Middleware())
	{
		api.GET("/health", healthHandler.Health)
		api.POST("/compile", compileLimiter.Middleware(), compileHandler.Compile)
		api.POST("/preview", previewHandler.Preview)

		draft := api.Group("/draft")
		{
			draft.GET("", draftHandler.Get)
			draft.PUT("", draftHandler.Put)
			draft.DELETE("", draftHandler.Reset)
			draft.POST("/import", draftHandler.Import)
			draft.GET("/export", draftHandler.Export)
		}
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	// Flush any debounced draft write before exiting.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	articleStore.Flush()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
