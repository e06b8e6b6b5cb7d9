package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creditrisk/app/echo-server/router"
	"creditrisk/business/scoring"
	custommiddleware "creditrisk/internal/middleware"
	"creditrisk/internal/repository/artifactfile"
	psqlRepo "creditrisk/internal/repository/postgres"
	"creditrisk/internal/rest"
	"creditrisk/pkg/config"
	"creditrisk/pkg/database"
	"creditrisk/pkg/logger"
	"creditrisk/pkg/metrics"
	"creditrisk/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting credit risk decision engine", "version", cfg.App.Version)

	utils.SetSecret(cfg.JWT.SecretKey)
	metrics.Init()

	// Optional prediction audit trail
	var (
		predictionRepo scoring.PredictionRepository
		eventReader    rest.PredictionEventReader
	)
	if cfg.Audit.Enabled {
		db, err := database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		repo, err := psqlRepo.NewPredictionRepository(db)
		if err != nil {
			logger.Fatal("Failed to migrate prediction events", "error", err)
		}
		predictionRepo = repo
		eventReader = repo
		logger.Info("Prediction audit trail enabled")
	}

	// Model artifact: build fully, then publish atomically. A failed initial
	// load keeps the service up but not ready until a reload succeeds.
	artifactRepo, err := artifactfile.NewArtifactRepository()
	if err != nil {
		logger.Fatal("Failed to init artifact repository", "error", err)
	}

	store := scoring.NewArtifactStore()
	if artifact, err := artifactRepo.Load(cfg.Model.Path); err != nil {
		logger.Error("Failed to load model artifact, serving unready", err, "path", cfg.Model.Path)
	} else if err := store.Swap(artifact); err != nil {
		logger.Error("Failed to publish model artifact", err)
	} else {
		logger.Info("Model artifact loaded",
			"path", cfg.Model.Path,
			"model_version", artifact.Version,
			"fingerprint", artifact.Fingerprint,
		)
	}

	// Init service
	scoringService := scoring.NewScoringService(store, predictionRepo, cfg.Explain.TopK, cfg.Explain.ExplainBudget)

	// Init handler
	predictHandler := rest.NewPredictHandler(scoringService, cfg.Explain.RequestBudget)
	modelHandler := rest.NewModelAdminHandler(artifactRepo, store, cfg.Model.Path)
	auditHandler := rest.NewAuditHandler(eventReader)
	healthHandler := rest.NewHealthHandler(store)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(custommiddleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupPredictionRoutes(api, predictHandler)
	router.SetupModelRoutes(api, modelHandler)
	router.SetupAuditRoutes(api, auditHandler)
	router.SetupHealthRoutes(e, healthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", err)
	}

	logger.Info("Server stopped")
}
