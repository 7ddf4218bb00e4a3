// Package main provides the entry point for the prediction API server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/salsabil-cell/F1-race-predictor/internal/api"
	"github.com/salsabil-cell/F1-race-predictor/internal/config"
	"github.com/salsabil-cell/F1-race-predictor/internal/database"
	"github.com/salsabil-cell/F1-race-predictor/internal/datasource"
	"github.com/salsabil-cell/F1-race-predictor/internal/health"
	applogger "github.com/salsabil-cell/F1-race-predictor/internal/logger"
	"github.com/salsabil-cell/F1-race-predictor/internal/metrics"
	"github.com/salsabil-cell/F1-race-predictor/internal/ml"
	"github.com/salsabil-cell/F1-race-predictor/internal/models"
	"github.com/salsabil-cell/F1-race-predictor/internal/predictor"
	"github.com/salsabil-cell/F1-race-predictor/internal/repository"
	"github.com/salsabil-cell/F1-race-predictor/internal/scheduler"
	"github.com/salsabil-cell/F1-race-predictor/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("F1 race predictor starting")

	// Initialize database connection if configured
	var db *database.DB
	if cfg.Database.Enabled {
		db, err = database.Initialize(ctx, &cfg.Database)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to connect to database")
		}
		defer db.Close()
		appLog.Info("Database connection established")
	}

	grid := models.DefaultGrid()
	ratings := predictor.DefaultRatings()
	ranker := predictor.NewRanker(grid, appLog)

	// Initialize classifier client and model backend when enabled
	var model *predictor.ModelPredictor
	var mlClient *ml.Client
	if cfg.MLService.Enabled {
		mlClient = ml.NewClient(&cfg.MLService, appLog)
		cached := ml.NewCachedClient(mlClient, time.Duration(cfg.MLService.CacheTTLSeconds)*time.Second)
		model = predictor.NewModelPredictor(grid, ratings, cached, appLog)
		appLog.WithField("ml_service_url", cfg.MLService.URL).Info("Classifier client initialized")
	}

	// Start metrics server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewServer(cfg.Metrics, appLog)
		metricsServer.Start()
		defer metricsServer.Stop(context.Background())
	}

	// Start health server
	checks := map[string]health.Pinger{}
	if db != nil {
		checks["database"] = db
	}
	if mlClient != nil {
		checks["classifier"] = health.PingFunc(mlClient.HealthCheck)
	}
	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Port:        cfg.Health.Port,
		Logger:      appLog,
		Checks:      checks,
	})
	if cfg.Health.Enabled {
		if err := healthServer.Start(ctx); err != nil {
			appLog.WithError(err).Fatal("Failed to start health server")
		}
	}

	// Start scheduled season sync if configured
	if cfg.DataIngestion.Schedule.Enabled {
		sched, err := buildScheduler(cfg, db, appLog)
		if err != nil {
			appLog.WithError(err).Fatal("Failed to build scheduler")
		}
		if err := sched.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start scheduler")
		}
		defer sched.Stop()
	}

	// Start API server
	defaults := models.WeightsFromMap(cfg.Predictor.DefaultWeights)
	apiServer := api.NewServer(cfg.Server, defaults, ranker, model, appLog)
	apiServer.Start()
	healthServer.SetReady(true)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	appLog.WithField("signal", sig.String()).Info("Shutdown signal received")
	healthServer.SetReady(false)

	if err := apiServer.Stop(context.Background()); err != nil {
		appLog.WithError(err).Error("API server shutdown error")
	}

	appLog.Info("F1 race predictor stopped")
}

func buildScheduler(cfg *config.Config, db *database.DB, appLog *logrus.Logger) (*scheduler.Scheduler, error) {
	repo, err := buildRepository(cfg, db)
	if err != nil {
		return nil, err
	}

	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), appLog)
	factory := datasource.NewFactory(models.DefaultGrid(), appLog)
	sources, err := factory.EnabledSources(cfg.DataIngestion, httpClient)
	if err != nil {
		return nil, err
	}

	svc := service.NewIngestionService(
		sources,
		repo,
		service.NewRaceMerger(appLog),
		service.NewRecordValidator(appLog),
		appLog,
		cfg.DataIngestion.BatchSize,
	)

	sched := scheduler.NewScheduler(svc, appLog)
	if err := sched.ScheduleSeasonSync(cfg.DataIngestion.Schedule.SeasonSync, cfg.DataIngestion.Schedule.Source); err != nil {
		return nil, err
	}
	return sched, nil
}

func buildRepository(cfg *config.Config, db *database.DB) (repository.RaceRecordRepository, error) {
	switch cfg.DataIngestion.Format {
	case "json":
		return repository.NewJSONRepository(cfg.DataIngestion.DataDir)
	case "postgres":
		return repository.NewPostgresRepository(db), nil
	default:
		return repository.NewCSVRepository(cfg.DataIngestion.DataDir)
	}
}
