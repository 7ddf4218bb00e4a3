// Package main provides the entry point for the data ingestion CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/salsabil-cell/F1-race-predictor/internal/config"
	"github.com/salsabil-cell/F1-race-predictor/internal/database"
	"github.com/salsabil-cell/F1-race-predictor/internal/datasource"
	applogger "github.com/salsabil-cell/F1-race-predictor/internal/logger"
	"github.com/salsabil-cell/F1-race-predictor/internal/models"
	"github.com/salsabil-cell/F1-race-predictor/internal/repository"
	"github.com/salsabil-cell/F1-race-predictor/internal/service"
)

var (
	configFile string
	sourceName string
	format     string
	dataDir    string

	logger *logrus.Logger
	cfg    *config.Config
	db     *database.DB
	svc    *service.IngestionService
	repo   repository.RaceRecordRepository
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&sourceName, "source", "s", "ergast", "Data source name")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "Storage format override (csv, json or postgres)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Data directory override")
}

var rootCmd = &cobra.Command{
	Use:   "data-ingestion",
	Short: "Fetch and store historical race data",
	Long:  `Fetch qualifying and race results from a configured data source and store them as per-race datasets.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var seasonCmd = &cobra.Command{
	Use:   "season <year>",
	Short: "Ingest a full season",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q: %w", args[0], err)
		}

		metrics, err := svc.IngestSeason(cmd.Context(), sourceName, year)
		if err != nil {
			return err
		}

		fmt.Println(metrics.String())
		return nil
	},
}

var raceCmd = &cobra.Command{
	Use:   "race <year> <round>",
	Short: "Ingest a single race",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q: %w", args[0], err)
		}
		round, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid round %q: %w", args[1], err)
		}

		metrics, err := svc.IngestRace(cmd.Context(), sourceName, year, round)
		if err != nil {
			return err
		}

		fmt.Println(metrics.String())
		return nil
	},
}

var combineCmd = &cobra.Command{
	Use:   "combine",
	Short: "Combine per-race CSV files into a single dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		csvRepo, ok := repo.(*repository.CSVRepository)
		if !ok {
			return fmt.Errorf("combine requires the csv storage format")
		}

		rows, err := csvRepo.Combine(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Combined dataset written with %d rows\n", rows)
		return nil
	},
}

func main() {
	rootCmd.AddCommand(seasonCmd, raceCmd, combineCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	// Flag overrides
	if format != "" {
		cfg.DataIngestion.Format = format
	}
	if dataDir != "" {
		cfg.DataIngestion.DataDir = dataDir
	}

	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	logger = applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)

	var err error
	switch cfg.DataIngestion.Format {
	case "json":
		repo, err = repository.NewJSONRepository(cfg.DataIngestion.DataDir)
	case "postgres":
		db, err = database.Initialize(ctx, &cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		repo = repository.NewPostgresRepository(db)
	default:
		repo, err = repository.NewCSVRepository(cfg.DataIngestion.DataDir)
	}
	if err != nil {
		return err
	}

	grid := models.DefaultGrid()
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), logger)
	factory := datasource.NewFactory(grid, logger)
	sources, err := factory.EnabledSources(cfg.DataIngestion, httpClient)
	if err != nil {
		return err
	}

	svc = service.NewIngestionService(
		sources,
		repo,
		service.NewRaceMerger(logger),
		service.NewRecordValidator(logger),
		logger,
		cfg.DataIngestion.BatchSize,
	)

	return nil
}
