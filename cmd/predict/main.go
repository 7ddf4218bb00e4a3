// Package main provides an offline prediction demo CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/salsabil-cell/F1-race-predictor/internal/datasource"
	"github.com/salsabil-cell/F1-race-predictor/internal/models"
	"github.com/salsabil-cell/F1-race-predictor/internal/predictor"
	"github.com/salsabil-cell/F1-race-predictor/internal/repository"
)

// monacoQualifying is a sample low-overtaking street-circuit session.
var monacoQualifying = map[string]float64{
	"LEC": 70.270, "PIA": 70.424, "SAI": 70.518, "NOR": 70.542,
	"RUS": 70.543, "VER": 70.567, "HAM": 70.621, "TSU": 70.858,
	"ALB": 70.948, "GAS": 71.311, "OCO": 71.364, "HUL": 71.440,
	"ALO": 71.552, "STR": 71.978, "BOR": 72.387, "LAW": 72.749,
}

func main() {
	var (
		backend        = flag.String("backend", "perturbation", "Prediction backend: perturbation or model")
		qualiWeight    = flag.Float64("quali", 0.7, "Qualifying weight [0,1]")
		paceWeight     = flag.Float64("pace", 0.6, "Race pace weight [0,1]")
		tireWeight     = flag.Float64("tire", 0.45, "Tire strategy weight [0,1]")
		weatherWeight  = flag.Float64("weather", 0.3, "Weather weight [0,1]")
		strategyWeight = flag.Float64("strategy", 0.5, "Team strategy weight [0,1]")
		seed           = flag.Int64("seed", 0, "Random seed (0 = time-based)")
		synthetic      = flag.Bool("synthetic", false, "Generate a synthetic qualifying session instead of the sample")
		dataDir        = flag.String("data-dir", "", "Load qualifying from stored race data")
		year           = flag.Int("year", 2024, "Season year for stored data")
		round          = flag.Int("round", 8, "Round number for stored data")
	)
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	grid := models.DefaultGrid()

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	entries, err := loadQualifying(*dataDir, *year, *round, *synthetic, grid, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	weights := models.FeatureWeights{
		Qualifying: *qualiWeight,
		Pace:       *paceWeight,
		Tire:       *tireWeight,
		Weather:    *weatherWeight,
		Strategy:   *strategyWeight,
	}.Clamped()

	var summary models.OutcomeSummary
	switch *backend {
	case "model":
		// No classifier service in the offline demo; the heuristic
		// fallback scores every entrant.
		model := predictor.NewModelPredictor(grid, predictor.DefaultRatings(), predictor.NoModel{}, logger)
		if rng != nil {
			model = model.WithNoise(seededNoise{rng})
		}
		summary = model.Predict(context.Background(), entries, weights, predictor.Conditions{Dry: true, TrackTempC: 25.0})
	default:
		ranker := predictor.NewRanker(grid, logger)
		if rng != nil {
			ranker = ranker.WithNoise(seededNoise{rng})
		}
		summary = ranker.Rank(entries, weights)
	}

	printSummary(summary)
}

type seededNoise struct{ rng *rand.Rand }

func (n seededNoise) NormFloat64() float64 { return n.rng.NormFloat64() }
func (n seededNoise) Float64() float64     { return n.rng.Float64() }

func loadQualifying(dataDir string, year, round int, synthetic bool, grid models.Grid, rng *rand.Rand) ([]models.QualifyingEntry, error) {
	if dataDir != "" {
		repo, err := repository.NewCSVRepository(dataDir)
		if err != nil {
			return nil, err
		}
		return repository.LoadQualifying(context.Background(), repo, year, round)
	}

	if synthetic {
		source := datasource.NewSyntheticSource(grid, rng)
		return source.QualifyingSession(), nil
	}

	return models.QualifyingFromMap(monacoQualifying), nil
}

func printSummary(summary models.OutcomeSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "POS\tDRIVER\tTEAM\tQUALI\tCHANGE\tCONFIDENCE")
	for _, p := range summary.Predictions {
		change := fmt.Sprintf("%+d", p.Change)
		if p.GainedPlaces() {
			change += " ▲"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%.0f%%\n",
			p.Position, p.Name, p.Team, p.Qualifying, change, p.Confidence*100)
	}
	w.Flush()

	fmt.Println("\nPodium:")
	for _, p := range summary.Podium() {
		fmt.Printf("  %d. %s (%s)\n", p.Position, p.Name, p.Team)
	}

	fmt.Printf("\nAccuracy estimate: %d%%  Avg confidence: %d%%  Volatility: %.1f\n",
		summary.Accuracy, summary.AvgConfidence, summary.Volatility)
}
