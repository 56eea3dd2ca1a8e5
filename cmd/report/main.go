// Command report builds the dashboard outputs offline: an Excel workbook
// of the filtered movies and PNG charts for both datasets.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chartboard/internal/analysis"
	"chartboard/internal/charts"
	"chartboard/internal/dataset"
	"chartboard/internal/exporter"
	"chartboard/internal/services"
)

func main() {
	var (
		moviesPath  = flag.String("movies", "data/movies_genres_summary.csv", "Path to the movie CSV")
		speciesPath = flag.String("species", "data/species_strategies.csv", "Path to the species CSV")
		outDir      = flag.String("out", "report", "Output directory")
		genresFlag  = flag.String("genres", strings.Join(dataset.DefaultGenres, ","), "Comma-separated genres to include")
		yearFrom    = flag.Int("from", dataset.DefaultYearFrom, "First year of the range")
		yearTo      = flag.Int("to", dataset.DefaultYearTo, "Last year of the range")
		metricsFlag = flag.String("metrics", strings.Join(dataset.DefaultMetrics, ","), "Comma-separated species metrics")
		xVar        = flag.String("x", dataset.RegressionXVariables[0], "Regression X variable")
		yVar        = flag.String("y", dataset.RegressionYVariables[0], "Regression Y variable")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(logger, *moviesPath, *speciesPath, *outDir,
		splitList(*genresFlag), *yearFrom, *yearTo,
		splitList(*metricsFlag), *xVar, *yVar); err != nil {
		logger.Error("report generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func run(logger *slog.Logger, moviesPath, speciesPath, outDir string,
	genres []string, yearFrom, yearTo int, metrics []string, xVar, yVar string) error {
	ctx := context.Background()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	store := dataset.NewStore(moviesPath, speciesPath, logger)
	movieSvc := services.NewMovieService(store, logger)
	speciesSvc := services.NewSpeciesService(store, logger)

	filter := analysis.MovieFilter{Genres: genres, YearFrom: yearFrom, YearTo: yearTo}

	if err := writeMovieOutputs(ctx, logger, movieSvc, filter, outDir); err != nil {
		return err
	}
	return writeSpeciesOutputs(ctx, logger, speciesSvc, metrics, xVar, yVar, outDir)
}

func writeMovieOutputs(ctx context.Context, logger *slog.Logger,
	svc *services.MovieService, filter analysis.MovieFilter, outDir string) error {
	movies, err := svc.Filtered(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to filter movies: %w", err)
	}

	summary, err := svc.Summary(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to build gross summary: %w", err)
	}

	workbookPath := filepath.Join(outDir, "movies.xlsx")
	workbook := exporter.MovieWorkbook{Movies: movies, Table: summary.Table}
	if err := workbook.SaveAs(workbookPath); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	logger.Info("workbook written",
		slog.String("path", workbookPath),
		slog.Int("movies", len(movies)))

	chart, err := charts.GrossLineChart(summary.Table)
	if err != nil {
		return fmt.Errorf("failed to render gross chart: %w", err)
	}
	chartPath := filepath.Join(outDir, "gross.png")
	if err := os.WriteFile(chartPath, chart, 0o644); err != nil {
		return fmt.Errorf("failed to write gross chart: %w", err)
	}
	logger.Info("chart written", slog.String("path", chartPath))
	return nil
}

func writeSpeciesOutputs(ctx context.Context, logger *slog.Logger,
	svc *services.SpeciesService, metrics []string, xVar, yVar, outDir string) error {
	comparison, err := svc.Metrics(ctx, metrics)
	if err != nil {
		return fmt.Errorf("failed to build metric comparison: %w", err)
	}

	barChart, err := charts.SpeciesBarChart(comparison.Species, comparison.Metrics)
	if err != nil {
		return fmt.Errorf("failed to render metrics chart: %w", err)
	}
	barPath := filepath.Join(outDir, "metrics.png")
	if err := os.WriteFile(barPath, barChart, 0o644); err != nil {
		return fmt.Errorf("failed to write metrics chart: %w", err)
	}
	logger.Info("chart written", slog.String("path", barPath))

	fit, err := svc.Regression(ctx, xVar, yVar)
	if err != nil {
		return fmt.Errorf("failed to fit regression: %w", err)
	}

	regChart, err := charts.RegressionChart(fit)
	if err != nil {
		return fmt.Errorf("failed to render regression chart: %w", err)
	}
	regPath := filepath.Join(outDir, "regression.png")
	if err := os.WriteFile(regPath, regChart, 0o644); err != nil {
		return fmt.Errorf("failed to write regression chart: %w", err)
	}
	logger.Info("chart written",
		slog.String("path", regPath),
		slog.String("x", xVar),
		slog.String("y", yVar),
		slog.Float64("slope", fit.Slope),
		slog.Float64("intercept", fit.Intercept))
	return nil
}
