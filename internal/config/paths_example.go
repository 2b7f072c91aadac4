// +build example

package config

import (
	"log/slog"
	"os"
)

// ExampleUsage demonstrates how to use the paths package throughout the application
func ExampleUsage() {
	// Always get paths from the centralized GetPaths() function
	paths, err := GetPaths()
	if err != nil {
		slog.Error("Failed to get paths", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Ensure all directories exist at startup
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to ensure directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Log all resolved paths for debugging
	paths.LogPathResolution()

	// Example 1: Loading the season tables
	slog.Info("Games table", slog.String("path", paths.GamesCSV))
	slog.Info("Scores table", slog.String("path", paths.ScoresCSV))

	// Example 2: Writing enriched table exports
	slog.Info("Summaries export", slog.String("path", paths.SummariesCSV))
	slog.Info("Clue scores export", slog.String("path", paths.ClueScoresCSV))

	// Example 3: Report outputs
	slog.Info("Report workbook", slog.String("path", paths.ReportXLSX))
	slog.Info("Narrative summary", slog.String("path", paths.NarrativeTXT))

	// Example 4: Validate input tables exist before starting
	if err := paths.ValidateInputTables("csv"); err != nil {
		slog.Warn("Input tables incomplete", slog.String("error", err.Error()))
		// Application might want to handle missing files gracefully
	}
}
