// Package config provides centralized configuration management for the
// showscore tools. It handles loading configuration from multiple sources,
// validation, and provides a type-safe API for accessing configuration
// values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A .env file in the working directory
//	3. Configuration files (YAML)
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SHOWSCORE_* for namespacing:
//
//	SHOWSCORE_DATASET_FORMAT=csv
//	SHOWSCORE_DATASET_GAME_FROM=4600
//	SHOWSCORE_REPORT_TOP_CONTESTANTS=10
//	SHOWSCORE_LOGGING_LEVEL=info
//	SHOWSCORE_TRACING_EXPORTER=stdout
//
// # Path Management
//
// The package provides centralized path management through the Paths type,
// which handles all file system paths relative to the executable location:
//
//	paths, err := config.GetPaths()
//	scoresPath := paths.ScoresCSV
//	reportPath := paths.GetReportPath("season_report.xlsx")
//
// # Validation
//
// All configuration is validated at load time to ensure:
//
//	- Enumerated values (formats, outputs, exporters) are recognized
//	- Game ranges are not inverted or negative
//	- Report limits are positive
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
