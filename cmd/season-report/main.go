package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"showscore/internal/config"
	"showscore/internal/dataset"
	"showscore/internal/exporter"
	"showscore/internal/files"
	"showscore/internal/infrastructure"
	"showscore/internal/report"
	"showscore/internal/season"
	"showscore/internal/validation"
	"showscore/pkg/contracts"
	"showscore/pkg/contracts/domain"
)

func main() {
	dataDir := flag.String("data", "", "directory holding the season tables (defaults to data/input relative to executable)")
	outDir := flag.String("out", "", "output directory for the report files (defaults to data/reports relative to executable)")
	format := flag.String("format", "", "season table format: csv or xlsx (defaults to configured format)")
	focusGame := flag.Int("focus-game", 0, "game whose score trajectories get charted (0 picks the highest-scoring game)")
	top := flag.Int("top", 0, "length of the champion, accuracy and streak lists (0 keeps the configured length)")
	flag.Parse()

	// Initialize paths first to get default directories
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	// Load configuration; a broken config file never blocks a report run
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("season-report.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if err := applyOverrides(cfg, *format, *focusGame, *top); err != nil {
		logger.Error("Invalid flags", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Use centralized directories as defaults if not specified
	dataPath, outPath, err := resolveDirs(paths, *dataDir, *outDir)
	if err != nil {
		logger.Error("Failed to resolve directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Ensure all required directories exist
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Starting season report",
		slog.String("version", contracts.Version),
		slog.String("data_dir", dataPath),
		slog.String("output_dir", outPath),
		slog.String("format", cfg.Dataset.Format),
		slog.Int("top_contestants", cfg.Report.TopContestants),
		slog.String("executable_dir", paths.ExecutableDir))

	ctx := infrastructure.EnsureTraceID(context.Background())
	ctx, cancel := context.WithTimeout(ctx, config.ReportGenerationTimeout)
	defer cancel()

	providers, err := infrastructure.InitializeOTel(infrastructure.FromTracingConfig(cfg.Tracing), logger)
	if err != nil {
		logger.Warn("Tracing initialization failed, continuing without spans",
			slog.String("error", err.Error()))
	}
	if providers != nil {
		defer providers.Shutdown(context.Background())
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateSeasonTables(dataPath, cfg.Dataset.Format); err != nil {
		logger.Error("Season tables are incomplete",
			slog.String("error", err.Error()),
			slog.String("hint", "run tablecheck to inspect the data directory"))
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(outPath); err != nil {
		logger.Error("Output directory is not usable", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load the raw season tables
	loadCtx, loadSpan := providers.StartSpan(ctx, "dataset.load")
	loader := dataset.NewLoader(logger)
	var seasonData *domain.Season
	if cfg.Dataset.Format == "xlsx" {
		seasonData, err = loader.LoadWorkbook(loadCtx, filepath.Join(dataPath, cfg.Dataset.Workbook))
	} else {
		seasonData, err = loader.Load(loadCtx, dataPath)
	}
	loadSpan.End()
	if err != nil {
		logger.Error("Failed to load season tables", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Clip to the configured game range
	filter := domain.SeasonFilter{GameFrom: cfg.Dataset.GameFrom, GameTo: cfg.Dataset.GameTo}
	if !filter.IsZero() {
		if err := filter.Validate(); err != nil {
			logger.Error("Invalid game range", slog.String("error", err.Error()))
			os.Exit(1)
		}
		seasonData = filter.Apply(seasonData)
		logger.Info("Applied game range",
			slog.Int("game_from", filter.GameFrom),
			slog.Int("game_to", filter.GameTo),
			slog.Int("games", seasonData.Counts().Games))
		if seasonData.IsEmpty() {
			logger.Error("Game range matches no rows",
				slog.Int("game_from", filter.GameFrom),
				slog.Int("game_to", filter.GameTo))
			os.Exit(1)
		}
	}

	// Wrangle the tables: enrich summaries, densify clue scores, fold streaks
	enrichCtx, enrichSpan := providers.StartSpan(ctx, "season.enrich")
	summaries, enrichStats, err := season.NewEnricher(logger).Enrich(enrichCtx, seasonData.Summaries, seasonData.Players)
	if err == nil {
		infrastructure.SetSpanAttributes(enrichCtx, map[string]interface{}{
			"rows":  enrichStats.Rows,
			"games": enrichStats.Games,
		})
	}
	enrichSpan.End()
	if err != nil {
		logger.Error("Failed to enrich game summaries", slog.String("error", err.Error()))
		os.Exit(1)
	}

	completeCtx, completeSpan := providers.StartSpan(ctx, "season.complete")
	clues, completionStats, err := season.NewCompleter(logger).Complete(completeCtx, seasonData.Scores)
	if err == nil {
		infrastructure.SetSpanAttributes(completeCtx, map[string]interface{}{
			"sparse_rows": completionStats.SparseRows,
			"dense_rows":  completionStats.DenseRows,
			"filled_rows": completionStats.FilledRows,
		})
	}
	completeSpan.End()
	if err != nil {
		logger.Error("Failed to complete clue scores", slog.String("error", err.Error()))
		os.Exit(1)
	}

	streakCtx, streakSpan := providers.StartSpan(ctx, "season.streaks")
	players, streakStats, err := season.NewStreakCalculator(logger).Calculate(streakCtx, clues, seasonData.Players, seasonData.Episodes)
	if err == nil {
		infrastructure.SetSpanAttributes(streakCtx, map[string]interface{}{
			"games":            streakStats.Games,
			"distinct_winners": streakStats.DistinctWinners,
			"longest_streak":   streakStats.LongestStreak,
		})
	}
	streakSpan.End()
	if err != nil {
		logger.Error("Failed to calculate win streaks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Export the enriched tables
	exportCtx, exportSpan := providers.StartSpan(ctx, "exporter.tables")
	exp := exporter.NewSeasonExporter(paths)
	exports := []struct {
		name string
		run  func() error
	}{
		{config.SummariesExportName, func() error {
			return exp.ExportSummaries(summaries, filepath.Join(outPath, config.SummariesExportName))
		}},
		{config.ClueScoresExportName, func() error {
			return exp.ExportClueScores(clues, filepath.Join(outPath, config.ClueScoresExportName))
		}},
		{config.PlayersExportName, func() error {
			return exp.ExportPlayers(players, filepath.Join(outPath, config.PlayersExportName))
		}},
	}
	for _, step := range exports {
		if err := step.run(); err != nil {
			exportSpan.End()
			logger.Error("Failed to export table",
				slog.String("file", step.name),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		infrastructure.AddSpanEvent(exportCtx, "table_exported", map[string]interface{}{
			"file": step.name,
		})
		logger.Info("Exported table", slog.String("file", step.name))
	}
	exportSpan.End()

	// Season summary, report workbook and narrative
	sumCfg := report.DefaultSummarizerConfig()
	sumCfg.TopN = cfg.Report.TopContestants

	summaryCtx, summarySpan := providers.StartSpan(ctx, "report.summary")
	summary, err := report.NewSummarizer(logger, sumCfg).Generate(summaryCtx, summaries, clues, players, seasonData.Episodes)
	summarySpan.End()
	if err != nil {
		logger.Error("Failed to summarize season", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.Report.Charts {
		buildCtx, buildSpan := providers.StartSpan(ctx, "report.workbook")
		err = report.NewWorkbookBuilder(logger, cfg.Report.TopContestants).Build(buildCtx, report.ReportData{
			Summary:   summary,
			Summaries: summaries,
			Clues:     clues,
			Players:   players,
			Episodes:  seasonData.Episodes,
			FocusGame: cfg.Report.FocusGame,
		}, filepath.Join(outPath, config.ReportWorkbookName))
		buildSpan.End()
		if err != nil {
			logger.Error("Failed to build report workbook", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if cfg.Report.Narrative {
		if err := report.WriteNarrative(summary, filepath.Join(outPath, config.NarrativeFileName)); err != nil {
			logger.Error("Failed to write narrative", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	artifacts := files.NewManager(paths).ReportArtifacts(outPath)

	logger.Info("Season report generated successfully",
		slog.String("output_dir", outPath),
		slog.Int("games", summary.Games),
		slog.Int("contestants", summary.Contestants),
		slog.Int("files", len(artifacts)))

	printRunSummary(summary, enrichStats, completionStats, streakStats, artifacts, cfg.Report.TopContestants)
}

// applyOverrides folds the command line flags into the loaded config.
// Zero flag values keep whatever the config carries.
func applyOverrides(cfg *config.Config, format string, focusGame, top int) error {
	if format != "" {
		cfg.Dataset.Format = format
	}
	switch cfg.Dataset.Format {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("invalid dataset format %q: must be csv or xlsx", cfg.Dataset.Format)
	}

	if focusGame < 0 {
		return fmt.Errorf("focus game cannot be negative: %d", focusGame)
	}
	if focusGame > 0 {
		cfg.Report.FocusGame = focusGame
	}

	if top < 0 {
		return fmt.Errorf("top cannot be negative: %d", top)
	}
	if top > 0 {
		cfg.Report.TopContestants = top
	}

	return nil
}

// resolveDirs fills unset directories from the centralized defaults and
// makes both absolute so exports land where the flags said regardless of
// the working directory.
func resolveDirs(paths *config.Paths, dataDir, outDir string) (string, string, error) {
	if dataDir == "" {
		dataDir = paths.InputDir
	}
	if outDir == "" {
		outDir = paths.ReportsDir
	}

	dataAbs, err := filepath.Abs(dataDir)
	if err != nil {
		return "", "", fmt.Errorf("resolve data dir: %w", err)
	}
	outAbs, err := filepath.Abs(outDir)
	if err != nil {
		return "", "", fmt.Errorf("resolve output dir: %w", err)
	}

	return dataAbs, outAbs, nil
}

// printRunSummary prints the run's headline numbers to stdout, next to
// the structured log stream.
func printRunSummary(summary *report.SeasonSummary, enrich season.EnrichStats, completion season.CompletionStats, streaks season.StreakStats, artifacts []files.ArtifactInfo, top int) {
	fmt.Println("\n=== SEASON AT A GLANCE ===")
	fmt.Printf("Games: %d | Contestants: %d | Episodes: %d\n",
		summary.Games, summary.Contestants, summary.Episodes)
	if summary.FirstAirDate != "" && summary.LastAirDate != "" {
		fmt.Printf("Aired: %s to %s\n", summary.FirstAirDate, summary.LastAirDate)
	}
	if summary.HighestFinal.Contestant != "" {
		fmt.Printf("Highest final: %d by %s (game %d)\n",
			summary.HighestFinal.Score, summary.HighestFinal.Contestant, summary.HighestFinal.Game)
	}
	fmt.Printf("Average winning score: %.0f\n", summary.AverageWinning)
	fmt.Printf("Daily doubles: %d | Back-filled clue rows: %.1f%%\n",
		summary.DailyDoubles, summary.FilledShare*100)

	fmt.Println("\n=== WRANGLING COUNTS ===")
	fmt.Printf("Summary rows: %d across %d games (unmatched biographies: %d, zero-attempt rows: %d)\n",
		enrich.Rows, enrich.Games, enrich.UnmatchedSummaries, enrich.ZeroAttemptRows)
	fmt.Printf("Clue rows: %d sparse, %d dense, %d back-filled (%d duplicates dropped)\n",
		completion.SparseRows, completion.DenseRows, completion.FilledRows, completion.DuplicateRows)
	fmt.Printf("Winners: %d distinct across %d games\n",
		streaks.DistinctWinners, streaks.Games)
	if streaks.LongestStreak > 0 {
		fmt.Printf("Longest win streak: %d by %s\n", streaks.LongestStreak, streaks.LongestStreakBy)
	}

	if len(summary.Standings) > 0 {
		fmt.Println("\n=== TOP CONTESTANTS BY WINNINGS ===")
		fmt.Println("Rank | Contestant           | Games | Wins | Winnings")
		fmt.Println("-----|----------------------|-------|------|---------")
		for i, s := range summary.Standings {
			if top > 0 && i >= top {
				break
			}
			fmt.Printf("%4d | %-20s | %5d | %4d | %8d\n",
				i+1, s.Name, s.Games, s.Wins, s.Winnings)
		}
	}

	if len(artifacts) > 0 {
		fmt.Println("\n=== REPORT FILES ===")
		for _, a := range artifacts {
			fmt.Printf("%-22s %10s\n", a.Name, files.FormatSize(a.Size))
		}
	}
}
