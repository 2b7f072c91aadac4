package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"showscore/internal/config"
	"showscore/internal/dataset"
	"showscore/internal/files"
	"showscore/internal/infrastructure"
	"showscore/internal/validation"
	"showscore/pkg/contracts"
	"showscore/pkg/contracts/domain"
)

// Finding levels. ERROR findings fail the check; WARN findings describe
// rows the wrangling stages repair or skip on their own.
const (
	levelError = "ERROR"
	levelWarn  = "WARN"
)

// finding is one diagnostic produced by the table checks.
type finding struct {
	Level   string
	Code    string
	Message string
}

// tableReport holds the read outcome for one table.
type tableReport struct {
	Table   string
	Path    string
	Rows    int
	Skipped int
	Err     error
}

func main() {
	dataDir := flag.String("data", "", "directory containing the season tables (defaults to data/input relative to executable)")
	format := flag.String("format", "", "season table format: csv or xlsx (defaults to configured format)")
	strict := flag.Bool("strict", false, "treat warnings as failures")
	flag.Parse()

	// Initialize paths first to get default directories
	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("tablecheck.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	if *format == "" {
		*format = cfg.Dataset.Format
	}
	switch *format {
	case "csv", "xlsx":
	default:
		logger.Error("Invalid dataset format", slog.String("format", *format))
		os.Exit(1)
	}

	// Use centralized directory as default if not specified
	if *dataDir == "" {
		*dataDir = paths.InputDir
	}
	dataPath, err := filepath.Abs(*dataDir)
	if err != nil {
		logger.Error("Failed to resolve data directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Starting table check",
		slog.String("version", contracts.Version),
		slog.String("data_dir", dataPath),
		slog.String("format", *format),
		slog.Bool("strict", *strict),
		slog.String("executable_dir", paths.ExecutableDir))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(dataPath, ""); err != nil {
		logger.Error("Data directory is not usable", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Println("=== SEASON TABLE CHECK ===")
	fmt.Printf("Directory: %s\n", dataPath)
	fmt.Printf("Format:    %s\n", *format)

	// File inventory
	discovery := files.NewDiscovery(dataPath)
	inventory, err := discovery.FindTableFiles(dataPath)
	if err != nil {
		logger.Error("Failed to list table files", slog.String("error", err.Error()))
		os.Exit(1)
	}
	printInventory(inventory, scanIgnored(validator, dataPath))

	// Per-table reads
	var reports []tableReport
	var seasonData *domain.Season
	if *format == "xlsx" {
		reports, seasonData = checkWorkbook(filepath.Join(dataPath, cfg.Dataset.Workbook))
	} else {
		reports, seasonData = checkCSVTables(dataPath)
	}
	printReports(reports)

	for _, r := range reports {
		if r.Err != nil {
			logger.Error("Table unreadable",
				slog.String("table", r.Table),
				slog.String("path", r.Path),
				slog.String("error", r.Err.Error()))
			continue
		}
		logger.Info("Table read",
			slog.String("table", r.Table),
			slog.Int("rows", r.Rows),
			slog.Int("skipped", r.Skipped))
	}

	// Cross-table consistency
	findings := append(tableFindings(reports), crossChecks(seasonData)...)
	printFindings(findings)

	if hasErrors(findings) || (*strict && len(findings) > 0) {
		logger.Error("Table check failed",
			slog.Int("findings", len(findings)),
			slog.Bool("strict", *strict))
		fmt.Println("\nResult: FAIL")
		os.Exit(1)
	}

	logger.Info("Table check passed", slog.Int("warnings", len(findings)))
	fmt.Println("\nResult: OK")
}

// checkCSVTables reads the four CSV tables individually so one broken
// table never hides the state of the others.
func checkCSVTables(dir string) ([]tableReport, *domain.Season) {
	seasonData := &domain.Season{}
	reports := make([]tableReport, 0, 4)

	gamesPath := filepath.Join(dir, config.GamesFileName)
	games, skipped, err := dataset.ReadGameSummaries(gamesPath)
	reports = append(reports, tableReport{Table: "games", Path: gamesPath, Rows: len(games), Skipped: skipped, Err: err})
	if err == nil {
		seasonData.Summaries = games
	}

	scoresPath := filepath.Join(dir, config.ScoresFileName)
	scores, skipped, err := dataset.ReadClueScores(scoresPath)
	reports = append(reports, tableReport{Table: "scores", Path: scoresPath, Rows: len(scores), Skipped: skipped, Err: err})
	if err == nil {
		seasonData.Scores = scores
	}

	playersPath := filepath.Join(dir, config.PlayersFileName)
	players, skipped, err := dataset.ReadPlayers(playersPath)
	reports = append(reports, tableReport{Table: "players", Path: playersPath, Rows: len(players), Skipped: skipped, Err: err})
	if err == nil {
		seasonData.Players = players
	}

	episodesPath := filepath.Join(dir, config.EpisodesFileName)
	episodes, skipped, err := dataset.ReadEpisodes(episodesPath)
	reports = append(reports, tableReport{Table: "episodes", Path: episodesPath, Rows: len(episodes), Skipped: skipped, Err: err})
	if err == nil {
		seasonData.Episodes = episodes
	}

	return reports, seasonData
}

// checkWorkbook reads all four tables from the single-workbook layout.
func checkWorkbook(path string) ([]tableReport, *domain.Season) {
	seasonData, skipped, err := dataset.ReadWorkbook(path)
	if err != nil {
		return []tableReport{{Table: "workbook", Path: path, Err: err}}, &domain.Season{}
	}

	counts := seasonData.Counts()
	return []tableReport{
		{Table: "workbook", Path: path, Rows: counts.Summaries + counts.Scores + counts.Players + counts.Episodes, Skipped: skipped},
		{Table: "games", Path: path, Rows: counts.Summaries},
		{Table: "scores", Path: path, Rows: counts.Scores},
		{Table: "players", Path: path, Rows: counts.Players},
		{Table: "episodes", Path: path, Rows: counts.Episodes},
	}, seasonData
}

// tableFindings turns per-table read outcomes into findings. Unreadable
// and empty tables are hard violations; skipped rows are not.
func tableFindings(reports []tableReport) []finding {
	var findings []finding
	for _, r := range reports {
		if r.Err != nil {
			findings = append(findings, finding{
				Level:   levelError,
				Code:    r.Table + ".unreadable",
				Message: fmt.Sprintf("%s: %v", r.Table, r.Err),
			})
			continue
		}
		if r.Rows == 0 && r.Table != "workbook" {
			findings = append(findings, finding{
				Level:   levelError,
				Code:    r.Table + ".empty",
				Message: fmt.Sprintf("%s table has no rows (%s)", r.Table, r.Path),
			})
		}
		if r.Skipped > 0 {
			findings = append(findings, finding{
				Level:   levelWarn,
				Code:    r.Table + ".skipped_rows",
				Message: fmt.Sprintf("%s: %d malformed rows skipped at load", r.Table, r.Skipped),
			})
		}
	}
	return findings
}

// crossChecks runs referential checks across the four tables. Everything
// here at WARN level mirrors a repair the wrangling stages make on their
// own; the checks exist so the repairs are visible before a report run.
func crossChecks(s *domain.Season) []finding {
	var findings []finding

	summaryGames := make(map[int]bool)
	contestantsPerGame := make(map[int]int)
	for _, row := range s.Summaries {
		summaryGames[row.Game] = true
		contestantsPerGame[row.Game]++
	}

	episodeGames := make(map[int]bool)
	for _, ep := range s.Episodes {
		episodeGames[ep.Game] = true
	}

	var missingEpisodes []int
	for game := range summaryGames {
		if !episodeGames[game] {
			missingEpisodes = append(missingEpisodes, game)
		}
	}
	sort.Ints(missingEpisodes)
	if len(missingEpisodes) > 0 {
		findings = append(findings, finding{
			Level: levelWarn,
			Code:  "episodes.missing",
			Message: fmt.Sprintf("%d games have no episode row (streaks fall back to game order): %s",
				len(missingEpisodes), sampleInts(missingEpisodes, 5)),
		})
	}

	var orphanEpisodes []int
	for game := range episodeGames {
		if !summaryGames[game] {
			orphanEpisodes = append(orphanEpisodes, game)
		}
	}
	sort.Ints(orphanEpisodes)
	if len(orphanEpisodes) > 0 {
		findings = append(findings, finding{
			Level: levelWarn,
			Code:  "episodes.orphaned",
			Message: fmt.Sprintf("%d episode rows reference games absent from the games table: %s",
				len(orphanEpisodes), sampleInts(orphanEpisodes, 5)),
		})
	}

	playerKeys := make(map[string]int)
	orphanPlayers := 0
	duplicatePlayers := 0
	for _, p := range s.Players {
		key := playerKey(p.Game, p.FirstName)
		playerKeys[key]++
		if playerKeys[key] == 2 {
			duplicatePlayers++
		}
		if !summaryGames[p.Game] {
			orphanPlayers++
		}
	}
	if duplicatePlayers > 0 {
		findings = append(findings, finding{
			Level: levelWarn,
			Code:  "players.duplicate_keys",
			Message: fmt.Sprintf("%d duplicate (game, first name) biography keys (first row wins)",
				duplicatePlayers),
		})
	}
	if orphanPlayers > 0 {
		findings = append(findings, finding{
			Level: levelWarn,
			Code:  "players.orphaned",
			Message: fmt.Sprintf("%d biography rows reference games absent from the games table",
				orphanPlayers),
		})
	}

	unmatchedSummaries := 0
	for _, row := range s.Summaries {
		if playerKeys[playerKey(row.Game, row.FirstName)] == 0 {
			unmatchedSummaries++
		}
	}
	if unmatchedSummaries > 0 {
		findings = append(findings, finding{
			Level: levelWarn,
			Code:  "players.unmatched",
			Message: fmt.Sprintf("%d summary rows have no biography (exported with first name only)",
				unmatchedSummaries),
		})
	}

	var oddGames []int
	for game, n := range contestantsPerGame {
		if n != config.ContestantsPerGame {
			oddGames = append(oddGames, game)
		}
	}
	sort.Ints(oddGames)
	if len(oddGames) > 0 {
		findings = append(findings, finding{
			Level: levelWarn,
			Code:  "games.contestant_count",
			Message: fmt.Sprintf("%d games do not have %d contestants: %s",
				len(oddGames), config.ContestantsPerGame, sampleInts(oddGames, 5)),
		})
	}

	scoreGames := make(map[int]bool)
	orphanScores := 0
	tiebreakers := 0
	for _, sc := range s.Scores {
		scoreGames[sc.Game] = true
		if !summaryGames[sc.Game] {
			orphanScores++
		}
		if sc.Clue > config.MaxRegularClues {
			tiebreakers++
		}
	}
	if orphanScores > 0 {
		findings = append(findings, finding{
			Level: levelWarn,
			Code:  "scores.orphaned",
			Message: fmt.Sprintf("%d score rows reference games absent from the games table",
				orphanScores),
		})
	}
	if tiebreakers > 0 {
		findings = append(findings, finding{
			Level: levelWarn,
			Code:  "scores.tiebreakers",
			Message: fmt.Sprintf("%d score rows sit beyond clue %d (tiebreaker clues)",
				tiebreakers, config.MaxRegularClues),
		})
	}

	var silentGames []int
	for game := range summaryGames {
		if !scoreGames[game] {
			silentGames = append(silentGames, game)
		}
	}
	sort.Ints(silentGames)
	if len(silentGames) > 0 {
		findings = append(findings, finding{
			Level: levelWarn,
			Code:  "scores.missing_games",
			Message: fmt.Sprintf("%d games have no score rows at all: %s",
				len(silentGames), sampleInts(silentGames, 5)),
		})
	}

	return findings
}

// scanIgnored lists directory entries the table reader will never touch.
func scanIgnored(validator *validation.FileValidator, dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var ignored []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := validator.ValidateTableFile(filepath.Join(dir, entry.Name())); err != nil {
			ignored = append(ignored, entry.Name())
		}
	}
	return ignored
}

func hasErrors(findings []finding) bool {
	for _, f := range findings {
		if f.Level == levelError {
			return true
		}
	}
	return false
}

func playerKey(game int, firstName string) string {
	return strconv.Itoa(game) + "|" + firstName
}

// sampleInts renders at most max values, with an ellipsis when truncated.
func sampleInts(values []int, max int) string {
	shown := values
	truncated := false
	if len(shown) > max {
		shown = shown[:max]
		truncated = true
	}

	parts := make([]string, len(shown))
	for i, v := range shown {
		parts[i] = strconv.Itoa(v)
	}
	if truncated {
		return strings.Join(parts, ", ") + ", ..."
	}
	return strings.Join(parts, ", ")
}

func printInventory(inventory []files.FileInfo, ignored []string) {
	fmt.Println("\n=== TABLE FILES ===")
	if len(inventory) == 0 {
		fmt.Println("No table files found")
	}
	for _, file := range inventory {
		fmt.Printf("%-22s %10s  %s\n",
			file.Name, files.FormatSize(file.Size), file.ModTime.Format("2006-01-02 15:04"))
	}
	if latest, ok := files.GetLatestFile(inventory); ok {
		fmt.Printf("Last updated: %s (%s)\n", latest.Name, latest.ModTime.Format("2006-01-02 15:04"))
	}
	if len(ignored) > 0 {
		fmt.Printf("Ignored files: %s\n", strings.Join(ignored, ", "))
	}
}

func printReports(reports []tableReport) {
	fmt.Println("\n=== ROW COUNTS ===")
	for _, r := range reports {
		if r.Err != nil {
			fmt.Printf("%-10s unreadable: %v\n", r.Table, r.Err)
			continue
		}
		fmt.Printf("%-10s %6d rows  %d skipped\n", r.Table, r.Rows, r.Skipped)
	}
}

func printFindings(findings []finding) {
	fmt.Println("\n=== FINDINGS ===")
	if len(findings) == 0 {
		fmt.Println("No findings. Tables are consistent.")
		return
	}
	for _, f := range findings {
		fmt.Printf("%-5s %-24s %s\n", f.Level, f.Code, f.Message)
	}
}
