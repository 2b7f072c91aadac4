package config

import "time"

// Application constants - all hardcoded values for the showscore tools
const (
	// Application Info
	AppName    = "showscore"
	AppVersion = "0.1.0"

	// Input table file names (under data/input)
	GamesFileName    = "games.csv"
	ScoresFileName   = "scores.csv"
	PlayersFileName  = "players.csv"
	EpisodesFileName = "episodes.csv"

	// Workbook input alternative: one xlsx with a sheet per table
	DefaultWorkbookName = "season.xlsx"
	SheetGames          = "games"
	SheetScores         = "scores"
	SheetPlayers        = "players"
	SheetEpisodes       = "episodes"

	// Enriched table exports (under data/reports)
	SummariesExportName  = "summaries.csv"
	ClueScoresExportName = "clue_scores.csv"
	PlayersExportName    = "players.csv"

	// Report outputs (under data/reports)
	ReportWorkbookName = "season_report.xlsx"
	NarrativeFileName  = "season_summary.txt"

	// File Paths (relative to executable)
	DefaultDataDir    = "data"
	DefaultInputDir   = "data/input"
	DefaultReportsDir = "data/reports"
	DefaultLogsDir    = "logs"

	// Table file discovery
	TableFilePattern = `(?i)^[a-z0-9_\- ]+\.(csv|xlsx)$`

	// Game structure. A full game is two board rounds plus the final
	// clue; clue indexes in the scores table run past MaxRegularClues
	// only when the source includes tiebreakers.
	CluesPerBoard      = 30
	MaxRegularClues    = 2*CluesPerBoard + 1
	ContestantsPerGame = 3

	// Operation Timeouts
	LoadTimeout             = 2 * time.Minute
	ReportGenerationTimeout = 15 * time.Minute

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	MaxLogFileSize   = 100 * 1024 * 1024 // 100MB

	// Air date format used by the episodes table
	AirDateFormat = "2006-01-02"
)
