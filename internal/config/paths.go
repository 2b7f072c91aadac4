package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Paths contains all the application paths
// This is the single source of truth for ALL file paths in the application
type Paths struct {
	ExecutableDir string
	DataDir       string
	InputDir      string
	ReportsDir    string
	LogsDir       string

	// Season input tables
	GamesCSV    string
	ScoresCSV   string
	PlayersCSV  string
	EpisodesCSV string
	WorkbookXLSX string

	// Well-known report files
	SummariesCSV   string
	ClueScoresCSV  string
	PlayerTableCSV string
	ReportXLSX     string
	NarrativeTXT   string
}

// GetPaths returns the application paths relative to the executable location
// All paths are ALWAYS relative to the executable directory, never the current working directory
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	// Resolve symlinks to get the actual executable location
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	exeDir := filepath.Dir(exe)

	// Directory structure:
	// <exe dir>/
	//   ├── data/
	//   │   ├── input/     (season tables: games, scores, players, episodes)
	//   │   └── reports/   (enriched CSV exports, report workbook, narrative)
	//   └── logs/          (application logs)

	dataDir := filepath.Join(exeDir, "data")
	inputDir := filepath.Join(dataDir, "input")
	reportsDir := filepath.Join(dataDir, "reports")

	paths := &Paths{
		ExecutableDir: exeDir,
		DataDir:       dataDir,
		InputDir:      inputDir,
		ReportsDir:    reportsDir,
		LogsDir:       filepath.Join(exeDir, "logs"),

		GamesCSV:     filepath.Join(inputDir, GamesFileName),
		ScoresCSV:    filepath.Join(inputDir, ScoresFileName),
		PlayersCSV:   filepath.Join(inputDir, PlayersFileName),
		EpisodesCSV:  filepath.Join(inputDir, EpisodesFileName),
		WorkbookXLSX: filepath.Join(inputDir, DefaultWorkbookName),

		SummariesCSV:   filepath.Join(reportsDir, SummariesExportName),
		ClueScoresCSV:  filepath.Join(reportsDir, ClueScoresExportName),
		PlayerTableCSV: filepath.Join(reportsDir, PlayersExportName),
		ReportXLSX:     filepath.Join(reportsDir, ReportWorkbookName),
		NarrativeTXT:   filepath.Join(reportsDir, NarrativeFileName),
	}

	return paths, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.InputDir,
		p.ReportsDir,
		p.LogsDir,
	}

	logger := slog.Default()

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}

		if logger != nil {
			logger.Debug("Ensured directory exists",
				slog.String("directory", dir))
		}
	}

	return nil
}

// GetRelativePath returns a path relative to the executable directory
func (p *Paths) GetRelativePath(subpath string) string {
	return filepath.Join(p.ExecutableDir, subpath)
}

// GetInputPath returns the path for an input table file
func (p *Paths) GetInputPath(filename string) string {
	return filepath.Join(p.InputDir, filename)
}

// GetReportPath returns the path for a report file
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.ReportsDir, filename)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// LogPathResolution logs detailed path resolution information for debugging
func (p *Paths) LogPathResolution() {
	logger := slog.Default()
	if logger == nil {
		return
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("executable", p.ExecutableDir),
			slog.String("data", p.DataDir),
			slog.String("input", p.InputDir),
			slog.String("reports", p.ReportsDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("input_tables",
			slog.String("games", p.GamesCSV),
			slog.String("scores", p.ScoresCSV),
			slog.String("players", p.PlayersCSV),
			slog.String("episodes", p.EpisodesCSV),
			slog.String("workbook", p.WorkbookXLSX),
		),
		slog.Group("report_files",
			slog.String("summaries_csv", p.SummariesCSV),
			slog.String("clue_scores_csv", p.ClueScoresCSV),
			slog.String("players_csv", p.PlayerTableCSV),
			slog.String("report_xlsx", p.ReportXLSX),
			slog.String("narrative_txt", p.NarrativeTXT),
		))
}

// ValidateInputTables checks if the season tables exist for the chosen format
// and returns detailed error information about missing files
func (p *Paths) ValidateInputTables(format string) error {
	var requiredFiles map[string]string

	switch format {
	case "xlsx":
		requiredFiles = map[string]string{
			"Workbook": p.WorkbookXLSX,
		}
	default:
		requiredFiles = map[string]string{
			"Games":    p.GamesCSV,
			"Scores":   p.ScoresCSV,
			"Players":  p.PlayersCSV,
			"Episodes": p.EpisodesCSV,
		}
	}

	var missingFiles []string
	for name, path := range requiredFiles {
		if !FileExists(path) {
			missingFiles = append(missingFiles, fmt.Sprintf("%s (%s)", name, path))
		}
	}

	if len(missingFiles) > 0 {
		return fmt.Errorf("required input tables missing: %s", strings.Join(missingFiles, ", "))
	}

	return nil
}
