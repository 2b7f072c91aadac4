package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"showscore/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileValidator_ValidateInputDirectory(t *testing.T) {
	tests := []struct {
		name            string
		setupFunc       func(t *testing.T) string
		requiredPattern string
		wantErr         bool
		errorContains   string
	}{
		{
			name: "valid directory with files",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				file := filepath.Join(dir, "games.csv")
				require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				return dir
			},
			requiredPattern: "*.csv",
			wantErr:         false,
		},
		{
			name: "valid directory without files",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			requiredPattern: "*.csv",
			wantErr:         false, // No files is not an error
		},
		{
			name: "non-existent directory",
			setupFunc: func(t *testing.T) string {
				return "/non/existent/path"
			},
			requiredPattern: "",
			wantErr:         true,
			errorContains:   "does not exist",
		},
		{
			name: "path is file not directory",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				file := filepath.Join(dir, "test.txt")
				require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				return file
			},
			requiredPattern: "",
			wantErr:         true,
			errorContains:   "not a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			dir := tt.setupFunc(t)

			err := validator.ValidateInputDirectory(dir, tt.requiredPattern)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		errorContains string
	}{
		{
			name: "existing directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr: false,
		},
		{
			name: "non-existent directory (should be created)",
			setupFunc: func(t *testing.T) string {
				base := t.TempDir()
				return filepath.Join(base, "new", "nested", "dir")
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			dir := tt.setupFunc(t)

			err := validator.ValidateOutputDirectory(dir)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
				// Verify directory exists
				info, err := os.Stat(dir)
				assert.NoError(t, err)
				assert.True(t, info.IsDir())
			}
		})
	}
}

func TestFileValidator_ValidateTableFile(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		errorContains string
	}{
		{
			name: "valid CSV table",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				file := filepath.Join(dir, "games.csv")
				require.NoError(t, os.WriteFile(file, []byte("game,winner"), 0644))
				return file
			},
			wantErr: false,
		},
		{
			name: "valid workbook table",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				file := filepath.Join(dir, "season.xlsx")
				require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				return file
			},
			wantErr: false,
		},
		{
			name: "temp Excel file",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				file := filepath.Join(dir, "~$season.xlsx")
				require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				return file
			},
			wantErr:       true,
			errorContains: "temporary",
		},
		{
			name: "non-table file",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				file := filepath.Join(dir, "notes.txt")
				require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				return file
			},
			wantErr:       true,
			errorContains: "not a table file",
		},
		{
			name: "non-existent file",
			setupFunc: func(t *testing.T) string {
				return "/non/existent/games.csv"
			},
			wantErr:       true,
			errorContains: "does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			file := tt.setupFunc(t)

			err := validator.ValidateTableFile(file)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_CountFiles(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		pattern   string
		wantCount int
		wantErr   bool
	}{
		{
			name: "count CSV files",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				for i := 0; i < 3; i++ {
					file := filepath.Join(dir, fmt.Sprintf("table%d.csv", i))
					require.NoError(t, os.WriteFile(file, []byte("test"), 0644))
				}
				// Add non-CSV file
				require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("test"), 0644))
				return dir
			},
			pattern:   "*.csv",
			wantCount: 3,
			wantErr:   false,
		},
		{
			name: "no matching files",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			pattern:   "*.csv",
			wantCount: 0,
			wantErr:   false,
		},
		{
			name: "exclude directories",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				// Create file
				require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("test"), 0644))
				// Create directory
				require.NoError(t, os.MkdirAll(filepath.Join(dir, "subdir"), 0755))
				return dir
			},
			pattern:   "*",
			wantCount: 1, // Only the file, not the directory
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			dir := tt.setupFunc(t)

			count, err := validator.CountFiles(dir, tt.pattern)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantCount, count)
			}
		})
	}
}

func TestFileValidator_ValidateSeasonTables(t *testing.T) {
	writeTables := func(t *testing.T, dir string, names ...string) {
		t.Helper()
		for _, name := range names {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("test,content"), 0644))
		}
	}

	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		format        string
		wantErr       bool
		errorContains string
	}{
		{
			name: "all CSV tables present",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				writeTables(t, dir,
					config.GamesFileName,
					config.ScoresFileName,
					config.PlayersFileName,
					config.EpisodesFileName)
				return dir
			},
			format:  "csv",
			wantErr: false,
		},
		{
			name: "workbook present for xlsx format",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				writeTables(t, dir, config.DefaultWorkbookName)
				return dir
			},
			format:  "xlsx",
			wantErr: false,
		},
		{
			name: "one CSV table missing",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				writeTables(t, dir,
					config.GamesFileName,
					config.ScoresFileName,
					config.PlayersFileName)
				return dir
			},
			format:        "csv",
			wantErr:       true,
			errorContains: "episodes",
		},
		{
			name: "workbook missing for xlsx format",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				// CSV tables do not satisfy the workbook format
				writeTables(t, dir, config.GamesFileName)
				return dir
			},
			format:        "xlsx",
			wantErr:       true,
			errorContains: "workbook",
		},
		{
			name: "missing tables reported together",
			setupFunc: func(t *testing.T) string {
				dir := t.TempDir()
				writeTables(t, dir, config.GamesFileName, config.PlayersFileName)
				return dir
			},
			format:        "csv",
			wantErr:       true,
			errorContains: "episodes",
		},
		{
			name: "non-existent directory",
			setupFunc: func(t *testing.T) string {
				return "/non/existent/path"
			},
			format:        "csv",
			wantErr:       true,
			errorContains: "does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			dir := tt.setupFunc(t)

			err := validator.ValidateSeasonTables(dir, tt.format)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("both missing tables named", func(t *testing.T) {
		dir := t.TempDir()
		writeTables(t, dir, config.GamesFileName, config.PlayersFileName)

		validator := NewFileValidator(slog.Default())
		err := validator.ValidateSeasonTables(dir, "csv")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "episodes")
		assert.Contains(t, err.Error(), "scores")
	})
}
