package files

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"showscore/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDiscovery(t *testing.T) {
	basePath := "/test/base"
	discovery := NewDiscovery(basePath)

	assert.NotNil(t, discovery)
	assert.Equal(t, basePath, discovery.basePath)
}

func TestFindTableFiles(t *testing.T) {
	tests := []struct {
		name          string
		files         []string
		expectedNames []string
		description   string
	}{
		{
			name:          "only table files",
			files:         []string{"games.csv", "scores.csv", "season.xlsx"},
			expectedNames: []string{"games.csv", "scores.csv", "season.xlsx"},
			description:   "Should find csv and xlsx files",
		},
		{
			name:          "mixed file types",
			files:         []string{"games.csv", "notes.txt", "readme.md", "season.xlsx"},
			expectedNames: []string{"games.csv", "season.xlsx"},
			description:   "Should find only table files",
		},
		{
			name:          "office temp files skipped",
			files:         []string{"games.csv", "~$season.xlsx"},
			expectedNames: []string{"games.csv"},
			description:   "Should skip Excel lock files",
		},
		{
			name:          "uppercase extensions",
			files:         []string{"GAMES.CSV", "Players.Csv"},
			expectedNames: []string{"GAMES.CSV", "Players.Csv"},
			description:   "Should match extensions case-insensitively",
		},
		{
			name:          "no table files",
			files:         []string{"notes.txt", "readme.md"},
			expectedNames: nil,
			description:   "Should find no table files",
		},
		{
			name:          "empty directory",
			files:         []string{},
			expectedNames: nil,
			description:   "Should handle empty directory",
		},
		{
			name:          "sorted by name",
			files:         []string{"scores.csv", "episodes.csv", "games.csv"},
			expectedNames: []string{"episodes.csv", "games.csv", "scores.csv"},
			description:   "Should return files in name order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			discovery := NewDiscovery(tmpDir)

			testDir := "table_test"
			fullTestDir := filepath.Join(tmpDir, testDir)
			err := os.MkdirAll(fullTestDir, 0755)
			require.NoError(t, err)

			// Create test files
			for _, filename := range tt.files {
				filePath := filepath.Join(fullTestDir, filename)
				err := os.WriteFile(filePath, []byte("test content"), 0644)
				require.NoError(t, err)
			}

			found, err := discovery.FindTableFiles(testDir)
			assert.NoError(t, err, tt.description)

			var names []string
			for _, file := range found {
				names = append(names, file.Name)
				assert.NotEmpty(t, file.Path)
				assert.Greater(t, file.Size, int64(0))
				assert.False(t, file.ModTime.IsZero())
			}
			assert.Equal(t, tt.expectedNames, names, tt.description)
		})
	}
}

func TestFindTableFilesSkipsDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	discovery := NewDiscovery(tmpDir)

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "archive.csv"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "games.csv"), []byte("game,winner"), 0644))

	found, err := discovery.FindTableFiles(tmpDir)
	assert.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "games.csv", found[0].Name)
}

func TestFindSeasonTables(t *testing.T) {
	tests := []struct {
		name         string
		files        []string
		expectedKeys []string
		description  string
	}{
		{
			name: "all CSV tables present",
			files: []string{
				config.GamesFileName,
				config.ScoresFileName,
				config.PlayersFileName,
				config.EpisodesFileName,
			},
			expectedKeys: []string{TableGames, TableScores, TablePlayers, TableEpisodes},
			description:  "Should map each CSV table to its file",
		},
		{
			name:         "workbook only",
			files:        []string{config.DefaultWorkbookName},
			expectedKeys: []string{TableWorkbook},
			description:  "Should map the workbook alternative",
		},
		{
			name:         "partial tables",
			files:        []string{config.GamesFileName, config.PlayersFileName},
			expectedKeys: []string{TableGames, TablePlayers},
			description:  "Missing tables have no entry",
		},
		{
			name:         "unrelated files ignored",
			files:        []string{"other.csv", "notes.txt"},
			expectedKeys: nil,
			description:  "Should not map files with unknown names",
		},
		{
			name:         "empty directory",
			files:        []string{},
			expectedKeys: nil,
			description:  "Should handle empty directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			discovery := NewDiscovery(tmpDir)

			for _, filename := range tt.files {
				filePath := filepath.Join(tmpDir, filename)
				err := os.WriteFile(filePath, []byte("test,content"), 0644)
				require.NoError(t, err)
			}

			tables, err := discovery.FindSeasonTables(tmpDir)
			assert.NoError(t, err, tt.description)
			assert.Equal(t, len(tt.expectedKeys), len(tables), tt.description)

			for _, key := range tt.expectedKeys {
				file, exists := tables[key]
				assert.True(t, exists, "Expected table %s should be found", key)
				assert.NotEmpty(t, file.Name)
				assert.NotEmpty(t, file.Path)
			}
		})
	}
}

func TestGetLatestFile(t *testing.T) {
	tests := []struct {
		name        string
		files       []FileInfo
		expectFound bool
		expectedIdx int
		description string
	}{
		{
			name: "multiple files with different times",
			files: []FileInfo{
				{Name: "old.csv", ModTime: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
				{Name: "latest.csv", ModTime: time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)},
				{Name: "middle.csv", ModTime: time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)},
			},
			expectFound: true,
			expectedIdx: 1, // latest.csv
			description: "Should return file with latest modification time",
		},
		{
			name: "single file",
			files: []FileInfo{
				{Name: "only.csv", ModTime: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
			},
			expectFound: true,
			expectedIdx: 0,
			description: "Should return single file",
		},
		{
			name:        "empty slice",
			files:       []FileInfo{},
			expectFound: false,
			expectedIdx: -1,
			description: "Should return false for empty slice",
		},
		{
			name: "files with same time",
			files: []FileInfo{
				{Name: "file1.csv", ModTime: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
				{Name: "file2.csv", ModTime: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)},
			},
			expectFound: true,
			expectedIdx: 0, // Should return first one
			description: "Should return first file when times are equal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			latest, found := GetLatestFile(tt.files)

			assert.Equal(t, tt.expectFound, found, tt.description)

			if tt.expectFound {
				expectedFile := tt.files[tt.expectedIdx]
				assert.Equal(t, expectedFile.Name, latest.Name)
				assert.Equal(t, expectedFile.ModTime, latest.ModTime)
			}
		})
	}
}

func TestDiscoveryAbsolutePaths(t *testing.T) {
	tmpDir := t.TempDir()
	discovery := NewDiscovery("/base/path") // Different from tmpDir

	testDir := filepath.Join(tmpDir, "absolute_test")
	err := os.MkdirAll(testDir, 0755)
	require.NoError(t, err)

	testFiles := []string{"games.csv", "season.xlsx", "notes.txt"}
	for _, filename := range testFiles {
		filePath := filepath.Join(testDir, filename)
		err := os.WriteFile(filePath, []byte("test content"), 0644)
		require.NoError(t, err)
	}

	t.Run("FindTableFiles with absolute path", func(t *testing.T) {
		found, err := discovery.FindTableFiles(testDir)
		assert.NoError(t, err)
		assert.Equal(t, 2, len(found))
	})

	t.Run("FindSeasonTables with absolute path", func(t *testing.T) {
		tables, err := discovery.FindSeasonTables(testDir)
		assert.NoError(t, err)
		_, hasGames := tables[TableGames]
		assert.True(t, hasGames)
		_, hasWorkbook := tables[TableWorkbook]
		assert.True(t, hasWorkbook)
	})
}

func TestDiscoveryErrorHandling(t *testing.T) {
	discovery := NewDiscovery("/base/path")

	t.Run("non-existent directory", func(t *testing.T) {
		_, err := discovery.FindTableFiles("/non/existent/directory")
		assert.Error(t, err)
	})

	t.Run("base path fallback for empty dir argument", func(t *testing.T) {
		tmpDir := t.TempDir()
		d := NewDiscovery(tmpDir)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "games.csv"), []byte("x"), 0644))

		found, err := d.FindTableFiles(".")
		assert.NoError(t, err)
		assert.Len(t, found, 1)
	})
}

// Benchmark file discovery operations
func BenchmarkFindTableFiles(b *testing.B) {
	tmpDir := b.TempDir()
	discovery := NewDiscovery(tmpDir)

	// Create many test files
	testDir := filepath.Join(tmpDir, "benchmark_test")
	os.MkdirAll(testDir, 0755)

	for i := 0; i < 100; i++ {
		filename := filepath.Join(testDir, fmt.Sprintf("table_%03d.csv", i))
		os.WriteFile(filename, []byte("test"), 0644)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = discovery.FindTableFiles("benchmark_test")
	}
}
