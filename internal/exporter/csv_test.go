package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showscore/internal/config"
)

// Setup test environment
func setupTestEnv(t *testing.T) (*CSVWriter, string) {
	t.Helper()

	tempDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "reports"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "input"), 0755))

	writer := NewCSVWriter(&config.Paths{
		InputDir:   filepath.Join(tempDir, "input"),
		ReportsDir: filepath.Join(tempDir, "reports"),
	})

	return writer, tempDir
}

func TestNewCSVWriter(t *testing.T) {
	paths := &config.Paths{}
	writer := NewCSVWriter(paths)

	assert.NotNil(t, writer)
	assert.Equal(t, paths, writer.paths)
}

func TestCSVWriter_WriteCSV(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	tests := []struct {
		name     string
		filePath string
		options  WriteOptions
		validate func(t *testing.T, filePath string)
	}{
		{
			name:     "basic write with headers",
			filePath: "test_basic.csv",
			options: WriteOptions{
				Headers: []string{"game", "contestant", "score"},
				Records: [][]string{
					{"101", "Alex", "200"},
					{"101", "Brenda", "-400"},
				},
			},
			validate: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				require.NoError(t, err)

				lines := strings.Split(strings.TrimSpace(string(content)), "\n")
				assert.Len(t, lines, 3) // header + 2 records
				assert.Equal(t, "game,contestant,score", lines[0])
				assert.Equal(t, "101,Alex,200", lines[1])
				assert.Equal(t, "101,Brenda,-400", lines[2])
			},
		},
		{
			name:     "write with BOM prefix",
			filePath: "test_bom.csv",
			options: WriteOptions{
				Headers:   []string{"game", "winner"},
				Records:   [][]string{{"101", "Alex"}},
				BOMPrefix: true,
			},
			validate: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				require.NoError(t, err)

				assert.True(t, bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}))

				lines := strings.Split(strings.TrimSpace(string(content[3:])), "\n")
				assert.Equal(t, "game,winner", lines[0])
				assert.Equal(t, "101,Alex", lines[1])
			},
		},
		{
			name:     "write without headers",
			filePath: "test_no_headers.csv",
			options: WriteOptions{
				Records: [][]string{
					{"a", "b"},
					{"c", "d"},
				},
			},
			validate: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				require.NoError(t, err)

				lines := strings.Split(strings.TrimSpace(string(content)), "\n")
				assert.Len(t, lines, 2)
			},
		},
		{
			name:     "empty records still write the header",
			filePath: "test_empty.csv",
			options: WriteOptions{
				Headers: []string{"col1", "col2"},
				Records: [][]string{},
			},
			validate: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				require.NoError(t, err)

				lines := strings.Split(strings.TrimSpace(string(content)), "\n")
				assert.Len(t, lines, 1)
				assert.Equal(t, "col1,col2", lines[0])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := writer.WriteCSV(tt.filePath, tt.options)
			require.NoError(t, err)
			tt.validate(t, filepath.Join(tempDir, "reports", tt.filePath))
		})
	}
}

func TestCSVWriter_AppendToCSV(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	filePath := "append_test.csv"
	err := writer.WriteSimpleCSV(filePath, []string{"game", "rank"}, [][]string{{"101", "1"}})
	require.NoError(t, err)

	err = writer.AppendToCSV(filePath, [][]string{{"102", "2"}})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(tempDir, "reports", filePath))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content[3:])), "\n")
	assert.Len(t, lines, 3) // header + initial + appended
	assert.Equal(t, "102,2", lines[2])
}

func TestCSVWriter_ResolvePath(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	tests := []struct {
		name      string
		inputPath string
		want      string
	}{
		{
			name:      "default to reports",
			inputPath: "summaries.csv",
			want:      filepath.Join(tempDir, "reports", "summaries.csv"),
		},
		{
			name:      "input prefix goes to the input dir",
			inputPath: "input/games.csv",
			want:      filepath.Join(tempDir, "input", "games.csv"),
		},
		{
			name:      "absolute path kept as-is",
			inputPath: filepath.Join(tempDir, "elsewhere", "out.csv"),
			want:      filepath.Join(tempDir, "elsewhere", "out.csv"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, writer.resolvePath(tt.inputPath))
		})
	}
}

func TestCSVWriter_SpecialCharacters(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	// Contestant fields can carry commas and quotes (occupations do)
	headers := []string{"first_name", "occupation", "home_city"}
	records := [][]string{
		{"Mary Ann", "writer, editor", "St. Paul"},
		{"José", `so-called "consultant"`, "Española"},
	}

	err := writer.WriteSimpleCSV("special_chars.csv", headers, records)
	require.NoError(t, err)

	file, err := os.Open(filepath.Join(tempDir, "reports", "special_chars.csv"))
	require.NoError(t, err)
	defer file.Close()

	// Skip BOM
	bom := make([]byte, 3)
	_, err = file.Read(bom)
	require.NoError(t, err)

	reader := csv.NewReader(file)
	allRecords, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, allRecords, 3)
	assert.Equal(t, headers, allRecords[0])
	assert.Equal(t, "writer, editor", allRecords[1][1])
	assert.Equal(t, `so-called "consultant"`, allRecords[2][1])
	assert.Equal(t, "José", allRecords[2][0])
}

func TestStreamWriter(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	stream, err := writer.CreateStreamWriter("streamed.csv", []string{"game", "clue", "contestant"})
	require.NoError(t, err)

	for clue := 1; clue <= 100; clue++ {
		require.NoError(t, stream.WriteRecord([]string{"101", formatInt(clue), "Alex"}))
	}
	require.NoError(t, stream.Close())

	content, err := os.ReadFile(filepath.Join(tempDir, "reports", "streamed.csv"))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}))
	lines := strings.Split(strings.TrimSpace(string(content[3:])), "\n")
	assert.Len(t, lines, 101) // header + 100 records
	assert.Equal(t, "101,100,Alex", lines[100])
}

func TestCSVWriter_CreatesMissingDirectories(t *testing.T) {
	writer, tempDir := setupTestEnv(t)

	err := writer.WriteSimpleCSV(filepath.Join("nested", "deep", "out.csv"),
		[]string{"col"}, [][]string{{"val"}})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(tempDir, "reports", "nested", "deep", "out.csv"))
	assert.NoError(t, err)
}
