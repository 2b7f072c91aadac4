package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"showscore/internal/config"
)

// Manager provides file management operations around the data layout
type Manager struct {
	paths *config.Paths
}

// NewManager creates a new file manager instance
func NewManager(paths *config.Paths) *Manager {
	return &Manager{paths: paths}
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	fullPath := m.resolvePath(path)
	info, err := os.Stat(fullPath)
	exists := err == nil && !info.IsDir()

	slog.Debug("FileExists check",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Bool("exists", exists))

	return exists
}

// EnsureDirectory creates a directory if it doesn't exist
func (m *Manager) EnsureDirectory(path string) error {
	fullPath := m.resolvePath(path)

	slog.Debug("Ensuring directory exists",
		slog.String("path", path),
		slog.String("full_path", fullPath))

	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return os.MkdirAll(fullPath, 0755)
	}
	return nil
}

// GetFileSize returns the size of a file in bytes
func (m *Manager) GetFileSize(path string) (int64, error) {
	fullPath := m.resolvePath(path)
	info, err := os.Stat(fullPath)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ArtifactInfo describes one report output on disk
type ArtifactInfo struct {
	Name string
	Path string
	Size int64
}

// ReportArtifacts stats the well-known report outputs under dir and
// returns the ones that exist, in presentation order.
func (m *Manager) ReportArtifacts(dir string) []ArtifactInfo {
	names := []string{
		config.SummariesExportName,
		config.ClueScoresExportName,
		config.PlayersExportName,
		config.ReportWorkbookName,
		config.NarrativeFileName,
	}

	var artifacts []ArtifactInfo
	for _, name := range names {
		path := filepath.Join(m.resolvePath(dir), name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		artifacts = append(artifacts, ArtifactInfo{
			Name: name,
			Path: path,
			Size: info.Size(),
		})
	}

	return artifacts
}

// resolvePath resolves a path relative to the appropriate base directory
func (m *Manager) resolvePath(path string) string {
	// If the path is already absolute, return it as-is
	if filepath.IsAbs(path) {
		return path
	}
	if m.paths == nil {
		return path
	}

	// Determine which directory to use based on the path
	switch {
	case strings.HasPrefix(path, "input/"):
		return m.paths.GetInputPath(strings.TrimPrefix(path, "input/"))
	case strings.HasPrefix(path, "reports/"):
		return m.paths.GetReportPath(strings.TrimPrefix(path, "reports/"))
	case strings.HasPrefix(path, "logs/"):
		return m.paths.GetLogPath(strings.TrimPrefix(path, "logs/"))
	default:
		// For files in the data directory
		return filepath.Join(m.paths.DataDir, path)
	}
}

// FormatSize renders a byte count in human-readable form
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
