package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"showscore/internal/config"
)

// tableFileRe matches file names that could plausibly hold a season table.
var tableFileRe = regexp.MustCompile(config.TableFilePattern)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides file discovery over a dataset directory
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindTableFiles finds all candidate table files (csv or xlsx) in the
// specified directory, sorted by name. Office temp files and files whose
// names could not be a table are skipped.
func (d *Discovery) FindTableFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolveDir(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			continue
		}
		if !tableFileRe.MatchString(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	// Table files carry fixed names, so name order is the stable listing
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// Well-known logical table names used as keys by FindSeasonTables.
const (
	TableGames    = "games"
	TableScores   = "scores"
	TablePlayers  = "players"
	TableEpisodes = "episodes"
	TableWorkbook = "workbook"
)

// FindSeasonTables maps each season input table present in the directory
// to its file. CSV tables key by logical name; the single-workbook
// alternative keys as TableWorkbook. A missing table simply has no entry.
func (d *Discovery) FindSeasonTables(dir string) (map[string]FileInfo, error) {
	fullPath := d.resolveDir(dir)

	wellKnown := map[string]string{
		TableGames:    config.GamesFileName,
		TableScores:   config.ScoresFileName,
		TablePlayers:  config.PlayersFileName,
		TableEpisodes: config.EpisodesFileName,
		TableWorkbook: config.DefaultWorkbookName,
	}

	tables := make(map[string]FileInfo)
	for table, fileName := range wellKnown {
		path := filepath.Join(fullPath, fileName)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		tables[table] = FileInfo{
			Path:    path,
			Name:    fileName,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
	}

	return tables, nil
}

// resolveDir resolves a directory against the base path unless absolute
func (d *Discovery) resolveDir(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	if dir == "" || dir == "." {
		return d.basePath
	}
	return filepath.Join(d.basePath, dir)
}

// GetLatestFile returns the most recently modified file from a list
func GetLatestFile(files []FileInfo) (FileInfo, bool) {
	if len(files) == 0 {
		return FileInfo{}, false
	}

	latest := files[0]
	for _, file := range files[1:] {
		if file.ModTime.After(latest.ModTime) {
			latest = file
		}
	}

	return latest, true
}
