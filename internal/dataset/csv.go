package dataset

import (
	"encoding/csv"
	"fmt"
	"os"

	apperrors "showscore/internal/errors"
	"showscore/pkg/contracts/domain"
)

// readRecords slurps a CSV file into raw records. Field counts are not
// enforced here; the per-table parsers skip short rows themselves.
func readRecords(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read %s", path), err)
	}
	return records, nil
}

// ReadGameSummaries loads the per-game summary table from a CSV file.
// The second return value is the number of malformed rows skipped.
func ReadGameSummaries(path string) ([]domain.GameSummary, int, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, 0, err
	}
	return parseGameSummaries(path, records)
}

// ReadClueScores loads the sparse per-clue score table from a CSV file.
func ReadClueScores(path string) ([]domain.ClueScore, int, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, 0, err
	}
	return parseClueScores(path, records)
}

// ReadPlayers loads the player biography table from a CSV file.
func ReadPlayers(path string) ([]domain.Player, int, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, 0, err
	}
	return parsePlayers(path, records)
}

// ReadEpisodes loads the broadcast metadata table from a CSV file.
func ReadEpisodes(path string) ([]domain.Episode, int, error) {
	records, err := readRecords(path)
	if err != nil {
		return nil, 0, err
	}
	return parseEpisodes(path, records)
}
