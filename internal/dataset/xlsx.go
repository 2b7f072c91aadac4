package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"showscore/internal/config"
	apperrors "showscore/internal/errors"
	"showscore/pkg/contracts/domain"
)

// sheetRecords returns the rows of the named sheet. Lookup falls back to
// a case-insensitive scan because hand-edited workbooks rarely keep exact
// sheet names.
func sheetRecords(f *excelize.File, name string) ([][]string, error) {
	if rows, err := f.GetRows(name); err == nil {
		return rows, nil
	}
	for _, candidate := range f.GetSheetList() {
		if strings.EqualFold(strings.TrimSpace(candidate), name) {
			return f.GetRows(candidate)
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("sheet %q", name))
}

func sheetSource(path, sheet string) string {
	return fmt.Sprintf("%s#%s", path, sheet)
}

// ReadWorkbook loads all four season tables from one xlsx workbook with a
// sheet per table. The second return value is the total number of
// malformed rows skipped across all sheets.
func ReadWorkbook(path string) (*domain.Season, int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, 0, apperrors.NewStorageError(fmt.Sprintf("failed to open workbook %s", path), err)
	}
	defer f.Close()

	season := &domain.Season{}
	skipped := 0

	records, err := sheetRecords(f, config.SheetGames)
	if err != nil {
		return nil, 0, err
	}
	summaries, n, err := parseGameSummaries(sheetSource(path, config.SheetGames), records)
	if err != nil {
		return nil, 0, err
	}
	season.Summaries = summaries
	skipped += n

	records, err = sheetRecords(f, config.SheetScores)
	if err != nil {
		return nil, 0, err
	}
	scores, n, err := parseClueScores(sheetSource(path, config.SheetScores), records)
	if err != nil {
		return nil, 0, err
	}
	season.Scores = scores
	skipped += n

	records, err = sheetRecords(f, config.SheetPlayers)
	if err != nil {
		return nil, 0, err
	}
	players, n, err := parsePlayers(sheetSource(path, config.SheetPlayers), records)
	if err != nil {
		return nil, 0, err
	}
	season.Players = players
	skipped += n

	records, err = sheetRecords(f, config.SheetEpisodes)
	if err != nil {
		return nil, 0, err
	}
	episodes, n, err := parseEpisodes(sheetSource(path, config.SheetEpisodes), records)
	if err != nil {
		return nil, 0, err
	}
	season.Episodes = episodes
	skipped += n

	return season, skipped, nil
}
