package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"showscore/internal/config"
	apperrors "showscore/internal/errors"
	"showscore/pkg/contracts/domain"
)

// normalizeHeader folds a header cell to canonical snake_case so the
// column switches below match exports from different tools. Strips the
// UTF-8 BOM that Excel prepends to the first cell.
func normalizeHeader(value string) string {
	h := strings.TrimPrefix(value, "\uFEFF")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}

// missingColumn builds the parsing failure for a required column that is
// absent from the header row, naming both the source and the column.
func missingColumn(source, column string) error {
	return apperrors.NewParsingError(
		fmt.Sprintf("%s: missing required column %q", source, column), nil).
		WithContext("source", source).
		WithContext("column", column)
}

// cell returns the trimmed value at idx, or "" when the record is too
// short or the column was never mapped. Workbook rows drop trailing empty
// cells, so short records are normal for optional columns.
func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// isBlank reports whether every cell in the record is empty.
func isBlank(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

// parseAmount parses a signed currency cell, tolerating "$" and thousands
// separators ("-$1,200" parses as -1200).
func parseAmount(value string) (int, error) {
	v := strings.ReplaceAll(value, ",", "")
	v = strings.ReplaceAll(v, "$", "")
	return strconv.Atoi(strings.TrimSpace(v))
}

// parseRound parses a round cell. Empty means the source row does not
// carry the round; densification back-fills it later.
func parseRound(value string) (domain.Round, error) {
	if value == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		r := domain.Round(n)
		if !r.IsValid() {
			return 0, fmt.Errorf("round %d out of range", n)
		}
		return r, nil
	}
	switch strings.ToLower(value) {
	case "single":
		return domain.RoundSingle, nil
	case "double":
		return domain.RoundDouble, nil
	case "final":
		return domain.RoundFinal, nil
	}
	return 0, fmt.Errorf("unrecognized round %q", value)
}

// parseFlag parses a boolean cell. Anything not recognizably true is false.
func parseFlag(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "t", "yes", "y":
		return true
	}
	return false
}

// parseGameSummaries converts raw table records into summary rows. The
// first record must be the header; columns may appear in any order. Rows
// with malformed values are skipped and counted rather than failing the
// whole load.
func parseGameSummaries(source string, records [][]string) ([]domain.GameSummary, int, error) {
	if len(records) == 0 {
		return nil, 0, apperrors.NewParsingError(fmt.Sprintf("%s: table has no header row", source), nil)
	}

	gameIdx, nameIdx, scoreIdx, rightIdx, wrongIdx := -1, -1, -1, -1, -1
	for i, col := range records[0] {
		switch normalizeHeader(col) {
		case "game", "game_id":
			gameIdx = i
		case "first_name", "contestant", "player":
			nameIdx = i
		case "final_score", "winnings":
			scoreIdx = i
		case "right", "correct":
			rightIdx = i
		case "wrong", "incorrect":
			wrongIdx = i
		}
	}
	for _, col := range []struct {
		name string
		idx  int
	}{
		{"game", gameIdx},
		{"first_name", nameIdx},
		{"final_score", scoreIdx},
		{"right", rightIdx},
		{"wrong", wrongIdx},
	} {
		if col.idx == -1 {
			return nil, 0, missingColumn(source, col.name)
		}
	}

	var summaries []domain.GameSummary
	skipped := 0
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		game, err := strconv.Atoi(cell(record, gameIdx))
		if err != nil {
			skipped++
			continue
		}
		name := cell(record, nameIdx)
		if name == "" {
			skipped++
			continue
		}
		finalScore, err := parseAmount(cell(record, scoreIdx))
		if err != nil {
			skipped++
			continue
		}
		right, err := strconv.Atoi(cell(record, rightIdx))
		if err != nil {
			skipped++
			continue
		}
		wrong, err := strconv.Atoi(cell(record, wrongIdx))
		if err != nil {
			skipped++
			continue
		}
		summaries = append(summaries, domain.GameSummary{
			Game:       game,
			FirstName:  name,
			FinalScore: finalScore,
			Right:      right,
			Wrong:      wrong,
		})
	}
	return summaries, skipped, nil
}

// parseClueScores converts raw records into sparse score rows. Round and
// daily_double are optional columns: the source carries them only on rows
// of contestants who responded, and a workbook without them still loads
// (every clue group then surfaces as donor-less during completion).
func parseClueScores(source string, records [][]string) ([]domain.ClueScore, int, error) {
	if len(records) == 0 {
		return nil, 0, apperrors.NewParsingError(fmt.Sprintf("%s: table has no header row", source), nil)
	}

	gameIdx, roundIdx, clueIdx, nameIdx, scoreIdx, ddIdx := -1, -1, -1, -1, -1, -1
	for i, col := range records[0] {
		switch normalizeHeader(col) {
		case "game", "game_id":
			gameIdx = i
		case "round":
			roundIdx = i
		case "clue", "clue_index", "clue_number":
			clueIdx = i
		case "contestant", "first_name", "player", "name":
			nameIdx = i
		case "score", "score_delta", "value", "change":
			scoreIdx = i
		case "daily_double", "dd", "is_daily_double":
			ddIdx = i
		}
	}
	for _, col := range []struct {
		name string
		idx  int
	}{
		{"game", gameIdx},
		{"clue", clueIdx},
		{"contestant", nameIdx},
		{"score", scoreIdx},
	} {
		if col.idx == -1 {
			return nil, 0, missingColumn(source, col.name)
		}
	}

	var scores []domain.ClueScore
	skipped := 0
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		game, err := strconv.Atoi(cell(record, gameIdx))
		if err != nil {
			skipped++
			continue
		}
		clue, err := strconv.Atoi(cell(record, clueIdx))
		if err != nil {
			skipped++
			continue
		}
		name := cell(record, nameIdx)
		if name == "" {
			skipped++
			continue
		}
		round, err := parseRound(cell(record, roundIdx))
		if err != nil {
			skipped++
			continue
		}
		// An empty score cell on a present row is a zero delta, the same
		// treatment densification gives absent rows.
		score := 0
		if v := cell(record, scoreIdx); v != "" {
			score, err = parseAmount(v)
			if err != nil {
				skipped++
				continue
			}
		}
		scores = append(scores, domain.ClueScore{
			Game:        game,
			Round:       round,
			Clue:        clue,
			Contestant:  name,
			Score:       score,
			DailyDouble: parseFlag(cell(record, ddIdx)),
		})
	}
	return scores, skipped, nil
}

// parsePlayers converts raw records into player biography rows. Only the
// join key (game, first name) is required; biography columns are optional.
func parsePlayers(source string, records [][]string) ([]domain.Player, int, error) {
	if len(records) == 0 {
		return nil, 0, apperrors.NewParsingError(fmt.Sprintf("%s: table has no header row", source), nil)
	}

	gameIdx, firstIdx, lastIdx, occIdx, cityIdx, stateIdx := -1, -1, -1, -1, -1, -1
	for i, col := range records[0] {
		switch normalizeHeader(col) {
		case "game", "game_id":
			gameIdx = i
		case "first_name", "first":
			firstIdx = i
		case "last_name", "last", "surname":
			lastIdx = i
		case "occupation":
			occIdx = i
		case "home_city", "city":
			cityIdx = i
		case "home_state", "state":
			stateIdx = i
		}
	}
	for _, col := range []struct {
		name string
		idx  int
	}{
		{"game", gameIdx},
		{"first_name", firstIdx},
	} {
		if col.idx == -1 {
			return nil, 0, missingColumn(source, col.name)
		}
	}

	var players []domain.Player
	skipped := 0
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		game, err := strconv.Atoi(cell(record, gameIdx))
		if err != nil {
			skipped++
			continue
		}
		first := cell(record, firstIdx)
		if first == "" {
			skipped++
			continue
		}
		players = append(players, domain.Player{
			Game:       game,
			FirstName:  first,
			LastName:   cell(record, lastIdx),
			Occupation: cell(record, occIdx),
			HomeCity:   cell(record, cityIdx),
			HomeState:  cell(record, stateIdx),
		})
	}
	return players, skipped, nil
}

// parseEpisodes converts raw records into broadcast metadata rows. The
// air date drives chronological ordering downstream, so a row with an
// unparseable date is worthless and gets skipped.
func parseEpisodes(source string, records [][]string) ([]domain.Episode, int, error) {
	if len(records) == 0 {
		return nil, 0, apperrors.NewParsingError(fmt.Sprintf("%s: table has no header row", source), nil)
	}

	gameIdx, showIdx, dateIdx := -1, -1, -1
	for i, col := range records[0] {
		switch normalizeHeader(col) {
		case "game", "game_id":
			gameIdx = i
		case "show", "show_number", "episode":
			showIdx = i
		case "air_date", "aired", "date":
			dateIdx = i
		}
	}
	for _, col := range []struct {
		name string
		idx  int
	}{
		{"game", gameIdx},
		{"air_date", dateIdx},
	} {
		if col.idx == -1 {
			return nil, 0, missingColumn(source, col.name)
		}
	}

	var episodes []domain.Episode
	skipped := 0
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		game, err := strconv.Atoi(cell(record, gameIdx))
		if err != nil {
			skipped++
			continue
		}
		airDate, err := time.Parse(config.AirDateFormat, cell(record, dateIdx))
		if err != nil {
			skipped++
			continue
		}
		show, _ := strconv.Atoi(cell(record, showIdx))
		episodes = append(episodes, domain.Episode{
			Game:    game,
			Show:    show,
			AirDate: airDate,
		})
	}
	return episodes, skipped, nil
}
