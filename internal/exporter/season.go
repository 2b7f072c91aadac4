package exporter

import (
	"fmt"

	"showscore/internal/config"
	"showscore/internal/season"
)

// SeasonExporter writes the wrangled season tables as column-stable CSV
// files. Row order comes straight from the tables, which are already
// deterministic, so identical inputs produce byte-identical exports.
// None of the table files carry a timestamp.
type SeasonExporter struct {
	csvWriter *CSVWriter
}

// NewSeasonExporter creates a new season table exporter
func NewSeasonExporter(paths *config.Paths) *SeasonExporter {
	return &SeasonExporter{
		csvWriter: NewCSVWriter(paths),
	}
}

// ExportAll writes the three enriched tables to their well-known report
// file names.
func (e *SeasonExporter) ExportAll(summaries *season.SummaryTable, clues *season.ClueTable, players *season.PlayerTable) error {
	if err := e.ExportSummaries(summaries, config.SummariesExportName); err != nil {
		return err
	}
	if err := e.ExportClueScores(clues, config.ClueScoresExportName); err != nil {
		return err
	}
	return e.ExportPlayers(players, config.PlayersExportName)
}

// ExportSummaries writes the enriched game-summary table
func (e *SeasonExporter) ExportSummaries(table *season.SummaryTable, filePath string) error {
	records := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, summaryToCSVRow(row))
	}

	if err := e.csvWriter.WriteSimpleCSV(filePath, summaryHeaders(), records); err != nil {
		return fmt.Errorf("failed to write summaries export: %w", err)
	}
	return nil
}

// ExportClueScores writes the dense clue-score table. This is by far the
// largest export (every clue of every game times every contestant), so it
// goes through the streaming writer instead of building the full record
// slice in memory.
func (e *SeasonExporter) ExportClueScores(table *season.ClueTable, filePath string) error {
	stream, err := e.csvWriter.CreateStreamWriter(filePath, clueScoreHeaders())
	if err != nil {
		return fmt.Errorf("failed to create clue-score stream: %w", err)
	}

	for _, row := range table.Rows {
		if err := stream.WriteRecord(clueScoreToCSVRow(row)); err != nil {
			stream.Close()
			return fmt.Errorf("failed to write clue-score record: %w", err)
		}
	}

	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close clue-score stream: %w", err)
	}
	return nil
}

// ExportPlayers writes the player table with the win-streak columns
func (e *SeasonExporter) ExportPlayers(table *season.PlayerTable, filePath string) error {
	records := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, playerToCSVRow(row))
	}

	if err := e.csvWriter.WriteSimpleCSV(filePath, playerHeaders(), records); err != nil {
		return fmt.Errorf("failed to write players export: %w", err)
	}
	return nil
}

// summaryHeaders returns the CSV headers for the enriched summary table
func summaryHeaders() []string {
	return []string{
		"row_id", "game", "contestant_id", "first_name", "last_name",
		"occupation", "final_score", "right", "wrong", "correct_rate", "winner",
	}
}

// summaryToCSVRow converts an enriched summary to a CSV row
func summaryToCSVRow(row season.EnrichedSummary) []string {
	return []string{
		formatInt(row.RowID),
		formatInt(row.Game),
		row.ContestantID,
		row.FirstName,
		row.LastName,
		row.Occupation,
		formatInt(row.FinalScore),
		formatInt(row.Right),
		formatInt(row.Wrong),
		formatRate(row.CorrectRate),
		formatBool(row.Winner),
	}
}

// clueScoreHeaders returns the CSV headers for the dense clue-score table
func clueScoreHeaders() []string {
	return []string{
		"game", "round", "clue", "contestant", "score", "daily_double",
		"cumulative_score", "final_score", "rank", "filled",
	}
}

// clueScoreToCSVRow converts a completed clue score to a CSV row
func clueScoreToCSVRow(row season.CompletedClueScore) []string {
	return []string{
		formatInt(row.Game),
		formatRound(row.Round),
		formatInt(row.Clue),
		row.Contestant,
		formatInt(row.Score),
		formatBool(row.DailyDouble),
		formatInt(row.CumulativeScore),
		formatInt(row.FinalScore),
		formatInt(row.Rank),
		formatBool(row.Filled),
	}
}

// playerHeaders returns the CSV headers for the enriched player table
func playerHeaders() []string {
	return []string{
		"game", "contestant_id", "first_name", "last_name", "occupation",
		"home_city", "home_state", "winner", "streak",
	}
}

// playerToCSVRow converts an enriched player to a CSV row
func playerToCSVRow(row season.EnrichedPlayer) []string {
	return []string{
		formatInt(row.Game),
		row.ContestantID,
		row.FirstName,
		row.LastName,
		row.Occupation,
		row.HomeCity,
		row.HomeState,
		formatBool(row.Winner),
		formatStreak(row.Winner, row.Streak),
	}
}
