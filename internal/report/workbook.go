package report

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"showscore/internal/season"
	"showscore/pkg/contracts/domain"
)

// Sheet names in the report workbook
const (
	sheetOverview       = "Overview"
	sheetWinningScores  = "Winning Scores"
	sheetAccuracy       = "Accuracy"
	sheetTrajectories   = "Game Trajectories"
	sheetTopContestants = "Top Contestants"
	sheetStreaks        = "Streaks"
)

// ReportData carries everything the workbook renders.
type ReportData struct {
	Summary   *SeasonSummary
	Summaries *season.SummaryTable
	Clues     *season.ClueTable
	Players   *season.PlayerTable
	Episodes  []domain.Episode

	// FocusGame selects the game whose score trajectories get charted.
	// Zero means pick the game with the highest final score.
	FocusGame int
}

// WorkbookBuilder renders the season report workbook. Every sheet below
// the cover holds its chart next to the rows that feed it, so the
// numbers behind each picture stay inspectable.
type WorkbookBuilder struct {
	logger *slog.Logger
	topN   int
}

// NewWorkbookBuilder creates a workbook builder. topN caps the bar and
// column chart lists.
func NewWorkbookBuilder(logger *slog.Logger, topN int) *WorkbookBuilder {
	if logger == nil {
		logger = slog.Default()
	}
	if topN <= 0 {
		topN = 10
	}
	return &WorkbookBuilder{
		logger: logger.With(slog.String("component", "report-workbook")),
		topN:   topN,
	}
}

// Build writes the report workbook to outputPath.
func (b *WorkbookBuilder) Build(ctx context.Context, data ReportData, outputPath string) error {
	if data.Summary == nil {
		return fmt.Errorf("no season summary to render")
	}
	if data.Summaries == nil || data.Clues == nil {
		return fmt.Errorf("summary and clue tables are required")
	}

	b.logger.InfoContext(ctx, "building report workbook",
		slog.String("path", outputPath),
		slog.Int("games", data.Summary.Games))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetOverview); err != nil {
		return fmt.Errorf("rename cover sheet: %w", err)
	}
	if err := b.writeOverview(f, data.Summary); err != nil {
		return err
	}
	if err := b.writeWinningScores(ctx, f, data); err != nil {
		return err
	}
	if err := b.writeAccuracy(ctx, f, data.Summaries); err != nil {
		return err
	}
	if err := b.writeTrajectories(ctx, f, data); err != nil {
		return err
	}
	if err := b.writeTopContestants(ctx, f, data.Summary); err != nil {
		return err
	}
	if err := b.writeStreaks(ctx, f, data.Summary); err != nil {
		return err
	}

	idx, err := f.GetSheetIndex(sheetOverview)
	if err != nil {
		return fmt.Errorf("find cover sheet: %w", err)
	}
	f.SetActiveSheet(idx)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save report workbook: %w", err)
	}

	b.logger.InfoContext(ctx, "report workbook written", slog.String("path", outputPath))
	return nil
}

// writeOverview fills the cover sheet. The generated-at stamp lives here
// and only here; the data sheets stay deterministic.
func (b *WorkbookBuilder) writeOverview(f *excelize.File, summary *SeasonSummary) error {
	rows := [][]interface{}{
		{"Season Report"},
		{"Generated", time.Now().Format("2006-01-02 15:04:05")},
		{},
		{"Games", summary.Games},
		{"Episodes", summary.Episodes},
		{"Contestants", summary.Contestants},
		{"Air dates", fmt.Sprintf("%s to %s", summary.FirstAirDate, summary.LastAirDate)},
		{},
		{"Average winning score", summary.AverageWinning},
		{"Highest final", fmt.Sprintf("%d by %s (game %d)",
			summary.HighestFinal.Score, summary.HighestFinal.Contestant, summary.HighestFinal.Game)},
		{"Daily doubles", summary.DailyDoubles},
		{"Mean correct rate", summary.CorrectRate.Mean},
	}
	if len(summary.Streaks) > 0 {
		rows = append(rows, []interface{}{"Longest streak",
			fmt.Sprintf("%d by %s", summary.Streaks[0].Streak, summary.Streaks[0].Name)})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cover cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetOverview, cell, &row); err != nil {
			return fmt.Errorf("write cover row: %w", err)
		}
	}
	if err := f.SetColWidth(sheetOverview, "A", "A", 24); err != nil {
		return fmt.Errorf("size cover columns: %w", err)
	}
	return f.SetColWidth(sheetOverview, "B", "B", 36)
}

// writeWinningScores charts the winner's final score over the season.
func (b *WorkbookBuilder) writeWinningScores(ctx context.Context, f *excelize.File, data ReportData) error {
	if _, err := f.NewSheet(sheetWinningScores); err != nil {
		return fmt.Errorf("create winning-scores sheet: %w", err)
	}

	header := []interface{}{"air_date", "game", "winner", "winning_score"}
	if err := f.SetSheetRow(sheetWinningScores, "A1", &header); err != nil {
		return fmt.Errorf("write winning-scores header: %w", err)
	}

	dates := airDatesByGame(data.Episodes)
	winners := data.Summaries.Winners()
	for i, w := range winners {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("winning-scores cell name: %w", err)
		}
		row := []interface{}{dates[w.Game], w.Game, displayName(w), w.FinalScore}
		if err := f.SetSheetRow(sheetWinningScores, cell, &row); err != nil {
			return fmt.Errorf("write winning-scores row: %w", err)
		}
	}

	if len(winners) == 0 {
		b.logger.WarnContext(ctx, "no winners to chart, skipping winning-scores chart")
		return nil
	}

	last := len(winners) + 1
	err := f.AddChart(sheetWinningScores, "F2", &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       headerRef(sheetWinningScores, "D"),
			Categories: colRange(sheetWinningScores, "A", 2, last),
			Values:     colRange(sheetWinningScores, "D", 2, last),
		}},
		Title:  []excelize.RichTextRun{{Text: "Winning score by air date"}},
		Legend: excelize.ChartLegend{Position: "none"},
	})
	if err != nil {
		return fmt.Errorf("add winning-scores chart: %w", err)
	}

	note := []interface{}{"Each point is one game's winning final score, in broadcast order."}
	return b.writeNote(f, sheetWinningScores, len(winners)+3, note)
}

// writeAccuracy charts correct rate against final score, one point per
// summary row. Rows with an undefined rate have nothing to plot and are
// left out of the sheet.
func (b *WorkbookBuilder) writeAccuracy(ctx context.Context, f *excelize.File, summaries *season.SummaryTable) error {
	if _, err := f.NewSheet(sheetAccuracy); err != nil {
		return fmt.Errorf("create accuracy sheet: %w", err)
	}

	header := []interface{}{"contestant", "correct_rate", "final_score"}
	if err := f.SetSheetRow(sheetAccuracy, "A1", &header); err != nil {
		return fmt.Errorf("write accuracy header: %w", err)
	}

	n := 0
	for _, row := range summaries.Rows {
		if math.IsNaN(row.CorrectRate) {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return fmt.Errorf("accuracy cell name: %w", err)
		}
		values := []interface{}{displayName(row), row.CorrectRate, row.FinalScore}
		if err := f.SetSheetRow(sheetAccuracy, cell, &values); err != nil {
			return fmt.Errorf("write accuracy row: %w", err)
		}
		n++
	}

	if n == 0 {
		b.logger.WarnContext(ctx, "no defined correct rates, skipping accuracy chart")
		return nil
	}

	last := n + 1
	err := f.AddChart(sheetAccuracy, "E2", &excelize.Chart{
		Type: excelize.Scatter,
		Series: []excelize.ChartSeries{{
			Name:       headerRef(sheetAccuracy, "C"),
			Categories: colRange(sheetAccuracy, "B", 2, last),
			Values:     colRange(sheetAccuracy, "C", 2, last),
		}},
		Title:  []excelize.RichTextRun{{Text: "Correct rate vs final score"}},
		Legend: excelize.ChartLegend{Position: "none"},
		XAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Correct rate"}}},
		YAxis:  excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Final score"}}},
	})
	if err != nil {
		return fmt.Errorf("add accuracy chart: %w", err)
	}

	note := []interface{}{"One point per contestant per game. Games with no attempts are omitted."}
	return b.writeNote(f, sheetAccuracy, n+3, note)
}

// writeTrajectories charts the cumulative score of every contestant in
// the focus game, clue by clue.
func (b *WorkbookBuilder) writeTrajectories(ctx context.Context, f *excelize.File, data ReportData) error {
	if _, err := f.NewSheet(sheetTrajectories); err != nil {
		return fmt.Errorf("create trajectories sheet: %w", err)
	}

	game := b.resolveFocusGame(ctx, data)
	rows := data.Clues.GameRows(game)
	if len(rows) == 0 {
		b.logger.WarnContext(ctx, "no clue rows for focus game, skipping trajectories chart",
			slog.Int("game", game))
		return nil
	}

	// Rows arrive ordered by clue then contestant, with every contestant
	// present on every clue, so the table is a sequence of fixed-size
	// clue groups.
	contestants := make([]string, 0)
	for _, row := range rows {
		if row.Clue != rows[0].Clue {
			break
		}
		contestants = append(contestants, row.Contestant)
	}

	header := []interface{}{"clue"}
	for _, name := range contestants {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheetTrajectories, "A1", &header); err != nil {
		return fmt.Errorf("write trajectories header: %w", err)
	}

	group := len(contestants)
	clueCount := 0
	for start := 0; start < len(rows); start += group {
		values := []interface{}{rows[start].Clue}
		for i := 0; i < group; i++ {
			values = append(values, rows[start+i].CumulativeScore)
		}
		cell, err := excelize.CoordinatesToCellName(1, clueCount+2)
		if err != nil {
			return fmt.Errorf("trajectories cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetTrajectories, cell, &values); err != nil {
			return fmt.Errorf("write trajectories row: %w", err)
		}
		clueCount++
	}

	last := clueCount + 1
	series := make([]excelize.ChartSeries, 0, group)
	for i := range contestants {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return fmt.Errorf("trajectories column name: %w", err)
		}
		series = append(series, excelize.ChartSeries{
			Name:       headerRef(sheetTrajectories, col),
			Categories: colRange(sheetTrajectories, "A", 2, last),
			Values:     colRange(sheetTrajectories, col, 2, last),
		})
	}

	err := f.AddChart(sheetTrajectories, "G2", &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: fmt.Sprintf("Cumulative scores, game %d", game)}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	})
	if err != nil {
		return fmt.Errorf("add trajectories chart: %w", err)
	}

	note := []interface{}{"Running totals after every clue, including clues nobody answered."}
	return b.writeNote(f, sheetTrajectories, clueCount+3, note)
}

// writeTopContestants charts season winnings for the leading contestants.
func (b *WorkbookBuilder) writeTopContestants(ctx context.Context, f *excelize.File, summary *SeasonSummary) error {
	if _, err := f.NewSheet(sheetTopContestants); err != nil {
		return fmt.Errorf("create top-contestants sheet: %w", err)
	}

	header := []interface{}{"contestant", "winnings"}
	if err := f.SetSheetRow(sheetTopContestants, "A1", &header); err != nil {
		return fmt.Errorf("write top-contestants header: %w", err)
	}

	n := 0
	for _, st := range summary.Standings {
		if n >= b.topN || st.Winnings <= 0 {
			break
		}
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return fmt.Errorf("top-contestants cell name: %w", err)
		}
		row := []interface{}{st.Name, st.Winnings}
		if err := f.SetSheetRow(sheetTopContestants, cell, &row); err != nil {
			return fmt.Errorf("write top-contestants row: %w", err)
		}
		n++
	}

	if n == 0 {
		b.logger.WarnContext(ctx, "no winnings to chart, skipping top-contestants chart")
		return nil
	}

	last := n + 1
	err := f.AddChart(sheetTopContestants, "D2", &excelize.Chart{
		Type: excelize.Bar,
		Series: []excelize.ChartSeries{{
			Name:       headerRef(sheetTopContestants, "B"),
			Categories: colRange(sheetTopContestants, "A", 2, last),
			Values:     colRange(sheetTopContestants, "B", 2, last),
		}},
		Title:  []excelize.RichTextRun{{Text: "Top contestants by winnings"}},
		Legend: excelize.ChartLegend{Position: "none"},
	})
	if err != nil {
		return fmt.Errorf("add top-contestants chart: %w", err)
	}

	note := []interface{}{"Winnings are the final scores of games the contestant won."}
	return b.writeNote(f, sheetTopContestants, n+3, note)
}

// writeStreaks charts the longest win streaks of the season.
func (b *WorkbookBuilder) writeStreaks(ctx context.Context, f *excelize.File, summary *SeasonSummary) error {
	if _, err := f.NewSheet(sheetStreaks); err != nil {
		return fmt.Errorf("create streaks sheet: %w", err)
	}

	header := []interface{}{"contestant", "streak"}
	if err := f.SetSheetRow(sheetStreaks, "A1", &header); err != nil {
		return fmt.Errorf("write streaks header: %w", err)
	}

	n := 0
	for _, st := range summary.Streaks {
		if n >= b.topN {
			break
		}
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return fmt.Errorf("streaks cell name: %w", err)
		}
		row := []interface{}{st.Name, st.Streak}
		if err := f.SetSheetRow(sheetStreaks, cell, &row); err != nil {
			return fmt.Errorf("write streaks row: %w", err)
		}
		n++
	}

	if n == 0 {
		b.logger.WarnContext(ctx, "no streaks to chart, skipping streaks chart")
		return nil
	}

	last := n + 1
	err := f.AddChart(sheetStreaks, "D2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       headerRef(sheetStreaks, "B"),
			Categories: colRange(sheetStreaks, "A", 2, last),
			Values:     colRange(sheetStreaks, "B", 2, last),
		}},
		Title:  []excelize.RichTextRun{{Text: "Longest win streaks"}},
		Legend: excelize.ChartLegend{Position: "none"},
	})
	if err != nil {
		return fmt.Errorf("add streaks chart: %w", err)
	}

	note := []interface{}{"Consecutive wins in broadcast order. A returning champion's streak spans games."}
	return b.writeNote(f, sheetStreaks, n+3, note)
}

// writeNote drops a one-line commentary under a sheet's data block.
func (b *WorkbookBuilder) writeNote(f *excelize.File, sheet string, row int, note []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("note cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &note); err != nil {
		return fmt.Errorf("write note on %s: %w", sheet, err)
	}
	return nil
}

// resolveFocusGame picks the game to chart trajectories for. An explicit
// request wins if the clue table has it; otherwise the game with the
// season's highest final score, then the first game present.
func (b *WorkbookBuilder) resolveFocusGame(ctx context.Context, data ReportData) int {
	games := data.Clues.Games()
	if len(games) == 0 {
		return 0
	}

	present := make(map[int]bool, len(games))
	for _, g := range games {
		present[g] = true
	}

	if data.FocusGame > 0 {
		if present[data.FocusGame] {
			return data.FocusGame
		}
		b.logger.WarnContext(ctx, "requested focus game has no clue rows, falling back",
			slog.Int("game", data.FocusGame))
	}
	if present[data.Summary.HighestFinal.Game] {
		return data.Summary.HighestFinal.Game
	}
	return games[0]
}

// headerRef points a chart series name at a column's header cell.
func headerRef(sheet, col string) string {
	return fmt.Sprintf("'%s'!$%s$1", sheet, col)
}

// colRange builds an absolute single-column range reference.
func colRange(sheet, col string, from, to int) string {
	return fmt.Sprintf("'%s'!$%s$%d:$%s$%d", sheet, col, from, col, to)
}
