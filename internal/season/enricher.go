package season

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"showscore/pkg/contracts/domain"
)

// Enricher derives the computed summary columns: correct-answer rate, row
// and contestant identifiers, joined biography fields and the per-game
// winner flag.
type Enricher struct {
	logger *slog.Logger
}

// NewEnricher creates a summary enricher. A nil logger falls back to
// slog.Default().
func NewEnricher(logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{logger: logger.With(slog.String("component", "enricher"))}
}

// Enrich computes the derived columns for the summary table.
//
// Player biography joins by (game, first name) and keeps every summary
// row: unmatched rows get empty biography fields and count toward
// EnrichStats.UnmatchedSummaries rather than failing the run. The winner
// flag comes from an explicit per-game maximum of final scores, with ties
// going to the earliest row, independent of any ordering a caller applies
// afterwards.
func (e *Enricher) Enrich(ctx context.Context, summaries []domain.GameSummary, players []domain.Player) (*SummaryTable, EnrichStats, error) {
	start := time.Now()
	stats := EnrichStats{}

	if len(summaries) == 0 {
		return nil, stats, fmt.Errorf("no summary rows provided")
	}

	e.logger.InfoContext(ctx, "enriching game summaries",
		slog.Int("summary_rows", len(summaries)),
		slog.Int("player_rows", len(players)))

	type playerKey struct {
		game  int
		first string
	}
	byKey := make(map[playerKey]domain.Player, len(players))
	for _, p := range players {
		key := playerKey{game: p.Game, first: p.FirstName}
		if _, dup := byKey[key]; dup {
			stats.DuplicatePlayerKeys++
			continue
		}
		byKey[key] = p
	}
	debuts := debutGames(players)

	rows := make([]EnrichedSummary, 0, len(summaries))
	for i, s := range summaries {
		row := EnrichedSummary{GameSummary: s, RowID: i + 1}

		if p, ok := byKey[playerKey{game: s.Game, first: s.FirstName}]; ok {
			row.LastName = p.LastName
			row.Occupation = p.Occupation
			row.ContestantID = ContestantID(s.FirstName, p.LastName, debuts[personOf(s.FirstName, p.LastName)])
		} else {
			// No biography for this row. The identifier still has to be
			// stable, so it derives from the row's own game.
			stats.UnmatchedSummaries++
			row.ContestantID = ContestantID(s.FirstName, "", s.Game)
		}

		if s.Attempts() == 0 {
			row.CorrectRate = math.NaN()
			stats.ZeroAttemptRows++
		} else {
			row.CorrectRate = float64(s.Right) / float64(s.Attempts())
		}

		rows = append(rows, row)
	}

	// Winner by grouped maximum. Strictly-greater comparison means a tie
	// keeps the earlier row, i.e. the smallest RowID among tied scores.
	winnerByGame := make(map[int]int, len(rows))
	for i, row := range rows {
		best, ok := winnerByGame[row.Game]
		if !ok || row.FinalScore > rows[best].FinalScore {
			winnerByGame[row.Game] = i
		}
	}
	for _, idx := range winnerByGame {
		rows[idx].Winner = true
	}

	stats.Rows = len(rows)
	stats.Games = len(winnerByGame)

	if stats.UnmatchedSummaries > 0 {
		e.logger.WarnContext(ctx, "summary rows without player biography",
			slog.Int("unmatched", stats.UnmatchedSummaries))
	}
	e.logger.InfoContext(ctx, "summary enrichment completed",
		slog.Int("rows", stats.Rows),
		slog.Int("games", stats.Games),
		slog.Int("zero_attempt_rows", stats.ZeroAttemptRows),
		slog.Duration("duration", time.Since(start)))

	return &SummaryTable{Rows: rows}, stats, nil
}
