package season

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"showscore/pkg/contracts/domain"
)

// Completer expands the sparse score table into the dense clue grid:
// every contestant appearing in a game gets exactly one row per clue
// index present in that game, with running cumulative scores, the final
// score and the per-game dense rank attached.
type Completer struct {
	logger *slog.Logger
}

// NewCompleter creates a clue-score completer. A nil logger falls back to
// slog.Default().
func NewCompleter(logger *slog.Logger) *Completer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Completer{logger: logger.With(slog.String("component", "completer"))}
}

// gameClue identifies one clue of one game.
type gameClue struct {
	game int
	clue int
}

// Complete densifies the sparse score rows.
//
// Missing cells get a zero score delta. The round and daily-double flag
// are properties of the clue, so every row of a (game, clue) group takes
// them from a donor row in that group that carries a valid round; the
// donor is the row with the smallest contestant name, which keeps the
// output identical under any permutation of the input. A group with no
// donor at all is a data-quality condition: it is counted, logged and
// left unfilled rather than masked.
func (c *Completer) Complete(ctx context.Context, scores []domain.ClueScore) (*ClueTable, CompletionStats, error) {
	start := time.Now()
	stats := CompletionStats{SparseRows: len(scores)}

	if len(scores) == 0 {
		return nil, stats, fmt.Errorf("no score rows provided")
	}

	c.logger.InfoContext(ctx, "completing clue scores",
		slog.Int("sparse_rows", len(scores)))

	// Index the sparse rows and collect the clue and contestant sets per
	// game for the dense cross-product.
	sparse := make(map[domain.ClueKey]domain.ClueScore, len(scores))
	cluesByGame := make(map[int]map[int]bool)
	contestantsByGame := make(map[int]map[string]bool)
	donors := make(map[gameClue]domain.ClueScore)

	for _, row := range scores {
		key := row.Key()
		if _, dup := sparse[key]; dup {
			stats.DuplicateRows++
		} else {
			sparse[key] = row
		}

		if cluesByGame[row.Game] == nil {
			cluesByGame[row.Game] = make(map[int]bool)
		}
		cluesByGame[row.Game][row.Clue] = true

		if contestantsByGame[row.Game] == nil {
			contestantsByGame[row.Game] = make(map[string]bool)
		}
		contestantsByGame[row.Game][row.Contestant] = true

		if row.Round.IsValid() {
			gc := gameClue{game: row.Game, clue: row.Clue}
			if cur, ok := donors[gc]; !ok || row.Contestant < cur.Contestant {
				donors[gc] = row
			}
		}
	}

	games := make([]int, 0, len(cluesByGame))
	for game := range cluesByGame {
		games = append(games, game)
	}
	sort.Ints(games)
	stats.Games = len(games)

	// Build the dense grid. The nested ascending loops emit rows already
	// ordered by (game, clue, contestant).
	var rows []CompletedClueScore
	for _, game := range games {
		clues := sortedInts(cluesByGame[game])
		contestants := sortedStrings(contestantsByGame[game])

		for _, clue := range clues {
			donor, hasDonor := donors[gameClue{game: game, clue: clue}]
			if !hasDonor {
				stats.UndonatedClues++
				c.logger.WarnContext(ctx, "clue group has no row carrying round",
					slog.Int("game", game),
					slog.Int("clue", clue))
			}

			for _, contestant := range contestants {
				key := domain.ClueKey{Game: game, Clue: clue, Contestant: contestant}
				var row CompletedClueScore
				if src, ok := sparse[key]; ok {
					row = CompletedClueScore{ClueScore: src}
				} else {
					row = CompletedClueScore{
						ClueScore: domain.ClueScore{
							Game:       game,
							Clue:       clue,
							Contestant: contestant,
						},
						Filled: true,
					}
					stats.FilledRows++
				}
				if !row.Round.IsValid() && hasDonor {
					row.Round = donor.Round
					row.DailyDouble = donor.DailyDouble
				}
				rows = append(rows, row)
			}
		}
	}

	// Running totals as a fold over the ordered rows: within a game the
	// rows ascend by clue, so accumulating per contestant yields the
	// prefix sums, and the accumulated total at the end of the game is
	// each contestant's final score.
	for i := 0; i < len(rows); {
		j := i
		for j < len(rows) && rows[j].Game == rows[i].Game {
			j++
		}
		gameRows := rows[i:j]

		totals := make(map[string]int)
		for k := range gameRows {
			totals[gameRows[k].Contestant] += gameRows[k].Score
			gameRows[k].CumulativeScore = totals[gameRows[k].Contestant]
		}

		ranks := denseRanks(totals)
		for k := range gameRows {
			gameRows[k].FinalScore = totals[gameRows[k].Contestant]
			gameRows[k].Rank = ranks[gameRows[k].Contestant]
		}

		i = j
	}

	stats.DenseRows = len(rows)

	c.logger.InfoContext(ctx, "clue completion finished",
		slog.Int("games", stats.Games),
		slog.Int("dense_rows", stats.DenseRows),
		slog.Int("filled_rows", stats.FilledRows),
		slog.Int("undonated_clues", stats.UndonatedClues),
		slog.Int("duplicate_rows", stats.DuplicateRows),
		slog.Duration("duration", time.Since(start)))

	return &ClueTable{Rows: rows}, stats, nil
}

// denseRanks assigns 1-based dense ranks by descending final score: tied
// scores share a rank and the next distinct score takes the next integer,
// so {30000, 30000, 5000} ranks as {1, 1, 2}.
func denseRanks(finalScores map[string]int) map[string]int {
	distinct := make([]int, 0, len(finalScores))
	seen := make(map[int]bool, len(finalScores))
	for _, score := range finalScores {
		if !seen[score] {
			seen[score] = true
			distinct = append(distinct, score)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(distinct)))

	rankOf := make(map[int]int, len(distinct))
	for i, score := range distinct {
		rankOf[score] = i + 1
	}

	ranks := make(map[string]int, len(finalScores))
	for contestant, score := range finalScores {
		ranks[contestant] = rankOf[score]
	}
	return ranks
}

func sortedInts(set map[int]bool) []int {
	values := make([]int, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

func sortedStrings(set map[string]bool) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
