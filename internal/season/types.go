package season

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"showscore/pkg/contracts/domain"
)

// EnrichedSummary is a game summary row with the derived columns attached.
// Source fields are never mutated; enrichment only adds.
type EnrichedSummary struct {
	domain.GameSummary

	// RowID is the row sequence within one computation, assigned in input
	// order starting at 1. Stable only for that computation.
	RowID int `json:"row_id" csv:"row_id"`

	// ContestantID is the deterministic synthetic identifier, stable
	// across reruns and distinct for different people sharing a first name.
	ContestantID string `json:"contestant_id" csv:"contestant_id"`

	// LastName and Occupation come from the player table via a left join
	// on (game, first name); both stay empty when no player row matches.
	LastName   string `json:"last_name" csv:"last_name"`
	Occupation string `json:"occupation" csv:"occupation"`

	// CorrectRate is right/(right+wrong). NaN when the contestant never
	// answered; consumers must not read NaN as zero.
	CorrectRate float64 `json:"correct_rate" csv:"correct_rate"`

	// Winner marks the row with the highest final score in its game.
	Winner bool `json:"winner" csv:"winner"`
}

// CompletedClueScore is one cell of the dense clue grid with the running
// totals and the per-game rank attached.
type CompletedClueScore struct {
	domain.ClueScore

	// CumulativeScore is the prefix sum of score deltas for this
	// (game, contestant) ordered by clue index.
	CumulativeScore int `json:"cumulative_score" csv:"cumulative_score"`

	// FinalScore is the cumulative score at the last clue of the game,
	// repeated on every row of the (game, contestant) group.
	FinalScore int `json:"final_score" csv:"final_score"`

	// Rank is the dense rank by descending final score within the game.
	// Tied final scores share a rank and the next distinct score takes
	// the next integer.
	Rank int `json:"rank" csv:"rank"`

	// Filled marks rows created during densification for contestants who
	// did not respond to the clue.
	Filled bool `json:"filled" csv:"filled"`
}

// EnrichedPlayer is a player biography row joined with the win and streak
// columns. Streak is meaningful only when Winner is true; a contestant who
// did not win the game has no streak value at all, which is different from
// a streak of zero.
type EnrichedPlayer struct {
	domain.Player

	ContestantID string `json:"contestant_id" csv:"contestant_id"`
	Winner       bool   `json:"winner" csv:"winner"`
	Streak       int    `json:"streak,omitempty" csv:"streak"`
}

// SummaryTable holds enriched summary rows in source row order.
type SummaryTable struct {
	Rows []EnrichedSummary
}

// ByFinalScore returns a copy of the rows sorted by final score descending
// for presentation consumers. Ties order by game then row id so the result
// is reproducible.
func (t *SummaryTable) ByFinalScore() []EnrichedSummary {
	rows := make([]EnrichedSummary, len(t.Rows))
	copy(rows, t.Rows)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].FinalScore != rows[j].FinalScore {
			return rows[i].FinalScore > rows[j].FinalScore
		}
		if rows[i].Game != rows[j].Game {
			return rows[i].Game < rows[j].Game
		}
		return rows[i].RowID < rows[j].RowID
	})
	return rows
}

// Winners returns the winning row of each game, ascending by game number.
func (t *SummaryTable) Winners() []EnrichedSummary {
	var winners []EnrichedSummary
	for _, row := range t.Rows {
		if row.Winner {
			winners = append(winners, row)
		}
	}
	sort.Slice(winners, func(i, j int) bool {
		return winners[i].Game < winners[j].Game
	})
	return winners
}

// ClueTable holds the dense clue grid sorted by (game, clue, contestant).
type ClueTable struct {
	Rows []CompletedClueScore
}

// Games returns the distinct game numbers in the table, ascending.
func (t *ClueTable) Games() []int {
	var games []int
	for i, row := range t.Rows {
		if i == 0 || row.Game != t.Rows[i-1].Game {
			games = append(games, row.Game)
		}
	}
	return games
}

// GameRows returns the rows of one game. The result aliases the table's
// backing array; callers must not modify it.
func (t *ClueTable) GameRows(game int) []CompletedClueScore {
	start := sort.Search(len(t.Rows), func(i int) bool { return t.Rows[i].Game >= game })
	end := sort.Search(len(t.Rows), func(i int) bool { return t.Rows[i].Game > game })
	return t.Rows[start:end]
}

// PlayerTable holds player rows joined with win and streak columns, in
// source row order.
type PlayerTable struct {
	Rows []EnrichedPlayer
}

// EnrichStats summarizes one summary-enrichment run.
type EnrichStats struct {
	Rows                int `json:"rows"`
	Games               int `json:"games"`
	UnmatchedSummaries  int `json:"unmatched_summaries"`
	DuplicatePlayerKeys int `json:"duplicate_player_keys"`
	ZeroAttemptRows     int `json:"zero_attempt_rows"`
}

// CompletionStats summarizes one densification run.
type CompletionStats struct {
	SparseRows     int `json:"sparse_rows"`
	DenseRows      int `json:"dense_rows"`
	FilledRows     int `json:"filled_rows"`
	DuplicateRows  int `json:"duplicate_rows"`
	Games          int `json:"games"`
	UndonatedClues int `json:"undonated_clues"`
}

// StreakStats summarizes one win-streak run.
type StreakStats struct {
	Games            int    `json:"games"`
	DistinctWinners  int    `json:"distinct_winners"`
	RankOneTies      int    `json:"rank_one_ties"`
	UnmatchedWinners int    `json:"unmatched_winners"`
	FallbackOrdered  int    `json:"fallback_ordered"`
	LongestStreak    int    `json:"longest_streak"`
	LongestStreakBy  string `json:"longest_streak_by"`
}

// personKey identifies one person across games for debut lookup.
type personKey struct {
	first string
	last  string
}

func personOf(firstName, lastName string) personKey {
	return personKey{
		first: strings.ToLower(strings.TrimSpace(firstName)),
		last:  strings.ToLower(strings.TrimSpace(lastName)),
	}
}

// debutGames returns the earliest game number for each person in the
// player table.
func debutGames(players []domain.Player) map[personKey]int {
	debuts := make(map[personKey]int, len(players))
	for _, p := range players {
		key := personOf(p.FirstName, p.LastName)
		if cur, ok := debuts[key]; !ok || p.Game < cur {
			debuts[key] = p.Game
		}
	}
	return debuts
}

// ContestantID derives the stable synthetic identifier for a contestant
// as a name-based UUID over the normalized name and debut game. Two
// people sharing a first name in different games stay distinct, and
// reruns over the same season produce identical identifiers.
func ContestantID(firstName, lastName string, debutGame int) string {
	name := fmt.Sprintf("contestant|%s|%s|%d",
		strings.ToLower(strings.TrimSpace(firstName)),
		strings.ToLower(strings.TrimSpace(lastName)),
		debutGame)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}
