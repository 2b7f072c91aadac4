package domain

import (
	"fmt"
	"sort"
	"time"
)

// Season is the Single Source of Truth for one season's raw tables.
// All loaders, calculators and exporters operate on this structure; the
// four slices hold source rows exactly as read, in file order, and are
// never mutated after loading. Derived columns live in computation
// outputs, not here.
//
// The tables relate through the game number:
//   - Summaries: one row per (game, contestant), final results
//   - Scores:    sparse rows per (game, clue, contestant)
//   - Players:   one row per (game, contestant), biography
//   - Episodes:  one row per game, broadcast metadata
type Season struct {
	Summaries []GameSummary `json:"summaries" validate:"required,dive"`
	Scores    []ClueScore   `json:"scores" validate:"required,dive"`
	Players   []Player      `json:"players" validate:"dive"`
	Episodes  []Episode     `json:"episodes" validate:"dive"`
}

// IsEmpty reports whether the season carries no summary and no score rows.
// Player and episode tables are auxiliary and may legitimately be empty.
func (s *Season) IsEmpty() bool {
	return len(s.Summaries) == 0 && len(s.Scores) == 0
}

// Games returns the distinct game numbers across the summary and score
// tables, ascending.
func (s *Season) Games() []int {
	seen := make(map[int]bool)
	for _, row := range s.Summaries {
		seen[row.Game] = true
	}
	for _, row := range s.Scores {
		seen[row.Game] = true
	}
	games := make([]int, 0, len(seen))
	for g := range seen {
		games = append(games, g)
	}
	sort.Ints(games)
	return games
}

// AirDate returns the broadcast date for a game and whether an episode
// row exists for it.
func (s *Season) AirDate(game int) (time.Time, bool) {
	for _, ep := range s.Episodes {
		if ep.Game == game {
			return ep.AirDate, true
		}
	}
	return time.Time{}, false
}

// SeasonCounts holds per-table row counts, used by diagnostics output.
type SeasonCounts struct {
	Summaries int `json:"summaries"`
	Scores    int `json:"scores"`
	Players   int `json:"players"`
	Episodes  int `json:"episodes"`
	Games     int `json:"games"`
}

// Counts returns the per-table row counts for the season.
func (s *Season) Counts() SeasonCounts {
	return SeasonCounts{
		Summaries: len(s.Summaries),
		Scores:    len(s.Scores),
		Players:   len(s.Players),
		Episodes:  len(s.Episodes),
		Games:     len(s.Games()),
	}
}

// SeasonFilter restricts a season to a contiguous range of game numbers.
// Zero bounds leave that side open. Filtering happens once at the load
// boundary so every downstream table sees the same game set.
type SeasonFilter struct {
	GameFrom int `json:"game_from,omitempty"`
	GameTo   int `json:"game_to,omitempty"`
}

// IsZero reports whether the filter passes everything through.
func (f SeasonFilter) IsZero() bool {
	return f.GameFrom == 0 && f.GameTo == 0
}

// Validate checks that the bounds form a sensible range.
func (f SeasonFilter) Validate() error {
	if f.GameFrom < 0 || f.GameTo < 0 {
		return fmt.Errorf("game bounds cannot be negative: from=%d to=%d", f.GameFrom, f.GameTo)
	}
	if f.GameFrom > 0 && f.GameTo > 0 && f.GameFrom > f.GameTo {
		return fmt.Errorf("game range is inverted: from=%d to=%d", f.GameFrom, f.GameTo)
	}
	return nil
}

// match reports whether a game number falls inside the filter range.
func (f SeasonFilter) match(game int) bool {
	if f.GameFrom > 0 && game < f.GameFrom {
		return false
	}
	if f.GameTo > 0 && game > f.GameTo {
		return false
	}
	return true
}

// Apply returns a new season containing only rows whose game number falls
// inside the filter range. A zero filter returns the input unchanged.
func (f SeasonFilter) Apply(s *Season) *Season {
	if f.IsZero() {
		return s
	}
	out := &Season{}
	for _, row := range s.Summaries {
		if f.match(row.Game) {
			out.Summaries = append(out.Summaries, row)
		}
	}
	for _, row := range s.Scores {
		if f.match(row.Game) {
			out.Scores = append(out.Scores, row)
		}
	}
	for _, row := range s.Players {
		if f.match(row.Game) {
			out.Players = append(out.Players, row)
		}
	}
	for _, row := range s.Episodes {
		if f.match(row.Game) {
			out.Episodes = append(out.Episodes, row)
		}
	}
	return out
}
