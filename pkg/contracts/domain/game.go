package domain

// GameSummary represents one contestant's result line for a single game.
// This is the primary data structure for season summary-table entries.
// The source table identifies contestants by first name only; enrichment
// joins the full player record and assigns a stable synthetic identifier.
type GameSummary struct {
	Game       int    `json:"game" csv:"game" validate:"required,min=1"`
	FirstName  string `json:"first_name" csv:"first_name" validate:"required"`
	FinalScore int    `json:"final_score" csv:"final_score"`
	Right      int    `json:"right" csv:"right" validate:"min=0"`
	Wrong      int    `json:"wrong" csv:"wrong" validate:"min=0"`
}

// Attempts returns the total number of clue responses, right or wrong.
// A contestant who never buzzed in has zero attempts; rate calculations
// over zero attempts are undefined rather than zero.
func (g GameSummary) Attempts() int {
	return g.Right + g.Wrong
}

// GameSummaryFilter represents filters for narrowing summary rows before
// processing. Zero values mean no filtering on that dimension.
type GameSummaryFilter struct {
	GameFrom   int      `json:"game_from,omitempty"`
	GameTo     int      `json:"game_to,omitempty"`
	FirstNames []string `json:"first_names,omitempty"`
}

// Match reports whether the summary row passes the filter.
func (f GameSummaryFilter) Match(g GameSummary) bool {
	if f.GameFrom > 0 && g.Game < f.GameFrom {
		return false
	}
	if f.GameTo > 0 && g.Game > f.GameTo {
		return false
	}
	if len(f.FirstNames) > 0 {
		found := false
		for _, name := range f.FirstNames {
			if name == g.FirstName {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
