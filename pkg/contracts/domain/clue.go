package domain

import "fmt"

// Round identifies which segment of a game a clue belongs to.
type Round int

const (
	// RoundSingle is the opening round with base clue values.
	RoundSingle Round = 1
	// RoundDouble is the second round where clue values double.
	RoundDouble Round = 2
	// RoundFinal is the closing round with a single wagered clue.
	RoundFinal Round = 3
)

// IsValid reports whether the round is one of the three game segments.
func (r Round) IsValid() bool {
	return r >= RoundSingle && r <= RoundFinal
}

// String returns a human-readable round name.
func (r Round) String() string {
	switch r {
	case RoundSingle:
		return "single"
	case RoundDouble:
		return "double"
	case RoundFinal:
		return "final"
	default:
		return fmt.Sprintf("round(%d)", int(r))
	}
}

// ClueScore represents a single contestant's score change on one clue.
// The source table is sparse: it carries a row only for contestants who
// responded to the clue, and the round and daily-double flag appear only
// on those rows even though both are properties of the clue itself.
type ClueScore struct {
	Game        int    `json:"game" csv:"game" validate:"required,min=1"`
	Round       Round  `json:"round" csv:"round" validate:"omitempty,min=1,max=3"`
	Clue        int    `json:"clue" csv:"clue" validate:"required,min=1"`
	Contestant  string `json:"contestant" csv:"contestant" validate:"required"`
	Score       int    `json:"score" csv:"score"`
	DailyDouble bool   `json:"daily_double" csv:"daily_double"`
}

// Key returns the (game, clue, contestant) identity of the row.
func (c ClueScore) Key() ClueKey {
	return ClueKey{Game: c.Game, Clue: c.Clue, Contestant: c.Contestant}
}

// ClueKey uniquely identifies one cell of the dense clue grid.
type ClueKey struct {
	Game       int
	Clue       int
	Contestant string
}
