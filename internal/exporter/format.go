package exporter

import (
	"fmt"
	"math"

	"showscore/pkg/contracts/domain"
)

// formatRate formats a correct rate for CSV output with 4 decimal places.
// An undefined rate (no attempts, NaN) becomes an empty cell rather than 0.
func formatRate(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return fmt.Sprintf("%.4f", f)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}

// formatStreak formats the win-streak column. Rows of contestants who did
// not win their game have no streak value, which is not the same thing as
// a streak of zero, so the cell stays empty.
func formatStreak(winner bool, streak int) string {
	if !winner {
		return ""
	}
	return fmt.Sprintf("%d", streak)
}

// formatRound formats a round number, leaving the cell empty for clue
// groups where no row carried a round to back-fill from.
func formatRound(r domain.Round) string {
	if !r.IsValid() {
		return ""
	}
	return fmt.Sprintf("%d", int(r))
}

// formatBool formats a boolean value for CSV output
func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
