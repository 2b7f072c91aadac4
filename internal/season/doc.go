// Package season implements the wrangling core of the report: it turns
// the four raw tables into the three enriched tables the exports and the
// report consume.
//
// # Architecture
//
// Three calculators run in sequence, each a pure transformation over
// immutable snapshots of its inputs:
//
// 1. Enricher: derives correct-answer rate, identifiers, joined biography
// fields and the per-game winner flag for the summary table
// 2. Completer: densifies the sparse score table into the full
// contestant-by-clue grid with cumulative scores, final scores and ranks
// 3. StreakCalculator: derives per-game winners from the dense grid and
// folds them into consecutive-win streaks on the player table
//
// # Usage
//
//	enricher := season.NewEnricher(logger)
//	summaries, _, err := enricher.Enrich(ctx, raw.Summaries, raw.Players)
//
//	completer := season.NewCompleter(logger)
//	clues, _, err := completer.Complete(ctx, raw.Scores)
//
//	calc := season.NewStreakCalculator(logger)
//	playerTable, _, err := calc.Calculate(ctx, clues, raw.Players, raw.Episodes)
//
// # Data Flow
//
//	Season tables → Enricher ┐
//	Season tables → Completer → StreakCalculator → enriched tables
//
// The enricher and the completer are independent of each other; the
// streak calculator needs the completer's output.
//
// # Missing values
//
// Three different kinds of "missing" flow through this package and they
// are deliberately not interchangeable:
//
//   - a missing score delta on the dense grid is a real zero
//   - an undefined correct rate (no attempts) is NaN, never zero
//   - a player row without a win carries no streak value at all, which
//     is not a streak of zero
//
// Recoverable data-quality conditions (unmatched joins, clue groups with
// no round donor) are surfaced through the stats structs and logged,
// never silently absorbed; every run recomputes everything from scratch,
// so identical inputs produce identical tables.
package season
