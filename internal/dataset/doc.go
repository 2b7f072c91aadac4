// Package dataset loads the four raw season tables (game summaries, clue
// scores, players, episodes) from CSV files or from a single xlsx workbook
// with one sheet per table.
//
// Readers map columns by header name rather than position, skip and count
// rows with malformed values, and fail fast when a required column is
// missing. The Loader wraps the readers with concurrent file IO, per-row
// schema validation and structured logging; downstream packages receive a
// validated domain.Season and never touch raw records.
package dataset
