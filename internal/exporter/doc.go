// Package exporter provides CSV export functionality for the wrangled
// season tables.
//
// This package contains two main components:
//
// CSVWriter: Core CSV writing functionality with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility.
//
// SeasonExporter: Writes the three enriched tables (game summaries, dense
// clue scores, players with streaks) as column-stable CSV files under the
// reports directory. Exports carry no timestamps, and row order follows
// the tables, so the same season always produces byte-identical files.
//
// Cells with no defined value stay empty rather than turning into zeros:
// an undefined correct rate, the streak of a contestant who did not win,
// and the round of a clue group with nothing to back-fill from.
//
// Example usage:
//
//	exp := exporter.NewSeasonExporter(paths)
//	if err := exp.ExportAll(summaries, clues, players); err != nil {
//		return err
//	}
package exporter
