// Package report turns the wrangled season tables into the two report
// artifacts: an xlsx workbook with chart sheets and a plain-text
// narrative summary.
//
// The Summarizer computes every season-level aggregate once, and both
// renderers read from that SeasonSummary, so the text and the workbook
// always agree. Each chart sheet keeps its source rows on the sheet
// beside the chart.
//
// The workbook cover and the narrative header carry a generated-at
// stamp. Nothing else in either artifact depends on the clock, and the
// CSV table exports never do.
package report
