package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteNarrative renders the season summary as a plain-text report.
func WriteNarrative(summary *SeasonSummary, outputPath string) error {
	if summary == nil {
		return fmt.Errorf("no season summary to write")
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create narrative directory: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create narrative file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "Season Report\n")
	fmt.Fprintf(file, "=============\n\n")
	fmt.Fprintf(file, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))

	fmt.Fprintf(file, "SEASON OVERVIEW\n")
	fmt.Fprintf(file, "---------------\n")
	fmt.Fprintf(file, "Games: %d\n", summary.Games)
	fmt.Fprintf(file, "Episodes: %d\n", summary.Episodes)
	fmt.Fprintf(file, "Contestants: %d\n", summary.Contestants)
	fmt.Fprintf(file, "Air Dates: %s to %s\n\n", summary.FirstAirDate, summary.LastAirDate)

	fmt.Fprintf(file, "SCORING\n")
	fmt.Fprintf(file, "-------\n")
	fmt.Fprintf(file, "Average winning score: %.0f\n", summary.AverageWinning)
	fmt.Fprintf(file, "Highest final: %d by %s (game %d", summary.HighestFinal.Score,
		summary.HighestFinal.Contestant, summary.HighestFinal.Game)
	if summary.HighestFinal.AirDate != "" {
		fmt.Fprintf(file, ", aired %s", summary.HighestFinal.AirDate)
	}
	fmt.Fprintf(file, ")\n")
	fmt.Fprintf(file, "Lowest final: %d by %s (game %d)\n", summary.LowestFinal.Score,
		summary.LowestFinal.Contestant, summary.LowestFinal.Game)
	fmt.Fprintf(file, "Daily doubles: %d\n", summary.DailyDoubles)
	fmt.Fprintf(file, "Clue rows filled in during densification: %.1f%%\n\n", summary.FilledShare*100)

	fmt.Fprintf(file, "ACCURACY\n")
	fmt.Fprintf(file, "--------\n")
	fmt.Fprintf(file, "Mean correct rate: %.4f\n", summary.CorrectRate.Mean)
	fmt.Fprintf(file, "Median correct rate: %.4f\n", summary.CorrectRate.Median)
	fmt.Fprintf(file, "Best single game: %.4f (%s)\n", summary.CorrectRate.Max, summary.CorrectRate.MaxBy)
	fmt.Fprintf(file, "Worst single game: %.4f (%s)\n", summary.CorrectRate.Min, summary.CorrectRate.MinBy)
	if summary.CorrectRate.Undefined > 0 {
		fmt.Fprintf(file, "Rows with no attempts (rate undefined): %d\n", summary.CorrectRate.Undefined)
	}
	fmt.Fprintf(file, "\n")

	if len(summary.AccuracyLeaders) > 0 {
		fmt.Fprintf(file, "ACCURACY LEADERS (season aggregate)\n")
		fmt.Fprintf(file, "-----------------------------------\n")
		for i, leader := range summary.AccuracyLeaders {
			fmt.Fprintf(file, "%2d. %s: %.4f (%d right, %d wrong)\n",
				i+1, leader.Name, leader.Rate, leader.Right, leader.Wrong)
		}
		fmt.Fprintf(file, "\n")
	}

	fmt.Fprintf(file, "TOP CONTESTANTS BY WINNINGS\n")
	fmt.Fprintf(file, "---------------------------\n")
	for i, st := range summary.Standings {
		if i >= 10 {
			break
		}
		fmt.Fprintf(file, "%2d. %s: %d (%d wins in %d games)\n",
			i+1, st.Name, st.Winnings, st.Wins, st.Games)
	}
	fmt.Fprintf(file, "\n")

	if len(summary.Streaks) > 0 {
		fmt.Fprintf(file, "LONGEST WIN STREAKS\n")
		fmt.Fprintf(file, "-------------------\n")
		for i, st := range summary.Streaks {
			fmt.Fprintf(file, "%2d. %s: %d in a row (through game %d)\n",
				i+1, st.Name, st.Streak, st.LastGame)
		}
		fmt.Fprintf(file, "\n")
	}

	if len(summary.Regions) > 0 {
		fmt.Fprintf(file, "WHERE CONTESTANTS CAME FROM\n")
		fmt.Fprintf(file, "---------------------------\n")
		for _, region := range []string{"northeast", "midwest", "south", "west", "other"} {
			if count := summary.Regions[region]; count > 0 {
				fmt.Fprintf(file, "%s: %d\n", region, count)
			}
		}
	}

	return nil
}
