package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteNarrative(t *testing.T) {
	summaries, clues, players, episodes := reportFixture()
	s := NewSummarizer(testLogger(), DefaultSummarizerConfig())
	summary, err := s.Generate(context.Background(), summaries, clues, players, episodes)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "reports", "season_summary.txt")
	require.NoError(t, WriteNarrative(summary, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	t.Run("sections present", func(t *testing.T) {
		for _, section := range []string{
			"SEASON OVERVIEW",
			"SCORING",
			"ACCURACY",
			"ACCURACY LEADERS",
			"TOP CONTESTANTS BY WINNINGS",
			"LONGEST WIN STREAKS",
			"WHERE CONTESTANTS CAME FROM",
		} {
			assert.Contains(t, text, section)
		}
	})

	t.Run("headline numbers", func(t *testing.T) {
		assert.Contains(t, text, "Games: 3")
		assert.Contains(t, text, "Contestants: 5")
		assert.Contains(t, text, "Air Dates: 2004-09-06 to 2004-09-08")
		assert.Contains(t, text, "Highest final: 1200 by Alex Smith (game 101, aired 2004-09-06)")
		assert.Contains(t, text, "Lowest final: -100 by Carl Young (game 101)")
		assert.Contains(t, text, "Rows with no attempts (rate undefined): 1")
	})

	t.Run("rankings", func(t *testing.T) {
		assert.Contains(t, text, " 1. Alex Smith: 1800 (2 wins in 3 games)")
		assert.Contains(t, text, " 1. Alex Smith: 2 in a row (through game 102)")
		assert.Contains(t, text, "west: 3")
	})

	t.Run("generated stamp", func(t *testing.T) {
		assert.Contains(t, text, "Generated: ")
	})
}

func TestWriteNarrativeWithoutSummary(t *testing.T) {
	err := WriteNarrative(nil, filepath.Join(t.TempDir(), "out.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no season summary")
}

func TestWriteNarrativeOmitsEmptySections(t *testing.T) {
	summary := &SeasonSummary{
		Games:        1,
		FirstAirDate: "N/A",
		LastAirDate:  "N/A",
		Regions:      map[string]int{},
	}
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, WriteNarrative(summary, path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.False(t, strings.Contains(text, "LONGEST WIN STREAKS"))
	assert.False(t, strings.Contains(text, "ACCURACY LEADERS"))
	assert.False(t, strings.Contains(text, "WHERE CONTESTANTS CAME FROM"))
	assert.Contains(t, text, "SEASON OVERVIEW")
}
