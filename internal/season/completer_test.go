package season

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showscore/pkg/contracts/domain"
)

func TestCompleterComplete(t *testing.T) {
	scores := []domain.ClueScore{
		{Game: 101, Round: domain.RoundSingle, Clue: 1, Contestant: "Alex", Score: 200},
		{Game: 101, Round: domain.RoundSingle, Clue: 2, Contestant: "Brenda", Score: 400},
		{Game: 101, Round: domain.RoundSingle, Clue: 2, Contestant: "Carl", Score: -100},
		{Game: 101, Round: domain.RoundDouble, Clue: 3, Contestant: "Alex", Score: 1000, DailyDouble: true},
		{Game: 101, Round: domain.RoundFinal, Clue: 4, Contestant: "Brenda", Score: 100},
	}

	t.Run("produces the full contestant by clue grid", func(t *testing.T) {
		table, stats, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
		require.NoError(t, err)

		// 3 contestants and 4 distinct clues in game 101.
		assert.Len(t, table.Rows, 12)
		assert.Equal(t, 12, stats.DenseRows)
		assert.Equal(t, 7, stats.FilledRows)
		assert.Equal(t, 5, stats.SparseRows)
		assert.Equal(t, 1, stats.Games)
	})

	t.Run("back-fills clue attributes from the responding row", func(t *testing.T) {
		table, _, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
		require.NoError(t, err)

		// Only Alex responded to clue 3, a daily double in the second
		// round. Everyone's clue 3 row must carry both attributes.
		for _, contestant := range []string{"Alex", "Brenda", "Carl"} {
			row, ok := findRow(table, 101, 3, contestant)
			require.True(t, ok, "missing clue 3 row for %s", contestant)
			assert.Equal(t, domain.RoundDouble, row.Round, "round for %s", contestant)
			assert.True(t, row.DailyDouble, "daily double for %s", contestant)
		}
	})

	t.Run("zero fills scores of contestants who did not respond", func(t *testing.T) {
		table, _, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
		require.NoError(t, err)

		row, ok := findRow(table, 101, 1, "Brenda")
		require.True(t, ok)
		assert.Equal(t, 0, row.Score)
		assert.True(t, row.Filled)

		row, ok = findRow(table, 101, 1, "Alex")
		require.True(t, ok)
		assert.Equal(t, 200, row.Score)
		assert.False(t, row.Filled)
	})

	t.Run("orders rows by game, clue, contestant", func(t *testing.T) {
		table, _, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
		require.NoError(t, err)

		assert.True(t, sort.SliceIsSorted(table.Rows, func(i, j int) bool {
			a, b := table.Rows[i], table.Rows[j]
			if a.Game != b.Game {
				return a.Game < b.Game
			}
			if a.Clue != b.Clue {
				return a.Clue < b.Clue
			}
			return a.Contestant < b.Contestant
		}))
	})

	t.Run("cumulative score is the prefix sum by clue", func(t *testing.T) {
		table, _, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
		require.NoError(t, err)

		wantAlex := map[int]int{1: 200, 2: 200, 3: 1200, 4: 1200}
		wantBrenda := map[int]int{1: 0, 2: 400, 3: 400, 4: 500}
		for clue, want := range wantAlex {
			row, _ := findRow(table, 101, clue, "Alex")
			assert.Equal(t, want, row.CumulativeScore, "Alex clue %d", clue)
		}
		for clue, want := range wantBrenda {
			row, _ := findRow(table, 101, clue, "Brenda")
			assert.Equal(t, want, row.CumulativeScore, "Brenda clue %d", clue)
		}
	})

	t.Run("final score repeats the last cumulative on every row", func(t *testing.T) {
		table, _, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
		require.NoError(t, err)

		for _, row := range table.Rows {
			switch row.Contestant {
			case "Alex":
				assert.Equal(t, 1200, row.FinalScore)
			case "Brenda":
				assert.Equal(t, 500, row.FinalScore)
			case "Carl":
				assert.Equal(t, -100, row.FinalScore)
			}
		}
	})

	t.Run("ranks contestants by descending final score", func(t *testing.T) {
		table, _, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
		require.NoError(t, err)

		for _, row := range table.Rows {
			switch row.Contestant {
			case "Alex":
				assert.Equal(t, 1, row.Rank)
			case "Brenda":
				assert.Equal(t, 2, row.Rank)
			case "Carl":
				assert.Equal(t, 3, row.Rank)
			}
		}
	})

	t.Run("fails without score rows", func(t *testing.T) {
		_, _, err := NewCompleter(testLogger()).Complete(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestCompleterSparseScenario(t *testing.T) {
	// One responding contestant at one clue; the absent contestant must
	// gain a complete zero row with the clue attributes copied over.
	scores := []domain.ClueScore{
		{Game: 101, Round: domain.RoundSingle, Clue: 1, Contestant: "A", Score: 200, DailyDouble: true},
		{Game: 101, Round: domain.RoundSingle, Clue: 2, Contestant: "B", Score: 100},
	}

	table, _, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
	require.NoError(t, err)

	row, ok := findRow(table, 101, 1, "B")
	require.True(t, ok, "densification must create B's clue 1 row")
	assert.Equal(t, 0, row.Score)
	assert.Equal(t, domain.RoundSingle, row.Round)
	assert.True(t, row.DailyDouble)
	assert.True(t, row.Filled)
}

func TestCompleterTiedFinalScoresShareDenseRank(t *testing.T) {
	scores := []domain.ClueScore{
		{Game: 7, Round: domain.RoundSingle, Clue: 1, Contestant: "Alex", Score: 30000},
		{Game: 7, Round: domain.RoundSingle, Clue: 1, Contestant: "Brenda", Score: 30000},
		{Game: 7, Round: domain.RoundSingle, Clue: 1, Contestant: "Carl", Score: 5000},
	}

	table, _, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
	require.NoError(t, err)

	ranks := make(map[string]int)
	for _, row := range table.Rows {
		ranks[row.Contestant] = row.Rank
	}
	assert.Equal(t, map[string]int{"Alex": 1, "Brenda": 1, "Carl": 2}, ranks)
}

func TestCompleterSurfacesCluesWithoutRoundDonor(t *testing.T) {
	scores := []domain.ClueScore{
		// Nobody carries the round for clue 1.
		{Game: 101, Clue: 1, Contestant: "Alex", Score: 200},
		{Game: 101, Round: domain.RoundSingle, Clue: 2, Contestant: "Brenda", Score: 400},
	}

	table, stats, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.UndonatedClues)

	// The gap stays visible instead of being masked with a guess.
	row, ok := findRow(table, 101, 1, "Alex")
	require.True(t, ok)
	assert.False(t, row.Round.IsValid())
}

func TestCompleterCountsDuplicateRows(t *testing.T) {
	scores := []domain.ClueScore{
		{Game: 101, Round: domain.RoundSingle, Clue: 1, Contestant: "Alex", Score: 200},
		{Game: 101, Round: domain.RoundSingle, Clue: 1, Contestant: "Alex", Score: 999},
	}

	table, stats, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DuplicateRows)

	row, ok := findRow(table, 101, 1, "Alex")
	require.True(t, ok)
	assert.Equal(t, 200, row.Score, "first occurrence wins")
}

func TestCompleterOutputIndependentOfInputOrder(t *testing.T) {
	scores := []domain.ClueScore{
		{Game: 101, Round: domain.RoundSingle, Clue: 1, Contestant: "Alex", Score: 200},
		{Game: 101, Round: domain.RoundSingle, Clue: 2, Contestant: "Brenda", Score: 400},
		{Game: 102, Round: domain.RoundDouble, Clue: 1, Contestant: "Carl", Score: -600, DailyDouble: true},
	}
	reversed := make([]domain.ClueScore, 0, len(scores))
	for i := len(scores) - 1; i >= 0; i-- {
		reversed = append(reversed, scores[i])
	}

	first, _, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
	require.NoError(t, err)
	second, _, err := NewCompleter(testLogger()).Complete(context.Background(), reversed)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
}

func TestCompleterIdempotent(t *testing.T) {
	scores := []domain.ClueScore{
		{Game: 101, Round: domain.RoundSingle, Clue: 1, Contestant: "Alex", Score: 200},
		{Game: 101, Round: domain.RoundSingle, Clue: 2, Contestant: "Brenda", Score: 400},
	}

	first, firstStats, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
	require.NoError(t, err)
	second, secondStats, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, firstStats, secondStats)
}

func TestDenseRanks(t *testing.T) {
	tests := []struct {
		name   string
		finals map[string]int
		want   map[string]int
	}{
		{
			name:   "distinct scores",
			finals: map[string]int{"a": 300, "b": 200, "c": 100},
			want:   map[string]int{"a": 1, "b": 2, "c": 3},
		},
		{
			name:   "tie at the top is dense",
			finals: map[string]int{"a": 30000, "b": 30000, "c": 5000},
			want:   map[string]int{"a": 1, "b": 1, "c": 2},
		},
		{
			name:   "tie in the middle",
			finals: map[string]int{"a": 500, "b": 200, "c": 200, "d": -100},
			want:   map[string]int{"a": 1, "b": 2, "c": 2, "d": 3},
		},
		{
			name:   "negative scores rank last",
			finals: map[string]int{"a": 0, "b": -400},
			want:   map[string]int{"a": 1, "b": 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, denseRanks(tt.finals))
		})
	}
}

func TestClueTableGameRows(t *testing.T) {
	scores := []domain.ClueScore{
		{Game: 101, Round: domain.RoundSingle, Clue: 1, Contestant: "Alex", Score: 200},
		{Game: 102, Round: domain.RoundSingle, Clue: 1, Contestant: "Brenda", Score: 400},
		{Game: 102, Round: domain.RoundSingle, Clue: 2, Contestant: "Brenda", Score: 100},
	}
	table, _, err := NewCompleter(testLogger()).Complete(context.Background(), scores)
	require.NoError(t, err)

	assert.Equal(t, []int{101, 102}, table.Games())
	assert.Len(t, table.GameRows(101), 1)
	assert.Len(t, table.GameRows(102), 2)
	assert.Empty(t, table.GameRows(999))
}

func findRow(table *ClueTable, game, clue int, contestant string) (CompletedClueScore, bool) {
	for _, row := range table.Rows {
		if row.Game == game && row.Clue == clue && row.Contestant == contestant {
			return row, true
		}
	}
	return CompletedClueScore{}, false
}
