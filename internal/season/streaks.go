package season

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"showscore/pkg/contracts/domain"
)

// StreakCalculator derives per-game winners from the completed clue table
// and folds them into consecutive-win streaks, joined back onto the
// player table.
type StreakCalculator struct {
	logger *slog.Logger
}

// NewStreakCalculator creates a streak calculator. A nil logger falls
// back to slog.Default().
func NewStreakCalculator(logger *slog.Logger) *StreakCalculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &StreakCalculator{logger: logger.With(slog.String("component", "streaks"))}
}

// Calculate determines each game's winner and the streak length at every
// win, then joins (winner, streak) onto the player rows by
// (game, first name).
//
// The winner is the rank-1 contestant of the completed clue table; a
// genuine tie at rank 1 goes to the lexicographically smallest name and
// is counted in StreakStats.RankOneTies. Games order chronologically by
// episode air date. When any game lacks an episode row the whole season
// falls back to game-number order, since interleaving dated and undated
// games has no defensible chronology; the fallback is logged and counted.
//
// A player row whose contestant did not win that game keeps Winner false
// and carries no streak value. That is an explicit non-value: losing a
// game is not the same as a streak of zero.
func (s *StreakCalculator) Calculate(ctx context.Context, clues *ClueTable, players []domain.Player, episodes []domain.Episode) (*PlayerTable, StreakStats, error) {
	start := time.Now()
	stats := StreakStats{}

	if clues == nil || len(clues.Rows) == 0 {
		return nil, stats, fmt.Errorf("no completed clue rows provided")
	}
	if len(players) == 0 {
		return nil, stats, fmt.Errorf("no player rows provided")
	}

	s.logger.InfoContext(ctx, "calculating win streaks",
		slog.Int("clue_rows", len(clues.Rows)),
		slog.Int("player_rows", len(players)),
		slog.Int("episode_rows", len(episodes)))

	// Winner per game from the rank-1 rows. Every clue row of a
	// contestant carries the same rank, so collecting names into a set
	// both dedupes and exposes genuine ties.
	rankOne := make(map[int]map[string]bool)
	for _, row := range clues.Rows {
		if row.Rank != 1 {
			continue
		}
		if rankOne[row.Game] == nil {
			rankOne[row.Game] = make(map[string]bool)
		}
		rankOne[row.Game][row.Contestant] = true
	}

	winnerByGame := make(map[int]string, len(rankOne))
	for game, candidates := range rankOne {
		if len(candidates) > 1 {
			stats.RankOneTies++
		}
		winner := ""
		for name := range candidates {
			if winner == "" || name < winner {
				winner = name
			}
		}
		winnerByGame[game] = winner
	}
	stats.Games = len(winnerByGame)

	games := s.chronologicalGames(ctx, winnerByGame, episodes, &stats)

	// Streak fold: one winner per game, so a streak continues only while
	// the same contestant wins back-to-back games in season order.
	streakAtGame := make(map[int]int, len(games))
	prevWinner := ""
	streak := 0
	for _, game := range games {
		winner := winnerByGame[game]
		if winner == prevWinner {
			streak++
		} else {
			streak = 1
		}
		streakAtGame[game] = streak
		prevWinner = winner

		if streak > stats.LongestStreak {
			stats.LongestStreak = streak
			stats.LongestStreakBy = winner
		}
	}

	distinct := make(map[string]bool, len(winnerByGame))
	for _, winner := range winnerByGame {
		distinct[winner] = true
	}
	stats.DistinctWinners = len(distinct)

	// Join back onto the player table.
	debuts := debutGames(players)
	matchedWins := make(map[int]bool, len(winnerByGame))
	rows := make([]EnrichedPlayer, 0, len(players))
	for _, p := range players {
		row := EnrichedPlayer{
			Player:       p,
			ContestantID: ContestantID(p.FirstName, p.LastName, debuts[personOf(p.FirstName, p.LastName)]),
		}
		if winnerByGame[p.Game] == p.FirstName {
			row.Winner = true
			row.Streak = streakAtGame[p.Game]
			matchedWins[p.Game] = true
		}
		rows = append(rows, row)
	}
	for game := range winnerByGame {
		if !matchedWins[game] {
			stats.UnmatchedWinners++
		}
	}
	if stats.UnmatchedWinners > 0 {
		s.logger.WarnContext(ctx, "winners without a matching player row",
			slog.Int("unmatched", stats.UnmatchedWinners))
	}

	s.logger.InfoContext(ctx, "win streak calculation completed",
		slog.Int("games", stats.Games),
		slog.Int("distinct_winners", stats.DistinctWinners),
		slog.Int("longest_streak", stats.LongestStreak),
		slog.String("longest_streak_by", stats.LongestStreakBy),
		slog.Duration("duration", time.Since(start)))

	return &PlayerTable{Rows: rows}, stats, nil
}

// chronologicalGames orders the games that have winners into season
// order: by air date with game number breaking date ties, or purely by
// game number when broadcast data is incomplete.
func (s *StreakCalculator) chronologicalGames(ctx context.Context, winnerByGame map[int]string, episodes []domain.Episode, stats *StreakStats) []int {
	airDates := make(map[int]time.Time, len(episodes))
	for _, ep := range episodes {
		if _, dup := airDates[ep.Game]; !dup {
			airDates[ep.Game] = ep.AirDate
		}
	}

	games := make([]int, 0, len(winnerByGame))
	undated := 0
	for game := range winnerByGame {
		games = append(games, game)
		if _, ok := airDates[game]; !ok {
			undated++
		}
	}

	if undated > 0 {
		stats.FallbackOrdered = undated
		s.logger.WarnContext(ctx, "games without broadcast dates, ordering season by game number",
			slog.Int("undated_games", undated),
			slog.Int("games", len(games)))
		sort.Ints(games)
		return games
	}

	sort.Slice(games, func(i, j int) bool {
		di, dj := airDates[games[i]], airDates[games[j]]
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return games[i] < games[j]
	})
	return games
}
