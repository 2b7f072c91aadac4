package report

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"showscore/internal/config"
	"showscore/internal/season"
	"showscore/pkg/contracts/domain"
)

// Summarizer is the single source of truth for season-level aggregates.
// The narrative writer and the workbook cover both render the same
// SeasonSummary, so the two artifacts can never disagree on a number.
type Summarizer struct {
	logger      *slog.Logger
	topN        int
	minAttempts int
}

// SummarizerConfig holds configuration options for the Summarizer.
type SummarizerConfig struct {
	TopN        int // Length of the champion, accuracy and streak lists
	MinAttempts int // Attempts required to qualify for the accuracy list
}

// DefaultSummarizerConfig returns the configuration used by the report CLI.
func DefaultSummarizerConfig() SummarizerConfig {
	return SummarizerConfig{
		TopN:        10,
		MinAttempts: 20,
	}
}

// SeasonSummary aggregates one season into the numbers the report prints.
type SeasonSummary struct {
	Games       int
	Contestants int
	Episodes    int

	FirstAirDate string
	LastAirDate  string

	HighestFinal   GameHighlight
	LowestFinal    GameHighlight
	AverageWinning float64

	DailyDoubles int
	FilledShare  float64

	CorrectRate RateStats

	// Standings lists every contestant seen in the players table,
	// ordered by total winnings.
	Standings       []ContestantStanding
	AccuracyLeaders []AccuracyStanding
	Streaks         []StreakStanding

	// Regions counts distinct contestants per census region of their
	// home state.
	Regions map[string]int
}

// GameHighlight pins a single summary row worth calling out.
type GameHighlight struct {
	Game       int
	Contestant string
	Score      int
	AirDate    string
}

// RateStats holds the distribution of per-row correct rates. Rows with
// no attempts have no rate and are only counted, never averaged in.
type RateStats struct {
	Mean      float64
	Median    float64
	Min       float64
	Max       float64
	MinBy     string
	MaxBy     string
	Undefined int
}

// ContestantStanding aggregates one contestant across the season.
type ContestantStanding struct {
	ContestantID string
	Name         string
	Games        int
	Wins         int
	Winnings     int
}

// AccuracyStanding ranks a contestant by season-wide correct rate.
type AccuracyStanding struct {
	ContestantID string
	Name         string
	Right        int
	Wrong        int
	Rate         float64
}

// StreakStanding records the longest win streak a contestant reached.
type StreakStanding struct {
	ContestantID string
	Name         string
	Streak       int
	LastGame     int
}

// NewSummarizer creates a season summarizer with the given configuration.
func NewSummarizer(logger *slog.Logger, cfg SummarizerConfig) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 10
	}
	if cfg.MinAttempts <= 0 {
		cfg.MinAttempts = 20
	}
	return &Summarizer{
		logger:      logger.With(slog.String("component", "report-summarizer")),
		topN:        cfg.TopN,
		minAttempts: cfg.MinAttempts,
	}
}

// Generate computes the season summary from the wrangled tables.
func (s *Summarizer) Generate(ctx context.Context, summaries *season.SummaryTable, clues *season.ClueTable, players *season.PlayerTable, episodes []domain.Episode) (*SeasonSummary, error) {
	if summaries == nil || len(summaries.Rows) == 0 {
		return nil, fmt.Errorf("no summary rows to report on")
	}
	if clues == nil || players == nil {
		return nil, fmt.Errorf("clue and player tables are required")
	}

	s.logger.InfoContext(ctx, "generating season summary",
		slog.Int("summary_rows", len(summaries.Rows)),
		slog.Int("clue_rows", len(clues.Rows)),
		slog.Int("player_rows", len(players.Rows)))

	out := &SeasonSummary{
		Episodes: len(episodes),
		Regions:  make(map[string]int),
	}

	s.fillDateRange(ctx, out, episodes)
	s.fillScoring(out, summaries, episodes)
	s.fillClueFacts(out, clues)
	out.CorrectRate = rateStats(summaries.Rows)
	s.fillStandings(out, summaries, players)
	s.fillAccuracyLeaders(out, summaries, players)
	s.fillStreaks(out, players)

	s.logger.InfoContext(ctx, "season summary generated",
		slog.Int("games", out.Games),
		slog.Int("contestants", out.Contestants))

	return out, nil
}

func (s *Summarizer) fillDateRange(ctx context.Context, out *SeasonSummary, episodes []domain.Episode) {
	if len(episodes) == 0 {
		s.logger.WarnContext(ctx, "no episodes provided, air date range unknown")
		out.FirstAirDate = "N/A"
		out.LastAirDate = "N/A"
		return
	}

	first, last := episodes[0].AirDate, episodes[0].AirDate
	for _, ep := range episodes[1:] {
		if ep.AirDate.Before(first) {
			first = ep.AirDate
		}
		if ep.AirDate.After(last) {
			last = ep.AirDate
		}
	}
	out.FirstAirDate = first.Format(config.AirDateFormat)
	out.LastAirDate = last.Format(config.AirDateFormat)
}

func (s *Summarizer) fillScoring(out *SeasonSummary, summaries *season.SummaryTable, episodes []domain.Episode) {
	dates := airDatesByGame(episodes)

	games := make(map[int]bool)
	highSet, lowSet := false, false
	var high, low season.EnrichedSummary
	for _, row := range summaries.Rows {
		games[row.Game] = true
		if !highSet || row.FinalScore > high.FinalScore {
			high = row
			highSet = true
		}
		if !lowSet || row.FinalScore < low.FinalScore {
			low = row
			lowSet = true
		}
	}
	out.Games = len(games)
	out.HighestFinal = highlight(high, dates)
	out.LowestFinal = highlight(low, dates)

	winners := summaries.Winners()
	if len(winners) > 0 {
		total := 0
		for _, w := range winners {
			total += w.FinalScore
		}
		out.AverageWinning = float64(total) / float64(len(winners))
	}
}

func (s *Summarizer) fillClueFacts(out *SeasonSummary, clues *season.ClueTable) {
	if len(clues.Rows) == 0 {
		return
	}

	doubles := make(map[domain.ClueKey]bool)
	filled := 0
	for _, row := range clues.Rows {
		if row.DailyDouble {
			doubles[domain.ClueKey{Game: row.Game, Clue: row.Clue}] = true
		}
		if row.Filled {
			filled++
		}
	}
	out.DailyDoubles = len(doubles)
	out.FilledShare = float64(filled) / float64(len(clues.Rows))
}

func (s *Summarizer) fillStandings(out *SeasonSummary, summaries *season.SummaryTable, players *season.PlayerTable) {
	byID := make(map[string]*ContestantStanding)
	order := make([]string, 0)

	for _, p := range players.Rows {
		st, ok := byID[p.ContestantID]
		if !ok {
			st = &ContestantStanding{
				ContestantID: p.ContestantID,
				Name:         p.FullName(),
			}
			byID[p.ContestantID] = st
			order = append(order, p.ContestantID)

			region := stateRegion(p.HomeState)
			out.Regions[region]++
		}
		st.Games++
		if p.Winner {
			st.Wins++
		}
	}
	out.Contestants = len(byID)

	// Winnings come from the summary table, which carries the
	// authoritative final scores.
	for _, row := range summaries.Rows {
		if !row.Winner {
			continue
		}
		if st, ok := byID[row.ContestantID]; ok {
			st.Winnings += row.FinalScore
		}
	}

	standings := make([]ContestantStanding, 0, len(order))
	for _, id := range order {
		standings = append(standings, *byID[id])
	}
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Winnings != standings[j].Winnings {
			return standings[i].Winnings > standings[j].Winnings
		}
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].Name < standings[j].Name
	})
	out.Standings = standings
}

func (s *Summarizer) fillAccuracyLeaders(out *SeasonSummary, summaries *season.SummaryTable, players *season.PlayerTable) {
	names := make(map[string]string)
	for _, p := range players.Rows {
		if _, ok := names[p.ContestantID]; !ok {
			names[p.ContestantID] = p.FullName()
		}
	}

	type attempts struct{ right, wrong int }
	agg := make(map[string]*attempts)
	order := make([]string, 0)
	for _, row := range summaries.Rows {
		if _, ok := names[row.ContestantID]; !ok {
			continue
		}
		a, ok := agg[row.ContestantID]
		if !ok {
			a = &attempts{}
			agg[row.ContestantID] = a
			order = append(order, row.ContestantID)
		}
		a.right += row.Right
		a.wrong += row.Wrong
	}

	leaders := make([]AccuracyStanding, 0)
	for _, id := range order {
		a := agg[id]
		if a.right+a.wrong < s.minAttempts {
			continue
		}
		leaders = append(leaders, AccuracyStanding{
			ContestantID: id,
			Name:         names[id],
			Right:        a.right,
			Wrong:        a.wrong,
			Rate:         float64(a.right) / float64(a.right+a.wrong),
		})
	}
	sort.SliceStable(leaders, func(i, j int) bool {
		if leaders[i].Rate != leaders[j].Rate {
			return leaders[i].Rate > leaders[j].Rate
		}
		return leaders[i].Name < leaders[j].Name
	})
	if len(leaders) > s.topN {
		leaders = leaders[:s.topN]
	}
	out.AccuracyLeaders = leaders
}

func (s *Summarizer) fillStreaks(out *SeasonSummary, players *season.PlayerTable) {
	best := make(map[string]StreakStanding)
	order := make([]string, 0)
	for _, p := range players.Rows {
		if !p.Winner {
			continue
		}
		st, ok := best[p.ContestantID]
		if !ok {
			order = append(order, p.ContestantID)
			st = StreakStanding{ContestantID: p.ContestantID, Name: p.FullName()}
		}
		if p.Streak > st.Streak {
			st.Streak = p.Streak
			st.LastGame = p.Game
		}
		best[p.ContestantID] = st
	}

	streaks := make([]StreakStanding, 0, len(order))
	for _, id := range order {
		streaks = append(streaks, best[id])
	}
	sort.SliceStable(streaks, func(i, j int) bool {
		if streaks[i].Streak != streaks[j].Streak {
			return streaks[i].Streak > streaks[j].Streak
		}
		return streaks[i].Name < streaks[j].Name
	})
	if len(streaks) > s.topN {
		streaks = streaks[:s.topN]
	}
	out.Streaks = streaks
}

// rateStats computes the correct-rate distribution over defined rates.
func rateStats(rows []season.EnrichedSummary) RateStats {
	stats := RateStats{}
	defined := make([]float64, 0, len(rows))
	for _, row := range rows {
		if math.IsNaN(row.CorrectRate) {
			stats.Undefined++
			continue
		}
		if len(defined) == 0 || row.CorrectRate < stats.Min {
			stats.Min = row.CorrectRate
			stats.MinBy = displayName(row)
		}
		if len(defined) == 0 || row.CorrectRate > stats.Max {
			stats.Max = row.CorrectRate
			stats.MaxBy = displayName(row)
		}
		defined = append(defined, row.CorrectRate)
	}
	if len(defined) == 0 {
		return stats
	}

	sum := 0.0
	for _, r := range defined {
		sum += r
	}
	stats.Mean = sum / float64(len(defined))

	sorted := make([]float64, len(defined))
	copy(sorted, defined)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		stats.Median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		stats.Median = sorted[mid]
	}
	return stats
}

// displayName renders a summary row's contestant for narrative output.
func displayName(row season.EnrichedSummary) string {
	return strings.TrimSpace(row.FirstName + " " + row.LastName)
}

// highlight attaches the air date to a summary row worth calling out.
func highlight(row season.EnrichedSummary, dates map[int]string) GameHighlight {
	return GameHighlight{
		Game:       row.Game,
		Contestant: displayName(row),
		Score:      row.FinalScore,
		AirDate:    dates[row.Game],
	}
}

// airDatesByGame formats each game's air date once. Duplicate episode
// rows keep the first date seen.
func airDatesByGame(episodes []domain.Episode) map[int]string {
	dates := make(map[int]string, len(episodes))
	for _, ep := range episodes {
		if _, ok := dates[ep.Game]; !ok {
			dates[ep.Game] = ep.AirDate.Format(config.AirDateFormat)
		}
	}
	return dates
}
