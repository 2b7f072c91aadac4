package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"showscore/internal/config"
	apperrors "showscore/internal/errors"
	"showscore/pkg/contracts/domain"
)

// Loader reads the four raw season tables and gates them through schema
// validation before anything downstream runs. Malformed tables fail here,
// not halfway through a computation.
type Loader struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewLoader creates a table loader. A nil logger falls back to slog.Default().
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:   logger.With(slog.String("component", "dataset")),
		validate: validator.New(),
	}
}

// Load reads the four CSV tables under dir concurrently and returns the
// assembled, validated season. Concurrency is confined to this file-IO
// boundary; the wrangling stages downstream stay strictly sequential.
func (l *Loader) Load(ctx context.Context, dir string) (*domain.Season, error) {
	season := &domain.Season{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, config.GamesFileName)
		rows, skipped, err := ReadGameSummaries(path)
		if err != nil {
			return err
		}
		l.logTable(gctx, "games", path, len(rows), skipped)
		season.Summaries = rows
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, config.ScoresFileName)
		rows, skipped, err := ReadClueScores(path)
		if err != nil {
			return err
		}
		l.logTable(gctx, "scores", path, len(rows), skipped)
		season.Scores = rows
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, config.PlayersFileName)
		rows, skipped, err := ReadPlayers(path)
		if err != nil {
			return err
		}
		l.logTable(gctx, "players", path, len(rows), skipped)
		season.Players = rows
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, config.EpisodesFileName)
		rows, skipped, err := ReadEpisodes(path)
		if err != nil {
			return err
		}
		l.logTable(gctx, "episodes", path, len(rows), skipped)
		season.Episodes = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := l.validateSeason(season); err != nil {
		return nil, err
	}
	l.logCounts(ctx, season)
	return season, nil
}

// LoadWorkbook reads the four tables from a single xlsx workbook, for
// seasons that ship as one file instead of four CSVs.
func (l *Loader) LoadWorkbook(ctx context.Context, path string) (*domain.Season, error) {
	season, skipped, err := ReadWorkbook(path)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		l.logger.WarnContext(ctx, "skipped malformed rows",
			slog.String("path", path),
			slog.Int("skipped", skipped))
	}
	if err := l.validateSeason(season); err != nil {
		return nil, err
	}
	l.logCounts(ctx, season)
	return season, nil
}

func (l *Loader) logTable(ctx context.Context, table, path string, rows, skipped int) {
	if skipped > 0 {
		l.logger.WarnContext(ctx, "skipped malformed rows",
			slog.String("table", table),
			slog.String("path", path),
			slog.Int("skipped", skipped))
	}
	l.logger.DebugContext(ctx, "table loaded",
		slog.String("table", table),
		slog.String("path", path),
		slog.Int("rows", rows))
}

func (l *Loader) logCounts(ctx context.Context, season *domain.Season) {
	counts := season.Counts()
	l.logger.InfoContext(ctx, "dataset loaded",
		slog.Int("games", counts.Games),
		slog.Int("summary_rows", counts.Summaries),
		slog.Int("score_rows", counts.Scores),
		slog.Int("player_rows", counts.Players),
		slog.Int("episode_rows", counts.Episodes))
}

// validateSeason rejects empty tables and runs tag validation over every
// row. A score row with round zero passes here; densification back-fills
// the round later.
func (l *Loader) validateSeason(season *domain.Season) error {
	for _, table := range []struct {
		name  string
		count int
	}{
		{"games", len(season.Summaries)},
		{"scores", len(season.Scores)},
		{"players", len(season.Players)},
		{"episodes", len(season.Episodes)},
	} {
		if table.count == 0 {
			return apperrors.NewAppValidationError(fmt.Sprintf("%s table is empty", table.name))
		}
	}

	for i, row := range season.Summaries {
		if err := l.validate.Struct(row); err != nil {
			return apperrors.NewAppValidationError(fmt.Sprintf("games row %d: %v", i+1, err))
		}
	}
	for i, row := range season.Scores {
		if err := l.validate.Struct(row); err != nil {
			return apperrors.NewAppValidationError(fmt.Sprintf("scores row %d: %v", i+1, err))
		}
	}
	for i, row := range season.Players {
		if err := l.validate.Struct(row); err != nil {
			return apperrors.NewAppValidationError(fmt.Sprintf("players row %d: %v", i+1, err))
		}
	}
	for i, row := range season.Episodes {
		if err := l.validate.Struct(row); err != nil {
			return apperrors.NewAppValidationError(fmt.Sprintf("episodes row %d: %v", i+1, err))
		}
	}
	return nil
}
