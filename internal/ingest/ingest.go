// Package ingest loads Retrosheet season files into the database. A
// run parses event files concurrently, assembles every game, and
// records the ones that fail without stopping the rest, unless
// fail-fast is configured.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"scorebook/internal/config"
	"scorebook/internal/eventfile"
	"scorebook/internal/game"
	"scorebook/internal/logging"
	"scorebook/internal/season"
	"scorebook/internal/store"
)

// ErrLocked reports that another ingest run holds the lock file.
var ErrLocked = errors.New("another ingest run is in progress")

// Failure is one game or file that could not be ingested.
type Failure struct {
	SourceFile string
	GameID     string
	Message    string
}

// Summary reports what an ingest run accomplished.
type Summary struct {
	RunID       string
	Files       int
	GamesStored int
	GamesFailed int
	Failures    []Failure
	Duration    time.Duration
}

// Ingestor runs ingest passes over season directories. Filter, when
// set before Run, limits the run to matching games; files are still
// read in full to find them.
type Ingestor struct {
	Filter season.Filter

	cfg    *config.Config
	store  *store.Store
	logger *slog.Logger

	mu      sync.Mutex
	summary *Summary
}

// New builds an Ingestor. A nil logger disables logging.
func New(cfg *config.Config, st *store.Store, logger *slog.Logger) *Ingestor {
	return &Ingestor{
		cfg:    cfg,
		store:  st,
		logger: logging.NewComponentLogger(logger, "ingest"),
	}
}

// Run ingests every event file for the given years under the
// configured event directory. Only one run may execute at a time per
// data directory; concurrent runs fail with ErrLocked.
func (in *Ingestor) Run(ctx context.Context, years []int) (*Summary, error) {
	lock := flock.New(in.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire ingest lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	started := time.Now()
	in.summary = &Summary{RunID: uuid.NewString()}
	in.logger.Info("ingest run starting",
		logging.String(logging.FieldRunID, in.summary.RunID),
		logging.Any("years", years),
		logging.Int("workers", in.cfg.Ingest.Workers))

	var paths []string
	for _, year := range years {
		dir, err := season.OpenDirectory(in.cfg.Paths.EventDir, year)
		if err != nil {
			return nil, err
		}
		paths = append(paths, dir.EventFiles...)
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(in.cfg.Ingest.Workers)
	for _, path := range paths {
		grp.Go(func() error {
			return in.ingestFile(grpCtx, path)
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	in.summary.Files = len(paths)
	in.summary.Duration = time.Since(started)
	in.logger.Info("ingest run finished",
		logging.String(logging.FieldRunID, in.summary.RunID),
		logging.Int("files", in.summary.Files),
		logging.Int("stored", in.summary.GamesStored),
		logging.Int("failed", in.summary.GamesFailed))
	return in.summary, nil
}

func (in *Ingestor) ingestFile(ctx context.Context, path string) error {
	logger := in.logger.With(logging.String(logging.FieldFile, path))

	file, err := eventfile.ReadFile(path)
	if err != nil {
		if in.cfg.Ingest.FailFast {
			return err
		}
		in.recordFailure(ctx, logger, path, "", err)
		return nil
	}

	for _, pg := range file.ProtoGames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !in.Filter.Matches(pg) {
			continue
		}
		g, err := game.Assemble(pg, logger)
		if err != nil {
			if in.cfg.Ingest.FailFast {
				return err
			}
			in.recordFailure(ctx, logger, path, pg.ID, err)
			continue
		}
		if err := in.store.SaveGame(ctx, g, path, in.runID()); err != nil {
			return err
		}
		in.countStored()
		logger.Debug("game stored", logging.String(logging.FieldGameID, g.ID))
	}
	return nil
}

func (in *Ingestor) recordFailure(ctx context.Context, logger *slog.Logger, path, gameID string, cause error) {
	logger.Warn("game skipped",
		logging.String(logging.FieldGameID, gameID),
		logging.Error(cause))
	if err := in.store.RecordIngestError(ctx, in.runID(), path, gameID, cause.Error()); err != nil {
		logger.Error("recording ingest error failed", logging.Error(err))
	}
	in.mu.Lock()
	in.summary.GamesFailed++
	in.summary.Failures = append(in.summary.Failures, Failure{
		SourceFile: path,
		GameID:     gameID,
		Message:    cause.Error(),
	})
	in.mu.Unlock()
}

func (in *Ingestor) countStored() {
	in.mu.Lock()
	in.summary.GamesStored++
	in.mu.Unlock()
}

func (in *Ingestor) runID() string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.summary.RunID
}
