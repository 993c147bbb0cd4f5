package traversal

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"plexart/internal/artwork"
	"plexart/internal/fileutil"
	"plexart/internal/history"
	"plexart/internal/logging"
	"plexart/internal/matcher"
	"plexart/internal/services"
	"plexart/internal/services/plex"
)

// MetadataSource is the subset of the Plex client the engine reads from.
type MetadataSource interface {
	Section(ctx context.Context, id int) (plex.Section, error)
	SectionItems(ctx context.Context, id int) ([]plex.Node, error)
	Metadata(ctx context.Context, ratingKey string) ([]plex.Node, error)
	Children(ctx context.Context, ratingKey string) ([]plex.Node, error)
	BaseURL() string
	Token() string
}

// Fetcher downloads one image to a local path.
type Fetcher interface {
	Download(ctx context.Context, url, dest string) error
}

// Recorder persists run history. history.Store satisfies it.
type Recorder interface {
	StartRun(ctx context.Context, run history.Run) error
	UpdateLibrary(ctx context.Context, runID, title, kind string) error
	RecordAttempt(ctx context.Context, attempt history.Attempt) error
	FinishRun(ctx context.Context, runID string, status history.RunStatus, message string) error
}

// Options selects what a run downloads and how files are named.
type Options struct {
	Mode        fileutil.Mode
	Poster      bool
	Fanart      bool
	ForceRename bool
	PathMap     fileutil.PathMap
}

// Dependencies wires the engine's collaborators. Source and Fetcher are required.
type Dependencies struct {
	Source   MetadataSource
	Fetcher  Fetcher
	Albums   *matcher.AlbumMatcher
	Reporter *Reporter
	Recorder Recorder
	Logger   *slog.Logger
}

// Result summarizes a completed run.
type Result struct {
	RunID    string
	Section  plex.Section
	Counters *artwork.Counters
	// Supported is false when the library kind is not one the engine walks.
	Supported bool
}

// Engine walks one library per Run call.
type Engine struct {
	source   MetadataSource
	fetcher  Fetcher
	albums   *matcher.AlbumMatcher
	reporter *Reporter
	recorder Recorder
	logger   *slog.Logger
	opts     Options
	newRunID func() string
}

// New constructs an engine.
func New(deps Dependencies, opts Options) *Engine {
	logger := logging.NewComponentLogger(deps.Logger, "traversal")
	reporter := deps.Reporter
	if reporter == nil {
		reporter = NewReporter(nil, nil, deps.Logger)
	}
	albums := deps.Albums
	if albums == nil {
		albums = &matcher.AlbumMatcher{Logger: deps.Logger}
	}
	if opts.Mode == "" {
		opts.Mode = fileutil.ModeSkip
	}
	return &Engine{
		source:   deps.Source,
		fetcher:  deps.Fetcher,
		albums:   albums,
		reporter: reporter,
		recorder: deps.Recorder,
		logger:   logger,
		opts:     opts,
		newRunID: uuid.NewString,
	}
}

// Run walks the library with the given section id. Errors from reading the
// section list or the section's items are fatal and returned; so is context
// cancellation. All other problems are reported and skipped, and the returned
// Result always carries the counters gathered so far.
func (e *Engine) Run(ctx context.Context, libraryID int) (Result, error) {
	result := Result{RunID: e.newRunID(), Counters: artwork.NewCounters()}
	ctx = services.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, e.logger)

	e.startRun(ctx, result.RunID, libraryID)

	section, err := e.source.Section(ctx, libraryID)
	if err != nil {
		e.finishRun(ctx, result.RunID, err)
		return result, err
	}
	result.Section = section
	ctx = services.WithLibrary(ctx, section.Title)
	logger = logging.WithContext(ctx, e.logger)
	if e.recorder != nil {
		if err := e.recorder.UpdateLibrary(ctx, result.RunID, section.Title, string(section.Kind)); err != nil {
			logger.Warn("history update failed", logging.Error(err))
		}
	}

	items, err := e.source.SectionItems(ctx, libraryID)
	if err != nil {
		e.finishRun(ctx, result.RunID, err)
		return result, err
	}

	logger.Info("library traversal started",
		logging.Int("library_id", libraryID),
		logging.String("library_kind", string(section.Kind)),
		logging.Int("items", len(items)),
		logging.String("mode", e.opts.Mode.String()),
	)

	w := &walk{engine: e, runID: result.RunID, counters: result.Counters, logger: logger}
	result.Supported = true
	switch section.Kind {
	case plex.KindMovie:
		err = w.movies(ctx, items)
	case plex.KindShow:
		err = w.shows(ctx, items)
	case plex.KindArtist:
		err = w.artists(ctx, items)
	default:
		result.Supported = false
		e.reporter.UnsupportedKind(string(section.Kind))
	}

	e.finishRun(ctx, result.RunID, err)
	if err != nil {
		return result, err
	}
	logger.Info("library traversal finished")
	return result, nil
}

func (e *Engine) startRun(ctx context.Context, runID string, libraryID int) {
	if e.recorder == nil {
		return
	}
	run := history.Run{ID: runID, LibraryID: libraryID, Mode: e.opts.Mode.String(), Status: history.StatusRunning}
	if err := e.recorder.StartRun(ctx, run); err != nil {
		e.logger.Warn("history start failed", logging.Error(err))
	}
}

func (e *Engine) finishRun(ctx context.Context, runID string, runErr error) {
	if e.recorder == nil {
		return
	}
	status := history.StatusCompleted
	message := ""
	switch {
	case runErr == nil:
	case errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded):
		status = history.StatusCancelled
		message = runErr.Error()
	default:
		status = history.StatusFailed
		message = runErr.Error()
	}
	// The run context may already be cancelled; history should still be written.
	if err := e.recorder.FinishRun(context.WithoutCancel(ctx), runID, status, message); err != nil {
		e.logger.Warn("history finish failed", logging.Error(err))
	}
}
