package traversal

import (
	"context"
	"log/slog"
	"path/filepath"

	"plexart/internal/artwork"
	"plexart/internal/fileutil"
	"plexart/internal/history"
	"plexart/internal/logging"
	"plexart/internal/services/plex"
)

// walk carries per-run state through the library tree.
type walk struct {
	engine   *Engine
	runID    string
	counters *artwork.Counters
	logger   *slog.Logger
}

// target is one artwork request: which image of which node goes where.
type target struct {
	kind   artwork.Kind
	node   plex.Node
	dir    string
	title  string
	parent string
}

// fetch runs a single artwork request to a terminal outcome and counts it.
func (w *walk) fetch(ctx context.Context, t target) artwork.Outcome {
	outcome, detail, dest := w.resolve(ctx, t)
	if ctx.Err() != nil {
		return artwork.OutcomeNone
	}
	w.counters.Increment(outcome, t.kind)
	w.record(ctx, t, outcome, dest, detail)
	return outcome
}

func (w *walk) resolve(ctx context.Context, t target) (artwork.Outcome, string, string) {
	e := w.engine
	url, ok := artwork.ImageURL(e.source.BaseURL(), e.source.Token(), t.kind.Ref(t.node))
	if !ok {
		switch t.kind {
		case artwork.KindPoster:
			e.reporter.MissingArtwork(t.kind, t.title)
		case artwork.KindCover:
			e.reporter.InvalidCoverURL(t.title, t.parent)
		}
		return artwork.OutcomeNone, "no image on server", ""
	}

	dest, ok := fileutil.ResolveOutputPath(t.dir, e.opts.Mode, t.kind.Filename())
	if !ok {
		w.logger.Debug("artwork exists, skipping",
			logging.String(logging.FieldKind, string(t.kind)),
			logging.String(logging.FieldTitle, t.title),
			logging.String(logging.FieldPath, t.dir),
		)
		return artwork.OutcomeSkipped, "exists", ""
	}

	if !fileutil.IsDir(t.dir) {
		e.reporter.MissingMediaPath(t.title, string(t.kind))
		return artwork.OutcomeSkipped, "folder missing", dest
	}

	if err := e.fetcher.Download(ctx, url, dest); err != nil {
		if ctx.Err() == nil {
			e.reporter.DownloadFailed(t.kind, t.title, err)
		}
		return artwork.OutcomeSkipped, err.Error(), dest
	}
	e.reporter.Downloaded(t.kind, t.title, t.parent, dest)
	return artwork.OutcomeDownloaded, "", dest
}

func (w *walk) record(ctx context.Context, t target, outcome artwork.Outcome, dest, detail string) {
	if w.engine.recorder == nil {
		return
	}
	path := dest
	if path == "" {
		path = filepath.Join(t.dir, t.kind.Filename())
	}
	err := w.engine.recorder.RecordAttempt(ctx, history.Attempt{
		RunID:   w.runID,
		Kind:    string(t.kind),
		Title:   t.title,
		Path:    path,
		Outcome: string(outcome),
		Detail:  detail,
	})
	if err != nil {
		w.logger.Warn("history record failed", logging.Error(err))
	}
}

// nodeArtwork requests poster and fanart for node according to the run options.
func (w *walk) nodeArtwork(ctx context.Context, node plex.Node, dir, title, parent string) {
	if w.engine.opts.Poster {
		w.fetch(ctx, target{kind: artwork.KindPoster, node: node, dir: dir, title: title, parent: parent})
	}
	if w.engine.opts.Fanart {
		w.fetch(ctx, target{kind: artwork.KindFanart, node: node, dir: dir, title: title, parent: parent})
	}
}

// localDir maps a server file path to the local directory that holds it.
func (w *walk) localDir(file string) string {
	return filepath.Dir(w.engine.opts.PathMap.Resolve(file))
}

// firstFile descends one level below parents and returns the first child of
// kind tag that has a file path.
func (w *walk) firstFile(ctx context.Context, parents []plex.Node, tag string) (string, error) {
	for _, parent := range parents {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if parent.RatingKey == "" {
			continue
		}
		children, err := w.engine.source.Children(ctx, parent.RatingKey)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			w.logger.Debug("children unavailable", logging.String(logging.FieldTitle, parent.Title), logging.Error(err))
			continue
		}
		for _, child := range plex.Filter(children, tag) {
			if file := child.FilePath(); file != "" {
				return file, nil
			}
		}
	}
	return "", nil
}

func (w *walk) movies(ctx context.Context, items []plex.Node) error {
	for _, video := range plex.Filter(items, plex.ElementVideo) {
		if err := ctx.Err(); err != nil {
			return err
		}
		title := video.DisplayTitle("Unknown Movie")
		file := video.FilePath()
		if file == "" {
			w.engine.reporter.MissingMediaPath(title, "movie")
			continue
		}
		w.nodeArtwork(ctx, video, w.localDir(file), title, video.ParentTitle)
	}
	return ctx.Err()
}
