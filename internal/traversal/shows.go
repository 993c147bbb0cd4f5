package traversal

import (
	"context"
	"path/filepath"
	"strings"

	"plexart/internal/artwork"
	"plexart/internal/fileutil"
	"plexart/internal/matcher"
	"plexart/internal/services/plex"
)

func (w *walk) shows(ctx context.Context, items []plex.Node) error {
	for _, show := range plex.Filter(items, plex.ElementDirectory) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.show(ctx, show); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// show handles one show. Only cancellation is returned; every other problem
// is reported and ends processing of this show.
func (w *walk) show(ctx context.Context, show plex.Node) error {
	e := w.engine
	title := show.DisplayTitle("Unknown Show")
	if show.RatingKey == "" {
		e.reporter.MissingRatingKey(title, "show")
		return nil
	}

	meta, err := e.source.Metadata(ctx, show.RatingKey)
	if err != nil {
		return w.nodeFailure(ctx, title, err)
	}
	dirs := plex.Filter(meta, plex.ElementDirectory)
	if len(dirs) == 0 {
		e.reporter.MetadataUnavailable(title, nil)
		return nil
	}
	showNode := dirs[0]

	children, err := e.source.Children(ctx, show.RatingKey)
	if err != nil {
		return w.nodeFailure(ctx, title, err)
	}
	seasons := plex.Filter(children, plex.ElementDirectory)

	file, err := w.firstFile(ctx, seasons, plex.ElementVideo)
	if err != nil {
		return err
	}
	if file == "" {
		e.reporter.MissingMediaPath(title, "show")
		return nil
	}
	// Episodes live one level below the show folder, in their season folder.
	showDir := filepath.Dir(w.localDir(file))

	w.nodeArtwork(ctx, showNode, showDir, title, showNode.ParentTitle)

	folders, err := fileutil.ListSubfolders(showDir)
	if err != nil {
		e.reporter.FolderListingFailed(showDir, err)
	}
	for _, season := range seasons {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.season(ctx, title, showDir, folders, season)
	}
	return nil
}

func (w *walk) season(ctx context.Context, showTitle, showDir string, folders []string, season plex.Node) {
	e := w.engine
	seasonTitle := strings.TrimSpace(season.Title)
	folder, status := matcher.ResolveSeasonFolder(seasonTitle, folders)
	switch status {
	case matcher.SeasonIgnored:
		return
	case matcher.SeasonNonStandard:
		e.reporter.NonStandardSeason(showTitle, seasonTitle)
		return
	case matcher.SeasonNoFolder:
		e.reporter.NoFolderMatch(showTitle, seasonTitle, showDir)
		return
	}
	if !e.opts.Poster {
		return
	}
	w.fetch(ctx, target{
		kind:   artwork.KindPoster,
		node:   season,
		dir:    filepath.Join(showDir, folder),
		title:  seasonTitle,
		parent: showTitle,
	})
}

// nodeFailure reports a failed metadata request and returns ctx's error if
// the failure was caused by cancellation.
func (w *walk) nodeFailure(ctx context.Context, title string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	w.engine.reporter.MetadataUnavailable(title, err)
	return nil
}
