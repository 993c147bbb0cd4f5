package traversal

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"plexart/internal/artwork"
	"plexart/internal/logging"
	"plexart/internal/services"
	"plexart/internal/services/plex"
)

func (w *walk) artists(ctx context.Context, items []plex.Node) error {
	for _, artist := range plex.Filter(items, plex.ElementDirectory) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.artist(ctx, artist); err != nil {
			return err
		}
	}
	return ctx.Err()
}

func (w *walk) artist(ctx context.Context, artist plex.Node) error {
	e := w.engine
	title := artist.DisplayTitle("Unknown Artist")
	if artist.RatingKey == "" {
		e.reporter.MissingRatingKey(title, "artist")
		return nil
	}

	children, err := e.source.Children(ctx, artist.RatingKey)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		e.reporter.MissingMediaPath(title, "artist")
		return nil
	}
	albums := plex.Filter(children, plex.ElementDirectory)

	file, err := w.firstFile(ctx, albums, plex.ElementTrack)
	if err != nil {
		return err
	}
	if file == "" {
		e.reporter.MissingMediaPath(title, "artist")
		return nil
	}
	// Tracks live in album folders below the artist folder.
	artistDir := filepath.Dir(w.localDir(file))

	if e.opts.Poster {
		if strings.TrimSpace(artist.Thumb) != "" {
			w.fetch(ctx, target{kind: artwork.KindPoster, node: artist, dir: artistDir, title: title})
		} else {
			e.reporter.MissingArtwork(artwork.KindPoster, title)
		}
	}
	// Artists without fanart are common enough that their absence is not reported.
	if e.opts.Fanart && strings.TrimSpace(artist.Art) != "" {
		w.fetch(ctx, target{kind: artwork.KindFanart, node: artist, dir: artistDir, title: title})
	}

	if !e.opts.Poster {
		return nil
	}
	for _, album := range albums {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.album(ctx, title, artistDir, album); err != nil {
			return err
		}
	}
	return nil
}

func (w *walk) album(ctx context.Context, artistTitle, artistDir string, album plex.Node) error {
	e := w.engine
	albumTitle := strings.TrimSpace(album.Title)
	if strings.TrimSpace(album.Thumb) == "" {
		e.reporter.NoAlbumCover(albumTitle, artistTitle)
		return nil
	}

	match, err := e.albums.Resolve(ctx, artistTitle, artistDir, albumTitle)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return ctx.Err()
	case errors.Is(err, services.ErrFolderMatch):
		e.reporter.NoFolderMatch(artistTitle, albumTitle, artistDir)
		return nil
	default:
		w.logger.Warn("album folder resolution failed", logging.String(logging.FieldTitle, albumTitle), logging.Error(err))
		return nil
	}
	e.reporter.AlbumRename(artistTitle, albumTitle, match, e.opts.ForceRename)

	w.fetch(ctx, target{
		kind:   artwork.KindCover,
		node:   album,
		dir:    match.Path,
		title:  albumTitle,
		parent: artistTitle,
	})
	return nil
}
