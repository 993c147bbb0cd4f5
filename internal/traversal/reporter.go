package traversal

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"plexart/internal/artwork"
	"plexart/internal/logging"
	"plexart/internal/matcher"
	"plexart/internal/terminal"
)

var seasonFolderPattern = regexp.MustCompile(`(?i)^season\s+\d+$`)

// Reporter writes progress lines for the operator and mirrors them into the
// structured log.
type Reporter struct {
	out    io.Writer
	format terminal.Formatter
	logger *slog.Logger
}

// NewReporter returns a reporter writing to out. A nil formatter means plain text.
func NewReporter(out io.Writer, format terminal.Formatter, logger *slog.Logger) *Reporter {
	if out == nil {
		out = io.Discard
	}
	if format == nil {
		format = terminal.Plain{}
	}
	return &Reporter{out: out, format: format, logger: logging.NewComponentLogger(logger, "traversal")}
}

func (r *Reporter) println(line string) {
	fmt.Fprintln(r.out, line)
}

func (r *Reporter) warn(message, detail string) {
	line := r.format.Style(terminal.RoleWarn, "[WARN]") + "  " + message
	if detail != "" {
		line += " -- " + r.format.Style(terminal.RolePath, detail)
	}
	r.println(line)
}

// Downloaded announces a written artwork file.
func (r *Reporter) Downloaded(kind artwork.Kind, title, parent, dest string) {
	r.logger.Info("artwork downloaded",
		logging.String(logging.FieldKind, string(kind)),
		logging.String(logging.FieldTitle, title),
		logging.String(logging.FieldPath, dest),
	)

	label := string(kind)
	bright := r.format.Style(terminal.RoleTitle, title)
	switch kind {
	case artwork.KindFanart:
		r.println(r.format.Style(terminal.RoleFanart, label) + ": " + bright)
	case artwork.KindPoster:
		folder := filepath.Base(filepath.Dir(dest))
		nested := seasonFolderPattern.MatchString(folder) || strings.HasPrefix(strings.ToLower(title), "specials")
		if nested && parent != "" && parent != title {
			r.println(r.format.Style(terminal.RolePoster, label) + ": " + r.format.Style(terminal.RoleTitle, parent) + " → " + title)
			return
		}
		r.println(r.format.Style(terminal.RolePoster, label) + ": " + bright)
	case artwork.KindCover:
		r.println(r.format.Style(terminal.RolePoster, label) + ": " + r.format.Style(terminal.RoleTitle, parent) + " → " + title)
	}
}

// MissingArtwork reports that the server has no image for title.
func (r *Reporter) MissingArtwork(kind artwork.Kind, title string) {
	logging.WarnWithContext(r.logger, "artwork missing on server", "artwork_missing",
		logging.String(logging.FieldKind, string(kind)),
		logging.String(logging.FieldTitle, title),
	)
	r.warn(fmt.Sprintf("No %s available for %s", kind, r.format.Style(terminal.RoleTitle, title)), "")
}

// DownloadFailed reports a transfer that did not complete.
func (r *Reporter) DownloadFailed(kind artwork.Kind, title string, err error) {
	logging.WarnWithContext(r.logger, "artwork download failed", "artwork_transfer_failed",
		logging.String(logging.FieldKind, string(kind)),
		logging.String(logging.FieldTitle, title),
		logging.Error(err),
	)
	r.println(r.format.Style(terminal.RoleError, "[ERROR]") + " Failed to download " + string(kind) + " for " + title)
}

// MissingMediaPath reports a node whose on-disk folder could not be determined.
func (r *Reporter) MissingMediaPath(title, what string) {
	logging.WarnWithContext(r.logger, "media path unavailable", "media_path_missing",
		logging.String(logging.FieldTitle, title),
		logging.String("node", what),
	)
	r.warn(fmt.Sprintf("Could not determine %s folder for %s", what, r.format.Style(terminal.RoleTitle, title)), "")
}

// MissingRatingKey reports a node the server sent without a rating key.
func (r *Reporter) MissingRatingKey(title, what string) {
	logging.WarnWithContext(r.logger, "rating key missing", "rating_key_missing",
		logging.String(logging.FieldTitle, title),
		logging.String("node", what),
	)
	r.warn(fmt.Sprintf("Skipping %s %s: no rating key", what, r.format.Style(terminal.RoleTitle, title)), "")
}

// MetadataUnavailable reports a failed per-node metadata request.
func (r *Reporter) MetadataUnavailable(title string, err error) {
	logging.WarnWithContext(r.logger, "metadata unavailable", "metadata_unavailable",
		logging.String(logging.FieldTitle, title),
		logging.Error(err),
	)
	r.warn(fmt.Sprintf("Could not fetch metadata for %s", r.format.Style(terminal.RoleTitle, title)), "")
}

// NoFolderMatch reports a season or album without a matching folder.
func (r *Reporter) NoFolderMatch(parent, child, dir string) {
	logging.WarnWithContext(r.logger, "no folder matched", "folder_match_failed",
		logging.String(logging.FieldTitle, child),
		logging.String("parent", parent),
		logging.String(logging.FieldPath, dir),
	)
	r.warn("No folder matched "+r.format.Style(terminal.RoleTitle, parent)+" "+child, dir)
}

// NonStandardSeason reports a season title that follows no naming convention.
func (r *Reporter) NonStandardSeason(show, season string) {
	logging.WarnWithContext(r.logger, "non-standard season title", "season_title_nonstandard",
		logging.String(logging.FieldTitle, season),
		logging.String("show", show),
	)
	r.warn(fmt.Sprintf("Non-standard season title %q for %s", season, r.format.Style(terminal.RoleTitle, show)), "")
}

// FolderListingFailed reports a directory that could not be read.
func (r *Reporter) FolderListingFailed(dir string, err error) {
	r.logger.Warn("could not list folders", logging.String(logging.FieldPath, dir), logging.Error(err))
	r.println(r.format.Style(terminal.RoleError, "[ERROR]") + " Could not list folders in " + dir)
}

// NoAlbumCover reports an album without a thumbnail.
func (r *Reporter) NoAlbumCover(album, artist string) {
	r.logger.Info("no album cover", logging.String(logging.FieldTitle, album), logging.String("artist", artist))
	r.warn(fmt.Sprintf("No album cover for %s - %s", r.format.Style(terminal.RoleTitle, artist), album), "")
}

// InvalidCoverURL reports an album whose thumbnail reference is unusable.
func (r *Reporter) InvalidCoverURL(album, artist string) {
	logging.WarnWithContext(r.logger, "invalid cover url", "cover_url_invalid",
		logging.String(logging.FieldTitle, album),
		logging.String("artist", artist),
	)
	r.warn(fmt.Sprintf("Invalid cover URL for %s - %s", r.format.Style(terminal.RoleTitle, artist), album), "")
}

// AlbumRename reports what happened to a fuzzy-matched album folder.
func (r *Reporter) AlbumRename(artist, album string, match matcher.AlbumMatch, force bool) {
	switch match.Rename {
	case matcher.RenameNotAttempted:
		return
	case matcher.RenameDeclined:
		r.println(r.format.Style(terminal.RoleWarn, "Skipped renaming") + "\n")
		return
	}
	if force {
		r.println("Renaming album directory to match Plex album title: ")
		r.println("        Plex title:     " + r.format.Style(terminal.RoleTitle, album))
		r.println("        Directory name: " + match.Original)
	}
	switch match.Rename {
	case matcher.RenameApplied:
		r.println(r.format.Style(terminal.RoleSuccess, "Renamed successfully") + "\n")
	case matcher.RenameFailed:
		r.logger.Warn("album rename failed",
			logging.String("artist", artist),
			logging.String(logging.FieldTitle, album),
			logging.Error(match.RenameErr),
		)
		r.println(r.format.Style(terminal.RoleError, fmt.Sprintf("Failed to rename: %v", match.RenameErr)) + "\n")
	}
}

// UnsupportedKind reports a library type the engine cannot walk.
func (r *Reporter) UnsupportedKind(kind string) {
	r.logger.Warn("unsupported library type", logging.String("library_kind", kind))
	r.println("Unsupported library type: " + kind)
}
