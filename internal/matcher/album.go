package matcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"plexart/internal/fileutil"
	"plexart/internal/logging"
	"plexart/internal/services"
	"plexart/internal/textutil"
)

// RenameResult records what happened to the matched album folder.
type RenameResult int

const (
	// RenameNotAttempted covers exact matches, disabled renaming, and folders already named correctly.
	RenameNotAttempted RenameResult = iota
	// RenameDeclined means the operator answered no.
	RenameDeclined
	// RenameApplied means the folder now carries the server title.
	RenameApplied
	// RenameFailed means the rename was attempted and the filesystem refused it.
	RenameFailed
)

// AlbumMatch is the outcome of resolving an album folder.
type AlbumMatch struct {
	// Folder and Path name the folder artwork should go to: the renamed
	// folder after a successful rename, otherwise the matched one.
	Folder string
	Path   string
	// Original is the folder name found on disk before any rename.
	Original  string
	Exact     bool
	Score     float64
	Rename    RenameResult
	RenameErr error
}

// AlbumMatcher finds the folder for an album beneath its artist directory.
type AlbumMatcher struct {
	// Threshold is the minimum similarity for a fuzzy match. Zero means textutil.DefaultCutoff.
	Threshold float64
	// Similarity overrides the scoring function. Arguments are lowercased.
	Similarity textutil.Scorer
	// Rename enables renaming fuzzy matches to the server title.
	Rename bool
	// Force renames without asking.
	Force    bool
	Prompter Prompter
	Logger   *slog.Logger

	renameFn func(oldPath, newPath string) error
}

// Resolve locates the folder for album under artistDir. When no folder
// matches the error carries services.ErrFolderMatch. A prompt cancelled
// through ctx returns ctx's error.
func (m *AlbumMatcher) Resolve(ctx context.Context, artist, artistDir, album string) (AlbumMatch, error) {
	exact := filepath.Join(artistDir, album)
	if album != "" && fileutil.IsDir(exact) {
		return AlbumMatch{Folder: album, Path: exact, Original: album, Exact: true, Score: 1}, nil
	}

	folders, err := fileutil.ListSubfolders(artistDir)
	if err != nil {
		m.logger().Debug("artist folder listing failed", logging.String(logging.FieldPath, artistDir), logging.Error(err))
	}
	folder, score, ok := textutil.CloseMatchFunc(album, folders, m.Threshold, m.Similarity)
	if !ok {
		return AlbumMatch{}, services.Wrap(services.ErrFolderMatch, "matcher", "album", fmt.Sprintf("%s %s", artist, album), nil)
	}

	match := AlbumMatch{Folder: folder, Path: filepath.Join(artistDir, folder), Original: folder, Score: score}
	if !m.Rename {
		return match, nil
	}

	target := textutil.SanitizeFolderName(album)
	if target == "" || target == folder {
		return match, nil
	}

	if !m.Force {
		if m.Prompter == nil {
			match.Rename = RenameDeclined
			return match, nil
		}
		accepted, err := m.Prompter.ConfirmRename(ctx, RenameProposal{Artist: artist, Album: album, Folder: folder})
		if err != nil {
			return match, err
		}
		if !accepted {
			match.Rename = RenameDeclined
			return match, nil
		}
	}

	newPath := filepath.Join(artistDir, target)
	if err := m.rename(match.Path, newPath); err != nil {
		match.Rename = RenameFailed
		match.RenameErr = err
		m.logger().Warn("album folder rename failed",
			logging.String(logging.FieldPath, match.Path),
			logging.String("target", newPath),
			logging.Error(err),
		)
		return match, nil
	}
	m.logger().Info("album folder renamed",
		logging.String(logging.FieldPath, match.Path),
		logging.String("target", newPath),
	)
	match.Folder = target
	match.Path = newPath
	match.Rename = RenameApplied
	return match, nil
}

func (m *AlbumMatcher) rename(oldPath, newPath string) error {
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(oldPath), os.ErrExist)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if m.renameFn != nil {
		return m.renameFn(oldPath, newPath)
	}
	return os.Rename(oldPath, newPath)
}

func (m *AlbumMatcher) logger() *slog.Logger {
	if m.Logger == nil {
		return logging.NewNop()
	}
	return m.Logger
}
