package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"plexart/internal/artwork"
	"plexart/internal/history"
	"plexart/internal/logging"
	"plexart/internal/matcher"
	"plexart/internal/runlock"
	"plexart/internal/services/plex"
	"plexart/internal/terminal"
	"plexart/internal/traversal"
)

// runArtwork performs one library pass and prints its summary.
func runArtwork(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}
	opts, err := ctx.traversalOptions(cfg)
	if err != nil {
		return err
	}

	lock, err := runlock.Acquire(cfg.LockPath())
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("run lock release failed", logging.Error(err))
		}
	}()

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}

	out := cmd.OutOrStdout()
	format := terminal.For(out)

	prompter := matcher.NewLinePrompter(cmd.InOrStdin(), out)
	prompter.Styler = func(s string) string { return format.Style(terminal.RoleTitle, s) }

	deps := traversal.Dependencies{
		Source:  plex.NewFromConfig(cfg),
		Fetcher: artwork.NewDownloaderFromConfig(cfg, logger),
		Albums: &matcher.AlbumMatcher{
			Threshold: cfg.Music.MatchThreshold,
			Rename:    cfg.Music.RenameAlbums,
			Force:     cfg.Music.ForceRename,
			Prompter:  prompter,
			Logger:    logger,
		},
		Reporter: traversal.NewReporter(out, format, logger),
		Logger:   logger,
	}
	if cfg.History.Enabled {
		store, err := history.OpenFromConfig(runCtx, cfg)
		if err != nil {
			logger.Warn("run history unavailable", logging.Error(err))
		} else {
			defer store.Close()
			deps.Recorder = store
		}
	}

	engine := traversal.New(deps, opts)
	result, err := engine.Run(runCtx, ctx.libraryID())
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Interrupted")
		}
		return err
	}

	renderSummary(out, format, summaryOptions{
		Mode:   opts.Mode,
		Poster: opts.Poster,
		Fanart: opts.Fanart,
	}, result)
	return nil
}
