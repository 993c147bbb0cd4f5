package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"plexart/internal/config"
	"plexart/internal/fileutil"
	"plexart/internal/logging"
	"plexart/internal/traversal"
)

// runFlags holds the root command's traversal flags. Flags that were not set
// on the command line leave the configuration value in place.
type runFlags struct {
	mode          string
	library       int
	poster        bool
	fanart        bool
	listLibraries bool
	renameAlbums  bool
	forceRename   bool
	verbose       bool

	cmd *cobra.Command
}

func (f *runFlags) register(cmd *cobra.Command) {
	f.cmd = cmd
	fs := cmd.Flags()
	fs.StringVar(&f.mode, "mode", string(fileutil.ModeSkip), "File handling mode: skip, overwrite, or add")
	fs.IntVar(&f.library, "library", 1, "Plex library section ID to pull artwork from")
	fs.BoolVar(&f.poster, "poster", false, "Enable poster downloading")
	fs.BoolVar(&f.fanart, "fanart", false, "Enable fanart downloading")
	fs.BoolVar(&f.listLibraries, "list-libraries", false, "List available Plex library IDs")
	fs.BoolVar(&f.renameAlbums, "rename-albums", false, "Rename album folders to match Plex titles (prompts first)")
	fs.BoolVar(&f.forceRename, "force-rename", false, "Rename album folders without prompting (implies --rename-albums)")
}

func (f *runFlags) changed(name string) bool {
	return f.cmd != nil && f.cmd.Flags().Changed(name)
}

// apply layers the command line over cfg.
func (f *runFlags) apply(cfg *config.Config) error {
	if f.changed("mode") {
		mode, err := fileutil.ParseMode(f.mode)
		if err != nil {
			return err
		}
		cfg.Download.Mode = string(mode)
	}
	cfg.Download.Poster = cfg.Download.Poster || f.poster
	cfg.Download.Fanart = cfg.Download.Fanart || f.fanart
	if f.forceRename {
		cfg.Music.ForceRename = true
	}
	if f.renameAlbums || cfg.Music.ForceRename {
		cfg.Music.RenameAlbums = true
	}
	return nil
}

type commandContext struct {
	configFlag *string
	flags      *runFlags

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, flags *runFlags) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		flags:      flags,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := config.LoadDotEnv(""); err != nil {
			c.configErr = err
			return
		}
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if c.flags != nil {
			if err := c.flags.apply(cfg); err != nil {
				c.configErr = err
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		verbose := c.flags != nil && c.flags.verbose
		logger, err := logging.NewFromConfig(cfg, verbose)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logging: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// traversalOptions converts the effective configuration into engine options.
func (c *commandContext) traversalOptions(cfg *config.Config) (traversal.Options, error) {
	mode, err := fileutil.ParseMode(cfg.Download.Mode)
	if err != nil {
		return traversal.Options{}, err
	}
	return traversal.Options{
		Mode:        mode,
		Poster:      cfg.Download.Poster,
		Fanart:      cfg.Download.Fanart,
		ForceRename: cfg.Music.ForceRename,
		PathMap: fileutil.PathMap{
			ContainerPrefix: cfg.Paths.ContainerMediaPrefix,
			HostPrefix:      cfg.Paths.HostMediaPrefix,
		},
	}, nil
}

func (c *commandContext) libraryID() int {
	if c.flags == nil {
		return 1
	}
	return c.flags.library
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
