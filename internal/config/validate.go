package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"plexart/internal/services"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePlex(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateMusic(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePlex() error {
	var missing []string
	if c.Plex.URL == "" {
		missing = append(missing, "PLEX_URL")
	}
	if c.Plex.Token == "" {
		missing = append(missing, "PLEX_TOKEN")
	}
	if len(missing) > 0 {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/plexart/config.toml"
		}
		return services.Wrap(services.ErrConfiguration, "config", "plex",
			fmt.Sprintf("missing %s; export the variable(s) or edit %s (create with 'plexart config init')",
				strings.Join(missing, ", "), defaultPath), nil)
	}
	parsed, err := url.Parse(c.Plex.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return services.Wrap(services.ErrConfiguration, "config", "plex",
			fmt.Sprintf("plex.url %q is not an absolute URL", c.Plex.URL), err)
	}
	return nil
}

func (c *Config) validateDownload() error {
	switch c.Download.Mode {
	case "skip", "overwrite", "add":
	default:
		return services.Wrap(services.ErrConfiguration, "config", "download",
			fmt.Sprintf("download.mode must be one of skip, overwrite, add (got %q)", c.Download.Mode), nil)
	}
	return nil
}

func (c *Config) validateMusic() error {
	if c.Music.MatchThreshold <= 0 || c.Music.MatchThreshold > 1 {
		return errors.New("music.match_threshold must be between 0 and 1")
	}
	return nil
}
