package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"plexart/internal/artwork"
	"plexart/internal/config"
	"plexart/internal/fileutil"
	"plexart/internal/services/plex"
	"plexart/internal/terminal"
	"plexart/internal/traversal"
)

func resultWith(kind plex.LibraryKind, record func(*artwork.Counters)) traversal.Result {
	counters := artwork.NewCounters()
	if record != nil {
		record(counters)
	}
	return traversal.Result{
		Section:   plex.Section{ID: 1, Title: "Library", Kind: kind},
		Counters:  counters,
		Supported: true,
	}
}

func TestSummaryRows(t *testing.T) {
	tests := []struct {
		name string
		opts summaryOptions
		kind plex.LibraryKind
		want []string
	}{
		{name: "poster only", opts: summaryOptions{Poster: true}, kind: plex.KindMovie, want: []string{"Posters"}},
		{name: "both", opts: summaryOptions{Poster: true, Fanart: true}, kind: plex.KindShow, want: []string{"Posters", "Fanart"}},
		{name: "artist adds covers", opts: summaryOptions{Fanart: true}, kind: plex.KindArtist, want: []string{"Fanart", "Covers"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, row := range summaryRows(tt.opts, tt.kind) {
				got = append(got, row.label)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderSummarySkipMode(t *testing.T) {
	result := resultWith(plex.KindArtist, func(c *artwork.Counters) {
		c.Increment(artwork.OutcomeDownloaded, artwork.KindPoster)
		c.Increment(artwork.OutcomeSkipped, artwork.KindPoster)
		c.Increment(artwork.OutcomeSkipped, artwork.KindPoster)
		c.Increment(artwork.OutcomeDownloaded, artwork.KindCover)
	})
	var out bytes.Buffer
	renderSummary(&out, terminal.Plain{}, summaryOptions{Mode: fileutil.ModeSkip, Poster: true}, result)

	text := out.String()
	if !strings.Contains(text, "Download Summary for Library: Library") {
		t.Fatalf("missing heading:\n%s", text)
	}
	for _, want := range []string{"Skipped", "Posters", "Covers"} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q:\n%s", want, text)
		}
	}
	postersLine := lineContaining(text, "Posters")
	if !strings.Contains(postersLine, "1") || !strings.Contains(postersLine, "2") {
		t.Fatalf("poster counts not rendered: %q", postersLine)
	}
}

func TestRenderSummaryOmitsSkippedOutsideSkipMode(t *testing.T) {
	var out bytes.Buffer
	renderSummary(&out, nil, summaryOptions{Mode: fileutil.ModeOverwrite, Fanart: true}, resultWith(plex.KindMovie, nil))
	if strings.Contains(out.String(), "Skipped") {
		t.Fatalf("skipped column rendered in overwrite mode:\n%s", out.String())
	}
}

func TestRenderSummaryRequiresPosterOrFanart(t *testing.T) {
	var out bytes.Buffer
	renderSummary(&out, terminal.Plain{}, summaryOptions{Mode: fileutil.ModeSkip}, resultWith(plex.KindArtist, nil))
	if out.Len() != 0 {
		t.Fatalf("expected no output, got:\n%s", out.String())
	}
}

func lineContaining(text, needle string) string {
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, needle) {
			return line
		}
	}
	return ""
}

func TestRunFlagsApply(t *testing.T) {
	tests := []struct {
		name string
		args []string
		base func(*config.Config)
		want func(*testing.T, *config.Config)
	}{
		{
			name: "force rename implies rename",
			args: []string{"--force-rename"},
			want: func(t *testing.T, cfg *config.Config) {
				if !cfg.Music.RenameAlbums || !cfg.Music.ForceRename {
					t.Fatalf("music = %+v", cfg.Music)
				}
			},
		},
		{
			name: "unset mode keeps config value",
			args: []string{"--poster"},
			base: func(cfg *config.Config) { cfg.Download.Mode = "add" },
			want: func(t *testing.T, cfg *config.Config) {
				if cfg.Download.Mode != "add" || !cfg.Download.Poster {
					t.Fatalf("download = %+v", cfg.Download)
				}
			},
		},
		{
			name: "mode flag overrides config",
			args: []string{"--mode", "OVERWRITE"},
			base: func(cfg *config.Config) { cfg.Download.Mode = "add" },
			want: func(t *testing.T, cfg *config.Config) {
				if cfg.Download.Mode != "overwrite" {
					t.Fatalf("mode = %q", cfg.Download.Mode)
				}
			},
		},
		{
			name: "config enables fanart without flag",
			base: func(cfg *config.Config) { cfg.Download.Fanart = true },
			want: func(t *testing.T, cfg *config.Config) {
				if !cfg.Download.Fanart || cfg.Download.Poster {
					t.Fatalf("download = %+v", cfg.Download)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "plexart"}
			flags := &runFlags{}
			flags.register(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("parse flags: %v", err)
			}
			cfg := config.Default()
			if tt.base != nil {
				tt.base(&cfg)
			}
			if err := flags.apply(&cfg); err != nil {
				t.Fatalf("apply: %v", err)
			}
			tt.want(t, &cfg)
		})
	}
}
