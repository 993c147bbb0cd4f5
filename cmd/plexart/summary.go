package main

import (
	"fmt"
	"io"
	"strconv"

	"plexart/internal/artwork"
	"plexart/internal/fileutil"
	"plexart/internal/services/plex"
	"plexart/internal/terminal"
	"plexart/internal/traversal"
)

type summaryOptions struct {
	Mode   fileutil.Mode
	Poster bool
	Fanart bool
}

type summaryRow struct {
	label string
	kind  artwork.Kind
}

// summaryRows picks which artwork kinds appear in the summary. Covers are
// listed for music libraries regardless of the poster flag.
func summaryRows(opts summaryOptions, kind plex.LibraryKind) []summaryRow {
	var rows []summaryRow
	if opts.Poster {
		rows = append(rows, summaryRow{label: "Posters", kind: artwork.KindPoster})
	}
	if opts.Fanart {
		rows = append(rows, summaryRow{label: "Fanart", kind: artwork.KindFanart})
	}
	if kind == plex.KindArtist {
		rows = append(rows, summaryRow{label: "Covers", kind: artwork.KindCover})
	}
	return rows
}

// renderSummary prints the end-of-run counts. Nothing is printed unless
// posters or fanart were requested; skipped counts only mean something in
// skip mode and are omitted otherwise.
func renderSummary(out io.Writer, format terminal.Formatter, opts summaryOptions, result traversal.Result) {
	if !opts.Poster && !opts.Fanart {
		return
	}
	if format == nil {
		format = terminal.Plain{}
	}

	showSkipped := opts.Mode == fileutil.ModeSkip
	headers := []string{"Artwork", "Downloaded"}
	aligns := []columnAlignment{alignLeft, alignRight}
	if showSkipped {
		headers = append(headers, "Skipped")
		aligns = append(aligns, alignRight)
	}

	var rows [][]string
	for _, row := range summaryRows(opts, result.Section.Kind) {
		tally := result.Counters.Get(row.kind)
		cells := []string{row.label, strconv.Itoa(tally.Downloaded)}
		if showSkipped {
			cells = append(cells, strconv.Itoa(tally.Skipped))
		}
		rows = append(rows, cells)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, format.Style(terminal.RoleHeading, "Download Summary for Library: "+result.Section.Title))
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
	}
	fmt.Fprintln(out)
}
