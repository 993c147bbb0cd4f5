package matcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RenameProposal describes a pending album folder rename.
type RenameProposal struct {
	Artist string
	Album  string
	Folder string
}

// Prompter asks the operator whether a proposed rename should happen.
type Prompter interface {
	ConfirmRename(ctx context.Context, proposal RenameProposal) (bool, error)
}

// LinePrompter prints the proposal to Out and reads a y/N answer from In.
// Anything other than "y" (case-insensitive) declines.
type LinePrompter struct {
	In     io.Reader
	Out    io.Writer
	Styler func(string) string

	reader *bufio.Reader
}

// NewLinePrompter builds a prompter over in and out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{In: in, Out: out}
}

// ConfirmRename implements Prompter. Cancelling ctx abandons the pending read.
func (p *LinePrompter) ConfirmRename(ctx context.Context, proposal RenameProposal) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	style := p.Styler
	if style == nil {
		style = func(s string) string { return s }
	}

	fmt.Fprintf(p.Out, "\nMatching album title for %s - %s\n", proposal.Artist, proposal.Album)
	fmt.Fprintf(p.Out, "        Plex title:     %s\n", style(proposal.Album))
	fmt.Fprintf(p.Out, "        Directory name: %s\n", proposal.Folder)
	fmt.Fprint(p.Out, "Rename album directory to match Plex album title? [y/N]: ")

	type answer struct {
		line string
		err  error
	}
	ch := make(chan answer, 1)
	go func() {
		line, err := p.reader.ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case a := <-ch:
		if a.err != nil && !errors.Is(a.err, io.EOF) {
			return false, fmt.Errorf("read rename answer: %w", a.err)
		}
		return strings.EqualFold(strings.TrimSpace(a.line), "y"), nil
	}
}
