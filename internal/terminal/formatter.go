package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Role names the meaning of a span of output text.
type Role int

const (
	RoleTitle Role = iota
	RolePoster
	RoleFanart
	RoleWarn
	RoleError
	RoleSuccess
	RolePath
	RoleHeading
	RoleInfo
)

// Formatter styles text by role.
type Formatter interface {
	Style(role Role, text string) string
	Colorized() bool
}

// Plain returns text unchanged.
type Plain struct{}

func (Plain) Style(_ Role, text string) string { return text }

func (Plain) Colorized() bool { return false }

// ANSI styles text with terminal escape sequences.
type ANSI struct {
	palette map[Role]*color.Color
}

// NewANSI returns a formatter that always emits colour.
func NewANSI() *ANSI {
	palette := map[Role]*color.Color{
		RoleTitle:   color.New(color.Bold, color.FgWhite),
		RolePoster:  color.New(color.FgCyan),
		RoleFanart:  color.New(color.FgHiCyan),
		RoleWarn:    color.New(color.FgYellow),
		RoleError:   color.New(color.FgRed),
		RoleSuccess: color.New(color.FgGreen),
		RolePath:    color.New(color.FgBlue),
		RoleHeading: color.New(color.Bold, color.FgMagenta),
		RoleInfo:    color.New(color.FgBlue),
	}
	for _, c := range palette {
		c.EnableColor()
	}
	return &ANSI{palette: palette}
}

func (a *ANSI) Style(role Role, text string) string {
	c, ok := a.palette[role]
	if !ok || text == "" {
		return text
	}
	return c.Sprint(text)
}

func (a *ANSI) Colorized() bool { return true }

// For picks ANSI when w is a terminal and Plain otherwise.
func For(w io.Writer) Formatter {
	if IsTerminal(w) {
		return NewANSI()
	}
	return Plain{}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// StatusKind classifies a preflight status line.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusOK
	StatusWarn
	StatusError
)

const statusLabelWidth = 20

// StatusLine renders "  label:   [OK] message" with the bracketed part styled by kind.
func StatusLine(f Formatter, label string, kind StatusKind, message string) string {
	text := "[" + statusLabel(kind) + "]"
	if message != "" {
		text += " " + message
	}
	line := fmt.Sprintf("  %-*s %s", statusLabelWidth, label+":", text)
	return f.Style(statusRole(kind), line)
}

// SectionHeader renders a title with an underline rule.
func SectionHeader(f Formatter, title string) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	return []string{f.Style(RoleHeading, line), f.Style(RoleHeading, rule)}
}

func statusLabel(kind StatusKind) string {
	switch kind {
	case StatusOK:
		return "OK"
	case StatusWarn:
		return "WARN"
	case StatusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusRole(kind StatusKind) Role {
	switch kind {
	case StatusOK:
		return RoleSuccess
	case StatusWarn:
		return RoleWarn
	case StatusError:
		return RoleError
	default:
		return RoleInfo
	}
}
