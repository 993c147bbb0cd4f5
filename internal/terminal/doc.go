// Package terminal styles user-facing output. Callers describe what a piece
// of text is (a title, a warning, a path) and a Formatter decides how it
// looks. Plain output is used whenever the destination is not a terminal.
package terminal
