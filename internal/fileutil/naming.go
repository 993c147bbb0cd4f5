package fileutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Mode selects how an artwork destination is chosen when a file already exists.
type Mode string

const (
	// ModeSkip leaves existing artwork alone.
	ModeSkip Mode = "skip"
	// ModeOverwrite always writes to the canonical file name.
	ModeOverwrite Mode = "overwrite"
	// ModeAdd keeps existing artwork and writes a numbered sibling.
	ModeAdd Mode = "add"
)

// Modes lists the accepted naming modes in display order.
var Modes = []Mode{ModeSkip, ModeOverwrite, ModeAdd}

// ParseMode validates a user supplied naming mode.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeSkip:
		return ModeSkip, nil
	case ModeOverwrite:
		return ModeOverwrite, nil
	case ModeAdd:
		return ModeAdd, nil
	}
	return "", fmt.Errorf("unknown naming mode %q (expected skip, overwrite, or add)", value)
}

func (m Mode) String() string { return string(m) }

// ResolveOutputPath picks the file an artwork download should be written to.
// The boolean is false when nothing should be written: skip mode with an
// existing file, an unrecognised mode, or an add-mode sequence with no free
// index.
//
// In add mode the first free name in the sequence basename, name-1.ext,
// name-2.ext, ... is found with exponential probing followed by a binary
// search, which assumes the numbered files form a contiguous run starting at 1.
func ResolveOutputPath(dir string, mode Mode, basename string) (string, bool) {
	base := filepath.Join(dir, basename)
	switch mode {
	case ModeOverwrite:
		return base, true
	case ModeSkip:
		if exists(base) {
			return "", false
		}
		return base, true
	case ModeAdd:
		if !exists(base) {
			return base, true
		}
		ext := filepath.Ext(basename)
		name := strings.TrimSuffix(basename, ext)
		numbered := func(n int) string {
			return filepath.Join(dir, name+"-"+strconv.Itoa(n)+ext)
		}
		n, ok := firstFreeIndex(func(n int) bool { return exists(numbered(n)) })
		if !ok {
			return "", false
		}
		return numbered(n), true
	default:
		return "", false
	}
}

// firstFreeIndex returns the smallest n >= 1 for which taken(n) is false,
// assuming taken is true for a prefix 1..k and false afterwards. It reports
// false if taken never turns false before the index would overflow.
func firstFreeIndex(taken func(int) bool) (int, bool) {
	lo, hi := 0, 1
	for taken(hi) {
		if hi > math.MaxInt/2 {
			return 0, false
		}
		lo = hi
		hi *= 2
	}
	// taken(lo) holds (or lo == 0) and taken(hi) does not.
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if taken(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi, true
}

// exists reports whether path can be stat'ed. Permission and ENOTDIR errors
// count as absent so the caller attempts the write and reports its failure.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
