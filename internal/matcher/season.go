package matcher

import (
	"regexp"
	"strconv"
	"strings"

	"plexart/internal/textutil"
)

// SeasonStatus describes how a season title was interpreted.
type SeasonStatus int

const (
	// SeasonMatched means a folder was found for the season.
	SeasonMatched SeasonStatus = iota
	// SeasonNoFolder means the title was understood but no folder carries an accepted name.
	SeasonNoFolder
	// SeasonIgnored means the title is a server aggregate ("All episodes") and is skipped silently.
	SeasonIgnored
	// SeasonNonStandard means the title follows no known convention; callers warn.
	SeasonNonStandard
)

func (s SeasonStatus) String() string {
	switch s {
	case SeasonMatched:
		return "matched"
	case SeasonNoFolder:
		return "no_folder"
	case SeasonIgnored:
		return "ignored"
	case SeasonNonStandard:
		return "non_standard"
	default:
		return "unknown"
	}
}

var seasonNumberPattern = regexp.MustCompile(`(?i)^Season\s+(\d+)`)

var specialsNames = []string{"Specials", "Season 00", "Season 0"}

// SeasonFolderNames returns the folder names accepted for a season title.
// The status is SeasonMatched when names were produced; the caller still has
// to look them up in a directory listing.
func SeasonFolderNames(title string) ([]string, SeasonStatus) {
	title = strings.TrimSpace(title)
	switch textutil.Fold(title) {
	case "specials", "season 0", "season 00":
		return append([]string(nil), specialsNames...), SeasonMatched
	case "all episodes":
		return nil, SeasonIgnored
	}

	m := seasonNumberPattern.FindStringSubmatch(title)
	if m == nil {
		return nil, SeasonNonStandard
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, SeasonNonStandard
	}
	plain := "Season " + strconv.Itoa(n)
	padded := "Season " + pad2(n)
	if plain == padded {
		return []string{plain}, SeasonMatched
	}
	return []string{plain, padded}, SeasonMatched
}

// ResolveSeasonFolder picks the first folder, in listing order, whose
// case-folded name is one of the accepted names for title.
func ResolveSeasonFolder(title string, folders []string) (string, SeasonStatus) {
	names, status := SeasonFolderNames(title)
	if status != SeasonMatched {
		return "", status
	}
	accepted := make(map[string]struct{}, len(names))
	for _, name := range names {
		accepted[textutil.Fold(name)] = struct{}{}
	}
	for _, folder := range folders {
		if _, ok := accepted[textutil.Fold(folder)]; ok {
			return folder, SeasonMatched
		}
	}
	return "", SeasonNoFolder
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
