package textutil

import "strings"

// folderNameReplacer swaps characters that cannot appear in a single path
// segment on common filesystems.
var folderNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", " -",
	"*", "",
	"?", "",
	"\"", "'",
	"<", "",
	">", "",
	"|", "-",
	"\x00", "",
)

// SanitizeFolderName turns a media title into something usable as a single
// directory name. Titles that are already safe come back unchanged apart from
// surrounding whitespace. Names that reduce to "", "." or ".." return "".
func SanitizeFolderName(title string) string {
	out := strings.TrimSpace(folderNameReplacer.Replace(strings.TrimSpace(title)))
	out = strings.TrimRight(out, ". ")
	switch out {
	case "", ".", "..":
		return ""
	}
	return out
}
