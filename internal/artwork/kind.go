package artwork

import (
	"net/url"
	"strings"

	"plexart/internal/services/plex"
)

// Kind identifies an artwork file.
type Kind string

const (
	KindPoster Kind = "poster"
	KindFanart Kind = "fanart"
	KindCover  Kind = "cover"
)

// Kinds lists every artwork kind in summary order.
var Kinds = []Kind{KindPoster, KindFanart, KindCover}

// Filename returns the canonical file name for the kind.
func (k Kind) Filename() string {
	return string(k) + ".jpg"
}

// Ref returns the server image path for the kind: thumb for posters and
// covers, art for fanart.
func (k Kind) Ref(node plex.Node) string {
	switch k {
	case KindPoster, KindCover:
		return node.Thumb
	case KindFanart:
		return node.Art
	default:
		return ""
	}
}

// ImageURL builds the absolute download URL for an image reference. Empty
// references and the literal "None" count as absent.
func ImageURL(base, token, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" || ref == "None" {
		return "", false
	}
	return strings.TrimRight(base, "/") + ref + "?X-Plex-Token=" + url.QueryEscape(token), true
}
