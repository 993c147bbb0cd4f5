package plex

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// LibraryKind is the section type reported by the server.
type LibraryKind string

const (
	KindMovie  LibraryKind = "movie"
	KindShow   LibraryKind = "show"
	KindArtist LibraryKind = "artist"
)

// Element names used in MediaContainer responses.
const (
	ElementVideo     = "Video"
	ElementDirectory = "Directory"
	ElementTrack     = "Track"
)

// Section is a library section.
type Section struct {
	ID    int
	Title string
	Kind  LibraryKind
}

// Node is one element of a MediaContainer.
type Node struct {
	XMLName     xml.Name
	Title       string  `xml:"title,attr"`
	RatingKey   string  `xml:"ratingKey,attr"`
	Key         string  `xml:"key,attr"`
	Type        string  `xml:"type,attr"`
	Thumb       string  `xml:"thumb,attr"`
	Art         string  `xml:"art,attr"`
	ParentTitle string  `xml:"parentTitle,attr"`
	Media       []Media `xml:"Media"`
}

// Media groups the file parts of a playable item.
type Media struct {
	Parts []Part `xml:"Part"`
}

// Part is a single file on the server's filesystem.
type Part struct {
	File string `xml:"file,attr"`
}

type mediaContainer struct {
	Nodes []Node `xml:",any"`
}

// Tag returns the element name of the node.
func (n Node) Tag() string {
	return n.XMLName.Local
}

// FilePath returns the first part file of the node, or "" when it has none.
func (n Node) FilePath() string {
	for _, media := range n.Media {
		for _, part := range media.Parts {
			if file := strings.TrimSpace(part.File); file != "" {
				return file
			}
		}
	}
	return ""
}

// DisplayTitle returns the title or fallback when the server sent none.
func (n Node) DisplayTitle(fallback string) string {
	if title := strings.TrimSpace(n.Title); title != "" {
		return title
	}
	return fallback
}

// Filter returns the nodes whose element name is tag, in document order.
func Filter(nodes []Node, tag string) []Node {
	out := make([]Node, 0, len(nodes))
	for _, node := range nodes {
		if node.Tag() == tag {
			out = append(out, node)
		}
	}
	return out
}

func (n Node) section() (Section, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(n.Key))
	if err != nil {
		return Section{}, false
	}
	return Section{ID: id, Title: n.Title, Kind: LibraryKind(n.Type)}, true
}
