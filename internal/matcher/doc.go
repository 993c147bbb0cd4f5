// Package matcher pairs media server titles with folders that already exist
// on disk.
//
// Seasons are matched by a fixed naming convention: "Specials", "Season 0"
// and "Season 00" are interchangeable, and "Season N" accepts both the plain
// and zero-padded number. Albums are matched first by exact folder name and
// then by fuzzy similarity, with optional renaming of the matched folder to
// the server title.
package matcher
