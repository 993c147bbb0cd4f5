// Package traversal walks a Plex library and places artwork beside the media
// it belongs to.
//
// Engine.Run fetches the section, dispatches once on its kind, and walks the
// tree depth first on a single goroutine:
//
//	movie:  Video -> directory of its first file
//	show:   Directory -> seasons -> first episode file -> show folder, season folders
//	artist: Directory -> albums -> first track file -> artist folder, album folders
//
// Only a failure to read the section or its items aborts a run. Everything
// else (a node without a rating key, a metadata request that fails, a missing
// file path, a folder that cannot be matched, a failed download) is reported
// and the walk moves on to the next sibling. Cancelling the context stops the
// walk between nodes.
package traversal
