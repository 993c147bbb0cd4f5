// Package plex reads library metadata from a Plex Media Server.
//
// The client speaks the server's XML metadata API: the section list, the
// top-level items of a section, a single item's metadata, and an item's
// children. Responses are decoded into Node values that keep the element name
// (Video, Directory, Track) alongside the attributes the artwork traversal
// needs. Failures to reach the section endpoints are tagged
// services.ErrServerUnavailable; per-item failures are tagged
// services.ErrNodeMetadataUnavailable so callers can skip just that item.
package plex
