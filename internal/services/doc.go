// Package services defines shared plumbing consumed by the traversal engine
// and the Plex integration.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers and library names so log
//     lines from a single traversal can be correlated.
//   - Structured error markers plus the Wrap helper that separate fatal run
//     failures (configuration, server reachability) from per-node failures
//     the traversal logs and steps over.
//
// Use these helpers when wiring new integrations so error classification and
// observability stay uniform across the tool.
package services
