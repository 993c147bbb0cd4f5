// Package config loads, normalizes, and validates plexart configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PLEX_URL, PLEX_TOKEN, CONTAINER_MEDIA_PREFIX, and HOST_MEDIA_PREFIX. The
// Config type centralizes every knob the CLI and traversal engine need so
// that server credentials, path translation, and download policy are
// discovered in one pass and passed explicitly to the components that use
// them.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
