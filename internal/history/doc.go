// Package history keeps a SQLite record of artwork runs and of every artwork
// attempt made during a run, so past runs can be listed and audited with
// `plexart history`.
//
// The schema is versioned. A database written by a different schema version
// is rejected with ErrSchemaMismatch rather than migrated; delete the file to
// start over.
package history
