// Package preflight provides readiness checks for the Plex server and the
// filesystem paths plexart writes to.
//
// The "plexart check" command runs RunAll and prints each Result. A failed
// check does not stop a normal run; it only explains why a run is likely to
// fail before any artwork is requested.
package preflight
