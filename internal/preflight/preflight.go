package preflight

import (
	"context"

	"plexart/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// State directory (always checked)
	results = append(results, CheckDirectoryAccess("State directory", cfg.Paths.StateDir))

	// Host media prefix (only when path mapping is configured)
	if cfg.PathMappingEnabled() {
		results = append(results, CheckDirectoryAccess("Host media prefix", cfg.Paths.HostMediaPrefix))
	}

	results = append(results, CheckPlexFromConfig(ctx, cfg))
	return results
}
