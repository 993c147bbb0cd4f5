package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"plexart/internal/config"
	"plexart/internal/services"
	"plexart/internal/services/plex"
)

const plexCheckTimeout = 10 * time.Second

// AuthChecker is satisfied by *plex.Client.
type AuthChecker interface {
	CheckAuth(ctx context.Context) error
}

// CheckPlex verifies that the server answers and accepts the token.
func CheckPlex(ctx context.Context, client AuthChecker) Result {
	const name = "Plex"

	checkCtx, cancel := context.WithTimeout(ctx, plexCheckTimeout)
	defer cancel()

	if err := client.CheckAuth(checkCtx); err != nil {
		return Result{Name: name, Detail: summarizePlexError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

// CheckPlexFromConfig evaluates Plex status from config and connectivity.
func CheckPlexFromConfig(ctx context.Context, cfg *config.Config) Result {
	const name = "Plex"

	if cfg == nil {
		return Result{Name: name, Detail: "Unknown"}
	}
	if cfg.Plex.URL == "" {
		return Result{Name: name, Detail: "Missing URL"}
	}
	if cfg.Plex.Token == "" {
		return Result{Name: name, Detail: "Missing token"}
	}
	check := CheckPlex(ctx, plex.NewFromConfig(cfg))
	check.Name = name
	if check.Passed {
		check.Detail = fmt.Sprintf("%s (%s)", check.Detail, cfg.Plex.URL)
	}
	return check
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// summarizePlexError produces a human-readable summary for Plex check failures.
func summarizePlexError(err error) string {
	if errors.Is(err, plex.ErrUnauthorized) {
		return "auth failed (invalid token)"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "check timed out (server unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "check timed out (server unreachable)"
	}
	if errors.Is(err, services.ErrConfiguration) {
		return "not configured"
	}
	return err.Error()
}
