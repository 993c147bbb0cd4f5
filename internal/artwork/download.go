package artwork

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"plexart/internal/config"
	"plexart/internal/fileutil"
	"plexart/internal/logging"
	"plexart/internal/services"
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Downloader fetches images over HTTP.
type Downloader struct {
	client    HTTPDoer
	userAgent string
	logger    *slog.Logger
}

// NewDownloader builds a downloader. A nil client gets a default with the given timeout.
func NewDownloader(client HTTPDoer, timeout time.Duration, userAgent string, logger *slog.Logger) *Downloader {
	if client == nil {
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Downloader{
		client:    client,
		userAgent: userAgent,
		logger:    logging.NewComponentLogger(logger, "artwork"),
	}
}

// NewDownloaderFromConfig builds a downloader from the [download] settings.
func NewDownloaderFromConfig(cfg *config.Config, logger *slog.Logger) *Downloader {
	return NewDownloader(nil, time.Duration(cfg.Download.TimeoutSeconds)*time.Second, cfg.Download.UserAgent, logger)
}

// Download streams url into dest. On any failure dest is left as it was and
// the error is tagged services.ErrTransfer.
func (d *Downloader) Download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return services.Wrap(services.ErrTransfer, "artwork", "build request", "", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransfer, "artwork", "get", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return services.Wrap(services.ErrTransfer, "artwork", "get", fmt.Sprintf("status %d", resp.StatusCode), nil)
	}

	written, err := fileutil.WriteFileAtomic(dest, resp.Body, 0o644)
	if err != nil {
		return services.Wrap(services.ErrTransfer, "artwork", "write", dest, err)
	}
	d.logger.Debug("artwork written",
		logging.String(logging.FieldPath, dest),
		logging.String("size", humanize.Bytes(uint64(written))),
	)
	return nil
}
