package download

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"podnews/internal/logger"
)

// Some podcast CDNs reject requests without a browser-like User-Agent.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36"

type implDownloader struct {
	client    *http.Client
	userAgent string
	logger    logger.Logger
}

// New creates a Downloader instance.
func New(log logger.Logger) Downloader {
	return &implDownloader{
		client:    &http.Client{},
		userAgent: defaultUserAgent,
		logger:    log,
	}
}

func (d *implDownloader) Fetch(ctx context.Context, url, destPath string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return 0, fmt.Errorf("create download dir: %w", err)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", destPath, err)
	}
	defer f.Close()

	d.logger.Info(ctx, "downloading %s (%d bytes reported)", url, resp.ContentLength)

	written, err := io.Copy(f, resp.Body)
	if err != nil {
		os.Remove(destPath)
		return 0, fmt.Errorf("write %s: %w", destPath, err)
	}

	d.logger.Info(ctx, "downloaded %.2f MB to %s", float64(written)/(1024*1024), filepath.Base(destPath))
	return written, nil
}
