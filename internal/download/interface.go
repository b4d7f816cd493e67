package download

import "context"

// Downloader fetches episode audio over HTTP onto local disk.
type Downloader interface {
	// Fetch streams the URL to destPath, overwriting any previous file, and
	// returns the number of bytes written.
	Fetch(ctx context.Context, url, destPath string) (int64, error)
}
