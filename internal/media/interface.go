package media

import (
	"context"

	"podnews/internal/segment"
)

// Media probes audio sources and cuts self-contained per-window segment files.
type Media interface {
	// Probe returns the total duration of the audio file in seconds.
	Probe(ctx context.Context, path string) (float64, error)

	// ExtractWindow writes a standalone audio file containing exactly
	// [w.Start, w.End) of the source and returns its path. Re-invoking for
	// the same window overwrites the previous output, so callers may retry.
	ExtractWindow(ctx context.Context, srcPath, destDir string, w segment.Window) (string, error)
}
