package media

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"podnews/internal/segment"
)

// probeOutput mirrors the ffprobe JSON structure.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe uses ffprobe to read the audio duration in seconds.
func (m *implMedia) Probe(ctx context.Context, path string) (float64, error) {
	if err := m.executor.LookPath("ffprobe"); err != nil {
		return 0, err
	}

	out, err := m.executor.Execute(ctx,
		"ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "format=duration",
		"-of", "json",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", filepath.Base(path), err)
	}

	var probe probeOutput
	if err := json.Unmarshal([]byte(out.Stdout), &probe); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}

	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", probe.Format.Duration, err)
	}

	m.logger.Debug(ctx, "probed %s: %.1fs", filepath.Base(path), duration)
	return duration, nil
}

// ExtractWindow cuts one window out of the source into a self-contained MP3.
// The segment is re-encoded so each chunk decodes independently; -y makes the
// operation overwrite-safe for caller-level retries.
func (m *implMedia) ExtractWindow(ctx context.Context, srcPath, destDir string, w segment.Window) (string, error) {
	outPath := filepath.Join(destDir, fmt.Sprintf("segment_%03d.mp3", w.Index))

	m.logger.Debug(ctx, "extracting %s -> %s", w, filepath.Base(outPath))

	// -ss before -i performs an accurate seek when re-encoding.
	out, err := m.executor.Execute(ctx,
		"ffmpeg",
		"-ss", formatSeconds(w.Start),
		"-i", srcPath,
		"-t", formatSeconds(w.Duration()),
		"-vn",
		"-c:a", "libmp3lame",
		"-b:a", "192k",
		"-y",
		outPath,
	)
	if err != nil {
		return "", &ToolError{Window: w.Index, Detail: out.Stderr, Err: err}
	}

	return outPath, nil
}

func formatSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', 3, 64)
}
