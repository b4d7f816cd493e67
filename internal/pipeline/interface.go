package pipeline

import (
	"context"
	"time"

	"podnews/internal/transcript"
)

// Options configures a pipeline run.
type Options struct {
	// MaxSegmentSec is the nominal chunk length in seconds.
	MaxSegmentSec float64
	// WorkDir receives the per-window segment files.
	WorkDir string
	// MaxRetries bounds per-window retries for media and transcription errors.
	MaxRetries int
	// StepTimeout caps each external call (extraction, transcription).
	StepTimeout time.Duration
	// ExtractWorkers > 1 extracts segments in parallel. Merging stays
	// strictly in window order regardless.
	ExtractWorkers int
	// RateLimitPerMin throttles transcription calls.
	RateLimitPerMin int
	// KeepSegments leaves the per-window audio files on disk after the run.
	KeepSegments bool
}

// Result is the outcome of a run. Completed < Planned means the transcript is
// partial: it holds exactly the spans of the windows merged before the run
// stopped, unmodified.
type Result struct {
	Transcript transcript.Transcript
	Completed  int
	Planned    int
}

// Complete reports whether every planned window was merged.
func (r Result) Complete() bool {
	return r.Planned > 0 && r.Completed == r.Planned
}

// Pipeline turns one audio file into a merged, globally-timed transcript.
type Pipeline interface {
	Run(ctx context.Context, audioPath string) (Result, error)
}
