package transcribe

import (
	"context"
	"errors"

	"podnews/internal/transcript"
)

// ErrMalformed marks a transcription response that is structurally
// unrecoverable (missing fields, catastrophic reordering). Minor defects are
// repaired locally and never surface as errors.
var ErrMalformed = errors.New("malformed transcription response")

// Backend is a pluggable transcription engine. Transcribe returns spans with
// offsets relative to the segment's own start, in chronological order. A
// segment containing only silence yields zero spans; that is valid, not an
// error.
type Backend interface {
	Transcribe(ctx context.Context, audioPath string) ([]transcript.Span, error)
}
