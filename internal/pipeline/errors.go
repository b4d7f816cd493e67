package pipeline

import (
	"context"
	"errors"
	"fmt"

	"podnews/internal/media"
)

// ErrorKind classifies a per-window failure.
type ErrorKind int

const (
	// KindMediaTool means segment extraction failed for one window.
	KindMediaTool ErrorKind = iota
	// KindTranscription means the transcription call failed or returned
	// structurally unrecoverable data for one window.
	KindTranscription
	// KindTimeout means an external call exceeded its per-step deadline.
	KindTimeout
)

func (k ErrorKind) String() string {
	switch k {
	case KindMediaTool:
		return "media tool"
	case KindTranscription:
		return "transcription"
	case KindTimeout:
		return "timeout"
	}
	return "unknown"
}

// WindowError is a per-window pipeline failure. Windows merged before the
// failing one are unaffected; the caller receives them alongside this error.
type WindowError struct {
	Kind   ErrorKind
	Window int
	Err    error
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("window %d: %s error: %v", e.Window, e.Kind, e.Err)
}

func (e *WindowError) Unwrap() error {
	return e.Err
}

// classify maps a step failure onto the error taxonomy. Deadline hits become
// timeouts regardless of which tool was running; everything else keeps the
// stage's default kind.
func classify(kind ErrorKind, window int, err error) *WindowError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &WindowError{Kind: KindTimeout, Window: window, Err: err}
	}
	var toolErr *media.ToolError
	if errors.As(err, &toolErr) {
		return &WindowError{Kind: KindMediaTool, Window: window, Err: err}
	}
	return &WindowError{Kind: kind, Window: window, Err: err}
}
