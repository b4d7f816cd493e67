package transcript

import (
	"fmt"
	"strings"

	"podnews/internal/segment"
)

// Merger folds per-window transcription results into one global timeline.
// Windows must be merged strictly in index order; the accumulated sequence is
// valid after every Merge call, so a caller that fails partway through still
// holds a usable transcript for the windows merged so far.
type Merger struct {
	planned int
	next    int
	spans   []Span
}

// NewMerger creates a Merger expecting the given number of planned windows.
func NewMerger(planned int) *Merger {
	return &Merger{planned: planned}
}

// Merge rebases a window's segment-local spans onto the global timeline and
// appends them. Each local span keeps its internal timing; only the window's
// start offset is added, rounded to the millisecond. A window with no spans
// (silence) contributes nothing and is still counted as merged.
func (m *Merger) Merge(w segment.Window, local []Span) error {
	if w.Index != m.next {
		return fmt.Errorf("window %d merged out of order, expected %d", w.Index, m.next)
	}

	for _, s := range local {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		m.spans = append(m.spans, Span{
			Start: roundMillis(s.Start + w.Start),
			End:   roundMillis(s.End + w.Start),
			Text:  s.Text,
		})
	}
	m.next++

	return nil
}

// Completed returns the number of windows merged so far.
func (m *Merger) Completed() int {
	return m.next
}

// Planned returns the number of windows the merger expects in total.
func (m *Merger) Planned() int {
	return m.planned
}

// Transcript returns a copy of the accumulated global timeline. The copy is
// independent of the merger, so later merges never mutate a handed-out result.
func (m *Merger) Transcript() Transcript {
	spans := make([]Span, len(m.spans))
	copy(spans, m.spans)
	return Transcript{Spans: spans}
}
