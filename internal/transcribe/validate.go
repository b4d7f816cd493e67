package transcribe

import (
	"fmt"
	"strings"

	"podnews/internal/transcript"
)

// reorderTolerance is how far (seconds) a span's start may precede its
// predecessor's before the response counts as catastrophically reordered.
// Jitter below the tolerance is clamped; anything beyond fails the segment.
const reorderTolerance = 1.0

// sanitize repairs minor defects in backend output and rejects structurally
// broken responses. Whitespace-only spans are dropped, inverted spans are
// clamped to zero length, and small chronology jitter is clamped to the
// previous span's start.
func sanitize(spans []transcript.Span) ([]transcript.Span, error) {
	out := make([]transcript.Span, 0, len(spans))
	for i, s := range spans {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		if s.End < s.Start {
			s.End = s.Start
		}
		if len(out) > 0 {
			prev := out[len(out)-1]
			if s.Start < prev.Start-reorderTolerance {
				return nil, fmt.Errorf("%w: span %d starts at %.3f, before previous span at %.3f",
					ErrMalformed, i, s.Start, prev.Start)
			}
			if s.Start < prev.Start {
				s.Start = prev.Start
				if s.End < s.Start {
					s.End = s.Start
				}
			}
		}
		out = append(out, s)
	}
	return out, nil
}
