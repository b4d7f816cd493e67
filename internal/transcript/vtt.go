package transcript

import (
	"fmt"
	"math"
	"strings"
)

// FormatTimestamp converts seconds to zero-padded HH:MM:SS.mmm. The value is
// computed in integer milliseconds so formatting round-trips exactly at the
// millisecond precision kept internally.
func FormatTimestamp(seconds float64) string {
	millis := int64(math.Round(math.Abs(seconds) * 1000))
	h := millis / 3600000
	m := (millis % 3600000) / 60000
	s := (millis % 60000) / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// WebVTT renders the transcript as a caption track: a WEBVTT header followed
// by numbered cue blocks. Identical transcripts always serialize to identical
// bytes.
func (t Transcript) WebVTT() string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for i, span := range t.Spans {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1,
			FormatTimestamp(span.Start),
			FormatTimestamp(span.End),
			strings.TrimSpace(span.Text),
		)
	}
	return b.String()
}

// PlainText flattens the transcript to prose, timestamps discarded, for
// consumers that only need the spoken text.
func (t Transcript) PlainText() string {
	parts := make([]string, 0, len(t.Spans))
	for _, span := range t.Spans {
		parts = append(parts, strings.TrimSpace(span.Text))
	}
	return strings.Join(parts, " ")
}
