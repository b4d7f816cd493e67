package transcript

import "math"

// Span is one timestamped unit of transcribed text. Offsets are in seconds.
// A span is segment-local when produced by a transcription backend and global
// once the merger has rebased it onto the episode timeline.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is an ordered sequence of global spans with non-decreasing
// start times.
type Transcript struct {
	Spans []Span `json:"spans"`
}

// Duration returns the end time of the last span, or 0 for an empty transcript.
func (t Transcript) Duration() float64 {
	if len(t.Spans) == 0 {
		return 0
	}
	return t.Spans[len(t.Spans)-1].End
}

// roundMillis rounds a seconds value to millisecond precision.
func roundMillis(sec float64) float64 {
	return math.Round(sec*1000) / 1000
}
