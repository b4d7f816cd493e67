package newsletter

import (
	"context"

	"podnews/internal/feed"
	"podnews/internal/transcript"
)

// Section is one timestamped topic of the generated newsletter. Timestamp is
// seconds from the episode start, taken from the transcript cue the topic
// begins at.
type Section struct {
	Timestamp float64 `json:"timestamp"`
	Header    string  `json:"header"`
	Content   string  `json:"content"`
}

// Newsletter is the structured summary returned by the model.
type Newsletter struct {
	Title    string    `json:"title"`
	Summary  string    `json:"summary"`
	Sections []Section `json:"sections"`
}

// Generator turns an episode transcript into a newsletter.
type Generator interface {
	Generate(ctx context.Context, episode feed.Episode, tr transcript.Transcript) (Newsletter, error)
}
