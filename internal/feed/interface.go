package feed

import (
	"context"
	"errors"
	"time"
)

// ErrNoEpisodes means the feed parsed but contained no episode with an audio
// enclosure.
var ErrNoEpisodes = errors.New("no episodes with audio found in feed")

// Episode is one podcast entry with a playable audio enclosure.
type Episode struct {
	Title       string
	Description string
	AudioURL    string
	Link        string
	Published   time.Time
}

// Reader selects episodes from a podcast RSS/Atom feed.
type Reader interface {
	// Latest returns the most recent episode carrying an audio enclosure.
	Latest(ctx context.Context, feedURL string) (Episode, error)

	// PublishedSince returns every audio episode published at or after the
	// given time, newest first.
	PublishedSince(ctx context.Context, feedURL string, since time.Time) ([]Episode, error)
}
