package feed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

func (r *implReader) Latest(ctx context.Context, feedURL string) (Episode, error) {
	parsed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return Episode{}, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	episodes := episodesFromFeed(parsed)
	if len(episodes) == 0 {
		return Episode{}, ErrNoEpisodes
	}

	r.logger.Debug(ctx, "feed %q: %d items, latest episode %q", parsed.Title, len(parsed.Items), episodes[0].Title)
	return episodes[0], nil
}

func (r *implReader) PublishedSince(ctx context.Context, feedURL string, since time.Time) ([]Episode, error) {
	parsed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	var recent []Episode
	for _, ep := range episodesFromFeed(parsed) {
		if !ep.Published.Before(since) {
			recent = append(recent, ep)
		}
	}

	r.logger.Debug(ctx, "feed %q: %d episodes published since %s", parsed.Title, len(recent), since.Format(time.RFC3339))
	return recent, nil
}

// episodesFromFeed keeps feed items that carry an audio enclosure, preserving
// feed order (newest first in podcast feeds).
func episodesFromFeed(parsed *gofeed.Feed) []Episode {
	var episodes []Episode
	for _, item := range parsed.Items {
		audioURL := audioEnclosure(item)
		if audioURL == "" {
			continue
		}

		ep := Episode{
			Title:       item.Title,
			Description: item.Description,
			AudioURL:    audioURL,
			Link:        item.Link,
		}
		if item.PublishedParsed != nil {
			ep.Published = *item.PublishedParsed
		}
		episodes = append(episodes, ep)
	}
	return episodes
}

func audioEnclosure(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(enc.Type), "audio/") {
			return enc.URL
		}
	}
	return ""
}
