package discover

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
)

// FeedReader discovers candidate articles from RSS/Atom feeds published by
// the news sources themselves.
type FeedReader struct {
	parser *gofeed.Parser
}

// NewFeedReader creates a feed-backed discovery reader.
func NewFeedReader() *FeedReader {
	return &FeedReader{parser: gofeed.NewParser()}
}

// Fetch parses the feed at the given URL and maps its items to candidates.
// Items without a link are skipped.
func (f *FeedReader) Fetch(ctx context.Context, feedURL string) ([]Candidate, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	candidates := make([]Candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		id := item.GUID
		if id == "" {
			id = uuid.NewString()
		}

		published := ""
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.UTC().Format(time.RFC3339)
		}

		candidates = append(candidates, Candidate{
			ID:          id,
			Title:       item.Title,
			URL:         item.Link,
			Source:      feed.Title,
			PublishedAt: published,
		})
	}

	return candidates, nil
}
