package reddit

import (
	"context"
	"time"
)

// Post is one entry of a subreddit's ranked listing.
type Post struct {
	ID        string
	Author    *string // nil when the author account is deleted
	PostedAt  time.Time
	Domain    string
	Over18    bool
	Permalink string
	Score     int64
	Title     string
	URL       string
}

// Lister provides ranked subreddit listings.
type Lister interface {
	ListTop(ctx context.Context, subreddit, timeFilter string, limit int) ([]Post, error)
}

// Fetcher retrieves raw bytes from a URL.
type Fetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}
