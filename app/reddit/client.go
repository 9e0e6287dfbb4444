package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://www.reddit.com"
	maxRedirects   = 10
	requestTimeout = 30 * time.Second
)

// Client fetches ranked listings and raw media bytes from Reddit's public
// JSON API. It implements Lister and Fetcher.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a Reddit API client.
func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return ErrTooManyRedirects
				}
				return nil
			},
		},
		baseURL:   defaultBaseURL,
		userAgent: userAgent,
	}
}

type listingEnvelope struct {
	Data struct {
		Children []struct {
			Data listingPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type listingPost struct {
	ID         string  `json:"id"`
	Author     string  `json:"author"`
	CreatedUTC float64 `json:"created_utc"`
	Domain     string  `json:"domain"`
	Over18     bool    `json:"over_18"`
	Permalink  string  `json:"permalink"`
	Score      int64   `json:"score"`
	Title      string  `json:"title"`
	URL        string  `json:"url"`
}

// ListTop returns the top posts of a subreddit for the given time filter,
// in ranking order.
func (c *Client) ListTop(ctx context.Context, subreddit, timeFilter string, limit int) ([]Post, error) {
	query := url.Values{}
	query.Set("t", timeFilter)
	query.Set("limit", strconv.Itoa(limit))

	listingURL := fmt.Sprintf("%s/r/%s/top.json?%s", c.baseURL, url.PathEscape(subreddit), query.Encode())

	data, err := c.get(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing for /r/%s: %w", subreddit, err)
	}

	var envelope listingEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse listing for /r/%s: %w", subreddit, err)
	}

	posts := make([]Post, 0, len(envelope.Data.Children))
	for _, child := range envelope.Data.Children {
		posts = append(posts, newPost(child.Data))
	}

	return posts, nil
}

func newPost(raw listingPost) Post {
	post := Post{
		ID:        raw.ID,
		PostedAt:  time.Unix(int64(raw.CreatedUTC), 0).UTC(),
		Domain:    raw.Domain,
		Over18:    raw.Over18,
		Permalink: raw.Permalink,
		Score:     raw.Score,
		Title:     raw.Title,
		URL:       raw.URL,
	}

	// Deleted accounts show up as "[deleted]" or an empty author field.
	if raw.Author != "" && raw.Author != "[deleted]" {
		author := raw.Author
		post.Author = &author
	}

	return post
}

// FetchBytes downloads the raw content behind a URL.
func (c *Client) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	return c.get(ctx, rawURL)
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
