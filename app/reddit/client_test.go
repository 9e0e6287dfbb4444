package reddit

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const listingFixture = `{
  "kind": "Listing",
  "data": {
    "children": [
      {
        "kind": "t3",
        "data": {
          "id": "aaa",
          "author": "someuser",
          "created_utc": 1700000000.0,
          "domain": "i.imgur.com",
          "over_18": false,
          "permalink": "/r/EarthPorn/comments/aaa/mountain/",
          "score": 4321,
          "title": "A mountain at sunrise",
          "url": "https://i.imgur.com/aaa.jpg"
        }
      },
      {
        "kind": "t3",
        "data": {
          "id": "bbb",
          "author": "[deleted]",
          "created_utc": 1700000100.0,
          "domain": "i.redd.it",
          "over_18": true,
          "permalink": "/r/EarthPorn/comments/bbb/lake/",
          "score": 99,
          "title": "A quiet lake",
          "url": "https://i.redd.it/bbb.png"
        }
      }
    ]
  }
}`

func TestClient_ListTop(t *testing.T) {
	var gotPath, gotQuery, gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotUserAgent = r.Header.Get("User-Agent")
		fmt.Fprint(w, listingFixture)
	}))
	defer server.Close()

	client := NewClient("redwall/test")
	client.baseURL = server.URL

	posts, err := client.ListTop(context.Background(), "EarthPorn", "month", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/r/EarthPorn/top.json" {
		t.Errorf("expected path '/r/EarthPorn/top.json', got '%s'", gotPath)
	}
	if gotQuery != "limit=20&t=month" {
		t.Errorf("expected query 'limit=20&t=month', got '%s'", gotQuery)
	}
	if gotUserAgent != "redwall/test" {
		t.Errorf("expected user agent 'redwall/test', got '%s'", gotUserAgent)
	}

	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}

	first := posts[0]
	if first.ID != "aaa" {
		t.Errorf("expected ID 'aaa', got '%s'", first.ID)
	}
	if first.Author == nil || *first.Author != "someuser" {
		t.Errorf("expected author 'someuser', got %v", first.Author)
	}
	if want := time.Unix(1700000000, 0).UTC(); !first.PostedAt.Equal(want) {
		t.Errorf("expected posted at %v, got %v", want, first.PostedAt)
	}
	if first.Score != 4321 {
		t.Errorf("expected score 4321, got %d", first.Score)
	}

	second := posts[1]
	if second.Author != nil {
		t.Errorf("expected nil author for deleted account, got %v", *second.Author)
	}
	if !second.Over18 {
		t.Error("expected over_18 to be true")
	}
}

func TestClient_ListTopHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("redwall/test")
	client.baseURL = server.URL

	_, err := client.ListTop(context.Background(), "EarthPorn", "month", 20)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", statusErr.StatusCode)
	}
}

func TestClient_FetchBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image bytes"))
	}))
	defer server.Close()

	client := NewClient("redwall/test")

	data, err := client.FetchBytes(context.Background(), server.URL+"/image.jpg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "image bytes" {
		t.Errorf("expected 'image bytes', got '%s'", string(data))
	}
}

func TestClient_FetchBytesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient("redwall/test")

	_, err := client.FetchBytes(context.Background(), server.URL+"/missing.jpg")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", statusErr.StatusCode)
	}
}

func TestClient_FetchBytesTooManyRedirects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.String(), http.StatusFound)
	}))
	defer server.Close()

	client := NewClient("redwall/test")

	_, err := client.FetchBytes(context.Background(), server.URL+"/loop.jpg")
	if !errors.Is(err, ErrTooManyRedirects) {
		t.Errorf("expected ErrTooManyRedirects, got %v", err)
	}
}
