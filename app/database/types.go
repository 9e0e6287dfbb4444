package database

import (
	"fmt"
	"strings"
	"time"
)

type Subreddit struct {
	ID   int64
	Name string
}

type Submission struct {
	ID            int64
	SubredditID   int64
	SubredditName string // joined from subreddits, not a column

	PostID    string
	Author    string
	PostedAt  time.Time
	Domain    string
	Over18    bool
	Permalink string
	Score     int64
	Title     string
	URL       string

	ImageFilename   string
	ImageDownloaded *bool // nil: never attempted
	ImageHeightPx   *int64
	ImageWidthPx    *int64

	CreatedAt time.Time
}

// Brief returns a one-line representation of the submission.
func (s *Submission) Brief() string {
	return fmt.Sprintf("/r/%s | %s | %s (score: %d)", s.SubredditName, s.PostID, s.Title, s.Score)
}

// Detail returns a multi-line representation of the submission.
func (s *Submission) Detail() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Title:     %s\n", s.Title)
	fmt.Fprintf(&b, "Author:    %s\n", s.Author)
	fmt.Fprintf(&b, "Subreddit: /r/%s\n", s.SubredditName)
	fmt.Fprintf(&b, "Posted:    %s\n", s.PostedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "Score:     %d\n", s.Score)
	fmt.Fprintf(&b, "Domain:    %s\n", s.Domain)
	fmt.Fprintf(&b, "URL:       %s\n", s.URL)
	fmt.Fprintf(&b, "Permalink: https://www.reddit.com%s\n", s.Permalink)

	if s.ImageHeightPx != nil && s.ImageWidthPx != nil {
		fmt.Fprintf(&b, "Size:      %dx%d\n", *s.ImageWidthPx, *s.ImageHeightPx)
	} else {
		b.WriteString("Size:      unknown\n")
	}

	fmt.Fprintf(&b, "File:      %s", s.ImageFilename)

	return b.String()
}

type Selection struct {
	ID           int64
	SubmissionID int64
	SelectedAt   time.Time

	Submission *Submission // joined, present on read paths
}

type SubredditCount struct {
	Name  string
	Count int64
}
