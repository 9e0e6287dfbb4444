package database

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(filepath.Join(t.TempDir(), "redwall.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, _, err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func intPtr(v int64) *int64 {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func newTestSubmission(subredditID int64, postID string, width, height *int64) *Submission {
	return &Submission{
		SubredditID:     subredditID,
		PostID:          postID,
		Author:          "someuser",
		PostedAt:        time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC),
		Domain:          "i.imgur.com",
		Permalink:       "/r/EarthPorn/comments/" + postID,
		Score:           1234,
		Title:           "A mountain at sunrise",
		URL:             "https://i.imgur.com/" + postID + ".jpg",
		ImageFilename:   "/data/EarthPorn/" + postID + "-image.jpg",
		ImageDownloaded: boolPtr(true),
		ImageWidthPx:    width,
		ImageHeightPx:   height,
	}
}

func mustInsertSubmission(t *testing.T, repo *SubmissionRepository, submission *Submission) int64 {
	t.Helper()

	id, err := repo.Insert(submission)
	if err != nil {
		t.Fatalf("failed to insert submission %s: %v", submission.PostID, err)
	}
	return id
}
