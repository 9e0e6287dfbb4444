package gather

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/virtualtam/redwall/app/database"
)

// writeSidecar saves a JSON metadata file next to the downloaded image,
// for inspection with standard tools. The catalog remains authoritative.
func writeSidecar(path string, submission *database.Submission) error {
	metadata := map[string]any{
		"id":             submission.PostID,
		"author":         submission.Author,
		"created_utc":    submission.PostedAt.Unix(),
		"domain":         submission.Domain,
		"image_filename": filepath.Base(submission.ImageFilename),
		"over_18":        submission.Over18,
		"permalink":      submission.Permalink,
		"score":          submission.Score,
		"title":          submission.Title,
		"url":            submission.URL,
	}

	if submission.ImageHeightPx != nil {
		metadata["image_height"] = *submission.ImageHeightPx
	}
	if submission.ImageWidthPx != nil {
		metadata["image_width"] = *submission.ImageWidthPx
	}

	// map keys marshal in sorted order
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write metadata file: %w", err)
	}

	return nil
}
