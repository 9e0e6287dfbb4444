package database

import (
	"database/sql"
	"fmt"
	"time"
)

// SelectionRepository handles database operations for selection history
type SelectionRepository struct {
	db *DB
}

// NewSelectionRepository creates a new selection repository
func NewSelectionRepository(db *DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

// Insert records that a submission was chosen as the active selection. The
// timestamp comes from the catalog clock, not the caller.
func (r *SelectionRepository) Insert(submissionID int64) (*Selection, error) {
	selectedAt := time.Now().UTC()

	result, err := r.db.Exec(`
		INSERT INTO selections (submission_id, selected_at) VALUES (?, ?)
	`, submissionID, selectedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert selection: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get selection id: %w", err)
	}

	return &Selection{ID: id, SubmissionID: submissionID, SelectedAt: selectedAt}, nil
}

// GetBySubmissionID retrieves the selection referencing a submission, or nil
// when the submission has never been selected.
func (r *SelectionRepository) GetBySubmissionID(submissionID int64) (*Selection, error) {
	var selection Selection
	err := r.db.QueryRow(`
		SELECT id, submission_id, selected_at
		FROM selections
		WHERE submission_id = ?
		LIMIT 1
	`, submissionID).Scan(&selection.ID, &selection.SubmissionID, &selection.SelectedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get selection by submission id: %w", err)
	}

	return &selection, nil
}

// GetLatest returns the most recent selection with its submission, or nil
// when no selection has been recorded yet.
func (r *SelectionRepository) GetLatest() (*Selection, error) {
	row := r.db.QueryRow(`
		SELECT l.id, l.submission_id, l.selected_at, ` + submissionColumns + `
		FROM selections l
		JOIN submissions s ON s.id = l.submission_id
		JOIN subreddits r ON r.id = s.subreddit_id
		ORDER BY l.id DESC
		LIMIT 1
	`)

	selection, err := scanSelection(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest selection: %w", err)
	}

	return selection, nil
}

// GetAll returns the full selection history, oldest first, each entry with
// its submission.
func (r *SelectionRepository) GetAll() ([]Selection, error) {
	rows, err := r.db.Query(`
		SELECT l.id, l.submission_id, l.selected_at, ` + submissionColumns + `
		FROM selections l
		JOIN submissions s ON s.id = l.submission_id
		JOIN subreddits r ON r.id = s.subreddit_id
		ORDER BY l.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get selections: %w", err)
	}
	defer rows.Close()

	var selections []Selection
	for rows.Next() {
		selection, err := scanSelection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan selection row: %w", err)
		}
		selections = append(selections, *selection)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating selection rows: %w", err)
	}

	return selections, nil
}

func scanSelection(row rowScanner) (*Selection, error) {
	var selection Selection
	var submission Submission
	var downloaded sql.NullBool
	var height, width sql.NullInt64

	err := row.Scan(
		&selection.ID, &selection.SubmissionID, &selection.SelectedAt,
		&submission.ID, &submission.SubredditID, &submission.SubredditName,
		&submission.PostID, &submission.Author, &submission.PostedAt,
		&submission.Domain, &submission.Over18, &submission.Permalink,
		&submission.Score, &submission.Title, &submission.URL,
		&submission.ImageFilename, &downloaded, &height, &width,
		&submission.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if downloaded.Valid {
		submission.ImageDownloaded = &downloaded.Bool
	}
	if height.Valid {
		submission.ImageHeightPx = &height.Int64
	}
	if width.Valid {
		submission.ImageWidthPx = &width.Int64
	}

	selection.Submission = &submission

	return &selection, nil
}
