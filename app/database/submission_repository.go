package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// SubmissionRepository handles database operations for submissions
type SubmissionRepository struct {
	db *DB
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

const submissionColumns = `
	s.id, s.subreddit_id, r.name, s.post_id, s.author, s.posted_at,
	s.domain, s.over_18, s.permalink, s.score, s.title, s.url,
	s.image_filename, s.image_downloaded, s.image_height_px, s.image_width_px,
	s.created_at
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*Submission, error) {
	var submission Submission
	var downloaded sql.NullBool
	var height, width sql.NullInt64

	err := row.Scan(
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

	return &submission, nil
}

func (r *SubmissionRepository) querySubmissions(query string, args ...any) ([]Submission, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var submissions []Submission
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		submissions = append(submissions, *submission)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	return submissions, nil
}

// GetByPostID retrieves a submission by its Reddit post ID. Returns nil
// without error when no row matches.
func (r *SubmissionRepository) GetByPostID(postID string) (*Submission, error) {
	row := r.db.QueryRow(`
		SELECT `+submissionColumns+`
		FROM submissions s
		JOIN subreddits r ON r.id = s.subreddit_id
		WHERE s.post_id = ?
	`, postID)

	submission, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission by post id: %w", err)
	}

	return submission, nil
}

// Insert stores a new submission and returns its database ID. Inserting a
// post_id already present in the catalog returns ErrDuplicateSubmission.
func (r *SubmissionRepository) Insert(submission *Submission) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO submissions (
			subreddit_id, post_id, author, posted_at, domain, over_18,
			permalink, score, title, url, image_filename, image_downloaded,
			image_height_px, image_width_px, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, submission.SubredditID, submission.PostID, submission.Author,
		submission.PostedAt.UTC(), submission.Domain, submission.Over18,
		submission.Permalink, submission.Score, submission.Title, submission.URL,
		submission.ImageFilename, nullableBool(submission.ImageDownloaded),
		nullableInt64(submission.ImageHeightPx), nullableInt64(submission.ImageWidthPx),
		time.Now().UTC())

	if err != nil {
		if isUniqueConstraintError(err) {
			return 0, ErrDuplicateSubmission
		}
		return 0, fmt.Errorf("failed to insert submission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get submission id: %w", err)
	}

	return id, nil
}

// GetCandidates returns submissions whose recorded dimensions are at least
// as large as the given bounds. Submissions with unknown dimensions never
// match.
func (r *SubmissionRepository) GetCandidates(minWidth, minHeight int64) ([]Submission, error) {
	return r.querySubmissions(`
		SELECT `+submissionColumns+`
		FROM submissions s
		JOIN subreddits r ON r.id = s.subreddit_id
		WHERE s.image_width_px >= ?
		  AND s.image_height_px >= ?
		ORDER BY s.id
	`, minWidth, minHeight)
}

// GetCandidatesBySubreddit returns a subreddit's candidate submissions
// ordered by posting time, oldest first.
func (r *SubmissionRepository) GetCandidatesBySubreddit(subredditID, minWidth, minHeight int64) ([]Submission, error) {
	return r.querySubmissions(`
		SELECT `+submissionColumns+`
		FROM submissions s
		JOIN subreddits r ON r.id = s.subreddit_id
		WHERE s.subreddit_id = ?
		  AND s.image_width_px >= ?
		  AND s.image_height_px >= ?
		ORDER BY s.posted_at
	`, subredditID, minWidth, minHeight)
}

// SearchByTitle returns submissions whose title contains the query,
// compared case-insensitively with Unicode case folding.
func (r *SubmissionRepository) SearchByTitle(query string) ([]Submission, error) {
	submissions, err := r.querySubmissions(`
		SELECT ` + submissionColumns + `
		FROM submissions s
		JOIN subreddits r ON r.id = s.subreddit_id
		ORDER BY s.id
	`)
	if err != nil {
		return nil, err
	}

	folder := cases.Fold()
	needle := folder.String(query)

	var matches []Submission
	for _, submission := range submissions {
		if strings.Contains(folder.String(submission.Title), needle) {
			matches = append(matches, submission)
		}
	}

	return matches, nil
}

// CountBySubreddit returns per-subreddit submission counts, subreddits
// ordered case-insensitively by name.
func (r *SubmissionRepository) CountBySubreddit() ([]SubredditCount, error) {
	rows, err := r.db.Query(`
		SELECT r.name, COUNT(s.id)
		FROM subreddits r
		JOIN submissions s ON s.subreddit_id = r.id
		GROUP BY r.id
		ORDER BY LOWER(r.name)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}
	defer rows.Close()

	var counts []SubredditCount
	for rows.Next() {
		var count SubredditCount
		if err := rows.Scan(&count.Name, &count.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts = append(counts, count)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating count rows: %w", err)
	}

	return counts, nil
}

func nullableBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func nullableInt64(i *int64) any {
	if i == nil {
		return nil
	}
	return *i
}
