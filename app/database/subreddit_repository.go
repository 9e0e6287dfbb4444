package database

import (
	"database/sql"
	"fmt"
)

// SubredditRepository handles database operations for subreddits
type SubredditRepository struct {
	db *DB
}

// NewSubredditRepository creates a new subreddit repository
func NewSubredditRepository(db *DB) *SubredditRepository {
	return &SubredditRepository{db: db}
}

// Upsert returns the subreddit with the given name, creating it first if
// needed. Name equality is exact; only listing order is case-insensitive.
func (r *SubredditRepository) Upsert(name string) (*Subreddit, error) {
	existing, err := r.GetByName(name)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing subreddit: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	result, err := r.db.Exec(`INSERT INTO subreddits (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to insert subreddit: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get subreddit id: %w", err)
	}

	return &Subreddit{ID: id, Name: name}, nil
}

// GetByName retrieves a subreddit by its exact name
func (r *SubredditRepository) GetByName(name string) (*Subreddit, error) {
	var subreddit Subreddit
	err := r.db.QueryRow(`
		SELECT id, name
		FROM subreddits
		WHERE name = ?
	`, name).Scan(&subreddit.ID, &subreddit.Name)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subreddit by name: %w", err)
	}

	return &subreddit, nil
}

// GetAllOrderedByName returns all subreddits ordered case-insensitively by name
func (r *SubredditRepository) GetAllOrderedByName() ([]Subreddit, error) {
	rows, err := r.db.Query(`
		SELECT id, name
		FROM subreddits
		ORDER BY LOWER(name)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get subreddits: %w", err)
	}
	defer rows.Close()

	var subreddits []Subreddit
	for rows.Next() {
		var subreddit Subreddit
		if err := rows.Scan(&subreddit.ID, &subreddit.Name); err != nil {
			return nil, fmt.Errorf("failed to scan subreddit row: %w", err)
		}
		subreddits = append(subreddits, subreddit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subreddit rows: %w", err)
	}

	return subreddits, nil
}
