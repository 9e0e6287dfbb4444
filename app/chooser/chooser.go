package chooser

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/virtualtam/redwall/app/database"
	"github.com/virtualtam/redwall/app/monitor"
)

// ErrNoCandidates is returned when no submission satisfies the current
// monitor geometry.
var ErrNoCandidates = errors.New("chooser: no candidate submission for the current monitor setup")

// Chooser selects submissions suitable for wallpaper usage.
type Chooser struct {
	subredditRepo  *database.SubredditRepository
	submissionRepo *database.SubmissionRepository
	selectionRepo  *database.SelectionRepository

	// when choosing the same image for all monitors, it must be wider than
	// the widest monitor and taller than the tallest
	minHeight int64
	minWidth  int64
}

// NewChooser creates a chooser for the given monitor setup.
func NewChooser(subredditRepo *database.SubredditRepository, submissionRepo *database.SubmissionRepository, selectionRepo *database.SelectionRepository, monitors []monitor.Monitor) *Chooser {
	var minHeight, minWidth int64

	for _, m := range monitors {
		if int64(m.Height) > minHeight {
			minHeight = int64(m.Height)
		}
		if int64(m.Width) > minWidth {
			minWidth = int64(m.Width)
		}
	}

	return &Chooser{
		subredditRepo:  subredditRepo,
		submissionRepo: submissionRepo,
		selectionRepo:  selectionRepo,
		minHeight:      minHeight,
		minWidth:       minWidth,
	}
}

// MinHeight returns the height bound derived from the monitor setup.
func (c *Chooser) MinHeight() int64 { return c.minHeight }

// MinWidth returns the width bound derived from the monitor setup.
func (c *Chooser) MinWidth() int64 { return c.minWidth }

// Candidates returns the submissions large enough for the monitor setup.
func (c *Chooser) Candidates() ([]database.Submission, error) {
	return c.submissionRepo.GetCandidates(c.minWidth, c.minHeight)
}

// RandomCandidate draws a candidate uniformly at random and records the
// selection. Only the first selection of a given submission is recorded, so
// the history answers "when was this image first chosen".
func (c *Chooser) RandomCandidate() (*database.Submission, error) {
	candidates, err := c.Candidates()
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	submission := candidates[rand.IntN(len(candidates))]

	existing, err := c.selectionRepo.GetBySubmissionID(submission.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check selection history: %w", err)
	}
	if existing == nil {
		if _, err := c.selectionRepo.Insert(submission.ID); err != nil {
			return nil, fmt.Errorf("failed to record selection: %w", err)
		}
	}

	return &submission, nil
}

// SubredditCandidates groups a subreddit's candidates, ordered by posting
// time ascending.
type SubredditCandidates struct {
	Subreddit   database.Subreddit
	Submissions []database.Submission
}

// CandidatesBySubreddit returns candidates grouped by subreddit, subreddits
// ordered case-insensitively by name.
func (c *Chooser) CandidatesBySubreddit() ([]SubredditCandidates, error) {
	subreddits, err := c.subredditRepo.GetAllOrderedByName()
	if err != nil {
		return nil, err
	}

	groups := make([]SubredditCandidates, 0, len(subreddits))
	for _, subreddit := range subreddits {
		submissions, err := c.submissionRepo.GetCandidatesBySubreddit(subreddit.ID, c.minWidth, c.minHeight)
		if err != nil {
			return nil, err
		}
		if len(submissions) == 0 {
			continue
		}

		groups = append(groups, SubredditCandidates{
			Subreddit:   subreddit,
			Submissions: submissions,
		})
	}

	return groups, nil
}
