package stats

import (
	"fmt"
	"io"

	"github.com/virtualtam/redwall/app/database"
)

// Report holds per-subreddit submission counts and the grand total.
type Report struct {
	Counts []database.SubredditCount
	Total  int64
}

// BuildReport aggregates submission counts per subreddit, ordered
// case-insensitively by subreddit name.
func BuildReport(submissionRepo *database.SubmissionRepository) (*Report, error) {
	counts, err := submissionRepo.CountBySubreddit()
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	var total int64
	for _, count := range counts {
		total += count.Count
	}

	return &Report{Counts: counts, Total: total}, nil
}

// Write renders the report.
func (r *Report) Write(w io.Writer) {
	for _, count := range r.Counts {
		fmt.Fprintf(w, "%5d  %s\n", count.Count, count.Name)
	}
	fmt.Fprintf(w, "%5d  total\n", r.Total)
}
