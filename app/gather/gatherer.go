package gather

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/virtualtam/redwall/app/database"
	"github.com/virtualtam/redwall/app/reddit"
)

// deletedAuthor is recorded when the originating account no longer exists.
const deletedAuthor = "[deleted]"

// domainDenylist lists domain substrings for media types that cannot be
// used as wallpapers.
var domainDenylist = []string{"v.reddit"}

// Gatherer downloads top submissions from configured subreddits into the
// local catalog.
type Gatherer struct {
	lister         reddit.Lister
	fetcher        reddit.Fetcher
	subredditRepo  *database.SubredditRepository
	submissionRepo *database.SubmissionRepository

	dataDir    string
	timeFilter string
	limit      int
}

// NewGatherer creates a new gatherer.
func NewGatherer(lister reddit.Lister, fetcher reddit.Fetcher, subredditRepo *database.SubredditRepository, submissionRepo *database.SubmissionRepository, dataDir, timeFilter string, limit int) *Gatherer {
	return &Gatherer{
		lister:         lister,
		fetcher:        fetcher,
		subredditRepo:  subredditRepo,
		submissionRepo: submissionRepo,
		dataDir:        dataDir,
		timeFilter:     timeFilter,
		limit:          limit,
	}
}

// Run gathers each subreddit in turn. A failure in one subreddit is logged
// and does not stop the others.
func (g *Gatherer) Run(ctx context.Context, subreddits []string) {
	for _, name := range subreddits {
		if err := g.gatherSubreddit(ctx, name); err != nil {
			slog.Error("Gathering failed", "subreddit", name, "error", err)
		}
	}
}

func (g *Gatherer) gatherSubreddit(ctx context.Context, name string) error {
	slog.Info("Gathering top submissions",
		"subreddit", name,
		"limit", g.limit,
		"time_filter", g.timeFilter)

	subreddit, err := g.subredditRepo.Upsert(name)
	if err != nil {
		return fmt.Errorf("failed to resolve subreddit: %w", err)
	}

	storageDir := filepath.Join(g.dataDir, name)
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	posts, err := g.lister.ListTop(ctx, name, g.timeFilter, g.limit)
	if err != nil {
		return fmt.Errorf("failed to list top submissions: %w", err)
	}

	var skipped, duplicates, saved, failed int

	for _, post := range posts {
		if hasDeniedDomain(post.Domain) {
			slog.Debug("Skipping unsupported domain", "subreddit", name, "post_id", post.ID, "domain", post.Domain)
			skipped++
			continue
		}

		existing, err := g.submissionRepo.GetByPostID(post.ID)
		if err != nil {
			return fmt.Errorf("failed to check for existing submission: %w", err)
		}
		if existing != nil {
			if existing.ImageDownloaded != nil && !*existing.ImageDownloaded {
				// recorded on a previous run with a failed download; the
				// catalog row keeps it from ever being retried
				slog.Warn("Skipping submission with previously failed download", "post_id", post.ID)
			} else {
				slog.Debug("Already gathered, skipping", "post_id", post.ID)
			}
			duplicates++
			continue
		}

		submission, err := g.saveSubmission(ctx, subreddit, storageDir, post)
		if err != nil {
			return err
		}

		saved++
		if submission.ImageDownloaded != nil && !*submission.ImageDownloaded {
			failed++
		}
	}

	slog.Info("Gathering completed",
		"subreddit", name,
		"listed", len(posts),
		"skipped", skipped,
		"duplicates", duplicates,
		"saved", saved,
		"download_failures", failed)

	return nil
}

// saveSubmission downloads a submission's image, probes its dimensions and
// records the catalog row. Download and probe failures are recovered: the
// row is stored regardless, so metadata is never lost to transient fetch
// errors.
func (g *Gatherer) saveSubmission(ctx context.Context, subreddit *database.Subreddit, storageDir string, post reddit.Post) (*database.Submission, error) {
	slog.Info("Saving submission", "post_id", post.ID, "url", post.URL)

	imagePath := filepath.Join(storageDir, post.ID+"-"+imageBasename(post.URL))

	var imageDownloaded *bool

	if _, err := os.Stat(imagePath); err == nil {
		slog.Warn("File exists, skipping download", "file", imagePath)
	} else {
		downloaded := g.downloadImage(ctx, post.URL, imagePath)
		imageDownloaded = &downloaded
	}

	var heightPx, widthPx *int64

	if _, err := os.Stat(imagePath); err == nil {
		width, height, err := probeImageDimensions(imagePath)
		if err != nil {
			slog.Warn("Failed to probe image dimensions", "file", imagePath, "error", err)
		} else {
			heightPx = &height
			widthPx = &width
		}
	}

	author := deletedAuthor
	if post.Author != nil {
		author = *post.Author
	}

	submission := &database.Submission{
		SubredditID:     subreddit.ID,
		SubredditName:   subreddit.Name,
		PostID:          post.ID,
		Author:          author,
		PostedAt:        post.PostedAt,
		Domain:          post.Domain,
		Over18:          post.Over18,
		Permalink:       post.Permalink,
		Score:           post.Score,
		Title:           post.Title,
		URL:             post.URL,
		ImageFilename:   imagePath,
		ImageDownloaded: imageDownloaded,
		ImageHeightPx:   heightPx,
		ImageWidthPx:    widthPx,
	}

	id, err := g.submissionRepo.Insert(submission)
	if err != nil {
		return nil, fmt.Errorf("failed to insert submission %s: %w", post.ID, err)
	}
	submission.ID = id

	sidecarPath := filepath.Join(storageDir, post.ID+".json")
	if err := writeSidecar(sidecarPath, submission); err != nil {
		slog.Warn("Failed to write metadata sidecar", "post_id", post.ID, "error", err)
	}

	return submission, nil
}

// downloadImage fetches the image bytes and writes them to disk. Returns
// false when the fetch or write failed; the caller records the submission
// either way.
func (g *Gatherer) downloadImage(ctx context.Context, rawURL, imagePath string) bool {
	slog.Info("Downloading image", "url", rawURL)

	data, err := g.fetcher.FetchBytes(ctx, rawURL)
	if err != nil {
		slog.Error("Failed to download image", "url", rawURL, "error", err)
		return false
	}

	if err := os.WriteFile(imagePath, data, 0o644); err != nil {
		slog.Error("Failed to write image file", "file", imagePath, "error", err)
		return false
	}

	return true
}

func hasDeniedDomain(domain string) bool {
	for _, denied := range domainDenylist {
		if strings.Contains(domain, denied) {
			return true
		}
	}
	return false
}

// imageBasename extracts the final path element of the submission URL,
// which usually carries the image file name and extension.
func imageBasename(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}
	return path.Base(parsed.Path)
}
