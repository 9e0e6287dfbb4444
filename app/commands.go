package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/virtualtam/redwall/app/cfg"
	"github.com/virtualtam/redwall/app/chooser"
	"github.com/virtualtam/redwall/app/database"
	"github.com/virtualtam/redwall/app/gather"
	"github.com/virtualtam/redwall/app/monitor"
	"github.com/virtualtam/redwall/app/reddit"
	"github.com/virtualtam/redwall/app/stats"
)

type application struct {
	cfg            *cfg.Cfg
	subredditRepo  *database.SubredditRepository
	submissionRepo *database.SubmissionRepository
	selectionRepo  *database.SelectionRepository
}

func (app *application) run(args []string) error {
	command, rest := args[0], args[1:]

	switch command {
	case "gather":
		return app.gather()
	case "random":
		return app.random()
	case "list-candidates":
		return app.listCandidates()
	case "current":
		return app.current()
	case "history":
		return app.history()
	case "info":
		if len(rest) != 1 {
			return fmt.Errorf("usage: info POST_ID")
		}
		return app.info(rest[0])
	case "search":
		if len(rest) == 0 {
			return fmt.Errorf("usage: search TEXT...")
		}
		return app.search(strings.Join(rest, " "))
	case "stats":
		return app.stats()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// gather downloads top submission media from Reddit.
func (app *application) gather() error {
	client := reddit.NewClient(app.cfg.UserAgent)

	gatherer := gather.NewGatherer(
		client, client,
		app.subredditRepo, app.submissionRepo,
		app.cfg.DataDir, app.cfg.TimeFilter, app.cfg.SubmissionLimit,
	)

	gatherer.Run(context.Background(), app.cfg.Subreddits)

	return nil
}

// monitors returns the display geometry, honoring the override flags.
func (app *application) monitors() ([]monitor.Monitor, error) {
	var provider monitor.Provider

	if app.cfg.ScreenWidth > 0 && app.cfg.ScreenHeight > 0 {
		provider = &monitor.StaticProvider{
			Monitors: []monitor.Monitor{
				{Width: app.cfg.ScreenWidth, Height: app.cfg.ScreenHeight},
			},
		}
	} else {
		provider = &monitor.XRandrProvider{}
	}

	return provider.Detect()
}

func (app *application) newChooser() (*chooser.Chooser, error) {
	monitors, err := app.monitors()
	if err != nil {
		return nil, fmt.Errorf("failed to detect monitors: %w", err)
	}

	return chooser.NewChooser(app.subredditRepo, app.submissionRepo, app.selectionRepo, monitors), nil
}

// random selects a random submission suitable for the current monitor setup.
func (app *application) random() error {
	c, err := app.newChooser()
	if err != nil {
		return err
	}

	submission, err := c.RandomCandidate()
	if errors.Is(err, chooser.ErrNoCandidates) {
		fmt.Println("Nothing found!")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Println(submission.ImageFilename)

	return nil
}

// listCandidates lists submissions suitable for the current monitor setup.
func (app *application) listCandidates() error {
	c, err := app.newChooser()
	if err != nil {
		return err
	}

	groups, err := c.CandidatesBySubreddit()
	if err != nil {
		return err
	}

	for _, group := range groups {
		fmt.Printf("\n/r/%s\n", group.Subreddit.Name)
		fmt.Printf("---%s\n", strings.Repeat("-", len(group.Subreddit.Name)))

		for _, submission := range group.Submissions {
			fmt.Println(submission.Brief())
		}
	}

	return nil
}

// current displays information about the currently selected entry.
func (app *application) current() error {
	selection, err := app.selectionRepo.GetLatest()
	if err != nil {
		return err
	}

	if selection == nil {
		fmt.Println("Nothing found!")
		return nil
	}

	if app.cfg.FilenameOnly {
		fmt.Println(selection.Submission.ImageFilename)
		return nil
	}

	fmt.Printf("Current image, selected on %s\n\n", selection.SelectedAt.UTC().Format("2006-01-02 15:04:05"))
	fmt.Println(selection.Submission.Detail())

	return nil
}

// history displays the history of selected entries, oldest first.
func (app *application) history() error {
	selections, err := app.selectionRepo.GetAll()
	if err != nil {
		return err
	}

	for _, selection := range selections {
		fmt.Printf("%s | %s\n",
			selection.SelectedAt.UTC().Format("2006-01-02 15:04:05"),
			selection.Submission.Brief())
	}

	return nil
}

// info displays information about a given submission.
func (app *application) info(postID string) error {
	submission, err := app.submissionRepo.GetByPostID(postID)
	if err != nil {
		return err
	}

	if submission == nil {
		fmt.Println("Nothing found!")
		return nil
	}

	if app.cfg.FilenameOnly {
		fmt.Println(submission.ImageFilename)
		return nil
	}

	fmt.Println(submission.Detail())

	return nil
}

// search looks up submissions by title.
func (app *application) search(text string) error {
	submissions, err := app.submissionRepo.SearchByTitle(text)
	if err != nil {
		return err
	}

	for _, submission := range submissions {
		fmt.Println(submission.Brief())
	}

	fmt.Printf("\n%d result(s) found\n", len(submissions))

	return nil
}

// stats displays statistics about gathered submissions.
func (app *application) stats() error {
	report, err := stats.BuildReport(app.submissionRepo)
	if err != nil {
		return err
	}

	report.Write(os.Stdout)

	return nil
}
