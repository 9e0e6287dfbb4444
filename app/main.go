package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/virtualtam/redwall/app/cfg"
	"github.com/virtualtam/redwall/app/database"
)

func main() {
	appCfg, args, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "no command given, see --help")
		os.Exit(1)
	}

	if err := os.MkdirAll(appCfg.DataDir, 0o755); err != nil {
		slog.Error("Failed to create data directory", "dir", appCfg.DataDir, "error", err)
		os.Exit(1)
	}

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open catalog database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if _, _, err := database.RunMigrations(db); err != nil {
		slog.Error("Failed to apply database migrations", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}

	app := &application{
		cfg:            appCfg,
		subredditRepo:  database.NewSubredditRepository(db),
		submissionRepo: database.NewSubmissionRepository(db),
		selectionRepo:  database.NewSelectionRepository(db),
	}

	if err := app.run(args); err != nil {
		slog.Error("Command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
