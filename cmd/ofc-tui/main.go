package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/rodgzilla/pineapple-ofc-ai/internal/adapters/api"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/adapters/tui"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/app"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/config"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// termbox owns the terminal; keep logs off it unless a file is given.
	logOut := io.Discard
	if path := os.Getenv("OFC_TUI_LOG"); path != "" {
		if f, ferr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); ferr == nil {
			defer f.Close()
			logOut = f
		}
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}))

	gameServer := api.NewClient(
		&http.Client{Timeout: cfg.ServerTimeout},
		cfg.ServerBaseURL,
		logger,
	)

	sess := app.NewSession(gameServer, logger)

	ui := tui.New(sess, logger)
	if err := ui.Run(context.Background()); err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("terminal ui failed", "error", err)
		os.Exit(1)
	}
}
