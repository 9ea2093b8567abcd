package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

type CLI struct {
	Serve   ServeCommand   `cmd:"serve" help:"Start the keyword extraction server."`
	Extract ExtractCommand `cmd:"extract" help:"Extract keywords from a paragraph using a running server."`
	Batch   BatchCommand   `cmd:"batch" help:"Extract keywords from each paragraph in a YAML file."`
	TUI     TUICommand     `cmd:"tui" help:"Extract keywords interactively."`
	Version VersionCommand `cmd:"version" help:"Print the version of the keyword extraction server."`
}

func main() {
	// A .env file is optional. Variables already set in the environment win.
	_ = godotenv.Load()

	var cli CLI
	ctx := context.Background()
	kctx := kong.Parse(&cli, kong.UsageOnError(), kong.BindTo(ctx, (*context.Context)(nil)))
	if err := kctx.Run(); err != nil {
		log := getLogger("error")
		log.Error("error", slog.Any("error", err))
		os.Exit(1)
	}
}

func getLogger(level string) *slog.Logger {
	ll := slog.LevelInfo
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ll,
	}))
}
