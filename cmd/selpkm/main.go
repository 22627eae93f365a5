package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"selpkm/internal/cli"
	"selpkm/internal/config"
	"selpkm/internal/contextutil"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load configuration: %v\n", err)
		return cli.ExitCommandError
	}

	level := &slog.LevelVar{}
	level.Set(cfg.LogLevel)
	logger := slog.New(newHandler(stderr, cfg.LogFormat, level)).With("run_id", uuid.NewString())
	slog.SetDefault(logger)
	logger.Debug("logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = contextutil.WithLogger(ctx, logger)

	cmd := cli.NewRootCommand(&cli.RootOptions{
		DBPath:   cfg.DBPath,
		Inbox:    cfg.Inbox,
		LogLevel: level,
	})
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// newHandler builds the slog handler for format. Pretty output is colored
// only when stderr is a terminal.
func newHandler(stderr *os.File, format string, level slog.Leveler) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	switch format {
	case config.LogFormatJSON:
		return slog.NewJSONHandler(stderr, opts)
	case config.LogFormatText:
		return slog.NewTextHandler(stderr, opts)
	}

	var w io.Writer = stderr
	noColor := !isatty.IsTerminal(stderr.Fd()) && !isatty.IsCygwinTerminal(stderr.Fd())
	if !noColor {
		w = colorable.NewColorable(stderr)
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	})
}
