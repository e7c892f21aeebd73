package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set at build time via ldflags.
var version = "dev"

// CLI definition & global flags.
type CLI struct {
	Config  string `short:"c" help:"Path to pubgen.yaml." default:"pubgen.yaml" env:"PUBGEN_CONFIG"`
	Verbose bool   `short:"v" help:"Enable debug logging." env:"PUBGEN_VERBOSE"`

	Build   BuildCmd   `cmd:"" default:"1" help:"Build the site into the output directory."`
	Serve   ServeCmd   `cmd:"" help:"Build, serve the output and rebuild on source changes."`
	New     NewCmd     `cmd:"" help:"Create a new pubgen project."`
	Version VersionCmd `cmd:"" help:"Print the pubgen version."`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Ignoring unreadable .env", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("pubgen"),
		kong.Description("A static site generator for multi-locale blogs."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err := kctx.Run(&cli); err != nil {
		slog.Error("Command failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
