package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/eringen/pubgen"
	"github.com/eringen/pubgen/metrics"
	"github.com/eringen/pubgen/route"
	"github.com/eringen/pubgen/scaffold"
	"github.com/eringen/pubgen/views"
)

func loadConfig(path string) (pubgen.BuildConfig, error) {
	cfg, err := pubgen.LoadBuildConfig(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Override the output directory."`
}

func (b *BuildCmd) Run(ctx context.Context, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.OutputDir = b.Output
	}
	rep, err := pubgen.New(cfg, views.Default()).Build(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Built %d artifacts for %s in %s\n", rep.Total(), strings.Join(rep.Locales, ", "), rep.Duration.Round(time.Millisecond))
	for _, kind := range route.Kinds {
		if n := rep.Artifacts[kind]; n > 0 {
			fmt.Printf("  %-12s %d\n", kind, n)
		}
	}
	return nil
}

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr     string        `help:"Listen address." env:"PUBGEN_ADDR"`
	Debounce time.Duration `help:"Wait this long for changes to settle before rebuilding." default:"300ms"`
	NoWatch  bool          `name:"no-watch" help:"Serve without rebuilding on changes."`
}

func (s *ServeCmd) Run(ctx context.Context, root *CLI) error {
	cfg, err := loadConfig(root.Config)
	if err != nil {
		return err
	}
	if s.Addr != "" {
		cfg.Addr = s.Addr
	}

	recorder := metrics.NewPrometheusRecorder(prom.NewRegistry())
	builder := pubgen.New(cfg, views.Default(), pubgen.WithRecorder(recorder))
	if _, err := builder.Build(ctx); err != nil {
		// Keep serving so the next save can fix the build.
		slog.Error("Initial build failed", "error", err)
	}

	if !s.NoWatch {
		w, err := pubgen.NewWatcher(builder, s.Debounce)
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				slog.Error("Watcher stopped", "error", err)
			}
		}()
	}

	return pubgen.NewServer(builder.Config, slog.Default(), recorder.Handler()).Start(ctx)
}

// NewCmd implements the 'new' command.
type NewCmd struct {
	Name string `arg:"" help:"Project directory to create."`
}

func (n *NewCmd) Run() error {
	dirName := n.Name
	if idx := strings.LastIndex(dirName, "/"); idx >= 0 {
		dirName = dirName[idx+1:]
	}
	fmt.Printf("Creating new pubgen project: %s\n\n", dirName)

	created, err := scaffold.Write(n.Name, scaffold.NewData(dirName, pubgen.DefaultFontURL, time.Now()))
	for _, path := range created {
		fmt.Printf("  created %s\n", path)
	}
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Done! Next steps:")
	fmt.Println()
	fmt.Printf("  cd %s\n", n.Name)
	fmt.Println("  pubgen serve")
	fmt.Println()
	fmt.Println("Edit src/content/{locale}/config.yaml and add posts under src/content/{locale}/posts/.")
	return nil
}

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (VersionCmd) Run() error {
	fmt.Printf("pubgen %s\n", version)
	return nil
}
