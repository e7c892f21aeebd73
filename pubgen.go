// Package pubgen builds multi-locale static blogs. It reads per-locale
// Markdown posts and site configs, and writes a fresh output tree of HTML
// pages, paginated listings, RSS feeds, a sitemap, robots.txt and one
// Open-Graph preview image per post.
//
// Users provide their own templ components via the ViewFuncs struct, and
// pubgen handles routing, pagination and every artifact it writes.
package pubgen

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eringen/pubgen/markdown"
	"github.com/eringen/pubgen/metrics"
	"github.com/eringen/pubgen/ogimage"
	"github.com/eringen/pubgen/route"
)

// Builder runs full builds of one project. Builds on the same Builder are
// serialized.
type Builder struct {
	Config BuildConfig
	Views  ViewFuncs

	logger    *slog.Logger
	recorder  metrics.Recorder
	converter Converter
	faces     ogimage.FaceSource
	fonts     *ogimage.FontCache
	client    *http.Client
	now       func() time.Time

	mu sync.Mutex
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.logger = l }
}

// WithRecorder sets the metrics recorder (default metrics.NoopRecorder).
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) { b.recorder = r }
}

// WithFontCache shares a font cache between builders. Without it each
// Builder creates one from Config.FontCacheDir and Config.FontURL.
func WithFontCache(c *ogimage.FontCache) Option {
	return func(b *Builder) { b.fonts = c }
}

// WithFaces replaces the font cache as the source of OG image faces.
func WithFaces(f ogimage.FaceSource) Option {
	return func(b *Builder) { b.faces = f }
}

// WithConverter replaces the goldmark converter.
func WithConverter(c Converter) Option {
	return func(b *Builder) { b.converter = c }
}

// WithHTTPClient sets the client used to download fonts.
func WithHTTPClient(c *http.Client) Option {
	return func(b *Builder) { b.client = c }
}

// WithClock sets the time source used for build timing and the copyright
// year.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// New creates a Builder with the given configuration and view functions.
func New(cfg BuildConfig, views ViewFuncs, opts ...Option) *Builder {
	cfg.setDefaults()

	b := &Builder{
		Config:   cfg,
		Views:    views,
		logger:   slog.Default(),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.converter == nil {
		b.converter = markdown.New()
	}
	if b.faces == nil {
		if b.fonts == nil {
			b.fonts = ogimage.NewFontCache(cfg.FontCacheDir, cfg.FontURL, b.client)
		}
		b.faces = b.fonts
	}
	return b
}

// Report summarizes a build.
type Report struct {
	ID        string
	Started   time.Time
	Duration  time.Duration
	Locales   []string
	Artifacts map[route.Kind]int

	mu sync.Mutex
}

func (r *Report) count(kind route.Kind) {
	r.mu.Lock()
	r.Artifacts[kind]++
	r.mu.Unlock()
}

// Total returns the number of artifacts written.
func (r *Report) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.Artifacts {
		n += c
	}
	return n
}

// Build recreates the output directory and writes every artifact. The first
// error aborts the build; the output tree is then incomplete and must not be
// served.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	rep := &Report{
		ID:        uuid.NewString(),
		Started:   b.now(),
		Artifacts: make(map[route.Kind]int),
	}
	log := b.logger.With("build_id", rep.ID)
	log.Info("Build started",
		"source", b.Config.SourceDir,
		"output", b.Config.OutputDir,
		"locales", b.Config.Locales)

	err := b.run(ctx, rep, log)

	rep.Duration = b.now().Sub(rep.Started)
	b.recorder.ObserveBuildDuration(rep.Duration)
	b.recorder.IncBuildOutcome(resultOf(err))
	if err != nil {
		log.Error("Build failed", "error", err, "duration", rep.Duration)
		return rep, err
	}
	log.Info("Build finished", "artifacts", rep.Total(), "duration", rep.Duration)
	return rep, nil
}

func resultOf(err error) metrics.ResultLabel {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.ResultCanceled
	default:
		return metrics.ResultFailed
	}
}

// stage runs one named build step and records its timing and result.
func (b *Builder) stage(ctx context.Context, log *slog.Logger, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := b.now()
	err := fn()
	d := b.now().Sub(start)

	result := resultOf(err)
	b.recorder.ObserveStageDuration(name, d)
	b.recorder.IncStageResult(name, result)
	log.Debug("Stage finished", "stage", name, "result", result, "duration", d)
	return err
}
