package pubgen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/eringen/pubgen/ogimage"
)

// DefaultFontURL is the archive the font cache is populated from.
const DefaultFontURL = "https://github.com/rsms/inter/releases/download/v4.0/Inter-4.0.zip"

// BuildConfig holds the build-level settings of a pubgen project.
type BuildConfig struct {
	SourceDir     string   `yaml:"source_dir"`     // Content root (default "src")
	OutputDir     string   `yaml:"output_dir"`     // Recreated on every build (default "output")
	Locales       []string `yaml:"locales"`        // Locales to build (default [en])
	DefaultLocale string   `yaml:"default_locale"` // Unprefixed locale (default "en")

	FontURL      string `yaml:"font_url"`       // Zip archive with the OG image fonts
	FontCacheDir string `yaml:"font_cache_dir"` // default $XDG_CACHE_HOME/pubgen/fonts
	TitleFont    string `yaml:"title_font"`     // default Inter-Bold.ttf
	FooterFont   string `yaml:"footer_font"`    // default Inter-Regular.ttf

	Concurrency int    `yaml:"concurrency"` // Parallel renders (default NumCPU)
	Addr        string `yaml:"addr"`        // Dev server listen address (default ":8000")
}

func (c *BuildConfig) setDefaults() {
	if c.SourceDir == "" {
		c.SourceDir = "src"
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.DefaultLocale == "" {
		c.DefaultLocale = "en"
	}
	if len(c.Locales) == 0 {
		c.Locales = []string{c.DefaultLocale}
	}
	if c.FontURL == "" {
		c.FontURL = DefaultFontURL
	}
	if c.FontCacheDir == "" {
		c.FontCacheDir = defaultFontCacheDir()
	}
	if c.TitleFont == "" {
		c.TitleFont = ogimage.DefaultLayout.TitleFont
	}
	if c.FooterFont == "" {
		c.FooterFont = ogimage.DefaultLayout.FooterFont
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.NumCPU()
	}
	if c.Addr == "" {
		c.Addr = ":8000"
	}
}

func defaultFontCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "pubgen", "fonts")
	}
	return filepath.Join(".cache", "pubgen", "fonts")
}

// LoadBuildConfig reads a pubgen.yaml file. A missing file yields the
// defaults.
func LoadBuildConfig(path string) (BuildConfig, error) {
	var cfg BuildConfig
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}
	cfg.setDefaults()
	return cfg, nil
}

// Validate checks the settings a build depends on. It expects defaults to
// have been applied.
func (c BuildConfig) Validate() error {
	for _, l := range c.Locales {
		if _, err := language.Parse(l); err != nil {
			return fmt.Errorf("%w: locale %q: %v", ErrInvalidConfig, l, err)
		}
	}
	if !slices.Contains(c.Locales, c.DefaultLocale) {
		return fmt.Errorf("%w: default locale %q is not in locales %v", ErrInvalidConfig, c.DefaultLocale, c.Locales)
	}
	seen := make(map[string]bool, len(c.Locales))
	for _, l := range c.Locales {
		if seen[l] {
			return fmt.Errorf("%w: locale %q listed twice", ErrInvalidConfig, l)
		}
		seen[l] = true
	}

	out := filepath.Clean(c.OutputDir)
	if c.OutputDir == "" || out == "." || out == string(filepath.Separator) {
		return fmt.Errorf("%w: refusing to use %q as output directory", ErrInvalidConfig, c.OutputDir)
	}
	absOut, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("%w: output directory %q: %v", ErrInvalidConfig, c.OutputDir, err)
	}
	absSrc, err := filepath.Abs(c.SourceDir)
	if err != nil {
		return fmt.Errorf("%w: source directory %q: %v", ErrInvalidConfig, c.SourceDir, err)
	}
	if absOut == absSrc || strings.HasPrefix(absSrc+string(filepath.Separator), absOut+string(filepath.Separator)) {
		return fmt.Errorf("%w: output directory %q would remove source directory %q", ErrInvalidConfig, c.OutputDir, c.SourceDir)
	}
	return nil
}

func (c BuildConfig) localeDir(locale string) string {
	return filepath.Join(c.SourceDir, "content", locale)
}

func (c BuildConfig) staticDir() string { return filepath.Join(c.SourceDir, "static") }
func (c BuildConfig) publicDir() string { return filepath.Join(c.SourceDir, "public") }
func (c BuildConfig) logoPath() string  { return filepath.Join(c.staticDir(), "img", "logo.png") }
func (c BuildConfig) topicsDir() string { return filepath.Join(c.staticDir(), "img", "topics") }

// Author identifies the site owner.
type Author struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// Project is one entry on the projects page.
type Project struct {
	Name        string `yaml:"name"`
	URL         string `yaml:"url"`
	Description string `yaml:"description"`
}

// LocaleConfig holds the site settings of one locale, read from
// content/{locale}/config.yaml. It is never mutated after loading.
type LocaleConfig struct {
	SiteTitle       string    `yaml:"site_title"`
	SiteDescription string    `yaml:"site_description"`
	SiteName        string    `yaml:"site_name"`
	Domain          string    `yaml:"domain"`
	Author          Author    `yaml:"author"`
	Twitter         string    `yaml:"twitter"`
	PostsPerPage    int       `yaml:"posts_per_page"`
	Language        string    `yaml:"language"`
	Projects        []Project `yaml:"projects"`
}

// LoadLocaleConfig reads and validates the config of locale.
func LoadLocaleConfig(path, locale string) (*LocaleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, contentError(path, err)
	}
	var cfg LocaleConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, contentError(path, err)
	}
	if err := cfg.validate(locale); err != nil {
		return nil, contentError(path, err)
	}
	return &cfg, nil
}

func (c *LocaleConfig) validate(locale string) error {
	required := []struct {
		name, value string
	}{
		{"site_title", c.SiteTitle},
		{"site_description", c.SiteDescription},
		{"site_name", c.SiteName},
		{"domain", c.Domain},
		{"author.name", c.Author.Name},
		{"language", c.Language},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	if c.PostsPerPage <= 0 {
		return fmt.Errorf("%w: posts_per_page must be positive, got %d", ErrInvalidConfig, c.PostsPerPage)
	}
	if c.Language != locale {
		return fmt.Errorf("%w: language %q does not match locale directory %q", ErrInvalidConfig, c.Language, locale)
	}
	return nil
}
