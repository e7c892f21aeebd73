package pubgen

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuildConfigDefaults(t *testing.T) {
	cfg, err := LoadBuildConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "src", cfg.SourceDir)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, []string{"en"}, cfg.Locales)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, DefaultFontURL, cfg.FontURL)
	assert.Equal(t, "Inter-Bold.ttf", cfg.TitleFont)
	assert.Equal(t, "Inter-Regular.ttf", cfg.FooterFont)
	assert.Equal(t, runtime.NumCPU(), cfg.Concurrency)
	assert.Equal(t, ":8000", cfg.Addr)
	assert.NotEmpty(t, cfg.FontCacheDir)
	require.NoError(t, cfg.Validate())
}

func TestLoadBuildConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pubgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source_dir: site
output_dir: public_html
locales: [en, es]
default_locale: es
concurrency: 2
`), 0o644))

	cfg, err := LoadBuildConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "site", cfg.SourceDir)
	assert.Equal(t, "public_html", cfg.OutputDir)
	assert.Equal(t, []string{"en", "es"}, cfg.Locales)
	assert.Equal(t, "es", cfg.DefaultLocale)
	assert.Equal(t, 2, cfg.Concurrency)
	require.NoError(t, cfg.Validate())
}

func TestLoadBuildConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pubgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("locales: [en\n"), 0o644))

	_, err := LoadBuildConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func workDir() string {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return wd
}

func TestBuildConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BuildConfig)
	}{
		{"bad locale tag", func(c *BuildConfig) { c.Locales = []string{"en", "not a locale"} }},
		{"default not listed", func(c *BuildConfig) { c.DefaultLocale = "de" }},
		{"duplicate locale", func(c *BuildConfig) { c.Locales = []string{"en", "en"} }},
		{"output is cwd", func(c *BuildConfig) { c.OutputDir = "." }},
		{"output is root", func(c *BuildConfig) { c.OutputDir = "/" }},
		{"output equals source", func(c *BuildConfig) { c.OutputDir = "src" }},
		{"source inside output", func(c *BuildConfig) { c.OutputDir = "site"; c.SourceDir = "site/src" }},
		{"absolute output contains relative source", func(c *BuildConfig) { c.OutputDir = workDir() }},
		{"absolute output equals relative source", func(c *BuildConfig) { c.OutputDir = filepath.Join(workDir(), "src") }},
		{"relative output contains absolute source", func(c *BuildConfig) {
			c.OutputDir = "site"
			c.SourceDir = filepath.Join(workDir(), "site", "src")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg BuildConfig
			cfg.setDefaults()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

const validLocaleConfig = `
site_title: Notes
site_description: A blog
site_name: notes
domain: https://example.com
author:
  name: Ada
  email: ada@example.com
twitter: "@ada"
posts_per_page: 3
language: en
projects:
  - name: pubgen
    url: https://example.com/pubgen
    description: Static sites
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadLocaleConfig(t *testing.T) {
	cfg, err := LoadLocaleConfig(writeConfig(t, validLocaleConfig), "en")
	require.NoError(t, err)

	assert.Equal(t, "Notes", cfg.SiteTitle)
	assert.Equal(t, "Ada", cfg.Author.Name)
	assert.Equal(t, "ada@example.com", cfg.Author.Email)
	assert.Equal(t, "@ada", cfg.Twitter)
	assert.Equal(t, 3, cfg.PostsPerPage)
	require.Len(t, cfg.Projects, 1)
	assert.Equal(t, "https://example.com/pubgen", cfg.Projects[0].URL)
}

func TestLoadLocaleConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		locale  string
		wantErr error
	}{
		{"missing title", "site_name: x\ndomain: d\nsite_description: d\nauthor: {name: a}\nposts_per_page: 1\nlanguage: en\n", "en", ErrMissingField},
		{"zero page size", "site_title: t\nsite_name: x\ndomain: d\nsite_description: d\nauthor: {name: a}\nposts_per_page: 0\nlanguage: en\n", "en", ErrInvalidConfig},
		{"language mismatch", validLocaleConfig, "es", ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			_, err := LoadLocaleConfig(path, tt.locale)
			assert.ErrorIs(t, err, tt.wantErr)

			var be *BuildError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, CategoryContent, be.Category)
			assert.Equal(t, path, be.Path)
		})
	}
}

func TestLoadLocaleConfigMissingFile(t *testing.T) {
	_, err := LoadLocaleConfig(filepath.Join(t.TempDir(), "config.yaml"), "en")
	assert.ErrorIs(t, err, os.ErrNotExist)
	cat, ok := CategoryOf(err)
	assert.True(t, ok)
	assert.Equal(t, CategoryContent, cat)
}
