package pubgen

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/eringen/pubgen/frontmatter"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// LoadLocale reads the config and every post of locale into s and returns
// the config. Post files are read in lexical order, which breaks date ties.
func LoadLocale(s *Store, cfg BuildConfig, locale string) (*LocaleConfig, error) {
	dir := cfg.localeDir(locale)
	lc, err := LoadLocaleConfig(filepath.Join(dir, "config.yaml"), locale)
	if err != nil {
		return nil, err
	}

	postsDir := filepath.Join(dir, "posts")
	entries, err := os.ReadDir(postsDir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, contentError(postsDir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		p, err := ParsePost(filepath.Join(postsDir, name), locale)
		if err != nil {
			return nil, err
		}
		if err := s.AddPost(p); err != nil {
			return nil, err
		}
	}
	s.AddConfig(locale, lc)
	return lc, nil
}

// ParsePost reads one post file of locale.
func ParsePost(path, locale string) (*Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, contentError(path, err)
	}
	meta, body, err := frontmatter.Parse(data)
	if err != nil {
		return nil, contentError(path, err)
	}

	for _, f := range []struct{ name, value string }{
		{"title", meta.Title},
		{"slug", meta.Slug},
		{"date", meta.Date},
		{"summary", meta.Summary},
	} {
		if strings.TrimSpace(f.value) == "" {
			return nil, contentError(path, fmt.Errorf("%w: %s", ErrMissingField, f.name))
		}
	}
	if !slugPattern.MatchString(meta.Slug) {
		return nil, contentError(path, fmt.Errorf("%w: %q", ErrInvalidSlug, meta.Slug))
	}
	if meta.Language != "" && meta.Language != locale {
		return nil, contentError(path, fmt.Errorf("language %q does not match locale %q", meta.Language, locale))
	}
	date, err := parseDate(meta.Date)
	if err != nil {
		return nil, contentError(path, err)
	}

	return &Post{
		Title:   strings.TrimSpace(meta.Title),
		Slug:    meta.Slug,
		Date:    date,
		Locale:  locale,
		Content: string(body),
		Summary: strings.TrimSpace(meta.Summary),
		Tags:    []string(meta.Tags),
		Source:  path,
	}, nil
}
