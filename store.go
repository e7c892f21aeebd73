package pubgen

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

// Store owns the posts and locale configs of one build. Posts are indexed in
// an in-memory SQLite database whose primary key enforces per-locale slug
// uniqueness and whose ordering defines the listing order.
type Store struct {
	db *sql.DB

	mu      sync.RWMutex
	seq     int
	posts   map[postKey]*Post
	configs map[string]*LocaleConfig
	locales []string
}

// sortableTime is fixed width so dates order correctly as text.
const sortableTime = "2006-01-02T15:04:05.000000000Z07:00"

type postKey struct {
	locale, slug string
}

// NewStore opens an empty in-memory store.
func NewStore() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	s := &Store{
		db:      db,
		posts:   make(map[postKey]*Post),
		configs: make(map[string]*LocaleConfig),
	}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    locale TEXT NOT NULL,
    slug TEXT NOT NULL,
    seq INTEGER NOT NULL,
    date TEXT NOT NULL,
    tags TEXT NOT NULL,
    source TEXT NOT NULL,
    PRIMARY KEY (locale, slug)
);
CREATE INDEX IF NOT EXISTS posts_by_date ON posts (locale, date DESC, seq ASC);
`)
	return err
}

// AddConfig registers the config of locale. Locales are listed in the order
// their configs were added.
func (s *Store) AddConfig(locale string, cfg *LocaleConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.configs[locale]; !ok {
		s.locales = append(s.locales, locale)
	}
	s.configs[locale] = cfg
}

// Config returns the config of locale, or nil when it was never loaded.
func (s *Store) Config(locale string) *LocaleConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.configs[locale]
}

// Locales returns the loaded locales in load order.
func (s *Store) Locales() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.locales...)
}

// AddPost indexes p. A second post with the same slug in the same locale is
// a content error naming both files.
func (s *Store) AddPost(p *Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalizedTags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		normalizedTags[i] = strings.ToLower(strings.TrimSpace(t))
	}
	tagString := "," + strings.Join(normalizedTags, ",") + ","

	res, err := s.db.Exec(`INSERT INTO posts (locale, slug, seq, date, tags, source) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT (locale, slug) DO NOTHING`,
		p.Locale, p.Slug, s.seq, p.Date.UTC().Format(sortableTime), tagString, p.Source)
	if err != nil {
		return fmt.Errorf("index post %s: %w", p.Source, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var first string
		if err := s.db.QueryRow(`SELECT source FROM posts WHERE locale = ? AND slug = ?`, p.Locale, p.Slug).Scan(&first); err != nil {
			return err
		}
		return contentError(p.Source, fmt.Errorf("%w %q in locale %s: already used by %s", ErrDuplicateSlug, p.Slug, p.Locale, first))
	}
	s.seq++
	s.posts[postKey{p.Locale, p.Slug}] = p
	return nil
}

// ListPosts returns the posts of locale, newest first. Posts with equal
// dates keep the order they were added in.
func (s *Store) ListPosts(locale string) ([]*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT slug FROM posts WHERE locale = ? ORDER BY date DESC, seq ASC`, locale)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, err
		}
		posts = append(posts, s.posts[postKey{locale, slug}])
	}
	return posts, rows.Err()
}

// GetPost returns a single post by locale and slug.
func (s *Store) GetPost(locale, slug string) (*Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[postKey{locale, slug}]
	return p, ok
}

// ListTags returns a sorted, deduplicated slice of all tags used in locale.
func (s *Store) ListTags(locale string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT tags FROM posts WHERE locale = ?`, locale)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]struct{})
	for rows.Next() {
		var tags string
		if err := rows.Scan(&tags); err != nil {
			return nil, err
		}
		for _, t := range ParseTags(tags) {
			set[t] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	result := []string{}
	for t := range set {
		result = append(result, t)
	}
	sort.Strings(result)
	return result, nil
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
