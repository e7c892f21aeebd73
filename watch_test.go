package pubgen_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pubgen"
)

type buildResult struct {
	rep *pubgen.Report
	err error
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	s := newSite(t, "en")
	s.post("en", "first", "2024-01-01")
	b := s.builder([]string{"en"})
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	w, err := pubgen.NewWatcher(b, 20*time.Millisecond)
	require.NoError(t, err)
	builds := make(chan buildResult, 16)
	w.OnBuild(func(rep *pubgen.Report, err error) { builds <- buildResult{rep, err} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	post := filepath.Join(s.src, "content", "en", "posts", "second.md")
	body := []byte("---\ntitle: Second\nslug: second\ndate: 2024-01-02\nsummary: s\n---\nHi\n")

	// The first writes may land before the tree is watched, so keep writing
	// until a rebuild reports the new post.
	assert.Eventually(t, func() bool {
		if err := os.WriteFile(post, body, 0o644); err != nil {
			return false
		}
		select {
		case r := <-builds:
			return r.err == nil && r.rep.Artifacts["post"] == 2
		default:
			return false
		}
	}, 5*time.Second, 100*time.Millisecond)
	assert.FileExists(t, filepath.Join(s.out, "articles", "second", "index.html"))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherKeepsRunningAfterFailedBuild(t *testing.T) {
	s := newSite(t, "en")
	b := s.builder([]string{"en"})

	w, err := pubgen.NewWatcher(b, 20*time.Millisecond)
	require.NoError(t, err)
	builds := make(chan buildResult, 16)
	w.OnBuild(func(rep *pubgen.Report, err error) { builds <- buildResult{rep, err} })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	bad := filepath.Join(s.src, "content", "en", "posts", "bad.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(bad), 0o755))
	var failed bool
	require.Eventually(t, func() bool {
		_ = os.WriteFile(bad, []byte("no front matter\n"), 0o644)
		select {
		case r := <-builds:
			failed = r.err != nil
			return failed
		default:
			return false
		}
	}, 5*time.Second, 100*time.Millisecond)

	require.NoError(t, os.Remove(bad))
	assert.Eventually(t, func() bool {
		select {
		case r := <-builds:
			return r.err == nil
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)
}
