package ogimage

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/sync/singleflight"
)

const (
	maxArchiveSize = 64 << 20 // 64MB
	maxFontSize    = 16 << 20
)

// ErrNoFonts is returned when a downloaded archive holds no font files.
var ErrNoFonts = errors.New("ogimage: archive contains no .ttf or .otf files")

// FontCache is a directory of font files populated from a zip archive on
// first use. Concurrent callers of Ensure share one population attempt and
// all observe its result. A successful population is remembered; a failed
// one is not, so the next Ensure downloads again. The directory's existence
// is the presence check; its contents are not re-validated.
type FontCache struct {
	dir    string
	url    string
	client *http.Client

	populating singleflight.Group
	ready      atomic.Bool

	mu    sync.Mutex
	fonts map[string]*opentype.Font
}

// NewFontCache returns a cache rooted at dir that downloads url when dir does
// not exist. A nil client means http.DefaultClient.
func NewFontCache(dir, url string, client *http.Client) *FontCache {
	if client == nil {
		client = http.DefaultClient
	}
	return &FontCache{
		dir:    dir,
		url:    url,
		client: client,
		fonts:  make(map[string]*opentype.Font),
	}
}

// Ensure makes sure the cache directory is populated.
func (c *FontCache) Ensure(ctx context.Context) error {
	if c.ready.Load() {
		return nil
	}
	_, err, _ := c.populating.Do("fonts", func() (any, error) {
		if err := c.populate(ctx); err != nil {
			return nil, err
		}
		c.ready.Store(true)
		return nil, nil
	})
	return err
}

func (c *FontCache) populate(ctx context.Context) error {
	if info, err := os.Stat(c.dir); err == nil && info.IsDir() {
		return nil
	}

	parent := filepath.Dir(c.dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create font cache parent: %w", err)
	}

	data, err := c.download(ctx)
	if err != nil {
		return err
	}

	// Extract next to the final location and rename, so an interrupted
	// population never leaves a directory that passes the presence check.
	tmp, err := os.MkdirTemp(parent, ".fonts-*")
	if err != nil {
		return fmt.Errorf("create font staging dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	n, err := extractFonts(data, tmp)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoFonts
	}

	if err := os.Rename(tmp, c.dir); err != nil {
		if info, statErr := os.Stat(c.dir); statErr == nil && info.IsDir() {
			return nil
		}
		return fmt.Errorf("install font cache: %w", err)
	}
	return nil
}

func (c *FontCache) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("font download request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download fonts from %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download fonts from %s: unexpected status %s", c.url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxArchiveSize+1))
	if err != nil {
		return nil, fmt.Errorf("read font archive: %w", err)
	}
	if len(data) > maxArchiveSize {
		return nil, fmt.Errorf("font archive exceeds %d bytes", maxArchiveSize)
	}
	return data, nil
}

// extractFonts writes every .ttf/.otf member of the zip archive into dst,
// flattened to its base name. It returns the number of files written.
func extractFonts(data []byte, dst string) (int, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("open font archive: %w", err)
	}

	n := 0
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.Contains(f.Name, "__MACOSX") {
			continue
		}
		name := filepath.Base(f.Name)
		ext := strings.ToLower(filepath.Ext(name))
		if strings.HasPrefix(name, ".") || (ext != ".ttf" && ext != ".otf") {
			continue
		}
		if err := extractFile(f, filepath.Join(dst, name)); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func extractFile(f *zip.File, path string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s in font archive: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := io.Copy(out, io.LimitReader(rc, maxFontSize)); err != nil {
		out.Close()
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return out.Close()
}

// Face returns a new face for the cached font file at the given size in
// points (72 DPI, so one point is one pixel). Ensure must have succeeded.
// Parsed fonts are shared; every call returns an independent face.
func (c *FontCache) Face(file string, size float64) (font.Face, error) {
	f, err := c.parsed(file)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face %s: %w", file, err)
	}
	return face, nil
}

func (c *FontCache) parsed(file string) (*opentype.Font, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.fonts[file]; ok {
		return f, nil
	}
	data, err := os.ReadFile(filepath.Join(c.dir, file))
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", file, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", file, err)
	}
	c.fonts[file] = f
	return f, nil
}
