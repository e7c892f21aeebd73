// Package ogimage renders Open-Graph preview cards: a gradient background,
// the site's brand mark, the post title wrapped to the card width, the site
// name as a footer and optional topic art as a faded watermark.
package ogimage

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Job describes one card. Topic is empty when the post has none.
type Job struct {
	Locale   string
	Slug     string
	Title    string
	SiteName string
	Topic    string
}

// FaceSource provides font faces by file name and size.
type FaceSource interface {
	Face(file string, size float64) (font.Face, error)
}

// ensurer is implemented by face sources that need one-time preparation.
type ensurer interface {
	Ensure(ctx context.Context) error
}

// Layout holds the fixed geometry and colors of a card.
type Layout struct {
	Width, Height int
	Top, Bottom   color.RGBA
	Text          color.Color

	LogoOffset image.Point
	LogoBox    int

	TextX         int
	TitleY        int
	TitleMaxWidth int
	LineSpacing   int
	TitleFont     string
	TitleSize     float64

	FooterFont   string
	FooterSize   float64
	FooterMargin int

	TopicOffset  image.Point
	TopicOpacity float64
}

// DefaultLayout is the 1200×630 card used for every post.
var DefaultLayout = Layout{
	Width:  1200,
	Height: 630,
	Top:    color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff},
	Bottom: color.RGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff},
	Text:   color.White,

	LogoOffset: image.Pt(60, 60),
	LogoBox:    120,

	TextX:         60,
	TitleY:        220,
	TitleMaxWidth: 1080,
	LineSpacing:   12,
	TitleFont:     "Inter-Bold.ttf",
	TitleSize:     64,

	FooterFont:   "Inter-Regular.ttf",
	FooterSize:   32,
	FooterMargin: 60,

	TopicOffset:  image.Pt(820, 250),
	TopicOpacity: 0.25,
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLayout replaces DefaultLayout.
func WithLayout(l Layout) Option {
	return func(r *Renderer) { r.layout = l }
}

// Renderer draws cards. It is safe for concurrent use when its FaceSource is.
type Renderer struct {
	faces     FaceSource
	logo      image.Image
	topicsDir string
	layout    Layout
}

// NewRenderer returns a Renderer drawing logo as the brand mark and looking
// up topic art in topicsDir.
func NewRenderer(faces FaceSource, logo image.Image, topicsDir string, opts ...Option) *Renderer {
	r := &Renderer{
		faces:     faces,
		logo:      logo,
		topicsDir: topicsDir,
		layout:    DefaultLayout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render composes the card for job.
func (r *Renderer) Render(ctx context.Context, job Job) (*image.RGBA, error) {
	if e, ok := r.faces.(ensurer); ok {
		if err := e.Ensure(ctx); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l := r.layout

	canvas := Gradient(l.Width, l.Height, l.Top, l.Bottom)

	if r.logo != nil {
		mark := Thumbnail(r.logo, l.LogoBox, l.LogoBox)
		paste(canvas, mark, l.LogoOffset)
	}

	titleFace, err := r.faces.Face(l.TitleFont, l.TitleSize)
	if err != nil {
		return nil, err
	}
	defer titleFace.Close()
	drawLines(canvas, titleFace, l.Text, Wrap(job.Title, l.TitleMaxWidth, titleFace), l.TextX, l.TitleY, l.LineSpacing)

	footerFace, err := r.faces.Face(l.FooterFont, l.FooterSize)
	if err != nil {
		return nil, err
	}
	defer footerFace.Close()
	drawString(canvas, footerFace, l.Text, job.SiteName, l.TextX, l.Height-l.FooterMargin)

	if job.Topic != "" {
		art, found, err := LoadTopic(r.topicsDir, job.Topic)
		if err != nil {
			return nil, err
		}
		if found {
			paste(canvas, WithOpacity(art, l.TopicOpacity), l.TopicOffset)
		}
	}
	return canvas, nil
}

// WriteFile renders job and stores it as a PNG at path, creating parent
// directories.
func (r *Renderer) WriteFile(ctx context.Context, job Job, path string) error {
	img, err := r.Render(ctx, job)
	if err != nil {
		return fmt.Errorf("render og image %s/%s: %w", job.Locale, job.Slug, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode og image %s: %w", path, err)
	}
	return f.Close()
}

// paste alpha-composites src onto dst with its top-left corner at at.
func paste(dst draw.Image, src image.Image, at image.Point) {
	sb := src.Bounds()
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(sb.Size())}, src, sb.Min, draw.Over)
}

// drawLines draws lines top to bottom starting with the top of the first
// line at y. Each line advances by the face height plus spacing.
func drawLines(dst draw.Image, face font.Face, c color.Color, lines []string, x, y, spacing int) {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	advance := m.Height.Ceil() + spacing
	for i, line := range lines {
		drawString(dst, face, c, line, x, y+ascent+i*advance)
	}
}

// drawString draws s with its baseline at y.
func drawString(dst draw.Image, face font.Face, c color.Color, s string, x, baseline int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}
