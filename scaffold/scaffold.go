// Package scaffold creates new pubgen projects from embedded templates.
package scaffold

import (
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"golang.org/x/image/draw"

	"github.com/eringen/pubgen/ogimage"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

// Data holds the template variables passed to every scaffold template.
type Data struct {
	ProjectName string
	SiteName    string
	Initial     string
	Date        string
	FontURL     string
}

// NewData derives the template variables for a project directory name.
func NewData(projectName, fontURL string, now time.Time) Data {
	site := toTitle(projectName)
	initial := "P"
	if site != "" {
		initial = strings.ToUpper(site[:1])
	}
	return Data{
		ProjectName: projectName,
		SiteName:    site,
		Initial:     initial,
		Date:        now.UTC().Format("2006-01-02"),
		FontURL:     fontURL,
	}
}

// renames maps template base names to their final names.
var renames = map[string]string{
	"dotenv":    ".env.example",
	"gitignore": ".gitignore",
}

// Write renders every template into dir, which must not exist, plus a brand
// mark at src/static/img/logo.png. It returns the created files.
func Write(dir string, data Data) ([]string, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("directory %q already exists", dir)
	}

	const root = "templates"
	var created []string
	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := strings.TrimSuffix(filepath.Join(dir, relPath), ".tmpl")
		if name, ok := renames[filepath.Base(outPath)]; ok {
			outPath = filepath.Join(filepath.Dir(outPath), name)
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}
		content, err := Templates.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", path, err)
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create %s: %w", outPath, err)
		}
		defer f.Close()
		if err := tmpl.Execute(f, data); err != nil {
			return fmt.Errorf("execute template %s: %w", path, err)
		}
		created = append(created, outPath)
		return nil
	})
	if err != nil {
		return created, err
	}

	logo := filepath.Join(dir, "src", "static", "img", "logo.png")
	if err := writeLogo(logo); err != nil {
		return created, err
	}
	return append(created, logo), nil
}

// writeLogo draws a placeholder brand mark: a rounded gradient tile with a
// light inner square.
func writeLogo(path string) error {
	const size = 256
	tile := ogimage.Gradient(size, size,
		color.RGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff},
		color.RGBA{R: 0x63, G: 0x66, B: 0xf1, A: 0xff})

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), tile, image.Point{}, draw.Src)
	inner := image.Rect(size/4, size/4, size*3/4, size*3/4)
	draw.Draw(img, inner, image.NewUniform(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xd0}), image.Point{}, draw.Over)
	roundCorners(img, size/8)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// roundCorners clears the pixels outside a rounded rectangle of radius r.
func roundCorners(img *image.NRGBA, r int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cx, cy := x, y
			switch {
			case x < b.Min.X+r:
				cx = b.Min.X + r
			case x >= b.Max.X-r:
				cx = b.Max.X - r - 1
			}
			switch {
			case y < b.Min.Y+r:
				cy = b.Min.Y + r
			case y >= b.Max.Y-r:
				cy = b.Max.Y - r - 1
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy > r*r {
				img.SetNRGBA(x, y, color.NRGBA{})
			}
		}
	}
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-blog" -> "My Blog", "myblog" -> "Myblog"
func toTitle(s string) string {
	parts := strings.Split(s, "-")
	for i, p := range parts {
		if len(p) > 0 {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}
