// Package markdown converts post bodies from Markdown to HTML with goldmark
// and exposes the result as templ components.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Converter turns Markdown into HTML. It is safe for concurrent use.
type Converter struct {
	md goldmark.Markdown
}

// New returns a Converter with tables, strikethrough, autolinks, task lists,
// footnotes and definition lists enabled. Raw HTML in posts is passed
// through.
func New() *Converter {
	return &Converter{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			extension.DefinitionList,
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(
			gmhtml.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(codeBlockRenderer{}, 100)),
		),
	)}
}

var defaultConverter = New()

// Convert renders src with the default Converter.
func Convert(src string) (string, error) {
	return defaultConverter.Convert(src)
}

// Convert renders src as HTML.
func (c *Converter) Convert(src string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out, err := Convert(content)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	})
}

// HTML returns a component writing already rendered HTML verbatim.
func HTML(rendered string) templ.Component {
	return templ.Raw(rendered)
}

// codeBlockRenderer renders fenced code blocks with a language badge:
// <div class="code-block-wrapper"><span class="code-lang code-lang-go">go</span><pre ...>.
type codeBlockRenderer struct{}

func (r codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.render)
}

func (codeBlockRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := html.EscapeString(string(n.Language(source)))
	if lang != "" {
		_, _ = w.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + lang + `">` + lang + `</span>`)
		_, _ = w.WriteString(`<pre class="code-block"><code class="language-` + lang + `">`)
	} else {
		_, _ = w.WriteString(`<pre class="code-block"><code>`)
	}
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		_, _ = w.WriteString(html.EscapeString(string(seg.Value(source))))
	}
	_, _ = w.WriteString("</code></pre>")
	if lang != "" {
		_, _ = w.WriteString("</div>")
	}
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

// SafeURL validates and sanitizes a URL for use in HTML attributes.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
