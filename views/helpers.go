package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	base := "inline-flex items-center rounded border border-ink dark:border-white/30 bg-stone-100 dark:bg-neutral-700 px-2.5 py-1 text-[11px] font-semibold uppercase tracking-[0.12em]"
	if active {
		base += " bg-ink dark:bg-white text-white dark:text-ink"
	}
	return base
}

// writer accumulates the first write error so markup can be emitted without
// checking every call.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (p *writer) raw(parts ...string) {
	for _, s := range parts {
		if p.err != nil {
			return
		}
		_, p.err = io.WriteString(p.w, s)
	}
}

// text writes s HTML-escaped.
func (p *writer) text(s string) {
	p.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (p *writer) attr(name, value string) {
	p.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (p *writer) component(c templ.Component) {
	if p.err == nil {
		p.err = c.Render(p.ctx, p.w)
	}
}

// component adapts a markup function to templ.Component.
func component(fn func(p *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &writer{ctx: ctx, w: w}
		fn(p)
		return p.err
	})
}
