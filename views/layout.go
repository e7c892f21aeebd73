package views

import (
	"strconv"

	"github.com/eringen/pubgen"
)

// layout wraps body in the document shell: head metadata, navigation,
// language switcher and footer.
func layout(d pubgen.PageData, body func(p *writer)) func(p *writer) {
	return func(p *writer) {
		l := LabelsFor(d.Locale)
		p.raw("<!DOCTYPE html>\n<html")
		p.attr("lang", d.Locale)
		p.raw(">\n<head>\n<meta charset=\"utf-8\">\n")
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`, "\n")
		head(p, d)
		p.raw("</head>\n<body>\n<header>\n<nav>\n")
		navLink(p, d.Nav.Home, l.Home)
		navLink(p, d.Nav.Articles, l.Articles)
		navLink(p, d.Nav.Projects, l.Projects)
		navLink(p, d.Nav.Feed, l.Feed)
		p.raw("</nav>\n")
		switcher(p, d, l)
		p.raw("</header>\n<main>\n")
		body(p)
		p.raw("</main>\n<footer>\n<p>&copy; ", strconv.Itoa(d.CurrentYear), " ")
		p.text(d.Site.Author.Name)
		p.raw(". ")
		p.text(l.RightsReserve)
		p.raw("</p>\n</footer>\n</body>\n</html>\n")
	}
}

func head(p *writer, d pubgen.PageData) {
	m := d.Meta
	p.raw("<title>")
	p.text(m.Title)
	p.raw("</title>\n")
	meta(p, "name", "description", m.Description)
	p.raw(`<link rel="canonical"`)
	p.attr("href", m.URL)
	p.raw(">\n")
	p.raw(`<link rel="alternate" type="application/rss+xml"`)
	p.attr("title", d.Site.SiteTitle)
	p.attr("href", d.Nav.Feed)
	p.raw(">\n")
	for _, alt := range d.Alternates {
		if alt.Locale == d.Locale {
			continue
		}
		p.raw(`<link rel="alternate"`)
		p.attr("hreflang", alt.Locale)
		p.attr("href", alt.URL)
		p.raw(">\n")
	}

	meta(p, "property", "og:type", m.OGType)
	meta(p, "property", "og:title", m.Title)
	meta(p, "property", "og:description", m.Description)
	meta(p, "property", "og:url", m.URL)
	meta(p, "property", "og:site_name", d.Site.SiteName)
	meta(p, "property", "og:locale", d.Locale)
	if m.Image != "" {
		meta(p, "property", "og:image", m.Image)
	}
	meta(p, "name", "twitter:card", "summary_large_image")
	if d.Site.Twitter != "" {
		meta(p, "name", "twitter:site", d.Site.Twitter)
	}
	meta(p, "name", "twitter:title", m.Title)
	meta(p, "name", "twitter:description", m.Description)
	if m.Image != "" {
		meta(p, "name", "twitter:image", m.Image)
	}
	if d.JSONLD != "" {
		// json.Marshal escapes <, > and &, so the payload cannot close the tag.
		p.raw(`<script type="application/ld+json">`, d.JSONLD, "</script>\n")
	}
	p.raw(`<link rel="stylesheet" href="/static/css/styles.css">`, "\n")
}

func meta(p *writer, key, name, content string) {
	p.raw("<meta")
	p.attr(key, name)
	p.attr("content", content)
	p.raw(">\n")
}

func navLink(p *writer, href, label string) {
	p.raw("<a")
	p.attr("href", href)
	p.raw(">")
	p.text(label)
	p.raw("</a>\n")
}

func switcher(p *writer, d pubgen.PageData, l Labels) {
	if len(d.Alternates) < 2 {
		return
	}
	p.raw(`<ul class="lang-switcher"`)
	p.attr("aria-label", l.Language)
	p.raw(">\n")
	for _, alt := range d.Alternates {
		p.raw("<li><a")
		p.attr("href", alt.URL)
		p.attr("hreflang", alt.Locale)
		if alt.Locale == d.Locale {
			p.raw(` aria-current="true"`)
		}
		p.raw(">")
		p.text(alt.Locale)
		p.raw("</a></li>\n")
	}
	p.raw("</ul>\n")
}
