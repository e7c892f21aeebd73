// Package views provides the default page components of a pubgen site. Sites
// with their own design pass their own pubgen.ViewFuncs instead.
package views

import (
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/pubgen"
	"github.com/eringen/pubgen/markdown"
)

// Default returns the built-in components.
func Default() pubgen.ViewFuncs {
	return pubgen.ViewFuncs{
		Home:     Home,
		Articles: Articles,
		Post:     Post,
		Projects: Projects,
		NotFound: NotFound,
	}
}

// Home renders a locale's landing page with its latest posts.
func Home(d pubgen.HomeData) templ.Component {
	l := LabelsFor(d.Locale)
	return component(layout(d.PageData, func(p *writer) {
		p.raw("<section class=\"intro\">\n<h1>")
		p.text(d.Site.SiteTitle)
		p.raw("</h1>\n<p>")
		p.text(d.Site.SiteDescription)
		p.raw("</p>\n</section>\n<section>\n<h2>")
		p.text(l.Latest)
		p.raw("</h2>\n")
		postList(p, d.Posts, l)
		p.raw("<a")
		p.attr("href", d.Nav.Articles)
		p.raw(">")
		p.text(l.AllArticles)
		p.raw("</a>\n</section>\n")
		tags(p, d.Tags, "")
	}))
}

// Articles renders one page of the paginated post listing.
func Articles(d pubgen.ListingData) templ.Component {
	l := LabelsFor(d.Locale)
	return component(layout(d.PageData, func(p *writer) {
		p.raw("<h1>")
		p.text(l.Articles)
		p.raw("</h1>\n")
		postList(p, d.Posts, l)
		if d.Page.NumPages < 2 {
			return
		}
		p.raw("<nav class=\"pagination\">\n")
		if d.PrevURL != "" {
			p.raw("<a rel=\"prev\"")
			p.attr("href", d.PrevURL)
			p.raw(">")
			p.text(l.Newer)
			p.raw("</a>\n")
		}
		p.raw("<span>")
		p.text(fmt.Sprintf(l.PageOf, d.Page.Number, d.Page.NumPages))
		p.raw("</span>\n")
		if d.NextURL != "" {
			p.raw("<a rel=\"next\"")
			p.attr("href", d.NextURL)
			p.raw(">")
			p.text(l.Older)
			p.raw("</a>\n")
		}
		p.raw("</nav>\n")
	}))
}

// Post renders a single article.
func Post(d pubgen.PostData) templ.Component {
	l := LabelsFor(d.Locale)
	return component(layout(d.PageData, func(p *writer) {
		p.raw("<article>\n<header>\n<h1>")
		p.text(d.Post.Title)
		p.raw("</h1>\n<time")
		p.attr("datetime", d.Post.Date.Format("2006-01-02"))
		p.raw(">")
		p.text(d.Date)
		p.raw("</time>\n")
		topic, _ := d.Post.Topic()
		tags(p, d.Post.Tags, topic)
		p.raw("</header>\n<div class=\"prose\">\n")
		p.component(markdown.HTML(d.HTML))
		p.raw("</div>\n</article>\n")
		if len(d.Related) > 0 {
			p.raw("<aside>\n<h2>")
			p.text(l.Related)
			p.raw("</h2>\n")
			postList(p, d.Related, l)
			p.raw("</aside>\n")
		}
	}))
}

// Projects renders the locale's project list from its config.
func Projects(d pubgen.PageData) templ.Component {
	l := LabelsFor(d.Locale)
	return component(layout(d, func(p *writer) {
		p.raw("<h1>")
		p.text(l.Projects)
		p.raw("</h1>\n<ul class=\"projects\">\n")
		for _, pr := range d.Site.Projects {
			p.raw("<li>\n<a")
			// SafeURL output is already escaped.
			p.raw(` href="`, markdown.SafeURL(pr.URL), `"`)
			p.raw(">")
			p.text(pr.Name)
			p.raw("</a>\n<p>")
			p.text(pr.Description)
			p.raw("</p>\n</li>\n")
		}
		p.raw("</ul>\n")
	}))
}

// NotFound renders the locale's 404 page.
func NotFound(d pubgen.PageData) templ.Component {
	l := LabelsFor(d.Locale)
	return component(layout(d, func(p *writer) {
		p.raw("<h1>")
		p.text(l.NotFound)
		p.raw("</h1>\n<p>")
		p.text(l.NotFoundBody)
		p.raw("</p>\n<a")
		p.attr("href", d.Nav.Home)
		p.raw(">")
		p.text(l.BackHome)
		p.raw("</a>\n")
	}))
}

func postList(p *writer, posts []pubgen.PostSummary, l Labels) {
	if len(posts) == 0 {
		p.raw("<p class=\"empty\">")
		p.text(l.NoPosts)
		p.raw("</p>\n")
		return
	}
	p.raw("<ul class=\"posts\">\n")
	for _, s := range posts {
		p.raw("<li>\n<a")
		p.attr("href", s.URL)
		p.raw(">")
		p.text(s.Post.Title)
		p.raw("</a>\n<time")
		p.attr("datetime", s.Post.Date.Format("2006-01-02"))
		p.raw(">")
		p.text(s.Date)
		p.raw("</time>\n<p>")
		p.text(s.Post.Summary)
		p.raw("</p>\n</li>\n")
	}
	p.raw("</ul>\n")
}

// tags renders tag pills. The pill equal to active is highlighted.
func tags(p *writer, list []string, active string) {
	if len(list) == 0 {
		return
	}
	p.raw("<ul class=\"tags\">\n")
	for _, t := range list {
		p.raw("<li")
		p.attr("class", TagClass(active != "" && strings.EqualFold(t, active)))
		p.attr("data-tag", pubgen.Slugify(t))
		p.raw(">")
		p.text(strings.ToLower(t))
		p.raw("</li>\n")
	}
	p.raw("</ul>\n")
}
