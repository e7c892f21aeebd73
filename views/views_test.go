package views

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/pubgen"
	"github.com/eringen/pubgen/paginate"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func pageData(locale string) pubgen.PageData {
	return pubgen.PageData{
		Site: &pubgen.LocaleConfig{
			SiteTitle:       "Notes & Sketches",
			SiteDescription: "A blog",
			SiteName:        "notes",
			Domain:          "https://example.com",
			Author:          pubgen.Author{Name: "Ada"},
			Twitter:         "@ada",
			PostsPerPage:    2,
			Language:        locale,
			Projects: []pubgen.Project{
				{Name: "pubgen", URL: "https://example.com/pubgen?a=1&b=2", Description: "Static sites"},
				{Name: "bad", URL: "javascript:alert(1)", Description: "Filtered"},
			},
		},
		Locale:        locale,
		DefaultLocale: "en",
		Locales:       []string{"en", "es"},
		Alternates: []pubgen.Alternate{
			{Locale: "en", URL: "/"},
			{Locale: "es", URL: "/es/"},
		},
		CurrentYear: 2024,
		Meta: pubgen.PageMeta{
			Title:       "Notes & Sketches",
			Description: "A blog",
			URL:         "https://example.com/",
			OGType:      "website",
			Image:       "https://example.com/static/img/og/en/hello.png",
		},
		Nav:    pubgen.Nav{Home: "/", Articles: "/articles/", Projects: "/projects/", Feed: "/rss.xml"},
		JSONLD: `{"@type":"WebSite"}`,
	}
}

func summary(slug, title string) pubgen.PostSummary {
	p := &pubgen.Post{
		Title:   title,
		Slug:    slug,
		Date:    time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Locale:  "en",
		Summary: "About " + title,
		Tags:    []string{"Go"},
	}
	return pubgen.PostSummary{Post: p, URL: "/articles/" + slug + "/", Date: p.FormattedDate()}
}

func TestLayoutHead(t *testing.T) {
	out := render(t, NotFound(pageData("en")))

	assert.Contains(t, out, `<html lang="en">`)
	assert.Contains(t, out, `<title>Notes &amp; Sketches</title>`)
	assert.Contains(t, out, `<link rel="canonical" href="https://example.com/">`)
	assert.Contains(t, out, `<meta property="og:image" content="https://example.com/static/img/og/en/hello.png">`)
	assert.Contains(t, out, `<meta name="twitter:site" content="@ada">`)
	assert.Contains(t, out, `<link rel="alternate" hreflang="es" href="/es/">`)
	assert.NotContains(t, out, `<link rel="alternate" hreflang="en"`)
	assert.Contains(t, out, `<script type="application/ld+json">{"@type":"WebSite"}</script>`)
	assert.Contains(t, out, `&copy; 2024 Ada.`)
	assert.Contains(t, out, `<a href="/" hreflang="en" aria-current="true">en</a>`)
}

func TestHome(t *testing.T) {
	d := pubgen.HomeData{
		PageData: pageData("en"),
		Posts:    []pubgen.PostSummary{summary("hello", "Hello <World>")},
		Tags:     []string{"go", "web dev"},
	}
	out := render(t, Home(d))

	assert.Contains(t, out, `<a href="/articles/hello/">Hello &lt;World&gt;</a>`)
	assert.Contains(t, out, `<time datetime="2024-03-05">March 5, 2024</time>`)
	assert.Contains(t, out, "Latest articles")
	assert.Contains(t, out, `data-tag="web-dev">web dev</li>`)
	assert.NotContains(t, out, TagClass(true))
}

func TestHomeEmpty(t *testing.T) {
	out := render(t, Home(pubgen.HomeData{PageData: pageData("es")}))
	assert.Contains(t, out, "Todavía no hay artículos.")
	assert.Contains(t, out, `<html lang="es">`)
}

func TestArticlesPagination(t *testing.T) {
	posts := []pubgen.PostSummary{summary("a", "A"), summary("b", "B")}
	d := pubgen.ListingData{
		PageData: pageData("en"),
		Page:     paginate.Page[*pubgen.Post]{Number: 2, NumPages: 3},
		Posts:    posts,
		PrevURL:  "/articles/",
		NextURL:  "/articles/page/3/",
	}
	out := render(t, Articles(d))

	assert.Contains(t, out, `<a rel="prev" href="/articles/">Newer</a>`)
	assert.Contains(t, out, `<a rel="next" href="/articles/page/3/">Older</a>`)
	assert.Contains(t, out, "Page 2 of 3")
}

func TestArticlesSinglePageHasNoNav(t *testing.T) {
	d := pubgen.ListingData{
		PageData: pageData("en"),
		Page:     paginate.Page[*pubgen.Post]{Number: 1, NumPages: 0},
	}
	out := render(t, Articles(d))
	assert.NotContains(t, out, "pagination")
	assert.Contains(t, out, "No articles yet.")
}

func TestPost(t *testing.T) {
	s := summary("hello", "Hello")
	d := pubgen.PostData{
		PageData: pageData("en"),
		Post:     s.Post,
		HTML:     "<p>Body <strong>bold</strong></p>\n",
		Date:     s.Date,
		Related:  []pubgen.PostSummary{summary("other", "Other")},
	}
	out := render(t, Post(d))

	assert.Contains(t, out, "<p>Body <strong>bold</strong></p>")
	assert.Contains(t, out, "<h1>Hello</h1>")
	assert.Contains(t, out, `<li class="`+TagClass(true)+`" data-tag="go">go</li>`)
	assert.Contains(t, out, "Related articles")
	assert.Contains(t, out, `<a href="/articles/other/">Other</a>`)
}

func TestProjectsFiltersUnsafeURLs(t *testing.T) {
	out := render(t, Projects(pageData("en")))

	assert.Contains(t, out, `<a href="https://example.com/pubgen?a=1&amp;b=2">pubgen</a>`)
	assert.Contains(t, out, `<a href="">bad</a>`)
	assert.NotContains(t, out, "javascript:")
}

func TestLabelsFallBackToEnglish(t *testing.T) {
	assert.Equal(t, "Artículos", LabelsFor("es").Articles)
	assert.Equal(t, "Artículos", LabelsFor("es-MX").Articles)
	assert.Equal(t, "Articles", LabelsFor("de").Articles)
	assert.Equal(t, "Articles", LabelsFor("").Articles)
}

func TestDefaultSetsEveryView(t *testing.T) {
	v := Default()
	assert.NotNil(t, v.Home)
	assert.NotNil(t, v.Articles)
	assert.NotNil(t, v.Post)
	assert.NotNil(t, v.Projects)
	assert.NotNil(t, v.NotFound)
}
