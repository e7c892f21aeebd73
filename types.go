package pubgen

import (
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/pubgen/paginate"
)

// Post is one content file of one locale. Posts are shared by pointer for
// the duration of a build and never copied.
type Post struct {
	Title   string
	Slug    string
	Date    time.Time // UTC
	Locale  string
	Content string // raw Markdown body
	Summary string
	Tags    []string
	Source  string // file the post was loaded from

	html htmlCache
}

// Topic returns the first tag, which selects the OG image watermark.
func (p *Post) Topic() (string, bool) {
	if len(p.Tags) == 0 {
		return "", false
	}
	return p.Tags[0], true
}

// HTML returns the rendered body, converting it on first use. Every later
// caller gets the same result, including a conversion error.
func (p *Post) HTML(conv Converter) (string, error) {
	return p.html.get(func() (string, error) { return conv.Convert(p.Content) })
}

// FormattedDate returns the publication date in the locale's long form.
func (p *Post) FormattedDate() string {
	return FormatDate(p.Date, p.Locale)
}

// Converter turns Markdown into HTML.
type Converter interface {
	Convert(src string) (string, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(src string) (string, error)

func (f ConverterFunc) Convert(src string) (string, error) { return f(src) }

// ViewFuncs holds the templ components that render each page kind.
type ViewFuncs struct {
	Home     func(HomeData) templ.Component
	Articles func(ListingData) templ.Component
	Post     func(PostData) templ.Component
	Projects func(PageData) templ.Component
	NotFound func(PageData) templ.Component
}

func (v ViewFuncs) validate() error {
	switch {
	case v.Home == nil:
		return missingView("Home")
	case v.Articles == nil:
		return missingView("Articles")
	case v.Post == nil:
		return missingView("Post")
	case v.Projects == nil:
		return missingView("Projects")
	case v.NotFound == nil:
		return missingView("NotFound")
	}
	return nil
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // absolute og:image, empty when the page has none
}

// Alternate points at the same page in another locale.
type Alternate struct {
	Locale string
	URL    string
}

// Nav holds the site-relative URLs of a locale's fixed pages.
type Nav struct {
	Home     string
	Articles string
	Projects string
	Feed     string
}

// PageData is the template context shared by every page.
type PageData struct {
	Site          *LocaleConfig
	Locale        string
	DefaultLocale string
	Locales       []string
	Alternates    []Alternate
	CurrentYear   int
	Meta          PageMeta
	Nav           Nav
	JSONLD        string
}

// PostSummary is a post as shown in lists.
type PostSummary struct {
	Post *Post
	URL  string
	Date string
}

// HomeData is the context of a locale's home page.
type HomeData struct {
	PageData
	Posts []PostSummary
	Tags  []string // every tag of the locale, lowercased and sorted
}

// ListingData is the context of one paginated articles page.
type ListingData struct {
	PageData
	Page    paginate.Page[*Post]
	Posts   []PostSummary
	PrevURL string // empty on the first page
	NextURL string // empty on the last page
}

// PostData is the context of a single post page.
type PostData struct {
	PageData
	Post    *Post
	HTML    string
	Date    string
	Related []PostSummary
}
