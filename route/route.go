// Package route maps (locale, kind, params) tuples to output file paths and
// public URLs. Every artifact a build writes gets its location from here.
package route

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

// Kind identifies a class of output artifact.
type Kind string

const (
	KindHome     Kind = "home"
	KindPost     Kind = "post"
	KindListing  Kind = "listing"
	KindProjects Kind = "projects"
	KindNotFound Kind = "404"
	KindFeed     Kind = "rss.xml"
	KindSitemap  Kind = "sitemap.xml"
	KindRobots   Kind = "robots.txt"
	KindOGImage  Kind = "og-image"
)

// Kinds lists every known kind in a stable order.
var Kinds = []Kind{
	KindHome, KindPost, KindListing, KindProjects, KindNotFound,
	KindFeed, KindSitemap, KindRobots, KindOGImage,
}

// Params carries the identifiers some kinds need.
type Params struct {
	Slug string // post, og-image
	Page int    // listing, 1-based
}

// Route is a resolved artifact location.
type Route struct {
	Path string // filesystem path under the output root
	URL  string // site-relative public URL, always with a leading slash
}

// Router resolves routes for one output root. It holds no mutable state.
type Router struct {
	outputDir     string
	defaultLocale string
}

// New returns a Router writing under outputDir. Paths for defaultLocale carry
// no locale segment.
func New(outputDir, defaultLocale string) *Router {
	if defaultLocale == "" {
		panic("route: empty default locale")
	}
	return &Router{outputDir: outputDir, defaultLocale: defaultLocale}
}

// DefaultLocale returns the unprefixed locale.
func (r *Router) DefaultLocale() string { return r.defaultLocale }

// IsDefault reports whether locale is the default locale.
func (r *Router) IsDefault(locale string) bool { return locale == r.defaultLocale }

// Resolve returns the canonical location of an artifact. It panics when kind
// is unknown or a required param is missing.
func (r *Router) Resolve(locale string, kind Kind, p Params) Route {
	if locale == "" {
		panic(fmt.Sprintf("route: empty locale for kind %q", kind))
	}
	switch kind {
	case KindHome:
		return r.page(r.prefix(locale), "")
	case KindListing:
		if p.Page < 1 {
			panic(fmt.Sprintf("route: listing page %d out of range", p.Page))
		}
		if p.Page == 1 {
			return r.page(r.prefix(locale), "articles")
		}
		return r.page(r.prefix(locale), "articles", "page", strconv.Itoa(p.Page))
	case KindPost:
		requireSlug(kind, p.Slug)
		return r.page(r.prefix(locale), "articles", p.Slug)
	case KindProjects:
		return r.page(r.prefix(locale), "projects")
	case KindNotFound:
		return r.file(locale, "404.html")
	case KindFeed:
		return r.file(r.prefix(locale), "rss.xml")
	case KindSitemap:
		return r.file("sitemap.xml")
	case KindRobots:
		return r.file("robots.txt")
	case KindOGImage:
		requireSlug(kind, p.Slug)
		return r.file("static", "img", "og", locale, p.Slug+".png")
	default:
		panic(fmt.Sprintf("route: unknown kind %q", kind))
	}
}

// Absolute joins a site domain with a resolved URL. A domain without a scheme
// is treated as https.
func (r *Router) Absolute(domain, urlPath string) string {
	return Absolute(domain, urlPath)
}

// Absolute is the Router-free form of (*Router).Absolute.
func Absolute(domain, urlPath string) string {
	base := strings.TrimSpace(domain)
	if base != "" && !strings.Contains(base, "://") {
		base = "https://" + base
	}
	u, err := url.Parse(base)
	if err != nil {
		return strings.TrimRight(base, "/") + urlPath
	}
	trailing := strings.HasSuffix(urlPath, "/")
	u.Path = path.Join("/", u.Path, urlPath)
	if trailing && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// prefix returns the locale segment for locale-scoped kinds, or nothing for
// the default locale.
func (r *Router) prefix(locale string) string {
	if r.IsDefault(locale) {
		return ""
	}
	return locale
}

// page resolves a directory-style route ending in index.html.
func (r *Router) page(segments ...string) Route {
	segs := nonEmpty(segments)
	fsPath := filepath.Join(append([]string{r.outputDir}, append(segs, "index.html")...)...)
	u := "/" + strings.Join(segs, "/")
	if len(segs) > 0 {
		u += "/"
	}
	return Route{Path: fsPath, URL: u}
}

// file resolves a route naming a concrete file.
func (r *Router) file(segments ...string) Route {
	segs := nonEmpty(segments)
	return Route{
		Path: filepath.Join(append([]string{r.outputDir}, segs...)...),
		URL:  "/" + strings.Join(segs, "/"),
	}
}

func requireSlug(kind Kind, slug string) {
	if slug == "" {
		panic(fmt.Sprintf("route: kind %q requires a slug", kind))
	}
}

func nonEmpty(segments []string) []string {
	out := make([]string, 0, len(segments))
	for _, s := range segments {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
