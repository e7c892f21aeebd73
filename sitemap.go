package pubgen

import (
	"encoding/xml"
	"fmt"

	"github.com/eringen/pubgen/route"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// buildSitemap lists, for every loaded locale, the articles and projects
// pages followed by each post. It must run after every locale has loaded.
func buildSitemap(r *route.Router, s *Store) (sitemapURLSet, error) {
	var urls []sitemapURL
	for _, locale := range s.Locales() {
		cfg := s.Config(locale)
		posts, err := s.ListPosts(locale)
		if err != nil {
			return sitemapURLSet{}, err
		}
		urls = append(urls,
			sitemapURL{Loc: r.Absolute(cfg.Domain, r.Resolve(locale, route.KindListing, route.Params{Page: 1}).URL)},
			sitemapURL{Loc: r.Absolute(cfg.Domain, r.Resolve(locale, route.KindProjects, route.Params{}).URL)},
		)
		for _, p := range posts {
			urls = append(urls, sitemapURL{
				Loc:     r.Absolute(cfg.Domain, r.Resolve(locale, route.KindPost, route.Params{Slug: p.Slug}).URL),
				LastMod: p.Date.Format("2006-01-02"),
			})
		}
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}, nil
}

// robotsTxt allows everything and points crawlers at the sitemap of the
// default locale's domain.
func robotsTxt(r *route.Router, domain string) []byte {
	sitemap := r.Absolute(domain, r.Resolve(r.DefaultLocale(), route.KindSitemap, route.Params{}).URL)
	return []byte(fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n", sitemap))
}
