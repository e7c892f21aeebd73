package pubgen

import (
	"encoding/xml"
	"sort"
	"time"

	"github.com/eringen/pubgen/route"
)

type rssXML struct {
	XMLName   xml.Name   `xml:"rss"`
	Version   string     `xml:"version,attr"`
	ContentNS string     `xml:"xmlns:content,attr"`
	Channel   rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	Description string   `xml:"description"`
	Content     rssCDATA `xml:"content:encoded"`
	Category    string   `xml:"category,omitempty"`
	PubDate     string   `xml:"pubDate"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

type rssCDATA struct {
	Value string `xml:",cdata"`
}

// buildFeed assembles the RSS document of one locale. posts are re-sorted
// newest first; for an already ordered slice this changes nothing.
func buildFeed(r *route.Router, cfg *LocaleConfig, locale string, posts []*Post, conv Converter) (rssXML, error) {
	sorted := append([]*Post(nil), posts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	items := make([]rssItem, 0, len(sorted))
	for _, p := range sorted {
		body, err := p.HTML(conv)
		if err != nil {
			return rssXML{}, contentError(p.Source, err)
		}
		postURL := r.Absolute(cfg.Domain, r.Resolve(locale, route.KindPost, route.Params{Slug: p.Slug}).URL)
		topic, _ := p.Topic()
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			GUID:        rssGUID{Value: postURL, IsPermaLink: true},
			Description: p.Summary,
			Content:     rssCDATA{Value: body},
			Category:    topic,
			PubDate:     p.Date.Format(time.RFC1123Z),
		})
	}
	return rssXML{
		Version:   "2.0",
		ContentNS: "http://purl.org/rss/1.0/modules/content/",
		Channel: rssChannel{
			Title:       cfg.SiteTitle,
			Link:        r.Absolute(cfg.Domain, r.Resolve(locale, route.KindHome, route.Params{}).URL),
			Description: cfg.SiteDescription,
			Language:    cfg.Language,
			Items:       items,
		},
	}, nil
}
