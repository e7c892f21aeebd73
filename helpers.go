package pubgen

import (
	"encoding/json"
	"strings"
)

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// RelatedPosts returns up to limit posts sharing at least one tag with
// current, in the order of posts.
func RelatedPosts(current *Post, posts []*Post, limit int) []*Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []*Post
	for _, p := range posts {
		if len(related) == limit {
			break
		}
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			tag := strings.ToLower(strings.TrimSpace(t))
			if _, ok := tagSet[tag]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// JoinTags joins tags with ", ".
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// WebsiteJsonLD returns a JSON-LD string for a WebSite schema.
func WebsiteJsonLD(cfg *LocaleConfig, siteURL string) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        cfg.SiteName,
		"url":         siteURL,
		"description": cfg.SiteDescription,
		"inLanguage":  cfg.Language,
	}
	if cfg.Author.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author.Name,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD returns a JSON-LD string for a BlogPosting schema.
func BlogPostingJsonLD(post *Post, cfg *LocaleConfig, postURL, imageURL string) string {
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Summary,
		"datePublished": post.Date.Format("2006-01-02T15:04:05Z07:00"),
		"url":           postURL,
		"inLanguage":    post.Locale,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if imageURL != "" {
		data["image"] = imageURL
	}
	if cfg.Author.Name != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author.Name,
		}
	}
	if cfg.SiteName != "" {
		data["publisher"] = map[string]string{
			"@type": "Organization",
			"name":  cfg.SiteName,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = JoinTags(post.Tags)
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
