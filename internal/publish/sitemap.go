package publish

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/jonathan/listing-site-builder/internal/types"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc     string `xml:"loc"`
	Lastmod string `xml:"lastmod"`
}

// Sitemap renders sitemap.xml for the page set. Every page appears exactly
// once and all entries share one build-wide lastmod date.
func Sitemap(pages []types.Page, baseURL string, buildTime time.Time) ([]byte, error) {
	base := strings.TrimSuffix(baseURL, "/")
	lastmod := buildTime.Format("2006-01-02")

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	seen := make(map[string]struct{}, len(pages))
	for _, page := range pages {
		loc := base + "/" + page.URLPath()
		if _, dup := seen[loc]; dup {
			continue
		}
		seen[loc] = struct{}{}
		set.URLs = append(set.URLs, urlEntry{Loc: loc, Lastmod: lastmod})
	}

	raw, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(raw, '\n')...), nil
}

// Robots renders robots.txt, pointing crawlers at the sitemap when the site
// has a configured base URL.
func Robots(baseURL string) []byte {
	var sb strings.Builder
	sb.WriteString("User-agent: *\n")
	sb.WriteString("Allow: /\n")
	if baseURL != "" {
		sb.WriteString("Sitemap: " + strings.TrimSuffix(baseURL, "/") + "/sitemap.xml\n")
	}
	return []byte(sb.String())
}
