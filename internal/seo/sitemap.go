package seo

import (
	"encoding/xml"
	"strconv"
	"time"
)

// SitemapEntry is one <url> element.
type SitemapEntry struct {
	Path       string
	ChangeFreq string
	Priority   float64
}

// Pages lists every indexable route.
var Pages = []SitemapEntry{
	{Path: "/", ChangeFreq: "weekly", Priority: 1.0},
	{Path: "/vostra-ai", ChangeFreq: "weekly", Priority: 0.8},
	{Path: "/tiers", ChangeFreq: "monthly", Priority: 0.6},
}

type urlSet struct {
	XMLName xml.Name  `xml:"urlset"`
	XMLNS   string    `xml:"xmlns,attr"`
	URLs    []siteURL `xml:"url"`
}

type siteURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap renders Pages as sitemap XML with lastmod set to modified.
func (s Site) Sitemap(modified time.Time) ([]byte, error) {
	set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range Pages {
		set.URLs = append(set.URLs, siteURL{
			Loc:        s.Absolute(p.Path),
			LastMod:    modified.UTC().Format(time.RFC3339),
			ChangeFreq: p.ChangeFreq,
			Priority:   formatPriority(p.Priority),
		})
	}
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func formatPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
