// Package seo builds page metadata, JSON-LD payloads, and the sitemap.
package seo

import (
	"fmt"
	"net/url"
	"strings"
)

// Defaults shared by every page.
const (
	TitleTemplate = "%s - Vostra AI"
	Brand         = "Vostra AI"
	Locale        = "en_US"
	TwitterCard   = "summary_large_image"
	TwitterHandle = "@vostraai"
	OGImagePath   = "/dark-project-app-screenshot.png"
	OGImageWidth  = 1200
	OGImageHeight = 630
)

// OpenGraph holds og:* properties.
type OpenGraph struct {
	Title       string
	Description string
	URL         string
	SiteName    string
	Type        string
	Locale      string
	Image       Image
}

// Image is a sized social preview image.
type Image struct {
	URL    string
	Width  int
	Height int
	Alt    string
}

// Twitter holds twitter:* properties.
type Twitter struct {
	Card        string
	Title       string
	Description string
	Creator     string
	Image       string
}

// Meta is everything the layout head renders.
type Meta struct {
	Title       string
	Description string
	Keywords    []string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	JSONLD      []string
}

// Site resolves relative paths against the public base URL.
type Site struct {
	BaseURL string
	Name    string
}

// Page describes one page before defaults are applied.
type Page struct {
	Title       string
	Description string
	Keywords    []string
	Path        string
	NoIndex     bool
}

// Absolute joins p onto the site base URL. Absolute inputs are returned unchanged.
func (s Site) Absolute(p string) string {
	if u, err := url.Parse(p); err == nil && u.IsAbs() {
		return p
	}
	base := strings.TrimRight(s.BaseURL, "/")
	if p == "" || p == "/" {
		return base
	}
	return base + "/" + strings.TrimLeft(p, "/")
}

func (s Site) name() string {
	if strings.TrimSpace(s.Name) != "" {
		return s.Name
	}
	return Brand
}

// FormatTitle applies the title template unless the brand is already present.
func FormatTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return Brand
	}
	if strings.Contains(title, Brand) {
		return title
	}
	return fmt.Sprintf(TitleTemplate, title)
}

// Build produces Meta for p with the site's defaults.
func (s Site) Build(p Page) Meta {
	title := FormatTitle(p.Title)
	canonical := s.Absolute(p.Path)
	robots := "index, follow"
	if p.NoIndex {
		robots = "noindex, nofollow"
	}
	image := s.Absolute(OGImagePath)
	return Meta{
		Title:       title,
		Description: p.Description,
		Keywords:    append([]string(nil), p.Keywords...),
		Canonical:   canonical,
		Robots:      robots,
		OG: OpenGraph{
			Title:       title,
			Description: p.Description,
			URL:         canonical,
			SiteName:    s.name(),
			Type:        "website",
			Locale:      Locale,
			Image: Image{
				URL:    image,
				Width:  OGImageWidth,
				Height: OGImageHeight,
				Alt:    title,
			},
		},
		Twitter: Twitter{
			Card:        TwitterCard,
			Title:       title,
			Description: p.Description,
			Creator:     TwitterHandle,
			Image:       image,
		},
	}
}

// KeywordList joins keywords for the meta tag.
func (m Meta) KeywordList() string { return strings.Join(m.Keywords, ", ") }

// WithJSONLD appends encoded JSON-LD payloads, skipping any that fail to encode.
func (m Meta) WithJSONLD(payloads ...any) Meta {
	for _, p := range payloads {
		if s := JSON(p); s != "" {
			m.JSONLD = append(m.JSONLD, s)
		}
	}
	return m
}
