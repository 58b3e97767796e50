package seo

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var site = Site{BaseURL: "https://vostracode.com/", Name: "Vostra AI"}

func TestFormatTitle(t *testing.T) {
	assert.Equal(t, "Pricing - Vostra AI", FormatTitle("Pricing"))
	assert.Equal(t, "Vostra AI - Secure AI", FormatTitle("Vostra AI - Secure AI"))
	assert.Equal(t, "Vostra AI", FormatTitle("  "))
}

func TestAbsolute(t *testing.T) {
	assert.Equal(t, "https://vostracode.com", site.Absolute("/"))
	assert.Equal(t, "https://vostracode.com/tiers", site.Absolute("tiers"))
	assert.Equal(t, "https://cdn.example.com/x.png", site.Absolute("https://cdn.example.com/x.png"))
}

func TestBuildMeta(t *testing.T) {
	m := site.Build(Page{Title: "Pricing", Description: "Plans", Path: "/tiers", Keywords: []string{"a", "b"}})
	assert.Equal(t, "Pricing - Vostra AI", m.Title)
	assert.Equal(t, "https://vostracode.com/tiers", m.Canonical)
	assert.Equal(t, "index, follow", m.Robots)
	assert.Equal(t, "a, b", m.KeywordList())
	assert.Equal(t, "en_US", m.OG.Locale)
	assert.Equal(t, "website", m.OG.Type)
	assert.Equal(t, 1200, m.OG.Image.Width)
	assert.Equal(t, 630, m.OG.Image.Height)
	assert.Equal(t, "https://vostracode.com/dark-project-app-screenshot.png", m.OG.Image.URL)
	assert.Equal(t, "summary_large_image", m.Twitter.Card)
	assert.Equal(t, "@vostraai", m.Twitter.Creator)

	assert.Equal(t, "noindex, nofollow", site.Build(Page{NoIndex: true}).Robots)
}

func TestOrganizationOfferCatalog(t *testing.T) {
	org := Organization("Vostra AI", "https://vostracode.com", "", "Secure AI", []string{"https://x.com/vostraai"}, []Offer{
		{Name: "VostraCode", Category: "DeveloperApplication", Available: true},
		{Name: "VostraSentinel", Category: "SecurityApplication"},
	})
	m := site.Build(Page{}).WithJSONLD(org, WebSite("Vostra AI", "https://vostracode.com"))
	require.Len(t, m.JSONLD, 2)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(m.JSONLD[0]), &decoded))
	catalog := decoded["hasOfferCatalog"].(map[string]any)
	items := catalog["itemListElement"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)["itemOffered"].(map[string]any)
	assert.Equal(t, "VostraCode", first["name"])
	assert.Equal(t, "SoftwareApplication", first["@type"])
}

func TestBreadcrumbListPositions(t *testing.T) {
	bl := BreadcrumbList([]BreadcrumbItem{{Name: "Home", Item: "https://vostracode.com"}, {Name: "Pricing", Item: "https://vostracode.com/tiers"}})
	out := JSON(bl)
	assert.Contains(t, out, `"position":2`)
	assert.Contains(t, out, `"BreadcrumbList"`)
}

func TestSitemap(t *testing.T) {
	body, err := site.Sitemap(time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "<?xml"))

	var set struct {
		URLs []struct {
			Loc        string `xml:"loc"`
			LastMod    string `xml:"lastmod"`
			ChangeFreq string `xml:"changefreq"`
			Priority   string `xml:"priority"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(body, &set))
	require.Len(t, set.URLs, 3)
	assert.Equal(t, "https://vostracode.com", set.URLs[0].Loc)
	assert.Equal(t, "1.0", set.URLs[0].Priority)
	assert.Equal(t, "weekly", set.URLs[1].ChangeFreq)
	assert.Equal(t, "0.8", set.URLs[1].Priority)
	assert.Equal(t, "https://vostracode.com/tiers", set.URLs[2].Loc)
	assert.Equal(t, "monthly", set.URLs[2].ChangeFreq)
	assert.Equal(t, "2025-05-01T00:00:00Z", set.URLs[2].LastMod)
}
