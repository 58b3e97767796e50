package handlers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vostra.ai/vostracode-web/internal/cms"
	"vostra.ai/vostracode-web/internal/matrix"
	"vostra.ai/vostracode-web/internal/nav"
	"vostra.ai/vostracode-web/internal/richtext"
	"vostra.ai/vostracode-web/internal/seo"
)

var labels = map[string]string{
	"home.hero_title":    "VostraCode",
	"home.hero_subtitle": "AI Coding Assistance - Built Security First - On-Prem by Default",
	"overview.eyebrow":   "Product Overview",
	"how.eyebrow":        "How it works",
	"pricing.features":   "Features",
	"nav.home":           "Home",
	"nav.pricing":        "Pricing",
}

func tr(key string) string {
	if v, ok := labels[key]; ok {
		return v
	}
	return key
}

func startPage() *cms.StartPage {
	return &cms.StartPage{
		Title:           "Ship safely",
		ProductOverview: richtext.Text{Markdown: "Runs **on-prem**."},
		TierCards: []cms.TierCard{
			{Header: "Base", SubHeader: "€19", Features: []cms.TierCardFeature{{Text: "SSO", Checked: true}, {Text: "Audit", Checked: false}}},
			{Header: "Plus", Features: []cms.TierCardFeature{{Text: "Multi-model", Checked: true}}},
			{Features: []cms.TierCardFeature{{Text: "Unlimited users", Checked: true}}},
		},
	}
}

func TestBuildHomeDefaultsWithoutStartPage(t *testing.T) {
	v := BuildHome(HomeInput{T: tr, Lang: "en"})
	assert.Equal(t, "VostraCode", v.Hero.Title)
	assert.Equal(t, labels["home.hero_subtitle"], v.Hero.Subtitle)
	assert.False(t, v.Overview.Visible())
	assert.False(t, v.HowItWorks.Visible())
	assert.Empty(t, v.Posts)
	assert.Len(t, v.Editions, 3)
}

func TestBuildHomeUsesContent(t *testing.T) {
	published := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	v := BuildHome(HomeInput{
		StartPage: startPage(),
		Posts:     []cms.Post{{Title: "Launch", Slug: "launch", PublishedAt: published, Body: richtext.Text{Markdown: "Hello **world**"}}},
		Lang:      "en",
		T:         tr,
	})
	assert.Equal(t, "Ship safely", v.Hero.Title)
	assert.Equal(t, labels["home.hero_subtitle"], v.Hero.Subtitle, "blank subtitle keeps the default")
	assert.True(t, v.Overview.Visible())
	assert.Equal(t, "Product Overview", v.Overview.Title)
	assert.False(t, v.HowItWorks.Visible())

	require.Len(t, v.Posts, 1)
	assert.Equal(t, "2025-03-14T09:00:00Z", v.Posts[0].DateISO)
	assert.Equal(t, "Mar 14, 2025", v.Posts[0].Date)
	assert.Equal(t, "Hello world", v.Posts[0].Excerpt)
}

func TestBuildPricingTierCards(t *testing.T) {
	v := BuildPricing(PricingInput{StartPage: startPage(), Sections: []cms.FeatureSection{}, T: tr})

	require.Len(t, v.Tiers, 3)
	assert.Equal(t, TierCardView{ID: "tier-0", Name: "Base", Price: "€19"}, v.Tiers[0])
	assert.True(t, v.Tiers[1].MostPopular)
	assert.Equal(t, "Contact us", v.Tiers[1].Price)
	assert.Equal(t, "Tier 3", v.Tiers[2].Name)

	require.Len(t, v.Cards.Matrix.Groups, 1)
	cards := v.Cards.Matrix.Groups[0]
	assert.Equal(t, "Features", cards.Title)
	require.Len(t, cards.Rows, 4)
	assert.True(t, cards.Rows[0].Cell("Base").IsTrue())
	assert.True(t, cards.Rows[1].Cell("Base").IsFalse())
	assert.True(t, cards.Rows[1].Cell("Plus").IsAbsent())
	assert.True(t, cards.Rows[3].Cell("Tier 3").IsTrue())

	assert.False(t, v.Comparison.Visible(), "no sections means no comparison table")
}

func TestBuildPricingComparisonReportsMismatch(t *testing.T) {
	var got []matrix.Mismatch
	v := BuildPricing(PricingInput{
		StartPage: startPage(),
		Sections: []cms.FeatureSection{
			{Title: "Scale", Order: 2, Features: []matrix.FeatureRow{{Title: "Users", RawValues: "Up to 250;Unlimited;Unlimited;extra"}}},
			{Title: "Security", Order: 1, Features: []matrix.FeatureRow{{Title: "SSO", RawValues: "true;true;true"}}},
		},
		Reporter: matrix.ReporterFunc(func(m matrix.Mismatch) { got = append(got, m) }),
		T:        tr,
	})

	require.True(t, v.Comparison.Visible())
	assert.Equal(t, "Security", v.Comparison.Matrix.Groups[0].Title)
	assert.Equal(t, []string{"Base", "Plus", "Tier 3"}, v.Comparison.Matrix.TierNames())
	require.Len(t, v.Comparison.Stacks, 3)
	assert.Equal(t, "Unlimited", v.Comparison.Stacks[2].Groups[1].Entries[0].Cell.Text)

	require.Len(t, got, 1)
	assert.Equal(t, "Users", got[0].Row)
}

func TestBuildPricingSkipsSectionsOnFailedFetch(t *testing.T) {
	v := BuildPricing(PricingInput{Sections: []cms.FeatureSection{{Title: "Security"}}, T: tr})
	assert.Empty(t, v.Tiers)
	assert.False(t, v.Comparison.Visible())
	assert.False(t, v.Cards.Visible())
	assert.Equal(t, "VostraCode", v.Hero.Title)

	v = BuildPricing(PricingInput{StartPage: startPage(), T: tr})
	assert.False(t, v.Comparison.Visible())
	assert.True(t, v.Cards.Visible())
}

func TestTierCardGroupsHaveNoMismatches(t *testing.T) {
	p := startPage()
	var reported int
	matrix.Build(p.Tiers(), TierCardGroups(p.TierCards),
		matrix.WithReporter(matrix.ReporterFunc(func(matrix.Mismatch) { reported++ })))
	assert.Zero(t, reported)
}

func TestBuildSuite(t *testing.T) {
	v := BuildSuite(tr)
	require.NotEmpty(t, v.Products)
	assert.True(t, v.Products[0].Live())
	for _, p := range v.Products[1:] {
		assert.False(t, p.Live(), p.Name)
	}
	assert.Len(t, v.Highlights, 3)
}

func TestOrganizationJSONLD(t *testing.T) {
	site := seo.Site{BaseURL: "https://vostracode.com", Name: "Vostra AI"}
	got := seo.JSON(OrganizationJSONLD(site))
	assert.Contains(t, got, `"url":"https://vostracode.com"`)
	assert.Contains(t, got, `"VostraCarta"`)
	assert.Contains(t, got, `"sameAs":["https://twitter.com/vostraai"]`)
	assert.Equal(t, "/", Offers[0].URL, "package catalog must not be rewritten")
}

func TestNewPageDataAndBreadcrumbs(t *testing.T) {
	site := seo.Site{BaseURL: "https://vostracode.com"}
	pd := NewPageData("en", "/tiers", "page_pricing", site.Build(seo.Page{Title: "Pricing", Path: "/tiers"}), Analytics{})
	assert.False(t, pd.Analytics.Enabled())
	require.Len(t, pd.Nav, len(nav.Main))
	for _, item := range pd.Nav {
		assert.False(t, item.Active)
	}

	ld := seo.JSON(BreadcrumbJSONLD(site, pd.Breadcrumbs, tr))
	assert.True(t, strings.Contains(ld, `"name":"Pricing"`), ld)
	assert.Contains(t, ld, "https://vostracode.com/tiers")
}
