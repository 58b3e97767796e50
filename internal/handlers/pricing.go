package handlers

import (
	"strconv"
	"strings"

	"vostra.ai/vostracode-web/internal/cms"
	"vostra.ai/vostracode-web/internal/matrix"
)

// mostPopularIndex marks the second tier card.
const mostPopularIndex = 1

// TierCardView is one column header on the pricing page.
type TierCardView struct {
	ID          string
	Name        string
	Price       string
	MostPopular bool
}

// Comparison is the feature matrix in both layouts.
type Comparison struct {
	Matrix matrix.Matrix
	Stacks []matrix.Stack
}

// Visible reports whether the comparison has anything to show.
func (c Comparison) Visible() bool { return !c.Matrix.Empty() }

// PricingView is the view model for "/tiers".
type PricingView struct {
	Hero       Hero
	Overview   TextSection
	HowItWorks TextSection
	Tiers      []TierCardView
	// Cards is the tier-card checklist flattened into one group.
	Cards      Comparison
	Comparison Comparison
}

// PricingInput carries the content fetched for the pricing page. A nil StartPage or nil
// Sections means the fetch failed and the dependent sections are not rendered.
type PricingInput struct {
	StartPage *cms.StartPage
	Sections  []cms.FeatureSection
	Reporter  matrix.Reporter
	T         func(string) string
}

// BuildPricing assembles the pricing page.
func BuildPricing(in PricingInput) PricingView {
	v := PricingView{Hero: Hero{Title: in.T("home.hero_title"), Subtitle: in.T("home.hero_subtitle")}}

	var tiers []matrix.Tier
	if p := in.StartPage; p != nil {
		v.Hero = Hero{Title: orDefault(p.Title, v.Hero.Title), Subtitle: orDefault(p.Subtitle, v.Hero.Subtitle)}
		v.Overview = TextSection{Title: orDefault(p.ProductOverviewTitle, in.T("overview.eyebrow")), Body: p.ProductOverview}
		v.HowItWorks = TextSection{Title: orDefault(p.HowItWorksTitle, in.T("how.eyebrow")), Body: p.HowItWorks}

		tiers = p.Tiers()
		for i, card := range p.TierCards {
			v.Tiers = append(v.Tiers, TierCardView{
				ID:          "tier-" + strconv.Itoa(i),
				Name:        tiers[i].Name,
				Price:       card.Price(),
				MostPopular: i == mostPopularIndex,
			})
		}
		if len(p.TierCards) > 0 {
			m := matrix.Build(tiers, TierCardGroups(p.TierCards), matrix.WithoutOrdering(), matrix.Flatten(in.T("pricing.features")))
			v.Cards = Comparison{Matrix: m, Stacks: m.Stacked()}
		}
	}

	// Without tier cards there are no columns and the builder yields row titles only.
	if in.Sections != nil && in.StartPage != nil {
		var opts []matrix.Option
		if in.Reporter != nil {
			opts = append(opts, matrix.WithReporter(in.Reporter))
		}
		m := matrix.Build(tiers, cms.Groups(in.Sections), opts...)
		v.Comparison = Comparison{Matrix: m, Stacks: m.Stacked()}
	}
	return v
}

// TierCardGroups turns each card's checklist into a group whose rows only carry a value in that
// card's column, so the builder can render the checklist as a matrix.
func TierCardGroups(cards []cms.TierCard) []matrix.FeatureGroup {
	groups := make([]matrix.FeatureGroup, 0, len(cards))
	for i, card := range cards {
		g := matrix.FeatureGroup{Title: cms.TierName(card, i), Order: i}
		for _, f := range card.Features {
			fields := make([]string, len(cards))
			fields[i] = "false"
			if f.Checked {
				fields[i] = "true"
			}
			g.Features = append(g.Features, matrix.FeatureRow{
				Title:     f.Text,
				RawValues: strings.Join(fields, matrix.ValueSeparator),
			})
		}
		groups = append(groups, g)
	}
	return groups
}
