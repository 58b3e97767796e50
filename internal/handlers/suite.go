package handlers

import "vostra.ai/vostracode-web/internal/seo"

// Availability of a suite product.
type Availability string

const (
	Available  Availability = "Available"
	ComingSoon Availability = "Coming Soon"
)

// Product is a card on the product suite page.
type Product struct {
	Name        string
	Icon        string
	Description string
	Status      Availability
	Features    []string
	// Href is set for products with their own page.
	Href string
}

// Live reports whether the product can be bought today.
func (p Product) Live() bool { return p.Status == Available }

// Highlight is one platform feature tile.
type Highlight struct {
	Icon  string
	Title string
	Body  string
}

// Products are the cards shown on "/vostra-ai", in display order.
var Products = []Product{
	{
		Name:        "VostraCode",
		Icon:        "💻",
		Description: "An AI coding assistant that runs entirely on your own infrastructure. Completions, refactoring and reviews without a single line of code leaving your network.",
		Status:      Available,
		Href:        "/",
		Features: []string{
			"Real-time code completions",
			"Code refactoring assistance",
			"Multi-file operations",
			"Command-line interface",
			"Automated code reviewer",
			"CI/CD pipeline integration",
		},
	},
	{
		Name:        "VostraSentinel",
		Icon:        "🛡️",
		Description: "A support chat assistant for First Line Support and interactive users manual. The AI combines users input with internal application data, such as logs and system information.",
		Status:      ComingSoon,
		Features: []string{
			"First Line Support chat assistant",
			"Interactive users manual",
			"Internal application data integration",
			"Automatic bug ticket creation",
			"Self-healing capabilities",
			"Early anomaly detection",
		},
	},
	{
		Name:        "VostraGPT",
		Icon:        "🤖",
		Description: "A private, self-hosted chat assistant. Supports working with documents outside of the chat and local reasoning. Used for drafting policies, reports, and internal documents or just the next after work.",
		Status:      ComingSoon,
		Features: []string{
			"Private, self-hosted chat",
			"Document processing capabilities",
			"Local reasoning engine",
			"Policy and report drafting",
			"Internal document creation",
			"RAG-style document search",
		},
	},
}

// Highlights are the platform feature tiles under the product cards.
var Highlights = []Highlight{
	{Icon: "🔒", Title: "Complete Privacy", Body: "Your data never leaves your infrastructure. Every model runs on-premise, under your control."},
	{Icon: "⚡", Title: "High Performance", Body: "Optimized inference on your own hardware, with low latency for every developer and every team."},
	{Icon: "🔗", Title: "Seamless Integration", Body: "Fits into the tools you already use: IDEs, identity providers, CI/CD pipelines and ticketing systems."},
}

// Offers is the catalog published in the organisation's structured data.
var Offers = []seo.Offer{
	{Name: "VostraCode", Description: "AI-powered coding assistant for secure, on-premise deployment", Category: "DeveloperApplication", URL: "/", Available: true},
	{Name: "VostraSentinel", Description: "AI-powered support chat agent for 24/7 incident response", Category: "BusinessApplication"},
	{Name: "VostraCarta", Description: "AI-assisted chatbot for internal documentation and knowledge management", Category: "BusinessApplication"},
}

// Organisation facts for structured data.
const (
	OrganizationLogo        = "https://vostracode.com/vostracode-logo.svg"
	OrganizationDescription = "Privacy-first AI solutions for secure, on-premise environments"
)

// OrganizationSameAs lists the organisation's external profiles.
var OrganizationSameAs = []string{"https://twitter.com/vostraai"}

// SuiteView is the view model for "/vostra-ai".
type SuiteView struct {
	Hero       Hero
	Products   []Product
	Highlights []Highlight
}

// BuildSuite assembles the product suite page.
func BuildSuite(t func(string) string) SuiteView {
	return SuiteView{
		Hero:       Hero{Title: t("suite.hero_title"), Subtitle: t("suite.hero_subtitle")},
		Products:   Products,
		Highlights: Highlights,
	}
}

// OrganizationJSONLD returns the organisation schema with offer URLs made absolute.
func OrganizationJSONLD(site seo.Site) map[string]any {
	offers := make([]seo.Offer, len(Offers))
	for i, o := range Offers {
		if o.URL != "" {
			o.URL = site.Absolute(o.URL)
		}
		offers[i] = o
	}
	return seo.Organization(site.Name, site.Absolute("/"), OrganizationLogo, OrganizationDescription, OrganizationSameAs, offers)
}
