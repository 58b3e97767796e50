package handlers

import (
	"vostra.ai/vostracode-web/internal/cms"
	"vostra.ai/vostracode-web/internal/format"
	"vostra.ai/vostracode-web/internal/richtext"
)

// Hero is the headline block at the top of a page.
type Hero struct {
	Title    string
	Subtitle string
}

// TextSection is a titled rich text block. Empty sections are not rendered.
type TextSection struct {
	Title string
	Body  richtext.Text
}

// Visible reports whether the section has a body.
func (s TextSection) Visible() bool { return !s.Body.Empty() }

// Edition is a static product edition card.
type Edition struct {
	Name        string
	Slug        string
	Description string
	Highlights  []string
}

// Editions are the VostraCode editions shown on the home page.
var Editions = []Edition{
	{
		Name:        "VostraCode Base",
		Slug:        "base",
		Description: "Secure, production-ready on-prem AI coding assistant.",
		Highlights: []string{
			"SSO/SAML Integration",
			"Role-based access control",
			"Kubernetes-ready deployment",
			"Plugin support for VS Code & IntelliJ",
			"Web-based admin interface",
			"Audit logging",
			"Up to 250 users (max 1 organization)",
		},
	},
	{
		Name:        "VostraCode Plus",
		Slug:        "growth",
		Description: "All the extras for your growing team.",
		Highlights: []string{
			"All features in Base Edition",
			"Support for hot switching and Multi-model & multilingual support",
			"Repository aware suggestions",
		},
	},
	{
		Name:        "VostraCode Premium",
		Slug:        "premium",
		Description: "All the extras for your growing team.",
		Highlights: []string{
			"Unlimited active team members",
			"Prompt engineering from UI",
			"Rapid protocol client-server communication",
			"Plugin server for supported IDEs",
		},
	},
}

// PostCard is a post teaser.
type PostCard struct {
	Title   string
	Slug    string
	Date    string
	DateISO string
	Excerpt string
}

// HomeView is the view model for "/".
type HomeView struct {
	Hero       Hero
	Overview   TextSection
	HowItWorks TextSection
	Posts      []PostCard
	Editions   []Edition
}

// HomeInput carries the content fetched for the home page. A nil StartPage falls back to
// default hero copy.
type HomeInput struct {
	StartPage *cms.StartPage
	Posts     []cms.Post
	Lang      string
	T         func(string) string
}

const excerptLength = 160

// BuildHome assembles the home page.
func BuildHome(in HomeInput) HomeView {
	v := HomeView{
		Hero:     Hero{Title: in.T("home.hero_title"), Subtitle: in.T("home.hero_subtitle")},
		Editions: Editions,
	}
	if p := in.StartPage; p != nil {
		if p.Title != "" {
			v.Hero.Title = p.Title
		}
		if p.Subtitle != "" {
			v.Hero.Subtitle = p.Subtitle
		}
		v.Overview = TextSection{Title: orDefault(p.ProductOverviewTitle, in.T("overview.eyebrow")), Body: p.ProductOverview}
		v.HowItWorks = TextSection{Title: orDefault(p.HowItWorksTitle, in.T("how.eyebrow")), Body: p.HowItWorks}
	}
	for _, post := range in.Posts {
		v.Posts = append(v.Posts, PostCard{
			Title:   post.Title,
			Slug:    post.Slug,
			Date:    format.FmtDate(post.PublishedAt, in.Lang),
			DateISO: format.ISODate(post.PublishedAt),
			Excerpt: post.Body.Excerpt(excerptLength),
		})
	}
	return v
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
