package cms

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/tidwall/gjson"

	"vostra.ai/vostracode-web/internal/matrix"
	"vostra.ai/vostracode-web/internal/richtext"
)

// Queries sent to the remote store.
const (
	StartPageQuery = `*[_type == "startPage"][0]{
  _id,
  logoTitle,
  title,
  subtitle,
  productOverviewTitle,
  productOverview,
  howItWorksTitle,
  howItWorks,
  tierCards[]->
}`

	FeatureSectionsQuery = `*[_type == "tierFeatureSection"]{
  _id,
  title,
  order,
  tierFeatures[]{
    title,
    values
  }
}`

	postsQueryFormat = `*[_type == "post" && defined(slug.current)] | order(publishedAt desc)[0...%d]{
  _id,
  title,
  slug,
  publishedAt,
  body
}`
)

// DefaultPostLimit is the number of posts shown on the home page.
const DefaultPostLimit = 6

// StartPage is the singleton document driving the home and pricing heroes.
type StartPage struct {
	ID                   string
	LogoTitle            string
	Title                string
	Subtitle             string
	ProductOverviewTitle string
	ProductOverview      richtext.Text
	HowItWorksTitle      string
	HowItWorks           richtext.Text
	TierCards            []TierCard
}

// TierCard is one pricing tier as authored in the CMS.
type TierCard struct {
	Header    string
	SubHeader string
	Features  []TierCardFeature
}

// TierCardFeature is a checklist line on a tier card.
type TierCardFeature struct {
	Text    string
	Checked bool
}

// FeatureSection is a titled group of comparison rows.
type FeatureSection struct {
	ID       string
	Title    string
	Order    int
	Features []matrix.FeatureRow
}

// Post is a blog entry listed on the home page.
type Post struct {
	ID          string
	Title       string
	Slug        string
	PublishedAt time.Time
	Body        richtext.Text
}

// TierName returns the display name of the card at index i.
func TierName(card TierCard, i int) string {
	if name := strings.TrimSpace(card.Header); name != "" {
		return name
	}
	return fmt.Sprintf("Tier %d", i+1)
}

// Price returns the sub-header shown as price, defaulting to "Contact us".
func (t TierCard) Price() string {
	if p := strings.TrimSpace(t.SubHeader); p != "" {
		return p
	}
	return "Contact us"
}

// Tiers lists the matrix columns derived from the start page's tier cards.
func (p StartPage) Tiers() []matrix.Tier {
	tiers := make([]matrix.Tier, len(p.TierCards))
	for i, card := range p.TierCards {
		tiers[i] = matrix.Tier{Name: TierName(card, i)}
	}
	return tiers
}

// StartPage fetches the start page singleton.
func (c *Client) StartPage(ctx context.Context) (StartPage, error) {
	res, err := c.query(ctx, request{name: "startPage", groq: StartPageQuery, local: localStartPage})
	if err != nil {
		return StartPage{}, err
	}
	if !res.IsObject() {
		return StartPage{}, ErrNotFound
	}
	return decodeStartPage(res.Value())
}

// FeatureSections fetches every comparison section in arrival order.
func (c *Client) FeatureSections(ctx context.Context) ([]FeatureSection, error) {
	res, err := c.query(ctx, request{name: "featureSections", groq: FeatureSectionsQuery, local: localFeatureSections})
	if err != nil {
		return nil, err
	}
	return decodeFeatureSections(res), nil
}

// Posts fetches the newest posts, at most limit (DefaultPostLimit when limit <= 0).
func (c *Client) Posts(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = DefaultPostLimit
	}
	res, err := c.query(ctx, request{
		name:  "posts",
		groq:  fmt.Sprintf(postsQueryFormat, limit),
		local: localPosts,
	})
	if err != nil {
		return nil, err
	}
	posts := decodePosts(res)
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

type startPageDoc struct {
	ID                   string        `mapstructure:"_id"`
	LogoTitle            string        `mapstructure:"logoTitle"`
	Title                string        `mapstructure:"title"`
	Subtitle             string        `mapstructure:"subtitle"`
	ProductOverviewTitle string        `mapstructure:"productOverviewTitle"`
	ProductOverview      any           `mapstructure:"productOverview"`
	HowItWorksTitle      string        `mapstructure:"howItWorksTitle"`
	HowItWorks           any           `mapstructure:"howItWorks"`
	TierCards            []tierCardDoc `mapstructure:"tierCards"`
}

type tierCardDoc struct {
	Header    string `mapstructure:"header"`
	SubHeader string `mapstructure:"subHeader"`
	Features  []struct {
		Text    string `mapstructure:"text"`
		Checked bool   `mapstructure:"checked"`
	} `mapstructure:"features"`
}

func decodeStartPage(v any) (StartPage, error) {
	var doc startPageDoc
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &doc,
	})
	if err != nil {
		return StartPage{}, err
	}
	if err := dec.Decode(v); err != nil {
		return StartPage{}, fmt.Errorf("cms: decode start page: %w", err)
	}

	page := StartPage{
		ID:                   doc.ID,
		LogoTitle:            strings.TrimSpace(doc.LogoTitle),
		Title:                strings.TrimSpace(doc.Title),
		Subtitle:             strings.TrimSpace(doc.Subtitle),
		ProductOverviewTitle: strings.TrimSpace(doc.ProductOverviewTitle),
		ProductOverview:      richtext.FromValue(doc.ProductOverview),
		HowItWorksTitle:      strings.TrimSpace(doc.HowItWorksTitle),
		HowItWorks:           richtext.FromValue(doc.HowItWorks),
		TierCards:            make([]TierCard, 0, len(doc.TierCards)),
	}
	for _, card := range doc.TierCards {
		tc := TierCard{
			Header:    strings.TrimSpace(card.Header),
			SubHeader: strings.TrimSpace(card.SubHeader),
		}
		for _, f := range card.Features {
			if strings.TrimSpace(f.Text) == "" {
				continue
			}
			tc.Features = append(tc.Features, TierCardFeature{Text: strings.TrimSpace(f.Text), Checked: f.Checked})
		}
		page.TierCards = append(page.TierCards, tc)
	}
	return page, nil
}

// decodeFeatureSections keeps non-string values as empty so malformed rows render blank.
func decodeFeatureSections(res gjson.Result) []FeatureSection {
	sections := []FeatureSection{}
	if !res.IsArray() {
		return sections
	}
	res.ForEach(func(_, s gjson.Result) bool {
		if !s.IsObject() {
			return true
		}
		section := FeatureSection{
			ID:    s.Get("_id").String(),
			Title: strings.TrimSpace(s.Get("title").String()),
			Order: int(s.Get("order").Int()),
		}
		s.Get("tierFeatures").ForEach(func(_, f gjson.Result) bool {
			row := matrix.FeatureRow{Title: strings.TrimSpace(f.Get("title").String())}
			if v := f.Get("values"); v.Type == gjson.String {
				row.RawValues = v.Str
			}
			section.Features = append(section.Features, row)
			return true
		})
		sections = append(sections, section)
		return true
	})
	return sections
}

// Groups converts sections into builder input.
func Groups(sections []FeatureSection) []matrix.FeatureGroup {
	groups := make([]matrix.FeatureGroup, len(sections))
	for i, s := range sections {
		groups[i] = matrix.FeatureGroup{
			Title:    s.Title,
			Order:    s.Order,
			Features: append([]matrix.FeatureRow(nil), s.Features...),
		}
	}
	return groups
}

func decodePosts(res gjson.Result) []Post {
	posts := []Post{}
	res.ForEach(func(_, p gjson.Result) bool {
		slug := p.Get("slug.current").String()
		if slug == "" && p.Get("slug").Type == gjson.String {
			slug = p.Get("slug").Str
		}
		if strings.TrimSpace(slug) == "" {
			return true
		}
		posts = append(posts, Post{
			ID:          p.Get("_id").String(),
			Title:       strings.TrimSpace(p.Get("title").String()),
			Slug:        strings.TrimSpace(slug),
			PublishedAt: parseDate(p.Get("publishedAt").String()),
			Body:        richtext.FromValue(p.Get("body").Value()),
		})
		return true
	})
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PublishedAt.After(posts[j].PublishedAt)
	})
	return posts
}

func parseDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}
