package seo

import (
	"encoding/json"
)

const schemaContext = "https://schema.org"

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Offer is one product in an organisation's catalog.
type Offer struct {
	Name        string
	Description string
	Category    string
	URL         string
	Available   bool
}

// Organization returns an Organization schema. Offers become an OfferCatalog of
// SoftwareApplication items.
func Organization(name, url, logoURL, description string, sameAs []string, offers []Offer) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	if description != "" {
		m["description"] = description
	}
	if len(sameAs) > 0 {
		m["sameAs"] = sameAs
	}
	if len(offers) > 0 {
		items := make([]map[string]any, 0, len(offers))
		for _, o := range offers {
			items = append(items, map[string]any{
				"@type":       "Offer",
				"itemOffered": SoftwareApplication(o),
			})
		}
		m["hasOfferCatalog"] = map[string]any{
			"@type":           "OfferCatalog",
			"name":            name + " Product Suite",
			"itemListElement": items,
		}
	}
	return m
}

// SoftwareApplication describes one product.
func SoftwareApplication(o Offer) map[string]any {
	m := map[string]any{
		"@type":               "SoftwareApplication",
		"name":                o.Name,
		"applicationCategory": o.Category,
	}
	if o.Description != "" {
		m["description"] = o.Description
	}
	if o.URL != "" {
		m["url"] = o.URL
	}
	if o.Available {
		m["offers"] = map[string]any{"@type": "Offer", "availability": "https://schema.org/InStock"}
	} else {
		m["offers"] = map[string]any{"@type": "Offer", "availability": "https://schema.org/PreOrder"}
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": schemaContext,
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// BreadcrumbItem maps name and absolute item URL.
type BreadcrumbItem struct {
	Name string
	Item string
}

// BreadcrumbList builds schema.org BreadcrumbList.
func BreadcrumbList(items []BreadcrumbItem) map[string]any {
	el := make([]map[string]any, 0, len(items))
	for i, it := range items {
		el = append(el, map[string]any{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     it.Name,
			"item":     it.Item,
		})
	}
	return map[string]any{
		"@context":        schemaContext,
		"@type":           "BreadcrumbList",
		"itemListElement": el,
	}
}

// Product returns a Product schema with one offer per tier name.
func Product(name, description, url string, tiers []string) map[string]any {
	m := map[string]any{
		"@context":    schemaContext,
		"@type":       "Product",
		"name":        name,
		"description": description,
		"brand":       map[string]any{"@type": "Brand", "name": Brand},
	}
	if url != "" {
		m["url"] = url
	}
	if len(tiers) > 0 {
		offers := make([]map[string]any, 0, len(tiers))
		for _, t := range tiers {
			offers = append(offers, map[string]any{"@type": "Offer", "name": t})
		}
		m["offers"] = offers
	}
	return m
}
