// Package richtext renders CMS rich text (block arrays or markdown strings) to sanitised HTML.
package richtext

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("p", "span", "code", "pre")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Text is rich text normalised to markdown.
type Text struct {
	Markdown string
}

// FromValue converts a decoded CMS value. Strings are taken as markdown; slices are treated as
// block arrays. Anything else yields empty text.
func FromValue(v any) Text {
	switch val := v.(type) {
	case nil:
		return Text{}
	case string:
		return Text{Markdown: strings.TrimSpace(val)}
	case []any:
		return Text{Markdown: blocksToMarkdown(val)}
	case []map[string]any:
		items := make([]any, len(val))
		for i, m := range val {
			items[i] = m
		}
		return Text{Markdown: blocksToMarkdown(items)}
	default:
		return Text{}
	}
}

// Empty reports whether there is nothing to render.
func (t Text) Empty() bool { return strings.TrimSpace(t.Markdown) == "" }

// HTML renders and sanitises the text. Rendering failures yield empty HTML.
func (t Text) HTML() template.HTML {
	out, err := Render(t.Markdown)
	if err != nil {
		return ""
	}
	return out
}

// Render converts markdown to sanitised HTML.
func Render(md string) (template.HTML, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return template.HTML(strings.TrimSpace(policy.Sanitize(buf.String()))), nil
}
