package richtext

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

var blockElements = map[string]bool{
	"p": true, "li": true, "br": true, "div": true, "blockquote": true, "pre": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// Excerpt returns up to limit runes of the rendered text, cut at a word boundary with an ellipsis.
func (t Text) Excerpt(limit int) string {
	return Excerpt(string(t.HTML()), limit)
}

// Excerpt extracts visible text from an HTML fragment.
func Excerpt(fragment string, limit int) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			sb.WriteByte(' ')
		}
	}
	walk(doc)

	text := strings.Join(strings.Fields(sb.String()), " ")
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	cut := []rune(text)[:limit]
	if i := strings.LastIndexByte(string(cut), ' '); i > 0 {
		return strings.TrimRight(string(cut)[:i], ",.;:") + "…"
	}
	return string(cut) + "…"
}
