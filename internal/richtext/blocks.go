package richtext

import (
	"strconv"
	"strings"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"#", `\#`,
)

// blocksToMarkdown flattens Portable-Text-style blocks. Unknown block types are skipped.
func blocksToMarkdown(blocks []any) string {
	var (
		b        strings.Builder
		prevList bool
		counters = map[int]int{}
	)
	for _, raw := range blocks {
		block, ok := raw.(map[string]any)
		if !ok || str(block["_type"]) != "block" {
			continue
		}
		text := strings.TrimSpace(renderSpans(block))
		if text == "" {
			continue
		}

		listItem := str(block["listItem"])
		level := intOf(block["level"])
		if level < 1 {
			level = 1
		}

		if b.Len() > 0 {
			if listItem != "" && prevList {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}

		switch {
		case listItem != "":
			indent := strings.Repeat("  ", level-1)
			if listItem == "number" {
				counters[level]++
				b.WriteString(indent)
				b.WriteString(strconv.Itoa(counters[level]))
				b.WriteString(". ")
			} else {
				b.WriteString(indent)
				b.WriteString("- ")
			}
			b.WriteString(text)
			prevList = true
			continue
		}

		prevList = false
		for k := range counters {
			delete(counters, k)
		}
		switch style := str(block["style"]); style {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			b.WriteString(strings.Repeat("#", int(style[1]-'0')))
			b.WriteString(" ")
			b.WriteString(text)
		case "blockquote":
			b.WriteString("> ")
			b.WriteString(text)
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}

func renderSpans(block map[string]any) string {
	links := map[string]string{}
	if defs, ok := block["markDefs"].([]any); ok {
		for _, d := range defs {
			def, ok := d.(map[string]any)
			if !ok || str(def["_type"]) != "link" {
				continue
			}
			if href := strings.TrimSpace(str(def["href"])); href != "" {
				links[str(def["_key"])] = href
			}
		}
	}

	children, _ := block["children"].([]any)
	var b strings.Builder
	for _, c := range children {
		span, ok := c.(map[string]any)
		if !ok {
			continue
		}
		text := str(span["text"])
		if text == "" {
			continue
		}
		lead, core, trail := splitSpace(text)
		if core == "" {
			b.WriteString(text)
			continue
		}
		out := mdEscaper.Replace(core)
		marks, _ := span["marks"].([]any)
		for _, m := range marks {
			switch mark := str(m); mark {
			case "strong":
				out = "**" + out + "**"
			case "em":
				out = "_" + out + "_"
			case "code":
				out = "`" + core + "`"
			default:
				if href, ok := links[mark]; ok {
					out = "[" + out + "](" + href + ")"
				}
			}
		}
		b.WriteString(lead)
		b.WriteString(out)
		b.WriteString(trail)
	}
	return b.String()
}

// splitSpace separates leading and trailing whitespace so emphasis markers hug the text.
func splitSpace(s string) (lead, core, trail string) {
	core = strings.TrimSpace(s)
	if core == "" {
		return s, "", ""
	}
	start := strings.Index(s, core)
	return s[:start], core, s[start+len(core):]
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func intOf(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
