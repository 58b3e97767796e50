// Package i18n loads UI copy catalogs from locales/<lang>.json.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/language"
)

// Bundle holds one flat key → text catalog per supported language.
type Bundle struct {
	dict      map[string]map[string]string
	fallback  string
	supported []string
	matcher   language.Matcher
	// matched[i] is the language of the matcher's i-th tag.
	matched []string
}

// Load reads the catalogs for supported from dir. The fallback catalog must exist.
func Load(dir, fallback string, supported []string) (*Bundle, error) {
	if len(supported) == 0 {
		supported = []string{fallback}
	}
	b := &Bundle{dict: map[string]map[string]string{}, fallback: fallback}

	// The matcher treats the first tag as the default.
	tags := []language.Tag{language.Make(fallback)}
	b.matched = []string{fallback}
	for _, l := range supported {
		raw, err := os.ReadFile(filepath.Join(dir, l+".json"))
		if err != nil {
			if l == fallback {
				return nil, fmt.Errorf("i18n: load locale %s: %w", l, err)
			}
			continue
		}
		var m map[string]string
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("i18n: unmarshal %s: %w", l, err)
		}
		b.dict[l] = m
		b.supported = append(b.supported, l)
		if l != fallback {
			tags = append(tags, language.Make(l))
			b.matched = append(b.matched, l)
		}
	}
	if _, ok := b.dict[fallback]; !ok {
		return nil, fmt.Errorf("i18n: fallback locale %s not loaded", fallback)
	}
	sort.Strings(b.supported)
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

// Supported lists the loaded languages.
func (b *Bundle) Supported() []string {
	return append([]string(nil), b.supported...)
}

// Fallback returns the default language.
func (b *Bundle) Fallback() string { return b.fallback }

// T returns the text for key in lang, then in the fallback language, then key itself.
func (b *Bundle) T(lang, key string) string {
	if m, ok := b.dict[lang]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := b.dict[b.fallback][key]; ok {
		return v
	}
	return key
}

// Resolve picks the best loaded language for an Accept-Language header.
func (b *Bundle) Resolve(acceptLang string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		return b.fallback
	}
	_, idx, conf := b.matcher.Match(tags...)
	if conf == language.No || idx >= len(b.matched) {
		return b.fallback
	}
	return b.matched[idx]
}
