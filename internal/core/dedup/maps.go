package dedup

import (
	"sort"
	"strings"
)

// LanguageMap maps a segment id to its translation for one language
type LanguageMap map[string]string

// Collision records an id mapped to two different translations in one language
type Collision struct {
	Language string
	ID       string
	Previous string
	Current  string
}

// LanguageMaps holds one LanguageMap per language code as written in the workbooks
type LanguageMaps struct {
	maps map[string]LanguageMap
}

// NewLanguageMaps returns an empty set of maps
func NewLanguageMaps() *LanguageMaps {
	return &LanguageMaps{maps: make(map[string]LanguageMap)}
}

// Add maps every id to target. Empty ids are skipped. A later write for the same
// id replaces the earlier one; differing values are returned as collisions
func (m *LanguageMaps) Add(lang string, ids []string, target string) []Collision {
	lm, ok := m.maps[lang]
	if !ok {
		lm = make(LanguageMap)
		m.maps[lang] = lm
	}
	var out []Collision
	for _, id := range ids {
		if id == "" {
			continue
		}
		if prev, ok := lm[id]; ok && prev != target {
			out = append(out, Collision{Language: lang, ID: id, Previous: prev, Current: target})
		}
		lm[id] = target
	}
	return out
}

// Languages returns the known language codes, sorted
func (m *LanguageMaps) Languages() []string {
	out := make([]string, 0, len(m.maps))
	for l := range m.maps {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of mapped ids across all languages
func (m *LanguageMaps) Len() int {
	n := 0
	for _, lm := range m.maps {
		n += len(lm)
	}
	return n
}

// Resolve selects the map for lang: the exact code when it has entries, otherwise
// the first non-empty map (in sorted code order) whose code matches ignoring case.
// The returned string is the code actually used
func (m *LanguageMaps) Resolve(lang string) (LanguageMap, string, bool) {
	if lm := m.maps[lang]; len(lm) > 0 {
		return lm, lang, true
	}
	for _, l := range m.Languages() {
		if strings.EqualFold(l, lang) && len(m.maps[l]) > 0 {
			return m.maps[l], l, true
		}
	}
	return nil, "", false
}
