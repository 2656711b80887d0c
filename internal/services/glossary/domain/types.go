// Package domain holds glossary entries, match results and the request DTOs
package domain

import "strings"

// Match types
const (
	MatchExact   = "exact"
	MatchPartial = "partial"
)

// UnknownLanguage disables the language filter when matching
const UnknownLanguage = "unknown"

// Entry is one glossary row
type Entry struct {
	Source        string `json:"source_text" validate:"required"`
	Target        string `json:"target_text" validate:"required"`
	Language      string `json:"language_code,omitempty"`
	MatchType     string `json:"match_type,omitempty" validate:"omitempty,oneof=exact partial"`
	CaseSensitive bool   `json:"case_sensitive,omitempty"`
	Context       string `json:"context,omitempty"`
	Forbidden     bool   `json:"is_forbidden,omitempty"`
}

// Exact reports whether the entry only matches whole texts; anything else is partial
func (e Entry) Exact() bool { return strings.EqualFold(e.MatchType, MatchExact) }

// Match is one glossary hit for a text
type Match struct {
	Term   string `json:"term"`
	Target string `json:"target"`
}

// Map is language -> source -> target, the lookup form used to seed workbooks
type Map map[string]map[string]string

// Lookup finds source for lang: exact language code first, then the first code
// (in sorted order) equal ignoring case
func (m Map) Lookup(lang, source string) (string, bool) {
	if t, ok := m[lang][source]; ok {
		return t, true
	}
	var best string
	found := false
	for l := range m {
		if l == lang || !strings.EqualFold(l, lang) {
			continue
		}
		if _, ok := m[l][source]; ok && (!found || l < best) {
			best, found = l, true
		}
	}
	if !found {
		return "", false
	}
	return m[best][source], true
}

// Len returns the number of terms across languages
func (m Map) Len() int {
	n := 0
	for _, terms := range m {
		n += len(terms)
	}
	return n
}

// AddTermInput adds one term to the glossary of a project
type AddTermInput struct {
	Root  string `json:"root" validate:"required"`
	Entry Entry  `json:"entry"`
}

// MatchInput asks for glossary hits on text; File, when set, supplies the language
type MatchInput struct {
	Root     string `json:"root" validate:"required"`
	Text     string `json:"text" validate:"required"`
	Language string `json:"language,omitempty"`
	File     string `json:"file,omitempty"`
}
