// Package service contains glossary workflows: lookup map, matching, single-term
// add and batch promotion from reconstructed workbooks
package service

import (
	"context"
	"strings"

	"locbridge/internal/platform/validate"
	"locbridge/internal/services/glossary/domain"
	"locbridge/internal/services/glossary/repo"

	"golang.org/x/text/language"
)

// Svc is a glossary bound to one store
type Svc struct {
	Repo repo.Repo
}

// New creates a glossary service over r
func New(r repo.Repo) *Svc {
	if r == nil {
		panic("glossary.Service requires a non nil Repo")
	}
	return &Svc{Repo: r}
}

// ForPath is New over the workbook at path; "" is an always-empty glossary
func ForPath(path string) *Svc { return New(repo.NewXLSX(path)) }

// Map returns language -> source -> target, skipping forbidden and incomplete rows
func (s *Svc) Map(ctx context.Context) (domain.Map, error) {
	entries, err := s.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	m := make(domain.Map)
	for _, e := range entries {
		if e.Forbidden || e.Source == "" || e.Target == "" {
			continue
		}
		terms, ok := m[e.Language]
		if !ok {
			terms = make(map[string]string)
			m[e.Language] = terms
		}
		terms[e.Source] = e.Target
	}
	return m, nil
}

// Matches returns the (term, target) pairs of every usable entry found in text.
// An entry with a language applies when lang starts with it, ignoring case;
// lang "" or "unknown" turns the language filter off
func (s *Svc) Matches(ctx context.Context, text, lang string) ([]domain.Match, error) {
	if text == "" {
		return nil, nil
	}
	entries, err := s.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	filter := lang != "" && lang != domain.UnknownLanguage
	lowerText, lowerLang := strings.ToLower(text), strings.ToLower(lang)

	var out []domain.Match
	for _, e := range entries {
		if e.Forbidden || e.Source == "" || e.Target == "" {
			continue
		}
		if filter && e.Language != "" && !strings.HasPrefix(lowerLang, strings.ToLower(e.Language)) {
			continue
		}
		if matches(e, text, lowerText) {
			out = append(out, domain.Match{Term: e.Source, Target: e.Target})
		}
	}
	return out, nil
}

func matches(e domain.Entry, text, lowerText string) bool {
	switch {
	case e.Exact() && e.CaseSensitive:
		return e.Source == text
	case e.Exact():
		return strings.ToLower(e.Source) == lowerText
	case e.CaseSensitive:
		return strings.Contains(text, e.Source)
	default:
		return strings.Contains(lowerText, strings.ToLower(e.Source))
	}
}

// AddTerm validates e, normalises its language tag and appends it
func (s *Svc) AddTerm(ctx context.Context, e domain.Entry) (domain.Entry, error) {
	e.Source = strings.TrimSpace(e.Source)
	e.Target = strings.TrimSpace(e.Target)
	e.MatchType = strings.ToLower(strings.TrimSpace(e.MatchType))
	if e.MatchType == "" {
		e.MatchType = domain.MatchPartial
	}
	e.Language = canonical(e.Language)
	if err := validate.Struct(e); err != nil {
		return domain.Entry{}, err
	}
	if _, err := s.Repo.Append(ctx, []domain.Entry{e}, false); err != nil {
		return domain.Entry{}, err
	}
	return e, nil
}

// canonical formats well-formed BCP 47 tags ("fr-fr" -> "fr-FR") and leaves anything else alone
func canonical(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return lang
	}
	return tag.String()
}

// Promote appends terms, keeping the first row for every (source, language) pair,
// and returns how many new rows were written
func (s *Svc) Promote(ctx context.Context, terms []domain.Entry) (int, error) {
	if len(terms) == 0 {
		return 0, nil
	}
	return s.Repo.Append(ctx, terms, true)
}
