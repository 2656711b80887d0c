package service

import (
	"context"
	"path/filepath"
	"testing"

	perr "locbridge/internal/platform/errors"
	"locbridge/internal/services/glossary/domain"

	"github.com/google/go-cmp/cmp"
)

// memRepo keeps rows in memory with the same dedup rule as the spreadsheet store
type memRepo struct{ rows []domain.Entry }

func (m *memRepo) Load(context.Context) ([]domain.Entry, error) { return m.rows, nil }

func (m *memRepo) Append(_ context.Context, in []domain.Entry, dedup bool) (int, error) {
	seen := map[[2]string]bool{}
	var kept []domain.Entry
	for _, e := range m.rows {
		k := [2]string{e.Source, e.Language}
		if dedup && seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, e)
	}
	n := 0
	for _, e := range in {
		k := [2]string{e.Source, e.Language}
		if dedup && seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, e)
		n++
	}
	m.rows = kept
	return n, nil
}

func fixture() *Svc {
	return New(&memRepo{rows: []domain.Entry{
		{Source: "Hello", Target: "Bonjour", Language: "fr", MatchType: "exact"},
		{Source: "Save", Target: "Enregistrer", Language: "fr-FR"},
		{Source: "OK", Target: "OK!", MatchType: "exact", CaseSensitive: true},
		{Source: "Damn", Target: "Zut", Language: "fr", Forbidden: true},
		{Source: "Hallo", Target: "", Language: "de"},
		{Source: "Save", Target: "Speichern", Language: "de"},
	}})
}

func TestMap(t *testing.T) {
	m, err := fixture().Map(context.Background())
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	want := domain.Map{
		"fr":    {"Hello": "Bonjour"},
		"fr-FR": {"Save": "Enregistrer"},
		"":      {"OK": "OK!"},
		"de":    {"Save": "Speichern"},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if got, ok := m.Lookup("FR-fr", "Save"); !ok || got != "Enregistrer" {
		t.Fatalf("case-insensitive language lookup = %q %v", got, ok)
	}
	if _, ok := m.Lookup("fr-FR", "Hello"); ok {
		t.Fatalf("lookup must not fall back across different languages")
	}
}

func TestMatches(t *testing.T) {
	cases := []struct {
		name string
		text string
		lang string
		want []domain.Match
	}{
		{"exact case-insensitive", "hello", "fr-CA", []domain.Match{{Term: "Hello", Target: "Bonjour"}}},
		{"exact needs whole text", "hello there", "fr", nil},
		{"partial with prefix language", "please save now", "fr-FR", []domain.Match{{Term: "Save", Target: "Enregistrer"}}},
		{"language filter", "please save now", "de-DE", []domain.Match{{Term: "Save", Target: "Speichern"}}},
		{"unknown language disables filter", "Save", "unknown", []domain.Match{
			{Term: "Save", Target: "Enregistrer"}, {Term: "Save", Target: "Speichern"},
		}},
		{"case sensitive exact", "ok", "", nil},
		{"case sensitive exact hit", "OK", "", []domain.Match{{Term: "OK", Target: "OK!"}}},
		{"forbidden never matches", "Damn", "fr", nil},
		{"empty text", "", "fr", nil},
	}
	s := fixture()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := s.Matches(context.Background(), c.text, c.lang)
			if err != nil {
				t.Fatalf("Matches: %v", err)
			}
			if diff := cmp.Diff(c.want, got); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddTerm(t *testing.T) {
	r := &memRepo{}
	s := New(r)

	got, err := s.AddTerm(context.Background(), domain.Entry{Source: " Cancel ", Target: "Annuler", Language: "fr-fr"})
	if err != nil {
		t.Fatalf("AddTerm: %v", err)
	}
	want := domain.Entry{Source: "Cancel", Target: "Annuler", Language: "fr-FR", MatchType: "partial"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if len(r.rows) != 1 {
		t.Fatalf("rows = %v", r.rows)
	}

	if _, err := s.AddTerm(context.Background(), domain.Entry{Source: "x", Target: "y", MatchType: "regex"}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("bad match type: %v", err)
	}
	if _, err := s.AddTerm(context.Background(), domain.Entry{Source: "x"}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("missing target: %v", err)
	}
	if got, _ := s.AddTerm(context.Background(), domain.Entry{Source: "a", Target: "b", Language: "unknown"}); got.Language != "unknown" {
		t.Fatalf("non BCP 47 codes must be kept, got %q", got.Language)
	}
}

func TestPromote_FileBacked(t *testing.T) {
	s := ForPath(filepath.Join(t.TempDir(), "glossary.xlsx"))
	ctx := context.Background()

	n, err := s.Promote(ctx, []domain.Entry{
		{Source: "Hello", Target: "Bonjour", Language: "fr"},
		{Source: "Hello", Target: "Salut", Language: "fr"},
		{Source: "Hello", Target: "Hallo", Language: "de"},
	})
	if err != nil || n != 2 {
		t.Fatalf("Promote = %d, %v", n, err)
	}
	n, err = s.Promote(ctx, []domain.Entry{{Source: "Hello", Target: "Coucou", Language: "fr"}})
	if err != nil || n != 0 {
		t.Fatalf("second Promote = %d, %v", n, err)
	}
	m, err := s.Map(ctx)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if m["fr"]["Hello"] != "Bonjour" || m["de"]["Hello"] != "Hallo" {
		t.Fatalf("first seen must win: %v", m)
	}
	if n, _ := s.Promote(ctx, nil); n != 0 {
		t.Fatalf("empty promote = %d", n)
	}
}
