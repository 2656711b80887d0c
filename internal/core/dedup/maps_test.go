package dedup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLanguageMaps_AddAndCollisions(t *testing.T) {
	m := NewLanguageMaps()
	if c := m.Add("fr", []string{"u1", "u3", ""}, "Bonjour"); len(c) != 0 {
		t.Fatalf("unexpected collisions %v", c)
	}
	if c := m.Add("fr", []string{"u3"}, "Bonjour"); len(c) != 0 {
		t.Fatalf("same value is not a collision: %v", c)
	}
	c := m.Add("fr", []string{"u3", "u4"}, "Salut")
	want := []Collision{{Language: "fr", ID: "u3", Previous: "Bonjour", Current: "Salut"}}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("collisions (-want +got):\n%s", diff)
	}

	lm, used, ok := m.Resolve("fr")
	if !ok || used != "fr" {
		t.Fatalf("Resolve(fr) = %v %q", ok, used)
	}
	if diff := cmp.Diff(LanguageMap{"u1": "Bonjour", "u3": "Salut", "u4": "Salut"}, lm); diff != "" {
		t.Fatalf("map (-want +got):\n%s", diff)
	}
	if m.Len() != 3 {
		t.Fatalf("Len = %d", m.Len())
	}
}

func TestLanguageMaps_Resolve(t *testing.T) {
	m := NewLanguageMaps()
	m.Add("fr-FR", []string{"1"}, "Oui")
	m.Add("FR-FR", []string{"2"}, "Non")
	m.Add("de", nil, "")
	m.Add("DE", []string{"3"}, "Ja")

	cases := []struct {
		lang string
		used string
		ok   bool
	}{
		{"fr-FR", "fr-FR", true},
		{"FR-fr", "FR-FR", true},
		{"FR-FR", "FR-FR", true},
		{"de", "DE", true},
		{"it", "", false},
		{"unknown", "", false},
	}
	for _, c := range cases {
		_, used, ok := m.Resolve(c.lang)
		if used != c.used || ok != c.ok {
			t.Fatalf("Resolve(%q) = %q %v, want %q %v", c.lang, used, ok, c.used, c.ok)
		}
	}
	if diff := cmp.Diff([]string{"DE", "FR-FR", "de", "fr-FR"}, m.Languages()); diff != "" {
		t.Fatalf("languages (-want +got):\n%s", diff)
	}
}
