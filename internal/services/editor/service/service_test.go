package service

import (
	"context"
	"path/filepath"
	"testing"

	"locbridge/internal/core/xliff"
	perr "locbridge/internal/platform/errors"
	kit "locbridge/internal/platform/testkit"
	"locbridge/internal/services/editor/domain"
	glossarydom "locbridge/internal/services/glossary/domain"

	"github.com/google/go-cmp/cmp"
)

func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	return kit.WriteFile(t, dir, "a.xliff", kit.XLIFF("c", "fr",
		kit.Unit{ID: "1", Source: "Hello", Target: "Bonjour", State: "translated"},
		kit.Unit{ID: "2", Source: "Save"},
		kit.Unit{ID: "3", Source: "Quit", Target: "Quitter", State: "needs-review"},
	))
}

func TestList(t *testing.T) {
	path := fixture(t)
	s := New(nil)
	ctx := context.Background()

	all, err := s.List(ctx, domain.ListInput{Path: path})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []domain.Segment{
		{ID: "1", Source: "Hello", Target: "Bonjour", State: "translated"},
		{ID: "2", Source: "Save", State: "new"},
		{ID: "3", Source: "Quit", Target: "Quitter", State: "needs-review"},
	}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	cases := []struct {
		in   domain.ListInput
		want []string
	}{
		{domain.ListInput{State: "needs review"}, []string{"3"}},
		{domain.ListInput{State: "NEW"}, []string{"2"}},
		{domain.ListInput{State: "all"}, []string{"1", "2", "3"}},
		{domain.ListInput{Search: "bonj"}, []string{"1"}},
		{domain.ListInput{Search: "3"}, []string{"3"}},
		{domain.ListInput{State: "final"}, nil},
	}
	for _, c := range cases {
		c.in.Path = path
		got, err := s.List(ctx, c.in)
		if err != nil {
			t.Fatalf("List(%+v): %v", c.in, err)
		}
		var ids []string
		for _, seg := range got {
			ids = append(ids, seg.ID)
		}
		if diff := cmp.Diff(c.want, ids); diff != "" {
			t.Errorf("List(%+v) (-want +got):\n%s", c.in, diff)
		}
	}

	if _, err := s.List(ctx, domain.ListInput{}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("missing path: %v", err)
	}
}

func TestSave(t *testing.T) {
	path := fixture(t)
	s := New(nil)
	ctx := context.Background()

	seg, err := s.Save(ctx, domain.SaveInput{Path: path, ID: "2", Target: "Enregistrer", State: "final"})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if seg.Target != "Enregistrer" || seg.State != "final" {
		t.Fatalf("segment = %+v", seg)
	}
	d, err := xliff.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if u := d.Unit("2"); u.Target() != "Enregistrer" || u.State() != "final" {
		t.Fatalf("unit 2 = %q/%q", u.Target(), u.State())
	}

	if _, err := s.Save(ctx, domain.SaveInput{Path: path, ID: "nope", Target: "x"}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("unknown id: %v", err)
	}
}

func project(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	kit.WriteFile(t, root, "a.xliff", kit.XLIFF("c", "fr",
		kit.Unit{ID: "1", Source: "Hello", Target: "Bonjour Paul", State: "final"},
		kit.Unit{ID: "2", Source: "Bye", Target: "Au revoir"},
		kit.Unit{ID: "3", Source: "Empty"},
	))
	kit.WriteFile(t, root, "b.xliff", kit.XLIFF("c", "fr", kit.Unit{ID: "1", Source: "Hi", Target: "bonjour"}))
	kit.WriteFile(t, root, "c.xliff", kit.XLIFF("c", "de", kit.Unit{ID: "1", Source: "Hi", Target: "Bonjour?"}))
	return root
}

func hitKeys(r domain.FindResult) []string {
	var out []string
	for _, h := range r.Hits {
		out = append(out, filepath.Base(h.File)+"#"+h.ID)
	}
	return out
}

func TestFind(t *testing.T) {
	root := project(t)
	s := New(nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   domain.FindInput
		want []string
	}{
		{"all files ignoring case", domain.FindInput{Scope: domain.ScopeAll, Find: "BONJOUR"}, []string{"a.xliff#1", "b.xliff#1", "c.xliff#1"}},
		{"case sensitive", domain.FindInput{Scope: domain.ScopeAll, Find: "bonjour", CaseSensitive: true}, []string{"b.xliff#1"}},
		{"language scope", domain.FindInput{Scope: domain.ScopeLanguage, File: "a.xliff", Find: "bonjour"}, []string{"a.xliff#1", "b.xliff#1"}},
		{"file scope", domain.FindInput{Scope: domain.ScopeFile, File: "a.xliff", Find: "o"}, []string{"a.xliff#1", "a.xliff#2"}},
		{"regex", domain.FindInput{Scope: domain.ScopeAll, Find: `^bonjour\W?$`, Regex: true}, []string{"b.xliff#1", "c.xliff#1"}},
		{"plain search quotes metacharacters", domain.FindInput{Scope: domain.ScopeAll, Find: "r?"}, []string{"c.xliff#1"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			c.in.Root = root
			res, err := s.Find(ctx, c.in)
			if err != nil {
				t.Fatalf("Find: %v", err)
			}
			if diff := cmp.Diff(c.want, hitKeys(res)); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}

	_, err := s.Find(ctx, domain.FindInput{Root: root, Scope: domain.ScopeAll, Find: "(", Regex: true})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("bad regex: %v", err)
	}
	_, err = s.Find(ctx, domain.FindInput{Root: root, Scope: domain.ScopeFile, Find: "x"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("file scope without file: %v", err)
	}
}

func TestReplace(t *testing.T) {
	root := project(t)
	s := New(nil)
	before := kit.ReadFile(t, filepath.Join(root, "a.xliff"))
	untouched := kit.ReadFile(t, filepath.Join(root, "c.xliff"))

	res, err := s.Replace(context.Background(), domain.ReplaceInput{
		FindInput: domain.FindInput{Root: root, Scope: domain.ScopeLanguage, File: "a.xliff", Find: `bonjour (\w+)`, Regex: true},
		Replace:   "Salut $1",
		Backup:    true,
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if res.Replaced != 1 || res.FilesChanged != 1 || res.Errors != 0 {
		t.Fatalf("result = %+v", res)
	}

	d, err := xliff.Open(filepath.Join(root, "a.xliff"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if u := d.Unit("1"); u.Target() != "Salut Paul" || u.State() != xliff.StateTranslated {
		t.Fatalf("unit 1 = %q/%q", u.Target(), u.State())
	}
	if u := d.Unit("2"); u.Target() != "Au revoir" || u.State() != "" {
		t.Fatalf("unit 2 must be untouched, got %q/%q", u.Target(), u.State())
	}
	if u := d.Unit("3"); u.HasTarget() {
		t.Fatalf("unit 3 must stay without target")
	}
	if got := kit.ReadFile(t, filepath.Join(root, "a.xliff.bak")); got != before {
		t.Fatalf("backup differs from original")
	}
	if got := kit.ReadFile(t, filepath.Join(root, "c.xliff")); got != untouched {
		t.Fatalf("file outside the language scope was rewritten")
	}

	// plain replacement text is literal
	res, err = s.Replace(context.Background(), domain.ReplaceInput{
		FindInput: domain.FindInput{Root: root, Scope: domain.ScopeFile, File: "b.xliff", Find: "BONJOUR"},
		Replace:   "$1 salut",
	})
	if err != nil || res.Replaced != 1 {
		t.Fatalf("res=%+v err=%v", res, err)
	}
	d, _ = xliff.Open(filepath.Join(root, "b.xliff"))
	if got := d.Unit("1").Target(); got != "$1 salut" {
		t.Fatalf("target = %q", got)
	}
}

func TestTags(t *testing.T) {
	s := New(nil)
	cases := []struct {
		text, style string
		want        []string
	}{
		{`Click <g id="1">here</g> or {name}, %s and %d %s<x id="2"/>`, domain.TagsXML, []string{`<g id="1">`, "{name}", "%s", "%d", `<x id="2"/>`}},
		{"[b]bold[/b] and [link url=x]go[/link] [b]", domain.TagsBracket, []string{"[b]", "[link url=x]"}},
		{"plain", "", []string{}},
	}
	for _, c := range cases {
		got, err := s.Tags(context.Background(), domain.TagsInput{Text: c.text, Style: c.style})
		if err != nil {
			t.Fatalf("Tags: %v", err)
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("Tags(%q) (-want +got):\n%s", c.text, diff)
		}
	}
	if _, err := s.Tags(context.Background(), domain.TagsInput{Text: "x", Style: "html"}); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("bad style: %v", err)
	}
}

type fakeGlossary struct{ in glossarydom.MatchInput }

func (f *fakeGlossary) Matches(_ context.Context, in glossarydom.MatchInput) ([]glossarydom.Match, error) {
	f.in = in
	return []glossarydom.Match{{Term: "Save", Target: "Enregistrer"}}, nil
}

func TestHints(t *testing.T) {
	g := &fakeGlossary{}
	s := New(g)
	in := domain.HintsInput{Root: "/p", Text: "Save all", File: "a.xliff"}
	got, err := s.Hints(context.Background(), in)
	if err != nil {
		t.Fatalf("Hints: %v", err)
	}
	if len(got) != 1 || got[0].Target != "Enregistrer" || g.in != in {
		t.Fatalf("got %+v, forwarded %+v", got, g.in)
	}
	if _, err := New(nil).Hints(context.Background(), in); err == nil {
		t.Fatalf("want error without glossary")
	}
}
