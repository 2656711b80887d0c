package dedup

import (
	"strings"
	"testing"

	"locbridge/internal/core/idcodec"
	"locbridge/internal/core/xliff"
	perr "locbridge/internal/platform/errors"

	"github.com/google/go-cmp/cmp"
)

func seg(id, src, tgt, file, lang string) xliff.Segment {
	return xliff.Segment{ID: id, Source: src, ExistingTarget: tgt, OriginFile: file, Language: lang}
}

type glossaryMap map[string]map[string]string

func (g glossaryMap) Lookup(lang, source string) (string, bool) {
	t, ok := g[lang][source]
	return t, ok
}

func TestPartitionAndByFile(t *testing.T) {
	segs := []xliff.Segment{
		seg("1", "a", "", "B.xliff", "fr"),
		seg("2", "b", "", "A.xliff", "de"),
		seg("3", "c", "", "A.xliff", "fr"),
	}
	langs, by := Partition(segs)
	if diff := cmp.Diff([]string{"de", "fr"}, langs); diff != "" {
		t.Fatalf("langs (-want +got):\n%s", diff)
	}
	if len(by["fr"]) != 2 || by["fr"][0].ID != "1" {
		t.Fatalf("fr partition = %+v", by["fr"])
	}

	files, byFile := ByFile(by["fr"])
	if diff := cmp.Diff([]string{"B.xliff", "A.xliff"}, files); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
	if byFile["A.xliff"][0].ID != "3" {
		t.Fatalf("byFile = %+v", byFile)
	}
}

func TestBuild_SubmitScenario(t *testing.T) {
	segs := []xliff.Segment{
		seg("10", "Submit", "", "A.xliff", "fr"),
		seg("11", "Cancel", "Annuler", "A.xliff", "fr"),
		seg("7", " Submit ", "", "B.xliff", "fr"),
		seg("8", "Cancel", "Abandonner", "B.xliff", "fr"),
	}
	groups, err := Build("fr", segs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("groups = %d", len(groups))
	}

	cancel, submit := groups[0], groups[1]
	if cancel.Source != "Cancel" || submit.Source != "Submit" {
		t.Fatalf("groups not sorted by source: %q %q", cancel.Source, submit.Source)
	}
	if submit.Count != 2 || submit.LocationsText() != "A.xliff, B.xliff" || submit.Target != "" {
		t.Fatalf("submit = %+v", submit)
	}
	ids, err := idcodec.Decode(submit.Blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"10", "7"}, ids); diff != "" {
		t.Fatalf("submit ids (-want +got):\n%s", diff)
	}
	if cancel.Target != "Annuler" {
		t.Fatalf("first existing target should win, got %q", cancel.Target)
	}
}

func TestBuild_BlobHoldsExactMultiset(t *testing.T) {
	segs := []xliff.Segment{
		seg("1", "Next", "", "a.xliff", "es"),
		seg("1", "Next", "", "b.xliff", "es"),
		seg("2", "Next", "", "a.xliff", "es"),
		seg("1", "Next", "", "c.xliff", "es"),
		seg("", "Next", "", "c.xliff", "es"),
		seg("9", "   ", "", "c.xliff", "es"),
	}
	groups, err := Build("es", segs)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(groups) != 1 || groups[0].Count != 5 {
		t.Fatalf("groups = %+v", groups)
	}
	ids := idcodec.DecodeOrEmpty(groups[0].Blob)
	if diff := cmp.Diff([]string{"1", "1", "2", "1", ""}, ids); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(groups[0].IDs, ids); diff != "" {
		t.Fatalf("blob disagrees with IDs (-want +got):\n%s", diff)
	}
	if groups[0].LocationsText() != "a.xliff, b.xliff, c.xliff" {
		t.Fatalf("locations = %q", groups[0].LocationsText())
	}
}

func TestBuild_DelimiterInID(t *testing.T) {
	_, err := Build("fr", []xliff.Segment{seg("a|b", "x", "", "f.xliff", "fr")})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) || !strings.Contains(err.Error(), "language fr") {
		t.Fatalf("want invalid argument naming the language, got %v", err)
	}
}

func TestSeed_Precedence(t *testing.T) {
	groups := []Group{
		{Language: "fr", Source: "English", Target: "Anglais"},
		{Language: "fr", Source: "Save", Target: ""},
		{Language: "fr", Source: "Open", Target: "Ouvrir"},
		{Language: "fr", Source: "Close", Target: ""},
		{Language: "fr", Source: "Help", Target: "Aide"},
	}
	s := Seeder{
		Protected: func(src string) bool { return strings.EqualFold(src, "english") },
		Glossary: glossaryMap{"fr": {
			"Save": " Enregistrer ",
			"Help": "Assistance",
		}},
	}
	s.Seed(groups)

	want := []struct {
		target string
		status Status
	}{
		{"English", StatusProtected},
		{"Enregistrer", StatusGlossary},
		{"Ouvrir", StatusExisting},
		{"", StatusNone},
		{"Aide", StatusExisting},
	}
	for i, w := range want {
		if groups[i].Target != w.target || groups[i].Status != w.status {
			t.Fatalf("group %q = %q/%q, want %q/%q", groups[i].Source, groups[i].Target, groups[i].Status, w.target, w.status)
		}
	}
	if !StatusGlossary.Prefilled() || !StatusProtected.Prefilled() || StatusExisting.Prefilled() {
		t.Fatalf("Prefilled wrong")
	}
}

func TestSeed_NoCollaborators(t *testing.T) {
	groups := []Group{{Source: "Save"}, {Source: "Open", Target: "Ouvrir"}}
	Seeder{}.Seed(groups)
	if groups[0].Status != StatusNone || groups[1].Status != StatusExisting {
		t.Fatalf("groups = %+v", groups)
	}
}
