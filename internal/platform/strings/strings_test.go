package strings

import (
	"testing"

	kit "locbridge/internal/platform/testkit"

	"github.com/google/go-cmp/cmp"
)

func TestIfEmpty(t *testing.T) {
	if got := IfEmpty([]int{1, 2}, []int{9}); len(got) != 2 {
		t.Fatalf("IfEmpty non-empty = %v", got)
	}
	if got := IfEmpty(nil, []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("IfEmpty default = %v", got)
	}
}

func TestMustString(t *testing.T) {
	if MustString("export", "name") != "export" {
		t.Fatalf("MustString changed value")
	}
	kit.MustPanic(t, func() { MustString("  ", "name") })
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"export":    "/export",
		"/export/":  "/export",
		" /a/b/ ":   "/a/b",
		"//glossary": "/glossary",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Fatalf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { MustPrefix(" / ") })
}

func TestUnique(t *testing.T) {
	got := Unique([]string{"b.xliff", "a.xliff", "", "b.xliff", "c.xliff", "a.xliff"})
	if diff := cmp.Diff([]string{"b.xliff", "a.xliff", "c.xliff"}, got); diff != "" {
		t.Fatalf("Unique mismatch (-want +got):\n%s", diff)
	}
}

func TestWordCountAndBlank(t *testing.T) {
	if WordCount("  Hello   wide\tworld\n") != 3 {
		t.Fatalf("WordCount wrong")
	}
	if WordCount("") != 0 {
		t.Fatalf("WordCount empty wrong")
	}
	if !IsBlank(" \t") || IsBlank(" x ") {
		t.Fatalf("IsBlank wrong")
	}
}
