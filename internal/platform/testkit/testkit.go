// Package testkit provides testing helpers and XLIFF fixtures
package testkit

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MustPanic asserts that fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustContain asserts that haystack contains needle. On failure haystack is dumped to a temp file
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		tmpfile := filepath.Join(t.TempDir(), "haystack.txt")
		_ = os.WriteFile(tmpfile, []byte(haystack), 0o600)
		t.Fatalf("expected output to contain %q\n\nfull output written to %s", needle, tmpfile)
	}
}

// MustNotContain asserts that haystack does not contain needle
func MustNotContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Fatalf("expected output not to contain %q, got:\n%s", needle, haystack)
	}
}

// WriteFile writes content under dir (creating parents) and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

// ReadFile returns the content of path or fails the test
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

// Unit describes one trans-unit of a fixture document
// Target "" omits the <target> element; Translate "no" marks the unit untranslatable
type Unit struct {
	ID        string
	Source    string
	Target    string
	State     string
	Translate string
	Context   string
}

// XLIFF renders a minimal XLIFF 1.2 document with one <file> carrying fileID and lang
// lang "" omits the target-language attribute
func XLIFF(fileID, lang string, units ...Unit) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<xliff version="1.2" xmlns="urn:oasis:names:tc:xliff:document:1.2">` + "\n")
	b.WriteString(`  <file original="course" source-language="en" datatype="plaintext"`)
	if fileID != "" {
		fmt.Fprintf(&b, ` id="%s"`, html.EscapeString(fileID))
	}
	if lang != "" {
		fmt.Fprintf(&b, ` target-language="%s"`, html.EscapeString(lang))
	}
	b.WriteString(">\n    <body>\n")
	for _, u := range units {
		b.WriteString(`      <trans-unit`)
		if u.ID != "" {
			fmt.Fprintf(&b, ` id="%s"`, html.EscapeString(u.ID))
		}
		if u.Translate != "" {
			fmt.Fprintf(&b, ` translate="%s"`, html.EscapeString(u.Translate))
		}
		if u.Context != "" {
			fmt.Fprintf(&b, ` gomo-id="%s"`, html.EscapeString(u.Context))
		}
		b.WriteString(">\n")
		fmt.Fprintf(&b, "        <source>%s</source>\n", html.EscapeString(u.Source))
		if u.Target != "" || u.State != "" {
			b.WriteString("        <target")
			if u.State != "" {
				fmt.Fprintf(&b, ` state="%s"`, html.EscapeString(u.State))
			}
			fmt.Fprintf(&b, ">%s</target>\n", html.EscapeString(u.Target))
		}
		b.WriteString("      </trans-unit>\n")
	}
	b.WriteString("    </body>\n  </file>\n</xliff>\n")
	return b.String()
}
