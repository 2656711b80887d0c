package settings

import (
	"path/filepath"
	"testing"

	"locbridge/internal/platform/config"
	perr "locbridge/internal/platform/errors"
	kit "locbridge/internal/platform/testkit"

	"github.com/google/go-cmp/cmp"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	if s.Folders.ExcelExport != "1_Excel_for_Translation" || s.Folders.XLIFFOutput != "2_Translated_XLIFFs" {
		t.Fatalf("folders = %+v", s.Folders)
	}
	if s.Filters.ContextAttribute != "gomo-id" || len(s.StandardFiles.Prefixes) != 2 {
		t.Fatalf("filters/prefixes = %+v %+v", s.Filters, s.StandardFiles)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}

func TestIsProtected(t *testing.T) {
	s := Defaults()
	for _, in := range []string{"English", "english", "ENGLISH", "Français", "FRANÇAIS", "日本語"} {
		if !s.IsProtected(in) {
			t.Fatalf("IsProtected(%q) = false", in)
		}
	}
	for _, in := range []string{"Englishh", "", "Hello"} {
		if s.IsProtected(in) {
			t.Fatalf("IsProtected(%q) = true", in)
		}
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := kit.WriteFile(t, dir, "config.json", `{
		"folder_names": {"excel_export": "CUSTOM_FOLDER"},
		"protected_languages": ["TestLang"]
	}`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Folders.ExcelExport != "CUSTOM_FOLDER" {
		t.Fatalf("excel_export = %q", s.Folders.ExcelExport)
	}
	if s.Folders.XLIFFOutput != "2_Translated_XLIFFs" {
		t.Fatalf("sibling default lost: %q", s.Folders.XLIFFOutput)
	}
	if diff := cmp.Diff([]string{"TestLang"}, s.ProtectedLanguages); diff != "" {
		t.Fatalf("lists must replace (-want +got):\n%s", diff)
	}
	if !s.IsProtected("testlang") || s.IsProtected("English") {
		t.Fatalf("protected set not rebuilt")
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	s, err := Load(filepath.Join(dir, "missing.json"))
	if err != nil || s.Folders.ExcelExport != "1_Excel_for_Translation" {
		t.Fatalf("missing file should give defaults: %v", err)
	}

	bad := kit.WriteFile(t, dir, "bad.json", `{"folder_names": `)
	if _, err := Load(bad); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON error, got %v", err)
	}

	pattern := kit.WriteFile(t, dir, "pattern.json", `{"filters": {"placeholder_patterns": ["("]}}`)
	if _, err := Load(pattern); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}

	empty := kit.WriteFile(t, dir, "empty.json", `{"folder_names": {"xliff_output": ""}}`)
	if _, err := Load(empty); !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error for empty folder, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LOCBRIDGE_GLOSSARY", "/abs/terms.xlsx")
	t.Setenv("LOCBRIDGE_EXCEL_DIR", "excel")
	t.Setenv("LOCBRIDGE_PROTECTED_LANGUAGES", "Klingon, Elvish")

	s := Defaults()
	s.ApplyEnv(config.New().Prefix("LOCBRIDGE_"))
	if s.Glossary != "/abs/terms.xlsx" || s.Folders.ExcelExport != "excel" {
		t.Fatalf("env not applied: %+v", s)
	}
	if !s.IsProtected("klingon") || s.IsProtected("English") {
		t.Fatalf("protected languages not overlaid")
	}
}

func TestResolveAndWrite(t *testing.T) {
	root := t.TempDir()
	s := Defaults()
	p := s.Resolve(root)
	if p.ExcelDir != filepath.Join(root, "1_Excel_for_Translation") ||
		p.SeparateDir != filepath.Join(root, "2_Translated_XLIFFs", "Separate Languages") ||
		p.MasterRepo != filepath.Join(root, "master_localization_files") ||
		p.Glossary != filepath.Join(root, "glossary.xlsx") ||
		p.ErrorLog != filepath.Join(root, "error_log.txt") {
		t.Fatalf("paths = %+v", p)
	}

	s.Glossary = ""
	s.Folders.MasterRepo = "/opt/masters"
	p = s.Resolve(root)
	if p.Glossary != "" || p.MasterRepo != "/opt/masters" {
		t.Fatalf("paths = %+v", p)
	}

	out := filepath.Join(root, "config.json")
	if err := s.Write(out); err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, err := Load(out)
	if err != nil {
		t.Fatalf("Load written: %v", err)
	}
	if back.Folders.MasterRepo != "/opt/masters" || back.Glossary != "" {
		t.Fatalf("written settings lost values: %+v", back)
	}
}
