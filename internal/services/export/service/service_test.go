package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"locbridge/internal/core/idcodec"
	"locbridge/internal/core/settings"
	"locbridge/internal/core/workbook"
	perr "locbridge/internal/platform/errors"
	kit "locbridge/internal/platform/testkit"
	"locbridge/internal/services/export/domain"
	glossarydom "locbridge/internal/services/glossary/domain"
	glossarysvc "locbridge/internal/services/glossary/service"

	"github.com/google/go-cmp/cmp"
)

func project(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	kit.WriteFile(t, root, "a.xliff", kit.XLIFF("course-1", "fr-FR",
		kit.Unit{ID: "u1", Source: "Hello"},
		kit.Unit{ID: "u2", Source: "English"},
		kit.Unit{ID: "u3", Source: "Save"},
		kit.Unit{ID: "u4", Source: "banner.png"},
		kit.Unit{ID: "u5", Source: "Bye", Target: "Au revoir"},
	))
	kit.WriteFile(t, root, "b.xliff", kit.XLIFF("course-1", "fr-FR",
		kit.Unit{ID: "u6", Source: "Hello"},
		kit.Unit{ID: "u7", Source: "  Hello  "},
	))
	kit.WriteFile(t, root, "c.xliff", kit.XLIFF("course-1", "de",
		kit.Unit{ID: "u8", Source: "Hello"},
	))
	kit.WriteFile(t, root, "broken.xliff", "<xliff><file")
	return root
}

func row(tbl *workbook.Table, i int) []string {
	return []string{
		tbl.Get(i, workbook.ColSource),
		tbl.Get(i, workbook.ColTarget),
		tbl.Get(i, workbook.ColCount),
		tbl.Get(i, workbook.ColLocations),
		tbl.Get(i, workbook.ColStatus),
	}
}

func TestRun_EndToEnd(t *testing.T) {
	root := project(t)
	ctx := context.Background()
	if _, err := glossarysvc.ForPath(filepath.Join(root, "glossary.xlsx")).AddTerm(ctx,
		glossarydom.Entry{Source: "Save", Target: "Enregistrer", Language: "fr-FR"}); err != nil {
		t.Fatalf("AddTerm: %v", err)
	}

	res, err := New(settings.Defaults()).Run(ctx, domain.RunInput{Root: root})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.FilesProcessed != 4 || res.LanguagesWritten != 2 || res.Errors != 1 {
		t.Fatalf("result = %+v", res)
	}
	kit.MustContain(t, res.Messages[0], "Error reading broken.xliff")
	kit.MustContain(t, kit.ReadFile(t, filepath.Join(root, "error_log.txt")), "- Error reading broken.xliff")

	fr := filepath.Join(root, "1_Excel_for_Translation", "fr-FR-master.xlsx")
	tbl, err := workbook.ReadTranslateSheet(fr, "fr-FR")
	if err != nil {
		t.Fatalf("read fr workbook: %v", err)
	}
	var got [][]string
	for i := 0; i < tbl.Len(); i++ {
		got = append(got, row(tbl, i))
	}
	want := [][]string{
		{"Bye", "Au revoir", "1", "a.xliff", "Existing"},
		{"English", "English", "1", "a.xliff", "Protected"},
		{"Hello", "", "3", "a.xliff, b.xliff", ""},
		{"Save", "Enregistrer", "1", "a.xliff", "Glossary"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fr rows (-want +got):\n%s", diff)
	}
	ids, err := idcodec.Decode(tbl.Get(2, workbook.ColIDBlob))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff([]string{"u1", "u6", "u7"}, ids); diff != "" {
		t.Fatalf("ids (-want +got):\n%s", diff)
	}

	de, err := workbook.ReadTranslateSheet(filepath.Join(root, "1_Excel_for_Translation", "de-master.xlsx"), "de")
	if err != nil || de.Len() != 1 || de.Get(0, workbook.ColSource) != "Hello" {
		t.Fatalf("de workbook: %v %+v", err, de)
	}
}

func TestRun_Fatal(t *testing.T) {
	s := New(settings.Defaults())
	ctx := context.Background()

	if _, err := s.Run(ctx, domain.RunInput{Root: t.TempDir()}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("no files: %v", err)
	}

	root := t.TempDir()
	kit.WriteFile(t, root, "empty.xliff", kit.XLIFF("c", "fr", kit.Unit{ID: "1", Source: "logo.jpg"}))
	kit.WriteFile(t, root, "bad.xliff", "not xml <")
	res, err := s.Run(ctx, domain.RunInput{Root: root})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("no content: %v", err)
	}
	if res.Errors != 1 {
		t.Fatalf("read error must still be reported: %+v", res)
	}
	kit.MustContain(t, kit.ReadFile(t, filepath.Join(root, "error_log.txt")), "bad.xliff")
}

type brokenGlossary struct{}

func (brokenGlossary) Map(context.Context) (glossarydom.Map, error) {
	return nil, perr.Wrap(errors.New("file is locked"), perr.ErrorCodeIO, "open glossary")
}

func TestRun_GlossaryFailureIsRecoverable(t *testing.T) {
	root := t.TempDir()
	kit.WriteFile(t, root, "a.xliff", kit.XLIFF("c", "fr", kit.Unit{ID: "1", Source: "Hello"}))

	s := New(settings.Defaults())
	s.OpenGlossary = func(string) GlossaryMapper { return brokenGlossary{} }
	res, err := s.Run(context.Background(), domain.RunInput{Root: root, Glossary: "terms.xlsx"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.LanguagesWritten != 1 || res.Errors != 1 {
		t.Fatalf("result = %+v", res)
	}
	kit.MustContain(t, res.Messages[0], "file is locked")
}

func TestRun_DelimiterInIDFailsOneLanguage(t *testing.T) {
	root := t.TempDir()
	kit.WriteFile(t, root, "a.xliff", kit.XLIFF("c", "fr", kit.Unit{ID: "bad|id", Source: "Hello"}))
	kit.WriteFile(t, root, "b.xliff", kit.XLIFF("c", "de", kit.Unit{ID: "ok", Source: "Hello"}))

	res, err := New(settings.Defaults()).Run(context.Background(), domain.RunInput{Root: root})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.LanguagesWritten != 1 || res.Errors != 1 {
		t.Fatalf("result = %+v", res)
	}
	kit.MustContain(t, res.Messages[0], "Error language fr")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(settings.Defaults()).Run(ctx, domain.RunInput{Root: project(t)}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}
