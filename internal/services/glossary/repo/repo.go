// Package repo stores glossary entries in a spreadsheet
package repo

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"locbridge/internal/core/workbook"
	perr "locbridge/internal/platform/errors"
	"locbridge/internal/services/glossary/domain"
)

// Glossary sheet columns
const (
	ColSource        = "source_text"
	ColTarget        = "target_text"
	ColLanguage      = "language_code"
	ColMatchType     = "match_type"
	ColCaseSensitive = "case_sensitive"
	ColContext       = "context"
	ColForbidden     = "is_forbidden"
)

// Header is the column order of a new glossary workbook
var Header = []string{ColSource, ColTarget, ColLanguage, ColMatchType, ColCaseSensitive, ColContext, ColForbidden}

// Repo defines the storage contract for glossary entries
type Repo interface {
	// Load returns every row in file order; a missing file is an empty glossary
	Load(ctx context.Context) ([]domain.Entry, error)
	// Append adds rows after the existing ones, keeping columns the file already has.
	// When dedup is set, rows repeating an earlier (source, language) pair are dropped,
	// existing rows included, and the number of appended rows that survived is returned
	Append(ctx context.Context, entries []domain.Entry, dedup bool) (int, error)
}

// XLSX implements Repo over the first sheet of a workbook
type XLSX struct{ path string }

// NewXLSX returns a Repo backed by the workbook at path
func NewXLSX(path string) *XLSX { return &XLSX{path: path} }

// Path returns the workbook location
func (x *XLSX) Path() string { return x.path }

func (x *XLSX) read() (*workbook.Table, bool, error) {
	if x.path == "" {
		return nil, false, nil
	}
	if _, err := os.Stat(x.path); os.IsNotExist(err) {
		return nil, false, nil
	}
	t, err := workbook.ReadTable(x.path, "")
	if err != nil {
		return nil, false, perr.Wrapf(err, perr.CodeOf(err), "glossary %s", filepath.Base(x.path))
	}
	return t, true, nil
}

// Load implements Repo
func (x *XLSX) Load(ctx context.Context) ([]domain.Entry, error) {
	t, ok, err := x.read()
	if err != nil || !ok {
		return nil, err
	}
	out := make([]domain.Entry, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		out = append(out, domain.Entry{
			Source:        t.Get(i, ColSource),
			Target:        t.Get(i, ColTarget),
			Language:      t.Get(i, ColLanguage),
			MatchType:     t.Get(i, ColMatchType),
			CaseSensitive: flag(t.Get(i, ColCaseSensitive)),
			Context:       t.Get(i, ColContext),
			Forbidden:     flag(t.Get(i, ColForbidden)),
		})
	}
	return out, nil
}

// Append implements Repo
func (x *XLSX) Append(ctx context.Context, entries []domain.Entry, dedup bool) (int, error) {
	if x.path == "" {
		return 0, perr.InvalidArgf("no glossary configured")
	}
	if len(entries) == 0 {
		return 0, nil
	}
	t, ok, err := x.read()
	if err != nil {
		return 0, err
	}
	if !ok {
		t = workbook.NewTable("Sheet1", nil, nil)
	}
	header := append([]string(nil), t.Header...)
	for _, c := range Header {
		if _, ok := t.Col(c); !ok {
			header = append(header, c)
		}
	}
	t = workbook.NewTable(t.Sheet, header, t.Rows)

	rows := make([][]string, 0, t.Len()+len(entries))
	seen := make(map[[2]string]struct{})
	keep := func(src, lang string) bool {
		if !dedup {
			return true
		}
		k := [2]string{src, lang}
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
		return true
	}
	for i, r := range t.Rows {
		if keep(t.Get(i, ColSource), t.Get(i, ColLanguage)) {
			rows = append(rows, r)
		}
	}
	added := 0
	for _, e := range entries {
		if !keep(strings.TrimSpace(e.Source), strings.TrimSpace(e.Language)) {
			continue
		}
		rows = append(rows, toRow(t, e))
		added++
	}

	if err := os.MkdirAll(filepath.Dir(x.path), 0o755); err != nil {
		return 0, perr.Wrapf(err, perr.ErrorCodeIO, "mkdir %s", filepath.Dir(x.path))
	}
	if err := workbook.WriteTable(x.path, workbook.NewTable(t.Sheet, header, rows)); err != nil {
		return 0, err
	}
	return added, nil
}

func toRow(t *workbook.Table, e domain.Entry) []string {
	row := make([]string, len(t.Header))
	set := func(col, v string) {
		if i, ok := t.Col(col); ok {
			row[i] = v
		}
	}
	set(ColSource, strings.TrimSpace(e.Source))
	set(ColTarget, strings.TrimSpace(e.Target))
	set(ColLanguage, strings.TrimSpace(e.Language))
	set(ColMatchType, e.MatchType)
	set(ColCaseSensitive, boolText(e.CaseSensitive))
	set(ColContext, e.Context)
	set(ColForbidden, boolText(e.Forbidden))
	return row
}

func flag(v string) bool { return strings.EqualFold(strings.TrimSpace(v), "true") }

func boolText(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
