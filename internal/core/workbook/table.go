// Package workbook reads and writes the spreadsheets exchanged with translators:
// per-language master workbooks, MT provider workbooks and plain header+rows tables
package workbook

import (
	stderrs "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	perr "locbridge/internal/platform/errors"

	"github.com/xuri/excelize/v2"
)

// MaxCellLen is the longest text a cell can hold; longer strings are truncated by Excel
const MaxCellLen = excelize.TotalCellChars

// Table is one worksheet read as a header row plus data rows
type Table struct {
	Sheet  string
	Header []string
	Rows   [][]string

	cols map[string]int
}

// NewTable builds a table from a header and rows
func NewTable(sheet string, header []string, rows [][]string) *Table {
	t := &Table{Sheet: sheet, Header: header, Rows: rows}
	t.index()
	return t
}

func (t *Table) index() {
	t.cols = make(map[string]int, len(t.Header))
	for i, h := range t.Header {
		h = strings.TrimSpace(h)
		if _, dup := t.cols[h]; !dup && h != "" {
			t.cols[h] = i
		}
	}
}

// Col returns the zero-based index of the named column
func (t *Table) Col(name string) (int, bool) {
	i, ok := t.cols[name]
	return i, ok
}

// Require fails with a validation error naming every missing column
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := t.cols[n]; !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return perr.WithField(
			perr.Newf(perr.ErrorCodeValidation, "sheet %s is missing column(s) %s", t.Sheet, strings.Join(missing, ", ")),
			missing[0],
		)
	}
	return nil
}

// Get returns the trimmed value of the named column in data row i; "" when absent
func (t *Table) Get(i int, name string) string {
	c, ok := t.cols[name]
	if !ok || i < 0 || i >= len(t.Rows) || c >= len(t.Rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[i][c])
}

// Len returns the number of data rows
func (t *Table) Len() int { return len(t.Rows) }

// Files lists the .xlsx workbooks directly in dir, sorted by name.
// Office lock files (~$name.xlsx) are skipped; a missing dir is NotFound
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, perr.NotFoundf("folder %s does not exist", dir)
	}
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "list %s", dir)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") || !strings.EqualFold(filepath.Ext(name), ".xlsx") {
			continue
		}
		out = append(out, filepath.Join(dir, name))
	}
	sort.Strings(out)
	return out, nil
}

func open(path string) (*excelize.File, error) {
	f, err := excelize.OpenFile(path)
	if err == nil {
		return f, nil
	}
	var pe *fs.PathError
	if stderrs.As(err, &pe) {
		if stderrs.Is(err, fs.ErrNotExist) {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "open workbook %s", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeIO, "open workbook %s", path)
	}
	return nil, perr.Wrapf(err, perr.ErrorCodeParse, "open workbook %s", path)
}

func hasSheet(f *excelize.File, sheet string) bool {
	i, err := f.GetSheetIndex(sheet)
	return err == nil && i >= 0
}

func readTable(f *excelize.File, path, sheet string) (*Table, error) {
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, perr.NotFoundf("workbook %s has no sheets", path)
		}
		sheet = list[0]
	}
	if !hasSheet(f, sheet) {
		return nil, perr.WithField(perr.NotFoundf("sheet %s not found in %s", sheet, path), "sheet")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeParse, "read sheet %s of %s", sheet, path)
	}
	if len(rows) == 0 {
		return NewTable(sheet, nil, nil), nil
	}
	return NewTable(sheet, rows[0], rows[1:]), nil
}

// ReadTable reads sheet of the workbook at path; "" selects the first sheet
func ReadTable(path, sheet string) (*Table, error) {
	f, err := open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return readTable(f, path, sheet)
}

// WriteTable replaces the workbook at path with a single sheet holding t
func WriteTable(path string, t *Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "sheet name %q", sheet)
	}
	if err := setRow(f, sheet, 1, strs(t.Header)); err != nil {
		return err
	}
	for i, r := range t.Rows {
		if err := setRow(f, sheet, i+2, strs(r)); err != nil {
			return err
		}
	}
	return save(f, path)
}

func strs(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "cell address")
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write row %d of %s", row, sheet)
	}
	return nil
}

func save(f *excelize.File, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "mkdir %s", filepath.Dir(path))
	}
	if err := f.SaveAs(path); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "save workbook %s", path)
	}
	return nil
}
