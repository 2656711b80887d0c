package workbook

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"locbridge/internal/core/dedup"
	"locbridge/internal/core/xliff"
	perr "locbridge/internal/platform/errors"

	"github.com/xuri/excelize/v2"
)

// Main sheet columns
const (
	ColSource        = "source"
	ColTarget        = "target"
	ColCount         = "count"
	ColLocations     = "locations"
	ColStatus        = "status"
	ColAddToGlossary = "add_to_glossary"
	ColIDBlob        = "id_blob"
)

const (
	masterSuffix    = "-master.xlsx"
	translateSuffix = "-Translate_Here"
	maxSheetName    = 31
	shade           = "F0F0F0"
)

var (
	// MainHeader is the header of the <lang>-Translate_Here sheet; id_blob is column G
	MainHeader = []string{ColSource, ColTarget, ColCount, ColLocations, ColStatus, ColAddToGlossary, ColIDBlob}

	// FileSheetHeader is the header of the hidden per-file sheets
	FileSheetHeader = []string{"id", "source", "existing_target", "context", "original_source_file", "language"}
)

// MasterFileName is the workbook name for lang
func MasterFileName(lang string) string { return lang + masterSuffix }

// TranslateSheetName is the main sheet name for lang. Reserved characters in
// lang become "_" and lang is cut so the name fits Excel's 31 character limit;
// readers derive the same name from the workbook's file name
func TranslateSheetName(lang string) string {
	return truncate(cleanSheetName(lang), maxSheetName-len(translateSuffix)) + translateSuffix
}

// LanguageFromFile extracts the language from a master workbook file name
func LanguageFromFile(name string) (string, bool) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, masterSuffix) || len(base) == len(masterSuffix) {
		return "", false
	}
	return strings.TrimSuffix(base, masterSuffix), true
}

// MasterFiles lists the master workbooks in dir, sorted by name
func MasterFiles(dir string) ([]string, error) {
	all, err := Files(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range all {
		if _, ok := LanguageFromFile(f); ok {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, perr.NotFoundf("no *%s files in %s", masterSuffix, dir)
	}
	return out, nil
}

// FileSheet is the hidden copy of one origin file's records
type FileSheet struct {
	Origin   string
	Segments []xliff.Segment
}

// Master is everything written to one language workbook
type Master struct {
	Language string
	Groups   []dedup.Group
	Files    []FileSheet
}

// WriteMaster writes m to path, replacing any existing file
func WriteMaster(path string, m Master) error {
	for _, g := range m.Groups {
		if n := utf8.RuneCountInString(g.Blob); n > MaxCellLen {
			return perr.Newf(perr.ErrorCodeInvalidArgument,
				"id list of %q is %d characters, a cell holds at most %d", g.Source, n, MaxCellLen)
		}
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := TranslateSheetName(m.Language)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "sheet name %q", sheet)
	}
	if err := setRow(f, sheet, 1, strs(MainHeader)); err != nil {
		return err
	}
	if err := f.SetColVisible(sheet, "G", false); err != nil {
		return perr.Wrap(err, perr.ErrorCodeIO, "hide id column")
	}
	grey, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{shade}, Pattern: 1},
	})
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeIO, "create fill style")
	}

	for i, g := range m.Groups {
		row := i + 2
		mark := ""
		if g.AddToGlossary {
			mark = "x"
		}
		values := []any{g.Source, g.Target, g.Count, g.LocationsText(), string(g.Status), mark, g.Blob}
		if err := setRow(f, sheet, row, values); err != nil {
			return err
		}
		if g.Status.Prefilled() {
			from, _ := excelize.CoordinatesToCellName(1, row)
			to, _ := excelize.CoordinatesToCellName(len(MainHeader), row)
			if err := f.SetCellStyle(sheet, from, to, grey); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeIO, "shade row %d", row)
			}
		}
	}

	used := map[string]struct{}{strings.ToLower(sheet): {}}
	for _, fsh := range m.Files {
		name := uniqueSheetName(fsh.Origin, used)
		if _, err := f.NewSheet(name); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "sheet name %q", name)
		}
		if err := setRow(f, name, 1, strs(FileSheetHeader)); err != nil {
			return err
		}
		for i, s := range fsh.Segments {
			values := []any{s.ID, s.Source, s.ExistingTarget, s.Context, s.OriginFile, s.Language}
			if err := setRow(f, name, i+2, values); err != nil {
				return err
			}
		}
		if err := f.SetSheetVisible(name, false); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "hide sheet %s", name)
		}
	}
	f.SetActiveSheet(0)
	return save(f, path)
}

// SheetName turns a file name into a valid worksheet name: the stem with
// Excel-reserved characters replaced by "_", cut to 31 characters
func SheetName(file string) string {
	stem := cleanSheetName(strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)))
	if stem == "" {
		stem = "sheet"
	}
	return truncate(stem, maxSheetName)
}

func cleanSheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '_'
		}
		return r
	}, s)
	return strings.Trim(s, "'")
}

// sheet names compare case-insensitively in Excel
func uniqueSheetName(file string, used map[string]struct{}) string {
	base := SheetName(file)
	name := base
	for n := 2; ; n++ {
		if _, taken := used[strings.ToLower(name)]; !taken {
			break
		}
		suffix := "_" + strconv.Itoa(n)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	used[strings.ToLower(name)] = struct{}{}
	return name
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// IsTruthy reports whether an add_to_glossary cell marks the row
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "x", "yes", "y", "true", "1":
		return true
	}
	return false
}

// ReadTranslateSheet reads the main sheet of a master workbook.
// A missing sheet is a NotFound error; column checks are left to the caller
func ReadTranslateSheet(path, lang string) (*Table, error) {
	return ReadTable(path, TranslateSheetName(lang))
}

// ApplyTargets overwrites the target column of lang's main sheet with targets, row by row.
// The number of targets must equal the number of data rows
func ApplyTargets(path, lang string, targets []string) error {
	f, err := open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	t, err := readTable(f, path, TranslateSheetName(lang))
	if err != nil {
		return err
	}
	if err := t.Require(ColTarget); err != nil {
		return err
	}
	if t.Len() != len(targets) {
		return perr.Conflictf("row mismatch: %s has %d rows, translations have %d", filepath.Base(path), t.Len(), len(targets))
	}
	col, _ := t.Col(ColTarget)
	for i, v := range targets {
		cell, err := excelize.CoordinatesToCellName(col+1, i+2)
		if err != nil {
			return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "cell address")
		}
		if err := f.SetCellStr(t.Sheet, cell, v); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeIO, "write %s!%s", t.Sheet, cell)
		}
	}
	if err := f.Save(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "save workbook %s", path)
	}
	return nil
}

// ReadFirstColumn returns column A of the first sheet, skipping the first row
func ReadFirstColumn(path string) ([]string, error) {
	t, err := ReadTable(path, "")
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, t.Len())
	for _, r := range t.Rows {
		v := ""
		if len(r) > 0 {
			v = r[0]
		}
		out = append(out, v)
	}
	return out, nil
}
