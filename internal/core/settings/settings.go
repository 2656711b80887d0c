// Package settings is the explicit configuration object passed to every engine:
// folder names, protected language names, exclusion filters and standard file prefixes
package settings

import (
	_ "embed"
	"encoding/json"
	"os"
	"path/filepath"

	"locbridge/internal/platform/config"
	perr "locbridge/internal/platform/errors"
	"locbridge/internal/platform/validate"

	"golang.org/x/text/cases"
)

//go:embed defaults.json
var defaultsJSON []byte

// Settings drives export, reconstruction and the helper services
type Settings struct {
	Folders            Folders       `json:"folder_names"`
	ProtectedLanguages []string      `json:"protected_languages"`
	Filters            Filters       `json:"filters"`
	StandardFiles      StandardFiles `json:"standard_files"`
	ErrorLog           string        `json:"error_log" validate:"required"`
	// Glossary is the glossary workbook path, relative to the project root unless absolute; "" disables it
	Glossary string `json:"glossary"`

	protected map[string]struct{}
}

// Folders names the derived folders under a project root
type Folders struct {
	ExcelExport       string `json:"excel_export" validate:"required"`
	XLIFFOutput       string `json:"xliff_output" validate:"required"`
	MasterRepo        string `json:"master_repo"`
	SeparateLanguages string `json:"separate_languages" validate:"required"`
}

// Filters configures which source texts never reach a workbook
type Filters struct {
	ImageExtensions     []string `json:"image_extensions"`
	NonTranslatable     []string `json:"non_translatable"`
	PlaceholderPatterns []string `json:"placeholder_patterns" validate:"dive,regexp"`
	ContextAttribute    string   `json:"context_attribute"`
}

// StandardFiles configures the master-template replacement pass
type StandardFiles struct {
	Prefixes []string `json:"prefixes" validate:"dive,required"`
}

var folder = cases.Fold()

// Defaults returns the built-in settings
func Defaults() Settings {
	var s Settings
	if err := json.Unmarshal(defaultsJSON, &s); err != nil {
		panic("settings: embedded defaults are invalid: " + err.Error())
	}
	s.derive()
	return s
}

// Load reads a config.json over the defaults. Objects merge key by key, lists replace.
// A missing file yields the defaults; malformed JSON or invalid values are errors
func Load(path string) (Settings, error) {
	s := Defaults()
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, perr.Wrapf(err, perr.ErrorCodeIO, "read config %s", path)
	}
	// decoding into the populated struct keeps every default the file does not mention
	if err := json.Unmarshal(b, &s); err != nil {
		return Defaults(), perr.Wrapf(err, perr.ErrorCodeJSON, "parse config %s", path)
	}
	if err := s.Validate(); err != nil {
		return Defaults(), err
	}
	s.derive()
	return s, nil
}

// ApplyEnv overlays path settings from cfg (usually config.New().Prefix("LOCBRIDGE_"))
func (s *Settings) ApplyEnv(cfg config.Conf) {
	s.Glossary = cfg.MayString("GLOSSARY", s.Glossary)
	s.ErrorLog = cfg.MayString("ERROR_LOG", s.ErrorLog)
	s.Folders.ExcelExport = cfg.MayString("EXCEL_DIR", s.Folders.ExcelExport)
	s.Folders.XLIFFOutput = cfg.MayString("OUTPUT_DIR", s.Folders.XLIFFOutput)
	s.Folders.MasterRepo = cfg.MayString("MASTER_REPO", s.Folders.MasterRepo)
	s.ProtectedLanguages = cfg.MayCSV("PROTECTED_LANGUAGES", s.ProtectedLanguages)
	s.derive()
}

// Validate checks required folder names and that every placeholder pattern compiles
func (s Settings) Validate() error {
	return validate.Struct(s)
}

func (s *Settings) derive() {
	s.protected = make(map[string]struct{}, len(s.ProtectedLanguages))
	for _, l := range s.ProtectedLanguages {
		s.protected[folder.String(l)] = struct{}{}
	}
}

// IsProtected reports whether source is a protected language name (case-insensitive)
func (s Settings) IsProtected(source string) bool {
	if s.protected == nil {
		s.derive()
	}
	_, ok := s.protected[folder.String(source)]
	return ok
}

// Write stores s as indented JSON at path
func (s Settings) Write(path string) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "encode settings")
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeIO, "write %s", path)
	}
	return nil
}

// Paths are the absolute locations derived from a project root
type Paths struct {
	Root        string
	ExcelDir    string
	OutputDir   string
	SeparateDir string
	MasterRepo  string
	ErrorLog    string
	Glossary    string
}

// Resolve derives Paths for root; relative master repo and glossary paths hang off root
func (s Settings) Resolve(root string) Paths {
	out := filepath.Join(root, s.Folders.XLIFFOutput)
	p := Paths{
		Root:        root,
		ExcelDir:    filepath.Join(root, s.Folders.ExcelExport),
		OutputDir:   out,
		SeparateDir: filepath.Join(out, s.Folders.SeparateLanguages),
		ErrorLog:    filepath.Join(root, s.ErrorLog),
	}
	if s.Folders.MasterRepo != "" {
		p.MasterRepo = rooted(root, s.Folders.MasterRepo)
	}
	if s.Glossary != "" {
		p.Glossary = rooted(root, s.Glossary)
	}
	return p
}

func rooted(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
