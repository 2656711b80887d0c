package xliff

import (
	"path/filepath"
	"regexp"
	"strings"

	"locbridge/internal/core/settings"
	perr "locbridge/internal/platform/errors"
)

// Segment is one translatable unit extracted from one file
type Segment struct {
	ID             string
	Source         string
	ExistingTarget string
	Context        string
	OriginFile     string
	Language       string
}

// Filter decides which source texts are never exported
type Filter struct {
	imageExts   []string
	literals    map[string]struct{}
	patterns    []*regexp.Regexp
	contextAttr string
}

// NewFilter compiles f. Literals and extensions match the lower-cased source;
// patterns must match the whole source, ignoring case
func NewFilter(f settings.Filters) (*Filter, error) {
	out := &Filter{
		literals:    make(map[string]struct{}, len(f.NonTranslatable)),
		contextAttr: f.ContextAttribute,
	}
	for _, ext := range f.ImageExtensions {
		if ext = strings.ToLower(strings.TrimSpace(ext)); ext != "" {
			out.imageExts = append(out.imageExts, ext)
		}
	}
	for _, l := range f.NonTranslatable {
		out.literals[strings.ToLower(l)] = struct{}{}
	}
	for _, p := range f.PlaceholderPatterns {
		re, err := regexp.Compile(`(?i)^(?:` + p + `)$`)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "placeholder pattern %q", p)
		}
		out.patterns = append(out.patterns, re)
	}
	return out, nil
}

// DefaultFilter is the filter built from the default settings
func DefaultFilter() *Filter {
	f, err := NewFilter(settings.Defaults().Filters)
	if err != nil {
		panic(err)
	}
	return f
}

// Excluded reports whether a trimmed source text must be skipped
func (f *Filter) Excluded(source string) bool {
	if source == "" {
		return true
	}
	lower := strings.ToLower(source)
	for _, ext := range f.imageExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	if _, ok := f.literals[lower]; ok {
		return true
	}
	for _, re := range f.patterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// Segments extracts the translatable segments of d, tagged with origin and language
func (d *Document) Segments(f *Filter, origin string) []Segment {
	lang := d.TargetLanguage()
	var out []Segment
	for _, u := range d.Units() {
		if !u.Translatable() {
			continue
		}
		src := u.Source()
		if f.Excluded(src) {
			continue
		}
		s := Segment{
			ID:             u.ID(),
			Source:         src,
			ExistingTarget: u.Target(),
			OriginFile:     origin,
			Language:       lang,
		}
		if f.contextAttr != "" {
			s.Context = u.Attr(f.contextAttr)
		}
		out = append(out, s)
	}
	return out
}

// Read parses the file at path and returns its language and segments.
// An unparsable file is an error; the caller decides whether the run continues
func Read(path string, f *Filter) (string, []Segment, error) {
	d, err := Open(path)
	if err != nil {
		return UnknownLanguage, nil, err
	}
	return d.TargetLanguage(), d.Segments(f, filepath.Base(path)), nil
}
