// Package dedup is the pure stage of the pipeline: segment records in,
// deduplicated and seeded groups out, and back again as per-language id maps
package dedup

import (
	"sort"
	"strings"

	"locbridge/internal/core/idcodec"
	"locbridge/internal/core/xliff"
	perr "locbridge/internal/platform/errors"
	pstrings "locbridge/internal/platform/strings"
)

// Status says how a group's target was seeded
type Status string

// Status values as written to the workbook status column
const (
	StatusProtected Status = "Protected"
	StatusGlossary  Status = "Glossary"
	StatusExisting  Status = "Existing"
	StatusNone      Status = ""
)

// Prefilled reports whether the target came from a rule rather than from the files
func (s Status) Prefilled() bool { return s == StatusProtected || s == StatusGlossary }

// Group is one worksheet row: every record of one language sharing a trimmed source
type Group struct {
	Language      string
	Source        string
	Target        string
	Count         int
	Locations     []string
	IDs           []string
	Blob          string
	Status        Status
	AddToGlossary bool
}

// LocationsText is the display form of Locations
func (g Group) LocationsText() string { return strings.Join(g.Locations, ", ") }

// Partition splits records by language; languages come back sorted
func Partition(segs []xliff.Segment) ([]string, map[string][]xliff.Segment) {
	by := make(map[string][]xliff.Segment)
	for _, s := range segs {
		by[s.Language] = append(by[s.Language], s)
	}
	langs := make([]string, 0, len(by))
	for l := range by {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs, by
}

// ByFile splits records by origin file, keeping first-seen file order
func ByFile(segs []xliff.Segment) ([]string, map[string][]xliff.Segment) {
	by := make(map[string][]xliff.Segment)
	var files []string
	for _, s := range segs {
		if _, ok := by[s.OriginFile]; !ok {
			files = append(files, s.OriginFile)
		}
		by[s.OriginFile] = append(by[s.OriginFile], s)
	}
	return files, by
}

// Build groups the records of one language by trimmed source text.
// Groups are sorted by source; each keeps every member id in record order,
// the distinct origin files in first-seen order and the first non-empty existing target
func Build(lang string, segs []xliff.Segment) ([]Group, error) {
	index := make(map[string]int)
	var groups []Group
	for _, s := range segs {
		src := strings.TrimSpace(s.Source)
		if src == "" {
			continue
		}
		i, ok := index[src]
		if !ok {
			i = len(groups)
			index[src] = i
			groups = append(groups, Group{Language: lang, Source: src})
		}
		g := &groups[i]
		g.Count++
		g.IDs = append(g.IDs, s.ID)
		g.Locations = append(g.Locations, s.OriginFile)
		if g.Target == "" {
			g.Target = strings.TrimSpace(s.ExistingTarget)
		}
	}

	sort.SliceStable(groups, func(a, b int) bool { return groups[a].Source < groups[b].Source })
	for i := range groups {
		g := &groups[i]
		g.Locations = pstrings.Unique(g.Locations)
		blob, err := idcodec.Encode(g.IDs)
		if err != nil {
			return nil, perr.Wrapf(err, perr.CodeOf(err), "language %s, source %q", lang, g.Source)
		}
		g.Blob = blob
	}
	return groups, nil
}

// Glossary is the read side of the glossary used for seeding
type Glossary interface {
	Lookup(lang, source string) (string, bool)
}

// Seeder applies the seeding precedence: protected name, glossary (only for
// empty targets), existing target, nothing
type Seeder struct {
	Protected func(source string) bool
	Glossary  Glossary
}

// Seed sets Target and Status on every group in place
func (s Seeder) Seed(groups []Group) {
	for i := range groups {
		g := &groups[i]
		switch {
		case s.Protected != nil && s.Protected(g.Source):
			g.Target, g.Status = g.Source, StatusProtected
		case g.Target == "" && s.glossary(g.Language, g.Source) != "":
			g.Target, g.Status = s.glossary(g.Language, g.Source), StatusGlossary
		case g.Target != "":
			g.Status = StatusExisting
		default:
			g.Status = StatusNone
		}
	}
}

func (s Seeder) glossary(lang, source string) string {
	if s.Glossary == nil {
		return ""
	}
	t, ok := s.Glossary.Lookup(lang, source)
	if !ok {
		return ""
	}
	return strings.TrimSpace(t)
}
