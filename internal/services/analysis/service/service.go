// Package service estimates translation effort from the source files of a project
package service

import (
	"context"
	"path/filepath"

	"locbridge/internal/core/dedup"
	"locbridge/internal/core/settings"
	"locbridge/internal/core/xliff"
	perr "locbridge/internal/platform/errors"
	"locbridge/internal/platform/runlog"
	pstrings "locbridge/internal/platform/strings"
	"locbridge/internal/services/analysis/domain"
	glossarydom "locbridge/internal/services/glossary/domain"
	glossarysvc "locbridge/internal/services/glossary/service"
)

// GlossaryMapper loads the lookup map of a glossary
type GlossaryMapper interface {
	Map(ctx context.Context) (glossarydom.Map, error)
}

// Service runs analyses
type Service struct {
	Settings     settings.Settings
	OpenGlossary func(path string) GlossaryMapper
}

// New constructs an analysis service over s using spreadsheet glossaries
func New(s settings.Settings) *Service {
	return &Service{
		Settings:     s,
		OpenGlossary: func(path string) GlossaryMapper { return glossarysvc.ForPath(path) },
	}
}

// Run counts words per language over the same records an export would write.
// No input files or no content at all is fatal; nothing is written to disk
func (s *Service) Run(ctx context.Context, in domain.RunInput) (domain.Result, error) {
	paths := s.Settings.Resolve(in.Root)
	if in.Glossary != "" {
		paths.Glossary = in.Glossary
		if !filepath.IsAbs(in.Glossary) {
			paths.Glossary = filepath.Join(in.Root, in.Glossary)
		}
	}

	files, err := xliff.Discover(in.Root)
	if err != nil {
		return domain.Result{}, err
	}
	filter, err := xliff.NewFilter(s.Settings.Filters)
	if err != nil {
		return domain.Result{}, err
	}
	ctx, rl := runlog.Start(ctx, "analysis")

	var gmap glossarydom.Map
	if paths.Glossary != "" && s.OpenGlossary != nil {
		if gmap, err = s.OpenGlossary(paths.Glossary).Map(ctx); err != nil {
			rl.Add(perr.Wrapf(err, perr.CodeOf(err), "Glossary not loaded, analysing without it"))
		}
	}

	var all []xliff.Segment
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return domain.Result{}, err
		}
		_, segs, err := xliff.Read(f, filter)
		if err != nil {
			rl.Addf("Error reading %s: %v", filepath.Base(f), err)
			continue
		}
		all = append(all, segs...)
	}

	res := domain.Result{FilesAnalysed: len(files), Errors: rl.Len(), Messages: rl.Messages()}
	if len(all) == 0 {
		return res, perr.NotFoundf("no translatable content in %d file(s) under %s", len(files), in.Root)
	}

	langs, byLang := dedup.Partition(all)
	for _, lang := range langs {
		res.Languages = append(res.Languages, Stats(lang, byLang[lang], gmap))
	}
	rl.Logger().Info().Int("files", len(files)).Int("languages", len(langs)).Msg("analysis finished")
	return res, nil
}

// Stats computes the counts of one language. Repetitions are the words of every
// record whose source occurs more than once, minus one occurrence per source;
// glossary matches and new words are counted once per distinct source
func Stats(lang string, segs []xliff.Segment, g glossarydom.Map) domain.LanguageStats {
	out := domain.LanguageStats{Language: lang}
	seen := make(map[string]int, len(segs))
	var order []string
	for _, s := range segs {
		out.TotalWords += pstrings.WordCount(s.Source)
		if seen[s.Source] == 0 {
			order = append(order, s.Source)
		}
		seen[s.Source]++
	}
	for _, src := range order {
		wc := pstrings.WordCount(src)
		out.Repetitions += (seen[src] - 1) * wc
		if _, ok := g.Lookup(lang, src); ok {
			out.GlossaryMatches += wc
		} else {
			out.NewWords += wc
		}
	}
	return out
}
