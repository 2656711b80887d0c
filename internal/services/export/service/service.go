// Package service implements the export run: XLIFF files in, one deduplicated
// master workbook per target language out
package service

import (
	"context"
	"path/filepath"

	"locbridge/internal/core/dedup"
	"locbridge/internal/core/settings"
	"locbridge/internal/core/workbook"
	"locbridge/internal/core/xliff"
	perr "locbridge/internal/platform/errors"
	"locbridge/internal/platform/runlog"
	"locbridge/internal/services/export/domain"
	glossarydom "locbridge/internal/services/glossary/domain"
	glossarysvc "locbridge/internal/services/glossary/service"
)

// GlossaryMapper loads the seeding map of a glossary
type GlossaryMapper interface {
	Map(ctx context.Context) (glossarydom.Map, error)
}

// Service runs exports
type Service struct {
	Settings settings.Settings
	// OpenGlossary returns the glossary stored at path
	OpenGlossary func(path string) GlossaryMapper
}

// New constructs an export service over s using spreadsheet glossaries
func New(s settings.Settings) *Service {
	return &Service{
		Settings:     s,
		OpenGlossary: func(path string) GlossaryMapper { return glossarysvc.ForPath(path) },
	}
}

// Run exports every .xliff file under in.Root. Missing input files or content are fatal;
// unreadable files, glossary problems and failed languages are recorded and the run goes on
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

	ctx, rl := runlog.Start(ctx, "export")
	log := rl.Logger()
	log.Info().Str("root", in.Root).Int("files", len(files)).Msg("export started")

	gmap := s.loadGlossary(ctx, paths.Glossary, rl)

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

	res := domain.Result{FilesProcessed: len(files)}
	if len(all) == 0 {
		s.flush(rl, paths.ErrorLog, &res)
		return res, perr.NotFoundf("no translatable content in %d file(s) under %s", len(files), in.Root)
	}

	seeder := dedup.Seeder{Protected: s.Settings.IsProtected, Glossary: gmap}
	langs, byLang := dedup.Partition(all)
	for _, lang := range langs {
		if err := ctx.Err(); err != nil {
			return domain.Result{}, err
		}
		path, err := s.writeLanguage(lang, byLang[lang], seeder, paths.ExcelDir)
		if err != nil {
			rl.Add(perr.Wrapf(err, perr.CodeOf(err), "Error language %s", lang))
			continue
		}
		res.LanguagesWritten++
		res.Workbooks = append(res.Workbooks, path)
		log.Debug().Str("language", lang).Str("workbook", path).Msg("workbook written")
	}

	s.flush(rl, paths.ErrorLog, &res)
	log.Info().
		Int("files", res.FilesProcessed).
		Int("languages", res.LanguagesWritten).
		Int("errors", res.Errors).
		Msg("export finished")
	return res, nil
}

func (s *Service) loadGlossary(ctx context.Context, path string, rl *runlog.Log) glossarydom.Map {
	if path == "" || s.OpenGlossary == nil {
		return nil
	}
	m, err := s.OpenGlossary(path).Map(ctx)
	if err != nil {
		rl.Add(perr.Wrapf(err, perr.CodeOf(err), "Glossary not loaded, exporting without it"))
		return nil
	}
	rl.Logger().Debug().Int("terms", m.Len()).Msg("glossary loaded")
	return m
}

func (s *Service) writeLanguage(lang string, segs []xliff.Segment, seeder dedup.Seeder, dir string) (string, error) {
	groups, err := dedup.Build(lang, segs)
	if err != nil {
		return "", err
	}
	seeder.Seed(groups)

	files, byFile := dedup.ByFile(segs)
	m := workbook.Master{Language: lang, Groups: groups}
	for _, f := range files {
		m.Files = append(m.Files, workbook.FileSheet{Origin: f, Segments: byFile[f]})
	}
	path := filepath.Join(dir, workbook.MasterFileName(lang))
	if err := workbook.WriteMaster(path, m); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Service) flush(rl *runlog.Log, path string, res *domain.Result) {
	res.Errors = rl.Len()
	res.Messages = rl.Messages()
	if res.Errors == 0 {
		return
	}
	res.ErrorLog = path
	if err := rl.Flush(path); err != nil {
		rl.Logger().Warn().Err(err).Msg("error log not written")
	}
}
