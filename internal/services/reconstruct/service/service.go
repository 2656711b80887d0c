// Package service implements reconstruction: translated master workbooks in,
// rewritten XLIFF files out
package service

import (
	"context"
	"path/filepath"

	"locbridge/internal/core/dedup"
	"locbridge/internal/core/idcodec"
	"locbridge/internal/core/settings"
	"locbridge/internal/core/workbook"
	"locbridge/internal/core/xliff"
	perr "locbridge/internal/platform/errors"
	"locbridge/internal/platform/logger"
	"locbridge/internal/platform/runlog"
	"locbridge/internal/services/reconstruct/domain"
	glossarydom "locbridge/internal/services/glossary/domain"
	glossarysvc "locbridge/internal/services/glossary/service"
)

// Promoter appends approved terms to a glossary, skipping known (source, language) pairs
type Promoter interface {
	Promote(ctx context.Context, terms []glossarydom.Entry) (int, error)
}

// Service runs reconstructions
type Service struct {
	Settings settings.Settings
	// OpenGlossary returns the glossary stored at path
	OpenGlossary func(path string) Promoter
}

// New constructs a reconstruction service over s using spreadsheet glossaries
func New(s settings.Settings) *Service {
	return &Service{
		Settings:     s,
		OpenGlossary: func(path string) Promoter { return glossarysvc.ForPath(path) },
	}
}

// master is one language workbook as read at the start of a run
type master struct {
	lang string
	name string
	tbl  *workbook.Table
}

// output is one rewritten file and its per-language copy
type output struct {
	name     string
	flat     string
	separate string
}

// Run reconstructs every .xliff file under in.Root from the master workbooks.
// Only a missing export folder or missing workbooks are fatal
func (s *Service) Run(ctx context.Context, in domain.RunInput) (domain.Result, error) {
	paths := s.Settings.Resolve(in.Root)
	if in.Glossary != "" {
		paths.Glossary = in.Glossary
		if !filepath.IsAbs(in.Glossary) {
			paths.Glossary = filepath.Join(in.Root, in.Glossary)
		}
	}

	files, err := workbook.MasterFiles(paths.ExcelDir)
	if err != nil {
		return domain.Result{}, err
	}

	ctx, rl := runlog.Start(ctx, "reconstruct")
	log := rl.Logger()
	log.Info().Str("root", in.Root).Int("workbooks", len(files)).Msg("reconstruction started")

	masters := readMasters(files, rl)

	var res domain.Result
	res.GlossaryPromoted = s.promote(ctx, paths.Glossary, masters, rl)

	maps := buildMaps(masters, rl)
	log.Debug().Int("ids", maps.Len()).Strs("languages", maps.Languages()).Msg("language maps built")

	outputs, err := s.rewrite(ctx, in.Root, paths, maps, rl)
	if err != nil {
		return domain.Result{}, err
	}
	res.FilesReconstructed = len(outputs)
	for _, o := range outputs {
		res.Outputs = append(res.Outputs, o.flat)
	}

	res.StandardFilesReplaced = s.replaceStandard(paths.MasterRepo, outputs, rl)

	res.Errors = rl.Len()
	res.Messages = rl.Messages()
	if res.Errors > 0 {
		res.ErrorLog = paths.ErrorLog
		if err := rl.Flush(paths.ErrorLog); err != nil {
			log.Warn().Err(err).Msg("error log not written")
		}
	}
	log.Info().
		Int("files", res.FilesReconstructed).
		Int("promoted", res.GlossaryPromoted).
		Int("standard", res.StandardFilesReplaced).
		Int("errors", res.Errors).
		Msg("reconstruction finished")
	return res, nil
}

func readMasters(files []string, rl *runlog.Log) []master {
	var out []master
	for _, f := range files {
		lang, _ := workbook.LanguageFromFile(f)
		tbl, err := workbook.ReadTranslateSheet(f, lang)
		if err != nil {
			rl.Add(perr.Wrapf(err, perr.CodeOf(err), "Map error %s", filepath.Base(f)))
			rl.Logger().Warn().Str("workbook", filepath.Base(f)).Msg("translate sheet unreadable, skipped for glossary promotion")
			continue
		}
		out = append(out, master{lang: lang, name: filepath.Base(f), tbl: tbl})
	}
	return out
}

// promote collects the rows flagged add_to_glossary that carry a target
func (s *Service) promote(ctx context.Context, path string, masters []master, rl *runlog.Log) int {
	if path == "" || s.OpenGlossary == nil {
		return 0
	}
	var terms []glossarydom.Entry
	for _, m := range masters {
		if _, ok := m.tbl.Col(workbook.ColAddToGlossary); !ok {
			continue
		}
		for i := 0; i < m.tbl.Len(); i++ {
			if !workbook.IsTruthy(m.tbl.Get(i, workbook.ColAddToGlossary)) {
				continue
			}
			src, tgt := m.tbl.Get(i, workbook.ColSource), m.tbl.Get(i, workbook.ColTarget)
			if src == "" || tgt == "" {
				continue
			}
			terms = append(terms, glossarydom.Entry{Source: src, Target: tgt, Language: m.lang})
		}
	}
	if len(terms) == 0 {
		return 0
	}
	n, err := s.OpenGlossary(path).Promote(ctx, terms)
	if err != nil {
		rl.Add(perr.Wrapf(err, perr.CodeOf(err), "Glossary update failed"))
		return 0
	}
	rl.Logger().Debug().Int("flagged", len(terms)).Int("added", n).Msg("glossary promoted")
	return n
}

func buildMaps(masters []master, rl *runlog.Log) *dedup.LanguageMaps {
	log := rl.Logger()
	maps := dedup.NewLanguageMaps()
	for _, m := range masters {
		if err := m.tbl.Require(workbook.ColTarget, workbook.ColIDBlob); err != nil {
			rl.Add(perr.Wrapf(err, perr.CodeOf(err), "Map error %s", m.name))
			continue
		}
		for i := 0; i < m.tbl.Len(); i++ {
			target := m.tbl.Get(i, workbook.ColTarget)
			blob := m.tbl.Get(i, workbook.ColIDBlob)
			if target == "" || blob == "" {
				continue
			}
			ids := idcodec.DecodeOrEmpty(blob)
			if len(ids) == 0 {
				log.Warn().Str("workbook", m.name).Int("row", i+2).Msg("unreadable id blob, row skipped")
				continue
			}
			for _, c := range maps.Add(m.lang, ids, target) {
				log.Warn().
					Str("language", c.Language).
					Str("id", c.ID).
					Str("previous", c.Previous).
					Str("current", c.Current).
					Msg("id mapped twice, keeping the later translation")
			}
		}
	}
	return maps
}

// rewrite applies the maps to every input file and writes both copies from one serialisation
func (s *Service) rewrite(ctx context.Context, root string, paths settings.Paths, maps *dedup.LanguageMaps, rl *runlog.Log) ([]output, error) {
	files, err := xliff.Discover(root)
	if err != nil {
		rl.Add(err)
		return nil, nil
	}
	log := rl.Logger()
	var out []output
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := filepath.Base(f)
		o, err := rewriteFile(f, paths, maps, log)
		if err != nil {
			rl.Add(perr.Wrapf(err, perr.CodeOf(err), "Reconstruct error %s", name))
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func rewriteFile(path string, paths settings.Paths, maps *dedup.LanguageMaps, log *logger.Logger) (output, error) {
	name := filepath.Base(path)
	d, err := xliff.Open(path)
	if err != nil {
		return output{}, err
	}
	lang := d.TargetLanguage()

	applied := 0
	if lm, used, ok := maps.Resolve(lang); ok {
		if used != lang {
			log.Debug().Str("file", name).Str("language", lang).Str("map", used).Msg("language matched ignoring case")
		}
		for _, u := range d.Units() {
			if t, ok := lm[u.ID()]; ok {
				u.SetTarget(t, xliff.StateTranslated)
				applied++
			}
		}
	}

	b, err := d.Bytes()
	if err != nil {
		return output{}, err
	}
	o := output{
		name:     name,
		flat:     filepath.Join(paths.OutputDir, name),
		separate: filepath.Join(paths.SeparateDir, lang, name),
	}
	if err := xliff.WriteBytes(o.flat, b); err != nil {
		return output{}, err
	}
	if err := xliff.WriteBytes(o.separate, b); err != nil {
		return output{}, err
	}
	log.Debug().Str("file", name).Str("language", lang).Int("targets", applied).Msg("file reconstructed")
	return o, nil
}
