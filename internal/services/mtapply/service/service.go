// Package service fills master workbook targets from machine-translated workbooks
package service

import (
	"context"
	"path/filepath"
	"strings"

	"locbridge/internal/core/settings"
	"locbridge/internal/core/workbook"
	perr "locbridge/internal/platform/errors"
	"locbridge/internal/platform/runlog"
	"locbridge/internal/services/mtapply/domain"
)

// Service applies MT workbooks
type Service struct {
	Settings settings.Settings
}

// New constructs an MT apply service over s
func New(s settings.Settings) *Service { return &Service{Settings: s} }

// Apply pairs every master workbook with the first MT workbook (by name) whose file
// name starts with the master's language, ignoring case, and replaces the master's
// target column with the MT file's first column. The MT file's first row is a header
func (s *Service) Apply(ctx context.Context, in domain.ApplyInput) (domain.Result, error) {
	paths := s.Settings.Resolve(in.Root)
	mtDir := in.MTDir
	if !filepath.IsAbs(mtDir) {
		mtDir = filepath.Join(in.Root, mtDir)
	}

	masters, err := workbook.MasterFiles(paths.ExcelDir)
	if err != nil {
		return domain.Result{}, err
	}
	mt, err := workbook.Files(mtDir)
	if err != nil {
		return domain.Result{}, err
	}
	if len(mt) == 0 {
		return domain.Result{}, perr.NotFoundf("no .xlsx files in %s", mtDir)
	}

	ctx, rl := runlog.Start(ctx, "mtapply")
	log := rl.Logger()
	res := domain.Result{Total: len(masters)}
	for _, m := range masters {
		if err := ctx.Err(); err != nil {
			return domain.Result{}, err
		}
		name := filepath.Base(m)
		lang, _ := workbook.LanguageFromFile(m)
		src, ok := match(lang, mt)
		if !ok {
			rl.Addf("No matching MT file for %s", name)
			continue
		}
		targets, err := workbook.ReadFirstColumn(src)
		if err != nil {
			rl.Add(perr.Wrapf(err, perr.CodeOf(err), "Error %s", name))
			continue
		}
		if err := workbook.ApplyTargets(m, lang, targets); err != nil {
			rl.Add(perr.Wrapf(err, perr.CodeOf(err), "Error %s with %s", name, filepath.Base(src)))
			continue
		}
		res.Updated++
		log.Debug().Str("workbook", name).Str("mt", filepath.Base(src)).Int("rows", len(targets)).Msg("targets applied")
	}

	res.Errors = rl.Len()
	res.Messages = rl.Messages()
	if res.Errors > 0 {
		res.ErrorLog = paths.ErrorLog
		if err := rl.Flush(paths.ErrorLog); err != nil {
			log.Warn().Err(err).Msg("error log not written")
		}
	}
	log.Info().Int("updated", res.Updated).Int("total", res.Total).Int("errors", res.Errors).Msg("mt apply finished")
	return res, nil
}

func match(lang string, files []string) (string, bool) {
	prefix := strings.ToLower(lang)
	for _, f := range files {
		if strings.HasPrefix(strings.ToLower(filepath.Base(f)), prefix) {
			return f, true
		}
	}
	return "", false
}
