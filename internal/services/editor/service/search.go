package service

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"locbridge/internal/core/xliff"
	perr "locbridge/internal/platform/errors"
	"locbridge/internal/platform/runlog"
	"locbridge/internal/platform/validate"
	"locbridge/internal/services/editor/domain"
)

// matcher is a compiled search; plain searches replace literally
type matcher struct {
	re      *regexp.Regexp
	literal bool
}

func compile(in domain.FindInput) (matcher, error) {
	expr := in.Find
	if !in.Regex {
		expr = regexp.QuoteMeta(expr)
	}
	if !in.CaseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return matcher{}, perr.WithField(perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad regular expression %q", in.Find), "find")
	}
	return matcher{re: re, literal: !in.Regex}, nil
}

func (m matcher) replace(s, repl string) string {
	if m.literal {
		return m.re.ReplaceAllLiteralString(s, repl)
	}
	return m.re.ReplaceAllString(s, repl)
}

// scope resolves the files searched for in
func scope(in domain.FindInput) ([]string, error) {
	anchor := in.File
	if anchor != "" && !filepath.IsAbs(anchor) {
		anchor = filepath.Join(in.Root, anchor)
	}
	switch in.Scope {
	case domain.ScopeFile:
		return []string{anchor}, nil
	case domain.ScopeAll:
		return xliff.Discover(in.Root)
	}

	lang, err := xliff.LookupLanguage(anchor)
	if err != nil {
		return nil, err
	}
	all, err := xliff.Discover(in.Root)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range all {
		if l, _ := xliff.LookupLanguage(f); l == lang {
			out = append(out, f)
		}
	}
	return out, nil
}

func prepare(in domain.FindInput) (matcher, []string, error) {
	if err := validate.Struct(in); err != nil {
		return matcher{}, nil, err
	}
	m, err := compile(in)
	if err != nil {
		return matcher{}, nil, err
	}
	files, err := scope(in)
	if err != nil {
		return matcher{}, nil, err
	}
	return m, files, nil
}

// Find lists every unit whose non-empty target matches. Unreadable files are reported, not fatal
func (s *Service) Find(ctx context.Context, in domain.FindInput) (domain.FindResult, error) {
	m, files, err := prepare(in)
	if err != nil {
		return domain.FindResult{}, err
	}
	ctx, rl := runlog.Start(ctx, "editor")
	res := domain.FindResult{Hits: []domain.Hit{}}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return domain.FindResult{}, err
		}
		d, err := xliff.Open(f)
		if err != nil {
			rl.Add(err)
			continue
		}
		for _, u := range d.Units() {
			if t := u.RawTarget(); t != "" && m.re.MatchString(t) {
				res.Hits = append(res.Hits, domain.Hit{File: f, ID: u.ID(), Target: t})
			}
		}
	}
	res.Errors, res.Messages = rl.Len(), rl.Messages()
	return res, nil
}

// Replace rewrites matching targets, marks them translated and saves each changed file,
// after copying it to <file>.bak when requested
func (s *Service) Replace(ctx context.Context, in domain.ReplaceInput) (domain.ReplaceResult, error) {
	m, files, err := prepare(in.FindInput)
	if err != nil {
		return domain.ReplaceResult{}, err
	}
	ctx, rl := runlog.Start(ctx, "editor")
	var res domain.ReplaceResult
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return domain.ReplaceResult{}, err
		}
		n, err := replaceFile(f, m, in.Replace, in.Backup)
		if err != nil {
			rl.Add(perr.Wrapf(err, perr.CodeOf(err), "replace in %s", filepath.Base(f)))
			continue
		}
		if n > 0 {
			res.Replaced += n
			res.FilesChanged++
		}
	}
	res.Errors, res.Messages = rl.Len(), rl.Messages()
	rl.Logger().Info().Int("replaced", res.Replaced).Int("files", res.FilesChanged).Msg("replace finished")
	return res, nil
}

func replaceFile(path string, m matcher, repl string, backup bool) (int, error) {
	orig, err := os.ReadFile(path)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeIO, "read")
	}
	d, err := xliff.Parse(orig)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, u := range d.Units() {
		t := u.RawTarget()
		if t == "" || !m.re.MatchString(t) {
			continue
		}
		if next := m.replace(t, repl); next != t {
			u.SetTarget(next, xliff.StateTranslated)
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	if backup {
		if err := os.WriteFile(path+".bak", orig, 0o644); err != nil {
			return 0, perr.Wrap(err, perr.ErrorCodeIO, "write backup")
		}
	}
	if err := d.WriteFile(path); err != nil {
		return 0, err
	}
	return n, nil
}
