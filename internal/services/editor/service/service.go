// Package service implements the segment editor: per-file listing and saving,
// project-wide find and replace over targets, placeholder extraction and glossary hints
package service

import (
	"context"
	"path/filepath"
	"strings"

	"locbridge/internal/core/xliff"
	perr "locbridge/internal/platform/errors"
	pstrings "locbridge/internal/platform/strings"
	"locbridge/internal/platform/validate"
	"locbridge/internal/services/editor/domain"
	glossarydom "locbridge/internal/services/glossary/domain"
)

// Hinter finds glossary terms in a source text
type Hinter interface {
	Matches(ctx context.Context, in glossarydom.MatchInput) ([]glossarydom.Match, error)
}

// Service edits XLIFF files in place
type Service struct {
	Glossary Hinter
}

// New constructs an editor; g may be nil, in which case Hints fails
func New(g Hinter) *Service { return &Service{Glossary: g} }

func segment(u *xliff.Unit) domain.Segment {
	s := domain.Segment{ID: u.ID(), Source: u.Source(), Target: u.Target(), State: u.State()}
	if s.State == "" {
		s.State = domain.StateNew
	}
	return s
}

func stateKey(s string) string {
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

// List returns the segments of one file in document order
func (s *Service) List(_ context.Context, in domain.ListInput) ([]domain.Segment, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	d, err := xliff.Open(in.Path)
	if err != nil {
		return nil, err
	}
	want := stateKey(in.State)
	if want == "all" {
		want = ""
	}
	search := strings.ToLower(in.Search)

	out := []domain.Segment{}
	for _, u := range d.Units() {
		seg := segment(u)
		if want != "" && stateKey(seg.State) != want {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(seg.ID), search) &&
			!strings.Contains(strings.ToLower(seg.Source), search) &&
			!strings.Contains(strings.ToLower(seg.Target), search) {
			continue
		}
		out = append(out, seg)
	}
	return out, nil
}

// Save sets the target (and optionally the state) of one unit and rewrites the file
func (s *Service) Save(_ context.Context, in domain.SaveInput) (domain.Segment, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Segment{}, err
	}
	d, err := xliff.Open(in.Path)
	if err != nil {
		return domain.Segment{}, err
	}
	u := d.Unit(in.ID)
	if u == nil {
		return domain.Segment{}, perr.WithField(perr.NotFoundf("unit %q not found in %s", in.ID, filepath.Base(in.Path)), "id")
	}
	u.SetTarget(in.Target, strings.TrimSpace(in.State))
	if err := d.WriteFile(in.Path); err != nil {
		return domain.Segment{}, err
	}
	return segment(u), nil
}

// Hints returns the glossary terms found in in.Text
func (s *Service) Hints(ctx context.Context, in domain.HintsInput) ([]glossarydom.Match, error) {
	if s.Glossary == nil {
		return nil, perr.New(perr.ErrorCodeUnknown, "editor has no glossary")
	}
	if pstrings.IsBlank(in.Text) {
		return []glossarydom.Match{}, nil
	}
	return s.Glossary.Matches(ctx, in)
}
