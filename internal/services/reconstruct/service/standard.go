package service

import (
	"os"
	"path/filepath"
	"strings"

	"locbridge/internal/core/xliff"
	perr "locbridge/internal/platform/errors"
	"locbridge/internal/platform/runlog"
)

// replaceStandard overwrites the shared localization files of this run with their
// templates from repo, stamped with the course id of the first content file
func (s *Service) replaceStandard(repo string, outputs []output, rl *runlog.Log) int {
	if repo == "" {
		return 0
	}
	if fi, err := os.Stat(repo); err != nil || !fi.IsDir() {
		return 0
	}
	log := rl.Logger()

	var courseID string
	for _, o := range outputs {
		if s.isStandard(o.name) {
			continue
		}
		d, err := xliff.Open(o.flat)
		if err != nil {
			rl.Add(perr.Wrapf(err, perr.CodeOf(err), "Could not determine course ID from %s", o.name))
			return 0
		}
		courseID = d.FileID()
		break
	}
	if courseID == "" {
		log.Debug().Msg("no course id found, standard files left as reconstructed")
		return 0
	}

	n := 0
	for _, o := range outputs {
		if !s.isStandard(o.name) {
			continue
		}
		tmpl := filepath.Join(repo, o.name)
		if _, err := os.Stat(tmpl); err != nil {
			continue
		}
		if err := replaceOne(tmpl, courseID, o); err != nil {
			rl.Add(perr.Wrapf(err, perr.CodeOf(err), "Failed to replace master file %s", o.name))
			continue
		}
		n++
	}
	log.Debug().Str("course_id", courseID).Int("replaced", n).Msg("standard files replaced")
	return n
}

func replaceOne(tmpl, courseID string, o output) error {
	d, err := xliff.Open(tmpl)
	if err != nil {
		return err
	}
	d.SetFileID(courseID)
	b, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := xliff.WriteBytes(o.flat, b); err != nil {
		return err
	}
	if _, err := os.Stat(o.separate); err == nil {
		return xliff.WriteBytes(o.separate, b)
	}
	return nil
}

func (s *Service) isStandard(name string) bool {
	for _, p := range s.Settings.StandardFiles.Prefixes {
		if p != "" && strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
