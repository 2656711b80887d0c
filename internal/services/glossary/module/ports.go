package module

import (
	"context"
	"path/filepath"

	"locbridge/internal/core/settings"
	"locbridge/internal/core/xliff"
	"locbridge/internal/services/glossary/domain"
	glossarysvc "locbridge/internal/services/glossary/service"
)

// Ports is the port set other modules pull from the glossary module
type Ports struct {
	Glossary domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptGlossaryPort resolves the project glossary per request and adapts the service to the domain port
type adaptGlossaryPort struct{ settings settings.Settings }

func (a adaptGlossaryPort) svc(root string) *glossarysvc.Svc {
	return glossarysvc.ForPath(a.settings.Resolve(root).Glossary)
}

// AddTerm implements the domain ServicePort interface
func (a adaptGlossaryPort) AddTerm(ctx context.Context, in domain.AddTermInput) (domain.Entry, error) {
	return a.svc(in.Root).AddTerm(ctx, in.Entry)
}

// Matches implements the domain ServicePort interface; a File (relative to Root) overrides Language
func (a adaptGlossaryPort) Matches(ctx context.Context, in domain.MatchInput) ([]domain.Match, error) {
	lang := in.Language
	if in.File != "" {
		file := in.File
		if !filepath.IsAbs(file) {
			file = filepath.Join(in.Root, file)
		}
		lang, _ = xliff.LookupLanguage(file)
	}
	return a.svc(in.Root).Matches(ctx, in.Text, lang)
}
