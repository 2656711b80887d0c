// Package module wires the segment editor into the API using modkit
package module

import (
	"net/http"

	modkit "locbridge/internal/modkit"
	"locbridge/internal/modkit/httpkit"
	str "locbridge/internal/platform/strings"
	"locbridge/internal/services/editor/domain"
	editorhttp "locbridge/internal/services/editor/http"
	editorsvc "locbridge/internal/services/editor/service"
	glossarydom "locbridge/internal/services/glossary/domain"
)

// Ports declares the glossary port injected from the glossary module
type Ports struct {
	Glossary glossarydom.ServicePort
}

// Module implements the modkit.Module interface
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	svc    domain.ServicePort

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs the editor module; it requires the Glossary port
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("editor"), modkit.WithPrefix("/editor")}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Glossary == nil {
		panic("editor module requires Glossary port (from services/glossary)")
	}

	m := &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       editorsvc.New(injected.Glossary),
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		editorhttp.Register(r, m.svc)
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		m.register(m.subrouter(rr))
	})
}

// Ports returns the editor service
func (m *Module) Ports() any { return m.svc }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
