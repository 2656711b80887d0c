// Package module wires export runs into the API using modkit
package module

import (
	"net/http"

	modkit "locbridge/internal/modkit"
	"locbridge/internal/modkit/httpkit"
	str "locbridge/internal/platform/strings"
	"locbridge/internal/services/export/domain"
	exporthttp "locbridge/internal/services/export/http"
	exportsvc "locbridge/internal/services/export/service"
)

// Ports exposed by the export module
type Ports struct {
	Export domain.ServicePort
}

// Module implements the modkit.Module interface
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  Ports

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// New constructs an export module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("export"), modkit.WithPrefix("/export")}, opts...)...)

	svc := exportsvc.New(deps.Settings)
	m := &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		ports:     Ports{Export: svc},
	}
	external := b.Register
	m.register = func(r httpkit.Router) {
		exporthttp.Register(r, m.ports.Export)
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

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }
