// Package api provides the HTTP API for the application
package api

import (
	phttp "locbridge/internal/platform/net/http"

	"locbridge/internal/modkit"
	"locbridge/internal/modkit/httpkit"
	"locbridge/internal/modkit/module"

	metamod "locbridge/internal/services/api/meta/module"
	analysismod "locbridge/internal/services/analysis/module"
	editormod "locbridge/internal/services/editor/module"
	exportmod "locbridge/internal/services/export/module"
	glossarymod "locbridge/internal/services/glossary/module"
	mtmod "locbridge/internal/services/mtapply/module"
	reconstructmod "locbridge/internal/services/reconstruct/module"
)

// Options are the API options
type Options struct {
	Deps modkit.Deps
}

// Mount mounts every module under /api/v1 onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := opt.Deps

	// glossary first: the editor takes its port for hints
	glossary := glossarymod.New(deps)
	gp := module.MustPortsOf[glossarymod.Ports](glossary).Glossary

	mods := []module.Module{
		metamod.New(deps),
		exportmod.New(deps),
		reconstructmod.New(deps),
		analysismod.New(deps),
		mtmod.New(deps),
		glossary,
		editormod.New(deps, modkit.WithPorts(editormod.Ports{Glossary: gp})),
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
