// Package http provides http transport for export runs
package http

import (
	stdhttp "net/http"

	"locbridge/internal/modkit/httpkit"
	"locbridge/internal/services/export/domain"
)

// Register mounts export endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/run", h.run)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) run(r *stdhttp.Request, in domain.RunInput) (any, error) {
	return h.svc.Run(r.Context(), in)
}
