// Package http provides http transport for machine-translation apply
package http

import (
	stdhttp "net/http"

	"locbridge/internal/modkit/httpkit"
	"locbridge/internal/services/mtapply/domain"
)

// Register mounts MT apply endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/apply", h.apply)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) apply(r *stdhttp.Request, in domain.ApplyInput) (any, error) {
	return h.svc.Apply(r.Context(), in)
}
