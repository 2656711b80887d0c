// Package http provides http transport for the glossary
package http

import (
	stdhttp "net/http"

	"locbridge/internal/modkit/httpkit"
	"locbridge/internal/services/glossary/domain"
)

// Register mounts glossary endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/terms", h.addTerm)
	httpkit.PostJSON(r, "/matches", h.matches)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) addTerm(r *stdhttp.Request, in domain.AddTermInput) (any, error) {
	e, err := h.svc.AddTerm(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(e), nil
}

func (h *handlers) matches(r *stdhttp.Request, in domain.MatchInput) (any, error) {
	out, err := h.svc.Matches(r.Context(), in)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Match{}
	}
	return out, nil
}
