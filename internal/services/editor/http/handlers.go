// Package http provides http transport for the segment editor
package http

import (
	stdhttp "net/http"

	"locbridge/internal/modkit/httpkit"
	"locbridge/internal/services/editor/domain"
)

// Register mounts editor endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.PostJSON(r, "/segments", h.list)
	httpkit.PostJSON(r, "/segments/save", h.save)
	httpkit.PostJSON(r, "/find", h.find)
	httpkit.PostJSON(r, "/replace", h.replace)
	httpkit.PostJSON(r, "/tags", h.tags)
	httpkit.PostJSON(r, "/hints", h.hints)
}

type handlers struct{ svc domain.ServicePort }

func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}

func (h *handlers) save(r *stdhttp.Request, in domain.SaveInput) (any, error) {
	return h.svc.Save(r.Context(), in)
}

func (h *handlers) find(r *stdhttp.Request, in domain.FindInput) (any, error) {
	return h.svc.Find(r.Context(), in)
}

func (h *handlers) replace(r *stdhttp.Request, in domain.ReplaceInput) (any, error) {
	return h.svc.Replace(r.Context(), in)
}

func (h *handlers) tags(r *stdhttp.Request, in domain.TagsInput) (any, error) {
	return h.svc.Tags(r.Context(), in)
}

func (h *handlers) hints(r *stdhttp.Request, in domain.HintsInput) (any, error) {
	return h.svc.Hints(r.Context(), in)
}
