package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "locbridge/internal/platform/errors"
	pnet "locbridge/internal/platform/net"
	phttp "locbridge/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) phttp.Envelope {
	t.Helper()
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v (%s)", err, rec.Body.String())
	}
	return env
}

func TestHandle_SuccessAndError(t *testing.T) {
	cases := []struct {
		name   string
		resp   phttp.Response
		status int
		kind   string
	}{
		{"ok", phttp.OK(map[string]int{"n": 1}), http.StatusOK, ""},
		{"created", phttp.Created("x"), http.StatusCreated, ""},
		{"zero status", phttp.Response{Body: "y"}, http.StatusOK, ""},
		{"not found", phttp.Error(perr.NotFoundf("no master workbooks")), http.StatusNotFound, "not_found"},
		{"foreign", phttp.Error(errors.New("boom")), http.StatusInternalServerError, "unknown"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(pnet.WithRequestID(req.Context(), "rid-1"))
			rec := httptest.NewRecorder()
			phttp.Handle(func(*http.Request) phttp.Response { return c.resp })(rec, req)

			if rec.Code != c.status {
				t.Fatalf("status = %d, want %d", rec.Code, c.status)
			}
			env := decode(t, rec)
			if env.RequestID != "rid-1" || env.Kind != c.kind {
				t.Fatalf("envelope = %+v", env)
			}
		})
	}
}

type echoIn struct {
	Text string `json:"text" validate:"required"`
}

func TestPostJSON_GetJSON(t *testing.T) {
	r := phttp.AdaptChi(chi.NewRouter())
	phttp.PostJSON(r, "/echo", func(_ *http.Request, in echoIn) (any, error) {
		return map[string]string{"text": strings.ToUpper(in.Text)}, nil
	})
	phttp.GetJSON(r, "/fail", func(*http.Request) (any, error) {
		return nil, perr.Conflictf("row count mismatch")
	})
	phttp.PostJSON(r, "/made", func(_ *http.Request, in echoIn) (any, error) {
		return phttp.Created(in.Text), nil
	})

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"text":"hi"}`)))
	env := decode(t, rec)
	if rec.Code != http.StatusOK || env.Data.(map[string]any)["text"] != "HI" {
		t.Fatalf("echo = %d %+v", rec.Code, env)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{}`)))
	env = decode(t, rec)
	if rec.Code != http.StatusBadRequest || env.Field != "text" {
		t.Fatalf("validation = %d %+v", rec.Code, env)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("fail = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/made", strings.NewReader(`{"text":"term"}`)))
	env = decode(t, rec)
	if rec.Code != http.StatusCreated || env.Data != "term" {
		t.Fatalf("created = %d %+v", rec.Code, env)
	}
}
