package preview

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"

	depselect "github.com/goliatone/go-depselect"
	"github.com/goliatone/go-depselect/pkg/catalog"
)

// HTTPError lets guards pick the status code of their rejection.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is a ready-made HTTPError.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode() > 0 {
		code = httpErr.StatusCode()
	}
	writeJSONError(w, code, http.StatusText(code))
}

func writeJSONError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

type catalogIndexResponse struct {
	Data []string `json:"data"`
}

type catalogResponse struct {
	Data json.RawMessage `json:"data"`
}

func (c *Component) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (c *Component) handleRuntime(w http.ResponseWriter, _ *http.Request) {
	script := depselect.RuntimeScript()
	if len(script) == 0 {
		writeJSONError(w, http.StatusInternalServerError, "runtime script unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(script)
}

func (c *Component) handleCatalogIndex(w http.ResponseWriter, _ *http.Request) {
	names := []string{}
	if c.opts.Store != nil {
		names = c.opts.Store.List()
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(catalogIndexResponse{Data: names})
}

func (c *Component) handleCatalog(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if c.opts.Store == nil {
		writeJSONError(w, http.StatusNotFound, "no catalogs configured")
		return
	}
	rows, err := c.opts.Store.Get(name)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "unknown catalog "+name)
		return
	}
	payload, err := catalog.Encode(rows)
	if err != nil {
		c.opts.Logger.Error("encode catalog", "catalog", name, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "encode catalog")
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(catalogResponse{Data: json.RawMessage(payload)})
}
