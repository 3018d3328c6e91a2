package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

const maxMemory = 32 << 20 // 32 MB

var ErrEmptyBody = errors.New("empty request body")

// Request wraps *http.Request with input helpers for form endpoints.
type Request struct {
	raw *http.Request
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the request body into v.
// Supports JSON and application/x-www-form-urlencoded / multipart.
// Both map onto struct fields via `json:"name"` tags.
func (req *Request) Bind(v any) error {
	if req.isJSONBody() {
		return req.bindJSON(v)
	}
	values, err := req.formValues()
	if err != nil {
		return err
	}
	return bindForm(values, v)
}

// Values returns the body as a flat field → value map, whatever its
// encoding. Repeated form keys keep their first value.
func (req *Request) Values() (map[string]string, error) {
	if req.isJSONBody() {
		out := make(map[string]string)
		if err := req.bindJSON(&out); err != nil {
			return nil, err
		}
		return out, nil
	}

	values, err := req.formValues()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(values))
	for k, vals := range values {
		if len(vals) > 0 {
			out[k] = vals[0]
		}
	}
	return out, nil
}

func (req *Request) formValues() (map[string][]string, error) {
	if strings.Contains(req.ContentType(), "multipart/form-data") {
		if err := req.raw.ParseMultipartForm(maxMemory); err != nil {
			return nil, err
		}
		return req.raw.MultipartForm.Value, nil
	}
	if err := req.raw.ParseForm(); err != nil {
		return nil, err
	}
	return req.raw.PostForm, nil
}

func (req *Request) bindJSON(v any) error {
	defer req.raw.Body.Close()
	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(body, v)
}

// bindForm maps form values onto a struct through a JSON round-trip.
func bindForm(values map[string][]string, v any) error {
	m := make(map[string]any, len(values))
	for k, vals := range values {
		if len(vals) == 1 {
			m[k] = vals[0]
		} else {
			m[k] = vals
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// ── Input helpers ────────────────────────────────────────────────────────────

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// WantsJSON reports whether the client asked for a JSON response.
func (req *Request) WantsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json")
}

func (req *Request) isJSONBody() bool {
	return strings.Contains(req.ContentType(), "application/json")
}
