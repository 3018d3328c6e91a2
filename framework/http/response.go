package http

import (
	"encoding/json"
	"html/template"
	"io/fs"
	"net/http"
)

// ── Response ─────────────────────────────────────────────────────────────────

// Response wraps http.ResponseWriter with JSON envelope helpers.
type Response struct {
	w http.ResponseWriter
}

// NewResponse wraps a ResponseWriter.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{w: w}
}

// Raw returns the underlying ResponseWriter.
func (res *Response) Raw() http.ResponseWriter { return res.w }

// ── JSON responses ────────────────────────────────────────────────────────────

// JSON sends a JSON response.
//
//	res.JSON(http.StatusOK, map[string]any{"message": "ok"})
func (res *Response) JSON(status int, data any) {
	res.w.Header().Set("Content-Type", "application/json")
	res.w.WriteHeader(status)
	_ = json.NewEncoder(res.w).Encode(data)
}

// Success sends 200 JSON: {"data": v}
func (res *Response) Success(v any) {
	res.JSON(http.StatusOK, envelope{"data": v})
}

// Created sends 201 JSON: {"data": v}
func (res *Response) Created(v any) {
	res.JSON(http.StatusCreated, envelope{"data": v})
}

// NoContent sends 204 with no body.
func (res *Response) NoContent() {
	res.w.WriteHeader(http.StatusNoContent)
}

// Error sends a JSON error response.
//
//	res.Error(http.StatusBadRequest, "unknown event type")
func (res *Response) Error(status int, message string) {
	res.JSON(status, envelope{"message": message})
}

// NotFound sends 404.
func (res *Response) NotFound(message ...string) {
	msg := first(message, "Not found.")
	res.JSON(http.StatusNotFound, envelope{"message": msg})
}

// ServerError sends 500.
func (res *Response) ServerError(message ...string) {
	msg := first(message, "Server Error.")
	res.JSON(http.StatusInternalServerError, envelope{"message": msg})
}

// ValidationError sends 422 with the surfaced message per field under
// "errors" and every active rule error under "details".
//
//	{"errors": {"age": "Must be at least 10"}, "details": {"age": {"min": "Must be at least 10"}}}
func (res *Response) ValidationError(visible map[string]string, details map[string]map[string]string) {
	res.JSON(http.StatusUnprocessableEntity, envelope{"errors": visible, "details": details})
}

// ── Redirects ────────────────────────────────────────────────────────────────

// Redirect answers r with 303 See Other, so a form post is followed by a GET.
//
//	res.Redirect(r, "/forms/signup/sessions/"+id+"/page")
func (res *Response) Redirect(r *http.Request, url string) {
	http.Redirect(res.w, r, url, http.StatusSeeOther)
}

// ── Views ────────────────────────────────────────────────────────────────────

// ViewEngine renders html/template files from a filesystem.
type ViewEngine struct {
	fsys fs.FS
	ext  string
}

// NewViewEngine creates a ViewEngine over fsys; ext is the file extension
// (e.g. ".html").
func NewViewEngine(fsys fs.FS, ext string) *ViewEngine {
	return &ViewEngine{fsys: fsys, ext: ext}
}

// View renders the template file name+ext with data.
//
//	engine.View(res.Raw(), "page", data)
func (ve *ViewEngine) View(w http.ResponseWriter, name string, data any) error {
	tmpl, err := template.ParseFS(ve.fsys, name+ve.ext)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.Execute(w, data)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

type envelope map[string]any

func first(ss []string, fallback string) string {
	if len(ss) > 0 && ss[0] != "" {
		return ss[0]
	}
	return fallback
}
