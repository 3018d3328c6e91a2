package forms

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	gohttp "github.com/km-arc/formguard/framework/http"
	"github.com/km-arc/formguard/framework/logger"
	"github.com/km-arc/formguard/framework/routing"
	"github.com/km-arc/formguard/framework/validation"
)

// Handler serves form sessions over HTTP.
//
//	POST   /forms/{form}/sessions              open a session
//	GET    /forms/{form}/sessions/{id}         session state
//	DELETE /forms/{form}/sessions/{id}         close a session
//	POST   /forms/{form}/sessions/{id}/events  {"type": "input", "field": "age", "value": "15"}
//	POST   /forms/{form}/sessions/{id}/submit  full pass; 200 {"data": values} or 422
//	POST   /forms/{form}/sessions/{id}/reset   clear all errors
//	GET    /forms/{form}/sessions/{id}/page    HTML rendering of the session
type Handler struct {
	manager *Manager
	views   *gohttp.ViewEngine
	logger  *slog.Logger
	maxBody int64
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMaxBody rejects request bodies larger than n bytes. Zero means no limit.
func WithMaxBody(n int64) HandlerOption {
	return func(h *Handler) { h.maxBody = n }
}

// NewHandler creates a Handler over manager.
func NewHandler(manager *Manager, log *slog.Logger, opts ...HandlerOption) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	h := &Handler{manager: manager, views: newViewEngine(), logger: log}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes mounts the handler under /forms.
func (h *Handler) Routes(r *routing.Router) {
	r.Prefix("/forms", func(f *routing.Router) {
		if h.maxBody > 0 {
			f.Middleware(middleware.RequestSize(h.maxBody))
		}
		f.Get("/", h.list)
		f.Post("/{form}/sessions", h.open)
		f.Get("/{form}/sessions/{id}", h.show)
		f.Delete("/{form}/sessions/{id}", h.close)
		f.Post("/{form}/sessions/{id}/events", h.event)
		f.Post("/{form}/sessions/{id}/submit", h.submit)
		f.Post("/{form}/sessions/{id}/reset", h.reset)
		f.Get("/{form}/sessions/{id}/page", h.page)
	})
}

type eventRequest struct {
	Type  string `json:"type"`
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	gohttp.NewResponse(w).Success(h.manager.Forms())
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	s, err := h.manager.Open(routing.Param(r, "form"))
	if err != nil {
		h.fail(res, err)
		return
	}
	res.Created(s.State())
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	s, err := h.session(r)
	if err != nil {
		h.fail(res, err)
		return
	}
	res.Success(s.State())
}

func (h *Handler) close(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	if err := h.manager.Close(routing.Param(r, "form"), routing.Param(r, "id")); err != nil {
		h.fail(res, err)
		return
	}
	res.NoContent()
}

func (h *Handler) event(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)
	s, err := h.session(r)
	if err != nil {
		h.fail(res, err)
		return
	}

	var body eventRequest
	if err := req.Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	if body.Field == "" {
		res.Error(http.StatusBadRequest, "field is required")
		return
	}

	state, err := s.Event(validation.EventKind(body.Type), body.Field, body.Value)
	if err != nil {
		h.fail(res, err)
		return
	}
	res.Success(state)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)
	s, err := h.session(r)
	if err != nil {
		h.fail(res, err)
		return
	}

	values, err := req.Values()
	if err != nil && !errors.Is(err, gohttp.ErrEmptyBody) {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	state, ok := s.Submit(values)
	if fromBrowser(req) {
		h.redirectToPage(res, r, s)
		return
	}
	if !ok {
		res.ValidationError(state.Errors, state.Details)
		return
	}
	submitted, _ := s.Submitted()
	res.Success(submitted)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)
	s, err := h.session(r)
	if err != nil {
		h.fail(res, err)
		return
	}

	state := s.Reset()
	if fromBrowser(req) {
		h.redirectToPage(res, r, s)
		return
	}
	res.Success(state)
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)
	s, err := h.session(r)
	if err != nil {
		h.fail(res, err)
		return
	}
	if err := h.views.View(w, "page", s.page()); err != nil {
		h.logger.Error("render page", logger.Form(s.Form()), logger.Error(err))
		res.ServerError()
	}
}

func (h *Handler) session(r *http.Request) (*Session, error) {
	return h.manager.Session(routing.Param(r, "form"), routing.Param(r, "id"))
}

// fail maps manager and session errors onto HTTP statuses.
func (h *Handler) fail(res *gohttp.Response, err error) {
	switch {
	case errors.Is(err, ErrUnknownForm), errors.Is(err, ErrUnknownSession):
		res.NotFound(err.Error())
	case errors.Is(err, ErrUnknownInput):
		res.Error(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrInvalidEvent):
		res.Error(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrTooManySessions):
		res.Error(http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("forms request failed", logger.Error(err))
		res.ServerError()
	}
}

func (h *Handler) redirectToPage(res *gohttp.Response, r *http.Request, s *Session) {
	res.Redirect(r, pagePath(s))
}

func pagePath(s *Session) string {
	return "/forms/" + url.PathEscape(s.Form()) + "/sessions/" + url.PathEscape(s.ID()) + "/page"
}

// fromBrowser reports whether the request is a plain HTML form post.
func fromBrowser(req *gohttp.Request) bool {
	if req.WantsJSON() {
		return false
	}
	ct := req.ContentType()
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}
