package routing_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/km-arc/formguard/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── HTTP verbs ────────────────────────────────────────────────────────────────

func TestRouter_Verbs(t *testing.T) {
	r := routing.New(nil)
	r.Get("/forms/{form}/sessions/{id}", okHandler)
	r.Post("/forms/{form}/sessions", okHandler)
	r.Delete("/forms/{form}/sessions/{id}", okHandler)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/forms/signup/sessions/1"},
		{http.MethodPost, "/forms/signup/sessions"},
		{http.MethodDelete, "/forms/signup/sessions/1"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			if rr := do(t, r, tt.method, tt.path); rr.Code != http.StatusOK {
				t.Errorf("got %d want 200", rr.Code)
			}
		})
	}
}

func TestRouter_NotFound(t *testing.T) {
	r := routing.New(nil)
	rr := do(t, r, http.MethodGet, "/not-registered")
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestRouter_CustomNotFound(t *testing.T) {
	r := routing.New(nil)
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	if rr := do(t, r, http.MethodGet, "/nope"); rr.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", rr.Code)
	}
}

// ── Route params ─────────────────────────────────────────────────────────────

func TestRouter_Param(t *testing.T) {
	r := routing.New(nil)
	r.Get("/forms/{form}", func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(routing.Param(req, "form")))
	})

	rr := do(t, r, http.MethodGet, "/forms/signup")
	if rr.Body.String() != "signup" {
		t.Errorf("got body %q want %q", rr.Body.String(), "signup")
	}
}

// ── Prefix / Group ───────────────────────────────────────────────────────────

func TestRouter_Prefix(t *testing.T) {
	r := routing.New(nil)
	r.Prefix("/forms", func(f *routing.Router) {
		f.Get("/{form}/page", okHandler)
	})

	if rr := do(t, r, http.MethodGet, "/forms/signup/page"); rr.Code != http.StatusOK {
		t.Errorf("GET /forms/signup/page: got %d want 200", rr.Code)
	}
	if rr := do(t, r, http.MethodGet, "/signup/page"); rr.Code != http.StatusNotFound {
		t.Errorf("GET /signup/page: expected 404, got %d", rr.Code)
	}
}

func TestRouter_Group_Middleware(t *testing.T) {
	called := false
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	r := routing.New(nil)
	r.Group(func(g *routing.Router) {
		g.Middleware(mw)
		g.Get("/guarded", okHandler)
	})

	do(t, r, http.MethodGet, "/guarded")
	if !called {
		t.Error("expected middleware to be called")
	}
}

// ── Default middleware ───────────────────────────────────────────────────────

func TestRouter_RequestID(t *testing.T) {
	var id string
	r := routing.New(nil)
	r.Get("/id", func(w http.ResponseWriter, req *http.Request) {
		id = middleware.GetReqID(req.Context())
	})

	do(t, r, http.MethodGet, "/id")
	if id == "" {
		t.Error("expected a request id in the context")
	}
}

func TestRouter_Recoverer(t *testing.T) {
	r := routing.New(nil)
	r.Get("/panic", func(w http.ResponseWriter, req *http.Request) {
		panic("boom")
	})

	if rr := do(t, r, http.MethodGet, "/panic"); rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

func TestRouter_AccessLog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	r := routing.New(logger)
	r.Get("/ping", okHandler)
	do(t, r, http.MethodGet, "/ping")

	if !strings.Contains(buf.String(), "/ping") {
		t.Errorf("expected access log line for /ping, got %q", buf.String())
	}
}

func TestRouter_HandlerInterface(t *testing.T) {
	r := routing.New(nil)
	var _ http.Handler = r.Handler()
}
