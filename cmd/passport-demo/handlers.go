package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/passport"
	"github.com/dmitrymomot/passport/pkg/httpserver"
	"github.com/dmitrymomot/passport/pkg/logger"
)

// fooField is the field the demo reads and writes.
const fooField = "foo"

type handlers struct {
	svc *passport.Service
	log *slog.Logger
}

func newRouter(svc *passport.Service, log *slog.Logger, loginURL string, checks ...func(context.Context) error) http.Handler {
	h := &handlers{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthCheckHandler(log, checks...))
	r.Get("/login", h.login)
	r.Method(http.MethodGet, "/landing", svc.LandingHandler("/me"))

	r.Group(func(r chi.Router) {
		r.Use(svc.Middleware, svc.RequireLogin(loginURL))
		r.Get("/me", h.me)
		r.Post("/me/foo", h.setFoo)
	})
	r.With(svc.Middleware).Post("/logout", h.logout)

	return r
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{
		"error":   "login required",
		"landing": "/landing",
	})
}

type profile struct {
	UID string `json:"uid"`
	Foo any    `json:"foo"`
}

// me shows the uid and field foo, creating foo with "bar" when the
// account has none yet.
func (h *handlers) me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	c, _ := passport.FromContext(ctx)
	uid, _ := c.UID(ctx)

	foo, err := c.Get(ctx, fooField)
	if missingField(err) {
		if _, err = c.Add(ctx, fooField, "bar"); err == nil {
			foo = "bar"
		}
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile{UID: uid, Foo: foo})
}

// missingField reports a 200 envelope error, which is how the service
// answers a read of an unknown field.
func missingField(err error) bool {
	var perr *passport.Error
	return errors.As(err, &perr) && perr.Code == passport.CodeResponse && perr.StatusCode == http.StatusOK
}

func (h *handlers) setFoo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value any `json:"value"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}

	ctx := r.Context()
	c, _ := passport.FromContext(ctx)
	if _, err := c.Set(ctx, fooField, body.Value); err != nil {
		h.fail(w, r, err)
		return
	}
	uid, _ := c.UID(ctx)
	writeJSON(w, http.StatusOK, profile{UID: uid, Foo: body.Value})
}

func (h *handlers) logout(w http.ResponseWriter, r *http.Request) {
	c, _ := passport.FromContext(r.Context())
	if err := c.Logout(r.Context()); err != nil && !errors.Is(err, passport.ErrLogin) {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch passport.CodeOf(err) {
	case passport.CodeLogin:
		status = http.StatusUnauthorized
	case passport.CodeRequest, passport.CodeResponse:
		status = http.StatusBadGateway
	case passport.CodeEncode:
		status = http.StatusBadRequest
	}
	h.log.ErrorContext(r.Context(), "request failed",
		logger.ErrorCode(passport.CodeOf(err)), logger.Error(err), logger.StatusCode(status))
	writeJSON(w, status, map[string]string{"error": err.Error(), "code": passport.CodeOf(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
