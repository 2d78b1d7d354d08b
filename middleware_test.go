package passport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passport"
)

// carry copies every cookie set on w into a new request, keeping the
// cookies of prev that w did not replace.
func carry(prev *http.Request, w *httptest.ResponseRecorder, target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	set := map[string]bool{}
	for _, c := range w.Result().Cookies() {
		set[c.Name] = true
		if c.MaxAge >= 0 {
			r.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
		}
	}
	if prev != nil {
		for _, c := range prev.Cookies() {
			if !set[c.Name] {
				r.AddCookie(c)
			}
		}
	}
	return r
}

func TestService_EndToEndUID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, fake := newTestService(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "passport-key", Value: "ABC"})
	w := httptest.NewRecorder()

	c := svc.ForRequest(w, r)
	_, ok := c.UID(ctx)
	assert.False(t, ok)

	require.NoError(t, c.Load(ctx))
	uid, ok := c.UID(ctx)
	require.True(t, ok)
	assert.Equal(t, "42", uid)
	assert.Equal(t, 1, fake.Calls(http.MethodGet, "account/uid"))

	// A later request of the same session sees the uid without a call.
	next := svc.ForRequest(httptest.NewRecorder(), carry(r, w, "/"))
	uid, ok = next.UID(ctx)
	require.True(t, ok)
	assert.Equal(t, "42", uid)
	require.NoError(t, next.Load(ctx))
	assert.Equal(t, 1, fake.Calls(http.MethodGet, "account/uid"))
}

func TestService_LogoutClearsCookieAndSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, fake := newTestService(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "passport-key", Value: "ABC"})
	w := httptest.NewRecorder()
	require.NoError(t, svc.ForRequest(w, r).Load(ctx))

	fake.Override(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	lr := carry(r, w, "/logout")
	lw := httptest.NewRecorder()
	c := svc.ForRequest(lw, lr)
	err := c.Logout(ctx)
	assert.ErrorIs(t, err, passport.ErrResponse)

	var cleared *http.Cookie
	for _, ck := range lw.Result().Cookies() {
		if ck.Name == "passport-key" {
			cleared = ck
		}
	}
	require.NotNil(t, cleared)
	assert.Equal(t, -1, cleared.MaxAge)
	assert.Empty(t, cleared.Value)

	_, err = c.Credential(ctx)
	assert.ErrorIs(t, err, passport.ErrLogin)

	after := svc.ForRequest(httptest.NewRecorder(), carry(lr, lw, "/"))
	_, ok := after.UID(ctx)
	assert.False(t, ok)
}

func TestService_Middleware(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	_, ok := passport.FromContext(context.Background())
	assert.False(t, ok)

	var got *passport.Client
	h := svc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = passport.FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotNil(t, got)
}

func TestService_RequireLogin(t *testing.T) {
	t.Parallel()
	svc, fake := newTestService(t)

	var served int
	protected := svc.Middleware(svc.RequireLogin("/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		served++
		c, ok := passport.FromContext(r.Context())
		require.True(t, ok)
		uid, _ := c.UID(r.Context())
		_, _ = w.Write([]byte(uid))
	})))

	t.Run("no credential redirects", func(t *testing.T) {
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("invalid credential redirects", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		r.AddCookie(&http.Cookie{Name: "passport-key", Value: "revoked"})
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("valid credential", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/me", nil)
		r.AddCookie(&http.Cookie{Name: "passport-key", Value: "ABC"})
		w := httptest.NewRecorder()
		protected.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "42", w.Body.String())
	})

	assert.Equal(t, 1, served)
	assert.Equal(t, 2, fake.Calls(http.MethodGet, "account/uid"))

	// Without Middleware the client is built on demand.
	bare := svc.RequireLogin("/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := passport.FromContext(r.Context())
		assert.True(t, ok)
	}))
	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.AddCookie(&http.Cookie{Name: "passport-key", Value: "ABC"})
	w := httptest.NewRecorder()
	bare.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}
