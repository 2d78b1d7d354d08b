package passport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passport"
)

func TestPerformLanding(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	creds := passport.NewMemoryCredentials("")
	err := passport.PerformLanding(ctx, creds, url.Values{"other": {"x"}})
	assert.ErrorIs(t, err, passport.ErrLandingNoKey)
	_, ok := creds.Key(ctx)
	assert.False(t, ok)

	require.NoError(t, passport.PerformLanding(ctx, creds, url.Values{"key": {"ABC"}}))
	key, ok := creds.Key(ctx)
	assert.True(t, ok)
	assert.Equal(t, "ABC", key)
}

func TestService_Landing(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/landing?key=ABC", nil)
	require.NoError(t, svc.Landing(w, r, "/me"))

	res := w.Result()
	assert.Equal(t, http.StatusFound, res.StatusCode)
	assert.Equal(t, "/me", res.Header.Get("Location"))

	cookies := res.Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "passport-key", c.Name)
	assert.Equal(t, "ABC", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	assert.Equal(t, 2592000, c.MaxAge)
}

func TestService_LandingWithoutDestination(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	w := httptest.NewRecorder()
	require.NoError(t, svc.Landing(w, httptest.NewRequest(http.MethodGet, "/landing?key=ABC", nil), ""))
	assert.Empty(t, w.Header().Get("Location"))
	assert.Len(t, w.Result().Cookies(), 1)
}

func TestService_LandingWithoutKey(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	w := httptest.NewRecorder()
	err := svc.Landing(w, httptest.NewRequest(http.MethodGet, "/landing", nil), "/me")
	assert.ErrorIs(t, err, passport.ErrLandingNoKey)
	assert.Empty(t, w.Header().Values("Set-Cookie"))
	assert.Empty(t, w.Header().Get("Location"))
}

func TestService_LandingHandler(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(t)

	tests := []struct {
		name       string
		target     string
		dest       string
		wantStatus int
		wantCookie bool
	}{
		{"redirects", "/landing?key=ABC", "/me", http.StatusFound, true},
		{"no destination", "/landing?key=ABC", "", http.StatusNoContent, true},
		{"missing key", "/landing", "/me", http.StatusBadRequest, false},
		{"empty key", "/landing?key=", "/me", http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			svc.LandingHandler(tt.dest).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCookie, len(w.Result().Cookies()) == 1)
		})
	}
}

func TestService_CookieDomain(t *testing.T) {
	t.Parallel()

	cfg := passport.DefaultConfig()
	cfg.CookieDomain = "example.com"
	svc, err := passport.New(cfg)
	require.NoError(t, err)
	defer svc.Close()

	w := httptest.NewRecorder()
	require.NoError(t, svc.Landing(w, httptest.NewRequest(http.MethodGet, "/landing?key=ABC", nil), ""))
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, "example.com", w.Result().Cookies()[0].Domain)
}
