package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passport/pkg/cookie"
)

const (
	secret    = "this-is-a-very-long-secret-key-32-chars-long"
	oldSecret = "this-is-old-very-long-secret-key-32-chars-ok"
)

// roundTrip copies cookies written to w into a fresh request.
func roundTrip(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func responseCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not written", name)
	return nil
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		secrets     []string
		wantErr     error
		wantSigning bool
	}{
		{"no secrets", nil, nil, false},
		{"blank secrets", []string{"", ""}, nil, false},
		{"secret too short", []string{"short"}, cookie.ErrSecretTooShort, false},
		{"valid secret", []string{secret}, nil, true},
		{"rotation", []string{secret, oldSecret}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := cookie.New(tt.secrets)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSigning, m.HasSecrets())
		})
	}
}

func TestManager_SetGet(t *testing.T) {
	t.Parallel()

	m, err := cookie.New(nil)
	require.NoError(t, err)

	for _, value := range []string{"value", "", "ABC-123_xyz"} {
		w := httptest.NewRecorder()
		require.NoError(t, m.Set(w, "k", value))

		got, err := m.Get(roundTrip(w), "k")
		require.NoError(t, err)
		assert.Equal(t, value, got)
	}
}

func TestManager_SetEmptyName(t *testing.T) {
	t.Parallel()

	m, _ := cookie.New(nil)
	err := m.Set(httptest.NewRecorder(), "", "v")
	assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
}

func TestManager_GetMissing(t *testing.T) {
	t.Parallel()

	m, _ := cookie.New(nil)
	_, err := m.Get(httptest.NewRequest(http.MethodGet, "/", nil), "missing")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestManager_Attributes(t *testing.T) {
	t.Parallel()

	m, err := cookie.New(nil,
		cookie.WithSecure(true),
		cookie.WithDomain("example.com"),
		cookie.WithMaxAge(3600),
	)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	before := time.Now()
	require.NoError(t, m.Set(w, "k", "v", cookie.WithSameSite(http.SameSiteStrictMode)))

	c := responseCookie(t, w, "k")
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.WithinDuration(t, before.Add(time.Hour), c.Expires, 5*time.Second)

	// Per-call options do not leak into defaults.
	assert.Equal(t, http.SameSiteLaxMode, m.Defaults().SameSite)
}

func TestWithLifetime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    time.Duration
		want int
	}{
		{"whole hours", 2 * time.Hour, 7200},
		{"truncates fraction", 90*time.Second + 500*time.Millisecond, 90},
		{"sub-second rounds up", 300 * time.Millisecond, 1},
		{"zero is session cookie", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := cookie.New(nil, cookie.WithLifetime(tt.d))
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Defaults().MaxAge)
		})
	}
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m, _ := cookie.New(nil, cookie.WithSecure(true), cookie.WithDomain("example.com"))

	w := httptest.NewRecorder()
	m.Delete(w, "k")

	c := responseCookie(t, w, "k")
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.True(t, c.Expires.Before(time.Now()))
	assert.Equal(t, "example.com", c.Domain)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.Secure)
	assert.True(t, strings.Contains(w.Header().Get("Set-Cookie"), "Max-Age=0"))
}

func TestManager_Signed(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secret})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "s", "token-value"))

	r := roundTrip(w)
	got, err := m.GetSigned(r, "s")
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)

	raw, err := m.Get(r, "s")
	require.NoError(t, err)
	assert.NotEqual(t, "token-value", raw)
}

func TestManager_SignedTamper(t *testing.T) {
	t.Parallel()

	m, _ := cookie.New([]string{secret})

	w := httptest.NewRecorder()
	require.NoError(t, m.SetSigned(w, "s", "original"))
	signed := responseCookie(t, w, "s").Value

	_, sig, _ := strings.Cut(signed, ".")
	forged, _ := cookie.New(nil)
	w2 := httptest.NewRecorder()
	require.NoError(t, forged.Set(w2, "s", "dGFtcGVyZWQ."+sig))

	_, err := m.GetSigned(roundTrip(w2), "s")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)

	w3 := httptest.NewRecorder()
	require.NoError(t, forged.Set(w3, "s", "no-separator"))
	_, err = m.GetSigned(roundTrip(w3), "s")
	assert.ErrorIs(t, err, cookie.ErrInvalidFormat)
}

func TestManager_SignedRotation(t *testing.T) {
	t.Parallel()

	oldMgr, _ := cookie.New([]string{oldSecret})
	w := httptest.NewRecorder()
	require.NoError(t, oldMgr.SetSigned(w, "s", "v"))

	rotated, _ := cookie.New([]string{secret, oldSecret})
	got, err := rotated.GetSigned(roundTrip(w), "s")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	newOnly, _ := cookie.New([]string{secret})
	_, err = newOnly.GetSigned(roundTrip(w), "s")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestManager_SignedWithoutSecrets(t *testing.T) {
	t.Parallel()

	m, _ := cookie.New(nil)
	assert.ErrorIs(t, m.SetSigned(httptest.NewRecorder(), "s", "v"), cookie.ErrNoSecret)

	_, err := m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "s")
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	cfg := cookie.DefaultConfig()
	cfg.Secrets = " " + secret + " , ," + oldSecret
	cfg.Domain = "example.com"
	cfg.MaxAge = 60

	m, err := cookie.NewFromConfig(cfg, cookie.WithPath("/app"))
	require.NoError(t, err)
	assert.True(t, m.HasSecrets())

	d := m.Defaults()
	assert.Equal(t, "/app", d.Path)
	assert.Equal(t, "example.com", d.Domain)
	assert.Equal(t, 60, d.MaxAge)
	assert.True(t, d.Secure)
	assert.True(t, d.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, d.SameSite)

	cfg.Secrets = "short"
	_, err = cookie.NewFromConfig(cfg)
	assert.ErrorIs(t, err, cookie.ErrSecretTooShort)
}
