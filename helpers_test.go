package passport_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/passport"
)

// fakeService is an in-memory account service speaking the remote API.
type fakeService struct {
	mu    sync.Mutex
	keys  map[string]string // key -> uid
	data  map[string]string // name -> wire string
	calls map[string]int    // "METHOD endpoint" -> count

	// override, when set, answers every request.
	override http.HandlerFunc
}

func newFakeService() *fakeService {
	return &fakeService{
		keys:  map[string]string{"ABC": "42"},
		data:  map[string]string{},
		calls: map[string]int{},
	}
}

func (f *fakeService) Calls(method, endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method+" "+endpoint]
}

func (f *fakeService) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeService) SetValue(name, raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[name] = raw
}

func (f *fakeService) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[name]
}

// Override makes every later request answer with h.
func (f *fakeService) Override(h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.override = h
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Path[len("/api/"):]

	f.mu.Lock()
	f.calls[r.Method+" "+endpoint]++
	override := f.override
	f.mu.Unlock()

	if override != nil {
		override(w, r)
		return
	}

	var body struct {
		Key   string `json:"key"`
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	key := r.URL.Query().Get("key")
	if key == "" {
		key = body.Key
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	uid, ok := f.keys[key]
	if !ok {
		reply(w, map[string]any{"error": "invalid key"})
		return
	}

	switch r.Method + " " + endpoint {
	case "GET account/uid":
		reply(w, map[string]any{"uid": uid})
	case "GET account/data":
		v, ok := f.data[r.URL.Query().Get("name")]
		if !ok {
			reply(w, map[string]any{"error": "no such field"})
			return
		}
		reply(w, map[string]any{"value": v})
	case "POST account/data":
		if _, exists := f.data[body.Name]; exists {
			reply(w, map[string]any{"error": "field exists"})
			return
		}
		f.data[body.Name] = body.Value
		reply(w, map[string]any{"success": true})
	case "PUT account/data":
		f.data[body.Name] = body.Value
		reply(w, map[string]any{"success": true})
	case "DELETE account/data":
		name := r.URL.Query().Get("name")
		_, existed := f.data[name]
		delete(f.data, name)
		reply(w, map[string]any{"success": existed})
	case "DELETE authentication":
		delete(f.keys, key)
		reply(w, map[string]any{"success": true})
	default:
		http.NotFound(w, r)
	}
}

func reply(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// newTestService starts a TLS fake and a Service pointed at it.
func newTestService(t *testing.T) (*passport.Service, *fakeService) {
	t.Helper()

	fake := newFakeService()
	srv := httptest.NewTLSServer(fake)
	t.Cleanup(srv.Close)

	cfg := passport.DefaultConfig()
	cfg.BaseURL = srv.URL + "/api/"

	svc, err := passport.New(cfg, passport.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	return svc, fake
}

// newTestClient returns a client holding credential key.
func newTestClient(t *testing.T, key string) (*passport.Client, *fakeService, *passport.MemorySession) {
	t.Helper()
	svc, fake := newTestService(t)
	sess := passport.NewMemorySession()
	return svc.Client(passport.NewMemoryCredentials(key), sess), fake, sess
}
