package service

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"

	"storefront/internal/auth"
	"storefront/internal/gateway"
	"storefront/internal/storage"
)

type recordedRequest struct {
	method string
	path   string
	header http.Header
	body   string
}

// fakeAPI routes "METHOD /path" to handlers and records every request.
type fakeAPI struct {
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []recordedRequest
	server   *httptest.Server
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	f := &fakeAPI{routes: make(map[string]http.HandlerFunc)}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.requests = append(f.requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			header: r.Header.Clone(),
			body:   string(body),
		})
		h, ok := f.routes[r.Method+" "+r.URL.Path]
		f.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) handle(method, path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[method+" "+path] = h
}

func (f *fakeAPI) respond(method, path string, status int, body string) {
	f.handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		if body != "" {
			io.WriteString(w, body)
		}
	})
}

func (f *fakeAPI) calls() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func (f *fakeAPI) paths() []string {
	var out []string
	for _, r := range f.calls() {
		out = append(out, r.method+" "+r.path)
	}
	return out
}

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// testClient wires a gateway to the fake API with an in-memory session.
func testClient(f *fakeAPI) (*gateway.Client, *auth.SessionStore, *storage.Memory) {
	mem := storage.NewMemory()
	sessions := auth.NewSessionStore(mem)
	return gateway.New(f.server.URL, sessions), sessions, mem
}
