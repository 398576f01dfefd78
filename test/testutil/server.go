// Package testutil provides an in-memory revision store served over HTTP for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Route names used by Calls and FailRoute.
const (
	RouteCurrent  = "current"
	RouteActivate = "activate"
	RouteList     = "list"
	RouteAdd      = "add"
)

type manifestState struct {
	current   string
	order     []string
	revisions map[string]string
}

// StoreServer is a fake revision store. Keys are immutable once added,
// activation requires a known key, and every route counts its calls.
type StoreServer struct {
	URL string

	server     *httptest.Server
	authHeader string

	mu        sync.Mutex
	manifests map[string]*manifestState
	calls     map[string]int
	failing   map[string]int
}

// NewStoreServer starts a fake store and stops it when the test ends. When
// authHeader is non-empty requests without that exact Authorization value get 401.
func NewStoreServer(t *testing.T, authHeader string) *StoreServer {
	t.Helper()

	s := &StoreServer{
		authHeader: authHeader,
		manifests:  make(map[string]*manifestState),
		calls:      make(map[string]int),
		failing:    make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.authorize)
	r.Route("/{manifest}", func(r chi.Router) {
		r.Get("/", s.route(RouteCurrent, s.handleCurrent))
		r.Put("/", s.route(RouteActivate, s.handleActivate))
		r.Get("/revisions", s.route(RouteList, s.handleList))
		r.Put("/revisions/{key}", s.route(RouteAdd, s.handleAdd))
	})

	s.server = httptest.NewServer(r)
	s.URL = s.server.URL
	t.Cleanup(s.server.Close)
	return s
}

// Seed adds revisions to manifest without counting calls.
func (s *StoreServer) Seed(manifest string, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(manifest)
	for _, k := range keys {
		if _, ok := st.revisions[k]; ok {
			continue
		}
		st.order = append(st.order, k)
		st.revisions[k] = "seeded:" + k
	}
}

// SetCurrent sets the current pointer directly.
func (s *StoreServer) SetCurrent(manifest, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(manifest).current = key
}

// Current returns the current pointer of manifest.
func (s *StoreServer) Current(manifest string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(manifest).current
}

// Value returns the stored value of a revision.
func (s *StoreServer) Value(manifest, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.state(manifest).revisions[key]
	return v, ok
}

// Calls returns how often route was hit.
func (s *StoreServer) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// TotalCalls returns the number of requests across all routes.
func (s *StoreServer) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

// FailRoute makes route answer with status until cleared with status 0.
func (s *StoreServer) FailRoute(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if status == 0 {
		delete(s.failing, route)
		return
	}
	s.failing[route] = status
}

func (s *StoreServer) state(manifest string) *manifestState {
	st, ok := s.manifests[manifest]
	if !ok {
		st = &manifestState{revisions: make(map[string]string)}
		s.manifests[manifest] = st
	}
	return st
}

func (s *StoreServer) authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.authHeader != "" && r.Header.Get("Authorization") != s.authHeader {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *StoreServer) route(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[name]++
		status, failing := s.failing[name]
		s.mu.Unlock()
		if failing {
			http.Error(w, http.StatusText(status), status)
			return
		}
		h(w, r)
	}
}

func (s *StoreServer) handleCurrent(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	current := s.state(chi.URLParam(r, "manifest")).current
	s.mu.Unlock()
	if current == "" {
		http.Error(w, "no current revision", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"revision": current})
}

func (s *StoreServer) handleActivate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Revision string `json:"revision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(chi.URLParam(r, "manifest"))
	if _, ok := st.revisions[body.Revision]; !ok {
		http.Error(w, "revision not found", http.StatusNotFound)
		return
	}
	st.current = body.Revision
	w.WriteHeader(http.StatusNoContent)
}

func (s *StoreServer) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	keys := append([]string{}, s.state(chi.URLParam(r, "manifest")).order...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, keys)
}

func (s *StoreServer) handleAdd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	key := chi.URLParam(r, "key")
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(chi.URLParam(r, "manifest"))
	if _, exists := st.revisions[key]; exists {
		http.Error(w, "revision already exists", http.StatusConflict)
		return
	}
	st.order = append(st.order, key)
	st.revisions[key] = body.Value
	writeJSON(w, http.StatusCreated, map[string]string{"key": key})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
