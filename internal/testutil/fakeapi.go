package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"todo/internal/service"
)

// Request is a request recorded by FakeAPI.
type Request struct {
	Method      string
	Path        string
	Query       string
	Body        string
	ContentType string
	UserAgent   string
	RequestID   string
}

// FakeAPI is an httptest server speaking the /todos and /users API.
// Like the public placeholder API, writes are acknowledged but not stored.
type FakeAPI struct {
	mu       sync.Mutex
	tasks    []service.Task
	owners   []service.Owner
	nextID   int
	failures map[string]int // "METHOD collection" -> status
	requests []Request

	srv *httptest.Server
}

// NewFakeAPI starts a FakeAPI that is closed when the test ends.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()
	f := &FakeAPI{
		nextID:   201,
		failures: make(map[string]int),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

// URL returns the base URL of the server.
func (f *FakeAPI) URL() string {
	return f.srv.URL
}

// Client returns an HTTP client for the server.
func (f *FakeAPI) Client() *http.Client {
	return f.srv.Client()
}

// AddTask seeds a task served by GET /todos.
func (f *FakeAPI) AddTask(task service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
}

// AddOwner seeds an owner served by GET /users.
func (f *FakeAPI) AddOwner(owner service.Owner) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.owners = append(f.owners, owner)
}

// Fail makes every request with method to collection ("todos" or "users")
// answer with status.
func (f *FakeAPI) Fail(method, collection string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+collection] = status
}

// Requests returns the requests received so far.
func (f *FakeAPI) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]Request, len(f.requests))
	copy(result, f.requests)
	return result
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, Request{
		Method:      r.Method,
		Path:        r.URL.Path,
		Query:       r.URL.RawQuery,
		Body:        string(body),
		ContentType: r.Header.Get("Content-Type"),
		UserAgent:   r.Header.Get("User-Agent"),
		RequestID:   r.Header.Get("X-Request-Id"),
	})

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	collection := parts[0]

	if status, ok := f.failures[r.Method+" "+collection]; ok {
		writeJSON(w, status, map[string]any{})
		return
	}

	switch {
	case r.Method == http.MethodGet && len(parts) == 1 && collection == "todos":
		writeJSON(w, http.StatusOK, limit(f.tasks, r))
	case r.Method == http.MethodGet && len(parts) == 1 && collection == "users":
		writeJSON(w, http.StatusOK, limit(f.owners, r))
	case r.Method == http.MethodPost && len(parts) == 1 && collection == "todos":
		var nt service.NewTask
		if err := json.Unmarshal(body, &nt); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{})
			return
		}
		task := service.Task{
			OwnerID:   nt.OwnerID,
			ID:        service.ID(strconv.Itoa(f.nextID)),
			Title:     nt.Title,
			Completed: nt.Completed,
		}
		f.nextID++
		writeJSON(w, http.StatusCreated, task)
	case (r.Method == http.MethodPatch || r.Method == http.MethodDelete) && len(parts) == 2 && collection == "todos":
		writeJSON(w, http.StatusOK, map[string]any{})
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{})
	}
}

func limit[T any](items []T, r *http.Request) []T {
	result := make([]T, len(items))
	copy(result, items)
	if n, err := strconv.Atoi(r.URL.Query().Get("_limit")); err == nil && n >= 0 && n < len(result) {
		result = result[:n]
	}
	return result
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
