package todoapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /todos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[{"userId":1,"id":1,"title":"first","completed":false},{"userId":1,"id":2,"title":"second","completed":true}]`)
	})
	mux.HandleFunc("GET /todos/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "2":
			_, _ = io.WriteString(w, `{"userId":1,"id":2,"title":"second","completed":true}`)
		case "99":
			_, _ = io.WriteString(w, `{not json`)
		default:
			http.NotFound(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return New(srv.URL+"/", WithHTTPClient(srv.Client()), WithLogger(log.New(io.Discard)))
}

func TestList(t *testing.T) {
	c := newTestClient(newTestServer(t))
	todos, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []model.Todo{
		{ID: 1, Title: "first", UserID: 1},
		{ID: 2, Title: "second", Completed: true, UserID: 1},
	}
	if len(todos) != len(want) {
		t.Fatalf("expected %d todos, got %d", len(want), len(todos))
	}
	for i := range want {
		if todos[i] != want[i] {
			t.Fatalf("todo %d: expected %+v, got %+v", i, want[i], todos[i])
		}
	}
}

func TestGet(t *testing.T) {
	c := newTestClient(newTestServer(t))
	todo, err := c.Get(context.Background(), 2)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if todo.ID != 2 || !todo.Completed || todo.Title != "second" {
		t.Fatalf("unexpected todo %+v", todo)
	}
}

func TestGetNotFoundIsAPIError(t *testing.T) {
	c := newTestClient(newTestServer(t))
	_, err := c.Get(context.Background(), 5)
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T (%v)", err, err)
	}
	if apiErr.Status() != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", apiErr.Status())
	}
}

func TestGetMalformedBody(t *testing.T) {
	c := newTestClient(newTestServer(t))
	_, err := c.Get(context.Background(), 99)
	if err == nil || !strings.Contains(err.Error(), "json decode") {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	c := newTestClient(newTestServer(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.List(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewDefaultsBaseURL(t *testing.T) {
	if c := New(" "); c.baseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", c.baseURL)
	}
}
