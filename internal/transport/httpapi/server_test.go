package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

type mockLookup struct {
	fn func(ctx context.Context, query string) (string, error)
}

func (m *mockLookup) Lookup(ctx context.Context, query string) (string, error) {
	return m.fn(ctx, query)
}

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestHandleVerse_OK(t *testing.T) {
	var gotQuery string
	s := NewServer(&mockLookup{fn: func(_ context.Context, q string) (string, error) {
		gotQuery = q
		return "📖 *John 3:16*", nil
	}}, zap.NewNop())

	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	status, body := get(t, srv, "/api/verse?query=hope%20and%20love")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if gotQuery != "hope and love" {
		t.Errorf("query = %q, want decoded param", gotQuery)
	}
	if body != "📖 *John 3:16*" {
		t.Errorf("body = %q", body)
	}
}

func TestHandleVerse_MissingQuery(t *testing.T) {
	called := false
	s := NewServer(&mockLookup{fn: func(_ context.Context, _ string) (string, error) {
		called = true
		return "", nil
	}}, zap.NewNop())

	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	for _, path := range []string{"/api/verse", "/api/verse?query=", "/api/verse?query=%20%20"} {
		if status, _ := get(t, srv, path); status != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, status)
		}
	}
	if called {
		t.Error("lookup must not be called for a missing query")
	}
}

func TestHandleVerse_LookupError(t *testing.T) {
	s := NewServer(&mockLookup{fn: func(_ context.Context, _ string) (string, error) {
		return "", errors.New("provider down")
	}}, zap.NewNop())

	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	if status, _ := get(t, srv, "/api/verse?query=hope"); status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", status)
	}
}

func TestHandleVerse_PanicRecovered(t *testing.T) {
	s := NewServer(&mockLookup{fn: func(_ context.Context, _ string) (string, error) {
		panic("boom")
	}}, zap.NewNop())

	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	if status, _ := get(t, srv, "/api/verse?query=hope"); status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
}

func TestHealthz(t *testing.T) {
	s := NewServer(&mockLookup{fn: func(_ context.Context, _ string) (string, error) {
		return "", nil
	}}, zap.NewNop())

	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	status, body := get(t, srv, "/healthz")
	if status != http.StatusOK || body != "ok" {
		t.Errorf("healthz = (%d, %q), want (200, ok)", status, body)
	}
}
