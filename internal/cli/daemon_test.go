package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lherron/remerge/internal/config"
)

func newTestServer(token string) *daemonServer {
	return &daemonServer{
		cfg: &config.Config{
			AgentCommand: "node",
			MergeBackend: "diff3",
		},
		token: token,
	}
}

func TestDaemonHealth(t *testing.T) {
	s := newTestServer("")
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
}

func TestDaemonResolveDeterministic(t *testing.T) {
	s := newTestServer("")
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	body := `{"base":"a\nb\nc\n","ours":"a\nX\nc\n","theirs":"a\nb\nY\n"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/resolve", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		RequestID string `json:"request_id"`
		Content   string `json:"content"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if payload.Content != "a\nX\nY\n" {
		t.Errorf("Expected merged content, got %q", payload.Content)
	}
	if payload.RequestID == "" {
		t.Error("Expected a request id")
	}
}

func TestDaemonResolveMissingContent(t *testing.T) {
	s := newTestServer("")
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/resolve", strings.NewReader(`{"base":"x\n"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if payload.Error != "missing_content" {
		t.Errorf("Expected missing_content, got %q", payload.Error)
	}
}

func TestDaemonResolveInvalidInput(t *testing.T) {
	s := newTestServer("")
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/resolve", strings.NewReader(`[1,2,3]`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
}

func TestDaemonAuth(t *testing.T) {
	s := newTestServer("secret")
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 with token, got %d", rec.Code)
	}
}

func TestDaemonResolveRejectsGet(t *testing.T) {
	s := newTestServer("")
	mux := http.NewServeMux()
	s.registerRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/resolve", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("Expected 405, got %d", rec.Code)
	}
}
