package webserve

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html": "<html>cats</html>",
		"game.wasm":  "\x00asm",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return New(dir)
}

func get(s *Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestServesIndexWithPermissions(t *testing.T) {
	rec := get(newTestServer(t), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("got=%d want=200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "cats") {
		t.Errorf("Expected index.html, got %q", rec.Body.String())
	}
	if got := rec.Header().Get("Permissions-Policy"); got != PermissionsPolicy {
		t.Errorf("got=%q want=%q", got, PermissionsPolicy)
	}
}

func TestServesWasmType(t *testing.T) {
	rec := get(newTestServer(t), "/game.wasm")
	if rec.Code != http.StatusOK {
		t.Fatalf("got=%d want=200", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/wasm" {
		t.Errorf("got=%q want=application/wasm", got)
	}
}

func TestHealthAndMissing(t *testing.T) {
	s := newTestServer(t)
	if rec := get(s, "/health"); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("health: %d %q", rec.Code, rec.Body.String())
	}
	rec := get(s, "/nope.js")
	if rec.Code != http.StatusNotFound {
		t.Errorf("got=%d want=404", rec.Code)
	}
	if rec.Header().Get("Permissions-Policy") == "" {
		t.Error("Expected policy on error responses too")
	}
}
