package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleOpenAPI(t *testing.T) {
	h := handleOpenAPI()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "application/json") {
		t.Fatalf("content-type = %q, want application/json", got)
	}

	var doc struct {
		OpenAPI string                    `json:"openapi"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decoding spec: %v", err)
	}
	if doc.OpenAPI == "" {
		t.Fatal("body missing openapi version")
	}

	want := map[string]string{
		"/healthz":                           "get",
		"/api/categories":                    "get",
		"/api/tables/{table}/state":          "get",
		"/api/tables/{table}/game":           "post",
		"/api/tables/{table}/category":       "post",
		"/api/tables/{table}/round/credit":   "post",
		"/api/tables/{table}/teams/{teamID}": "delete",
	}
	for path, method := range want {
		if _, ok := doc.Paths[path][method]; !ok {
			t.Errorf("spec missing %s %s", strings.ToUpper(method), path)
		}
	}
}

func TestSwaggerUI(t *testing.T) {
	h := newTestHandler(t, constant(fixedItem()))
	rec := do(t, h, http.MethodGet, "/docs/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/html") {
		t.Fatalf("content-type = %q, want text/html", got)
	}
	if !strings.Contains(rec.Body.String(), "/openapi.json") {
		t.Fatalf("body missing /openapi.json")
	}
}
