package openapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/mark3labs/apigen/internal/project"
)

const petstoreV3 = `openapi: 3.0.0
info:
  title: Pets
  version: "1.0.0"
paths:
  /users:
    post:
      responses:
        "201":
          description: created
    get:
      responses:
        "200":
          description: ok
  /pets/{id}:
    parameters:
      - name: id
        in: path
        required: true
        schema:
          type: string
    delete:
      responses:
        "204":
          description: gone
    patch:
      responses:
        "200":
          description: ok
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoad_BlocksFileURL(t *testing.T) {
	t.Parallel()
	_, err := Load(context.Background(), "file:///etc/hosts")
	var le *LoadError
	if !errors.As(err, &le) || le.Code != InputError {
		t.Fatalf("expected InputError, got %v (%T)", err, err)
	}
}

func TestLoad_UnsupportedScheme(t *testing.T) {
	t.Parallel()
	_, err := Load(context.Background(), "ftp://example.com/openapi.yaml")
	var le *LoadError
	if !errors.As(err, &le) || le.Code != InputError {
		t.Fatalf("expected InputError, got %v (%T)", err, err)
	}
}

func TestLoad_EmptyInput(t *testing.T) {
	t.Parallel()
	_, err := Load(context.Background(), "  ")
	var le *LoadError
	if !errors.As(err, &le) || le.Code != InputError {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestLoad_NetworkError(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := Load(ctx, "http://127.0.0.1:1/openapi.yaml", WithHTTPTimeout(200*time.Millisecond), WithMaxRetries(2), WithBackoffBase(time.Millisecond))
	var le *LoadError
	if !errors.As(err, &le) || le.Code != NetworkError {
		t.Fatalf("expected NetworkError, got %v (%T)", err, err)
	}
}

func TestLoad_RetriesTransientStatus(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(petstoreV3))
	}))
	defer srv.Close()

	doc, err := Load(context.Background(), srv.URL+"/openapi.yaml", WithBackoffBase(time.Millisecond))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if calls.Load() < 2 {
		t.Fatalf("expected a retry, got %d calls", calls.Load())
	}
	if eps, _ := Endpoints(doc); len(eps) != 3 {
		t.Fatalf("expected 3 endpoints, got %d", len(eps))
	}
}

func TestLoad_ClientErrorIsNotRetried(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL+"/missing.yaml", WithBackoffBase(time.Millisecond))
	var le *LoadError
	if !errors.As(err, &le) || le.Code != NetworkError {
		t.Fatalf("expected NetworkError, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected a single attempt, got %d", calls.Load())
	}
}

func TestLoad_RemoteDocumentCannotReadLocalFiles(t *testing.T) {
	t.Parallel()
	resp := filepath.Join(t.TempDir(), "ok.yaml")
	if err := os.WriteFile(resp, []byte("description: ok\n"), 0o600); err != nil {
		t.Fatalf("write ref target: %v", err)
	}
	doc := "" +
		"openapi: 3.0.0\n" +
		"info:\n" +
		"  title: Remote\n" +
		"  version: '1'\n" +
		"paths:\n" +
		"  /a:\n" +
		"    get:\n" +
		"      responses:\n" +
		"        '200':\n" +
		"          $ref: 'file://" + filepath.ToSlash(resp) + "'\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	if _, err := Load(context.Background(), srv.URL+"/openapi.yaml", WithBackoffBase(time.Millisecond)); err == nil {
		t.Fatalf("expected the local file reference to be refused")
	}
}

func TestLoad_V3_InvalidDocument(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "bad.yaml", `openapi: 3.0.0
info:
  title: Bad
  version: "1.0.0"
paths:
  "/pet":
    get:
      responses: {}
`)
	_, err := Load(context.Background(), path)
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %v (%T)", err, err)
	}
	if le.Code != ValidationError && le.Code != ParseError {
		t.Fatalf("expected ValidationError/ParseError, got %v", le.Code)
	}
	if le.Location == "" {
		t.Fatalf("expected location to be set")
	}
}

func TestLoad_UnknownVersion(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "nope.yaml", "title: not an api\n")
	_, err := Load(context.Background(), path)
	var le *LoadError
	if !errors.As(err, &le) || le.Code != ParseError {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestLoad_V2_Conversion(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "swagger.yaml", `swagger: "2.0"
info:
  title: Sample
  version: "1.0.0"
paths:
  "/hello":
    get:
      responses:
        "200":
          description: ok
    put:
      responses:
        "200":
          description: ok
`)
	doc, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.HasPrefix(doc.OpenAPI, "3.") {
		t.Fatalf("expected OpenAPI v3, got %q", doc.OpenAPI)
	}
	eps, skipped := Endpoints(doc)
	want := []project.Endpoint{{Path: "/hello", Method: project.GET}, {Path: "/hello", Method: project.PUT}}
	if diff := cmp.Diff(want, eps); diff != "" {
		t.Fatalf("endpoints mismatch (-want +got):\n%s", diff)
	}
	if len(skipped) != 0 {
		t.Fatalf("unexpected skipped operations: %+v", skipped)
	}
}

func TestEndpoints_SortedWithMethodOrder(t *testing.T) {
	t.Parallel()
	doc, err := Load(context.Background(), writeFile(t, "openapi.yaml", petstoreV3))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	eps, skipped := Endpoints(doc)
	want := []project.Endpoint{
		{Path: "/pets/{id}", Method: project.DELETE},
		{Path: "/users", Method: project.GET},
		{Path: "/users", Method: project.POST},
	}
	if diff := cmp.Diff(want, eps); diff != "" {
		t.Fatalf("endpoints mismatch (-want +got):\n%s", diff)
	}
	wantSkipped := []Skipped{{Path: "/pets/{id}", Method: "PATCH", Reason: "unsupported method"}}
	if diff := cmp.Diff(wantSkipped, skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
	m := &project.Model{ProjectName: "pets", Style: project.StyleREST, Endpoints: eps}
	if err := m.Validate(); err != nil {
		t.Fatalf("imported endpoints should validate: %v", err)
	}
}

func TestEndpoints_NilDocument(t *testing.T) {
	t.Parallel()
	if eps, skipped := Endpoints(nil); eps != nil || skipped != nil {
		t.Fatalf("expected nothing for a nil document")
	}
}
