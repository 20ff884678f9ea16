package web

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dendrascience/groupzip/groupzip"
)

// setupTestWebApp returns a WebApp and a directory holding two sidecar groups,
// one of which satisfies the count policy.
func setupTestWebApp(t *testing.T) (*WebApp, string) {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{"plot1.shp", "plot1.shx", "plot2.shp"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	webapp, err := New(groupzip.Options{
		Policy: groupzip.Policy{Kind: groupzip.RequireCount, Count: 2},
	}, nil)
	if err != nil {
		t.Fatalf("failed to create web app: %v", err)
	}
	return webapp, dir
}

func postDir(t *testing.T, h http.Handler, dir string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"base_dir": {dir}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHomeHandler(t *testing.T) {
	webapp, _ := setupTestWebApp(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	webapp.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `name="base_dir"`) || !strings.Contains(body, "count=2") {
		t.Errorf("form page missing expected content:\n%s", body)
	}
}

func TestZipThenSuccess(t *testing.T) {
	webapp, dir := setupTestWebApp(t)
	h := webapp.Handler()

	w := postDir(t, h, dir)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d: %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/success" {
		t.Errorf("expected redirect to /success, got %q", loc)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookie {
		t.Fatalf("expected session cookie, got %v", cookies)
	}

	if _, err := os.Stat(filepath.Join(dir, "plot1.zip")); err != nil {
		t.Errorf("plot1.zip not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "plot2.zip")); !os.IsNotExist(err) {
		t.Errorf("plot2.zip should not exist, stat err: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/success", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	body := w.Body.String()
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(body, "1 archive created") || !strings.Contains(body, "<li>plot1.zip</li>") {
		t.Errorf("success page missing archive:\n%s", body)
	}
	if !strings.Contains(body, "1 group(s) skipped") {
		t.Errorf("success page missing skipped count:\n%s", body)
	}
}

func TestSuccessWithoutSession(t *testing.T) {
	webapp, _ := setupTestWebApp(t)

	req := httptest.NewRequest(http.MethodGet, "/success", nil)
	w := httptest.NewRecorder()
	webapp.Handler().ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "No archives") {
		t.Errorf("expected empty result page, got:\n%s", w.Body.String())
	}
}

func TestZipBadRequests(t *testing.T) {
	webapp, dir := setupTestWebApp(t)
	h := webapp.Handler()

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{name: "empty path", dir: "  ", want: "A directory path is required."},
		{name: "missing directory", dir: filepath.Join(dir, "absent"), want: "directory not found"},
		{name: "file instead of directory", dir: filepath.Join(dir, "plot2.shp"), want: "expected directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postDir(t, h, tt.dir)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("expected body to mention %q, got:\n%s", tt.want, w.Body.String())
			}
		})
	}
}

func TestNotFoundAndHealth(t *testing.T) {
	webapp, _ := setupTestWebApp(t)
	h := webapp.Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("unexpected health response: %d %q", w.Code, w.Body.String())
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	webapp, _ := setupTestWebApp(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- webapp.serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
