package icons

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandler_ServesIcon(t *testing.T) {
	h := Handler()

	req := httptest.NewRequest(http.MethodGet, "/assets/icons/lock.svg", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	res := rec.Result()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/svg+xml") {
		t.Fatalf("expected svg content-type, got %q", ct)
	}
	if cc := res.Header.Get("Cache-Control"); cc != defaultCacheControl {
		t.Fatalf("unexpected cache-control %q", cc)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.HasPrefix(string(body), "<svg") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestHandler_HeadHasNoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/assets/icons/mail.svg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body for HEAD, got %d bytes", rec.Body.Len())
	}
}

func TestHandler_UnknownIconAndMethod(t *testing.T) {
	h := Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/icons/nope.svg", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown icon, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/icons/mail", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without .svg suffix, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/assets/icons/mail.svg", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestHandler_GuardStatus(t *testing.T) {
	h := Handler(WithGuard(func(*http.Request) error {
		return StatusError{Code: http.StatusUnauthorized, Err: errors.New("nope")}
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/icons/mail.svg", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 from guard, got %d", rec.Code)
	}
}

func TestHandler_ServesOverride(t *testing.T) {
	h := Handler(WithIcons(map[string]string{"brand": `<svg><path d="M9 9"/></svg>`}), WithCacheControl(""))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/icons/brand.svg", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Cache-Control") != "" {
		t.Fatalf("expected no cache-control header")
	}
	if !strings.Contains(rec.Body.String(), "M9 9") {
		t.Fatalf("expected override markup, got %s", rec.Body.String())
	}
}
