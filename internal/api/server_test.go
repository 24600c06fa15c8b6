package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/whoisashraf/quran-api/core/corpus"
)

func TestETag(t *testing.T) {
	s := newTestServer(t)

	w, _ := doRequest(t, s, http.MethodGet, "/surah/1")
	tag := w.Header().Get("ETag")
	if tag == "" {
		t.Fatal("expected ETag header")
	}

	req := httptest.NewRequest(http.MethodGet, "/surah/1", nil)
	req.Header.Set("If-None-Match", tag)
	w2 := httptest.NewRecorder()
	s.Handler().ServeHTTP(w2, req)

	if w2.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", w2.Code)
	}
	if w2.Body.Len() != 0 {
		t.Errorf("304 response carries a body: %s", w2.Body.String())
	}
}

func TestETagStableAcrossEndpoints(t *testing.T) {
	s := newTestServer(t)

	w1, _ := doRequest(t, s, http.MethodGet, "/surah/1")
	w2, _ := doRequest(t, s, http.MethodGet, "/juz/1")

	if w1.Header().Get("ETag") != w2.Header().Get("ETag") {
		t.Error("ETag should be the corpus checksum, identical across endpoints")
	}
}

func TestResponseCache(t *testing.T) {
	s := NewServer(Config{Port: 8080, CacheTTL: time.Minute}, corpus.NewTestStore())

	w1, _ := doRequest(t, s, http.MethodGet, "/surah/1")
	if w1.Header().Get("X-Cache") == "HIT" {
		t.Fatal("first request should not hit the cache")
	}

	w2, resp := doRequest(t, s, http.MethodGet, "/surah/1")
	if w2.Header().Get("X-Cache") != "HIT" {
		t.Fatal("second request should hit the cache")
	}
	if w2.Code != http.StatusOK || !resp.Success {
		t.Errorf("cached response: status %d, envelope %+v", w2.Code, resp)
	}
	if w1.Body.String() != w2.Body.String() {
		t.Error("cached body differs from original")
	}
}

func TestErrorsNotCached(t *testing.T) {
	s := NewServer(Config{Port: 8080, CacheTTL: time.Minute}, corpus.NewTestStore())

	doRequest(t, s, http.MethodGet, "/surah/115")
	w, _ := doRequest(t, s, http.MethodGet, "/surah/115")

	if w.Header().Get("X-Cache") == "HIT" {
		t.Error("error responses must not be cached")
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t)
	w, _ := doRequest(t, s, http.MethodGet, "/health")

	checks := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	}
	for header, want := range checks {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
	if w.Header().Get("Content-Security-Policy") == "" {
		t.Error("expected Content-Security-Policy header")
	}
}

func TestCORSAllowAll(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestCORSRestricted(t *testing.T) {
	s := NewServer(Config{Port: 8080, AllowedOrigins: []string{"https://quran.example"}}, corpus.NewTestStore())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://quran.example")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://quran.example" {
		t.Errorf("allowed origin not echoed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/surah/1", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", w.Code)
	}
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t)
	w, _ := doRequest(t, s, http.MethodGet, "/health")

	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header from middleware chain")
	}
}
