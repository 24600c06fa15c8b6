package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/whoisashraf/quran-api/core/corpus"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(Config{Port: 8080}, corpus.NewTestStore())
}

// doRequest runs a request through the full handler chain and decodes the
// response envelope.
func doRequest(t *testing.T, s *Server, method, path string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	var resp APIResponse
	if w.Code != http.StatusNotModified && w.Code != http.StatusNoContent {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decoding envelope for %s %s: %v\nbody: %s", method, path, err, w.Body.String())
		}
	}
	return w, resp
}

func TestHandleRoot(t *testing.T) {
	s := newTestServer(t)
	w, resp := doRequest(t, s, http.MethodGet, "/")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}
}

func TestHandleRootUnknownPath(t *testing.T) {
	s := newTestServer(t)
	w, resp := doRequest(t, s, http.MethodGet, "/nope")

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if resp.Success || resp.Error == nil || resp.Error.Code != "NOT_FOUND" {
		t.Errorf("envelope = %+v", resp)
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	w, resp := doRequest(t, s, http.MethodGet, "/health")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	raw, _ := json.Marshal(resp.Data)
	var health HealthInfo
	if err := json.Unmarshal(raw, &health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "healthy" {
		t.Errorf("Status = %q", health.Status)
	}
	if health.Surahs != corpus.ChapterCount {
		t.Errorf("Surahs = %d, want %d", health.Surahs, corpus.ChapterCount)
	}
	if health.Checksum == "" {
		t.Error("expected checksum in health response")
	}
}

func TestHandleSurahList(t *testing.T) {
	s := newTestServer(t)
	w, resp := doRequest(t, s, http.MethodGet, "/surah")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp.Meta == nil || resp.Meta.Total != corpus.ChapterCount {
		t.Errorf("Meta = %+v, want total %d", resp.Meta, corpus.ChapterCount)
	}

	list, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("Data is %T, want list", resp.Data)
	}
	if len(list) != corpus.ChapterCount {
		t.Errorf("len(Data) = %d", len(list))
	}
}

// TestHandleSurahListTrailingSlash verifies /surah/ serves the same list
// as /surah rather than falling through to a 404.
func TestHandleSurahListTrailingSlash(t *testing.T) {
	s := newTestServer(t)
	w, resp := doRequest(t, s, http.MethodGet, "/surah/")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if resp.Meta == nil || resp.Meta.Total != corpus.ChapterCount {
		t.Errorf("Meta = %+v, want total %d", resp.Meta, corpus.ChapterCount)
	}
}

func TestHandleSurahDetail(t *testing.T) {
	s := newTestServer(t)
	w, resp := doRequest(t, s, http.MethodGet, "/surah/1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("Data is %T", resp.Data)
	}
	if data["number"] != float64(1) {
		t.Errorf("number = %v", data["number"])
	}
	if data["ayah_count"] != float64(6) {
		t.Errorf("ayah_count = %v", data["ayah_count"])
	}
	ayahs, ok := data["ayahs"].([]interface{})
	if !ok || len(ayahs) != 6 {
		t.Errorf("ayahs = %v", data["ayahs"])
	}
}

func TestHandleVerse(t *testing.T) {
	s := newTestServer(t)
	w, resp := doRequest(t, s, http.MethodGet, "/surah/1/1")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	data := resp.Data.(map[string]interface{})
	if data["surah"] != float64(1) || data["ayah"] != float64(1) {
		t.Errorf("data = %v", data)
	}
	if data["text"] != "surah 1, ayah 1" {
		t.Errorf("text = %v", data["text"])
	}
}

// TestVerseEndpointsAgree verifies that the two-segment and combined
// identifier endpoints serve identical payloads for the same ayah.
func TestVerseEndpointsAgree(t *testing.T) {
	s := newTestServer(t)
	_, byPath := doRequest(t, s, http.MethodGet, "/surah/2/3")
	_, byRef := doRequest(t, s, http.MethodGet, "/ayah/2:3")

	a, _ := json.Marshal(byPath.Data)
	b, _ := json.Marshal(byRef.Data)
	if string(a) != string(b) {
		t.Errorf("payloads differ:\n path: %s\n ref:  %s", a, b)
	}
}

func TestHandleJuz(t *testing.T) {
	s := newTestServer(t)
	w, resp := doRequest(t, s, http.MethodGet, "/juz/15")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if resp.Meta == nil || resp.Meta.Total == 0 {
		t.Errorf("Meta = %+v, want non-zero total", resp.Meta)
	}
}

func TestHandlePage(t *testing.T) {
	s := newTestServer(t)
	w, _ := doRequest(t, s, http.MethodGet, "/page/604")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestErrorMapping(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		path       string
		wantStatus int
		wantCode   string
	}{
		{path: "/surah/abc", wantStatus: http.StatusBadRequest, wantCode: "INVALID_FORMAT"},
		{path: "/surah/115", wantStatus: http.StatusBadRequest, wantCode: "OUT_OF_RANGE"},
		{path: "/surah/0", wantStatus: http.StatusBadRequest, wantCode: "OUT_OF_RANGE"},
		{path: "/surah/1/7", wantStatus: http.StatusBadRequest, wantCode: "OUT_OF_RANGE"},
		{path: "/surah/1/x", wantStatus: http.StatusBadRequest, wantCode: "INVALID_FORMAT"},
		{path: "/ayah/abc", wantStatus: http.StatusBadRequest, wantCode: "INVALID_FORMAT"},
		{path: "/ayah/1:1:1", wantStatus: http.StatusBadRequest, wantCode: "INVALID_FORMAT"},
		{path: "/ayah/115:1", wantStatus: http.StatusBadRequest, wantCode: "OUT_OF_RANGE"},
		{path: "/ayah/1:999", wantStatus: http.StatusBadRequest, wantCode: "OUT_OF_RANGE"},
		{path: "/juz/31", wantStatus: http.StatusBadRequest, wantCode: "OUT_OF_RANGE"},
		{path: "/juz/x", wantStatus: http.StatusBadRequest, wantCode: "INVALID_FORMAT"},
		{path: "/page/605", wantStatus: http.StatusBadRequest, wantCode: "OUT_OF_RANGE"},
		{path: "/surah/1/2/3", wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w, resp := doRequest(t, s, http.MethodGet, tt.path)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if resp.Success {
				t.Error("expected error envelope")
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/health", "/surah", "/surah/1", "/ayah/1:1", "/juz/1", "/page/1"} {
		w, resp := doRequest(t, s, http.MethodPost, path)
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s status = %d, want 405", path, w.Code)
		}
		if resp.Error == nil || resp.Error.Code != "METHOD_NOT_ALLOWED" {
			t.Errorf("POST %s error = %+v", path, resp.Error)
		}
	}
}

func TestSplitPath(t *testing.T) {
	tests := []struct {
		path   string
		prefix string
		want   int
	}{
		{"/surah/1", "/surah/", 1},
		{"/surah/1/2", "/surah/", 2},
		{"/surah/1/", "/surah/", 1},
		{"/surah/", "/surah/", 0},
	}
	for _, tt := range tests {
		if got := splitPath(tt.path, tt.prefix); len(got) != tt.want {
			t.Errorf("splitPath(%q) = %v, want %d segments", tt.path, got, tt.want)
		}
	}
}
