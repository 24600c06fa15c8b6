package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/whoisashraf/quran-api/core/errors"
)

// APIResponse is the standard API response wrapper.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *APIMeta    `json:"meta,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIMeta contains response metadata.
type APIMeta struct {
	Total     int    `json:"total,omitempty"`
	Timestamp string `json:"timestamp"`
}

// HealthInfo is the health check response.
type HealthInfo struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Surahs   int    `json:"surahs"`
	Ayahs    int    `json:"ayahs"`
	Checksum string `json:"checksum"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"name":    "Quran API",
		"version": Version,
		"endpoints": []string{
			"GET /health",
			"GET /surah",
			"GET /surah/:number",
			"GET /surah/:number/:ayah",
			"GET /ayah/:surah::ayah",
			"GET /juz/:number",
			"GET /page/:number",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	respond(w, http.StatusOK, HealthInfo{
		Status:   "healthy",
		Version:  Version,
		Uptime:   time.Since(s.startTime).String(),
		Surahs:   s.store.ChapterCount(),
		Ayahs:    s.store.VerseCount(),
		Checksum: s.store.Checksum(),
	})
}

// handleSurahList serves GET /surah: summaries of every surah in order.
func (s *Server) handleSurahList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	summaries := s.resolver.Chapters()
	respondWithTotal(w, http.StatusOK, summaries, len(summaries))
}

// handleSurah serves GET /surah/:number and GET /surah/:number/:ayah.
func (s *Server) handleSurah(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	parts := splitPath(r.URL.Path, "/surah/")
	switch len(parts) {
	case 0:
		// Trailing-slash form of the list endpoint.
		s.handleSurahList(w, r)
	case 1:
		detail, err := s.resolver.Chapter(parts[0])
		if err != nil {
			respondResolveError(w, err)
			return
		}
		respond(w, http.StatusOK, detail)
	case 2:
		view, err := s.resolver.Verse(parts[0], parts[1])
		if err != nil {
			respondResolveError(w, err)
			return
		}
		respond(w, http.StatusOK, view)
	default:
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
	}
}

// handleAyah serves GET /ayah/:surah::ayah using the combined identifier.
func (s *Server) handleAyah(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	parts := splitPath(r.URL.Path, "/ayah/")
	if len(parts) != 1 {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}

	view, err := s.resolver.VerseByRef(parts[0])
	if err != nil {
		respondResolveError(w, err)
		return
	}
	respond(w, http.StatusOK, view)
}

// handleJuz serves GET /juz/:number.
func (s *Server) handleJuz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	parts := splitPath(r.URL.Path, "/juz/")
	if len(parts) != 1 {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}

	list, err := s.resolver.Juz(parts[0])
	if err != nil {
		respondResolveError(w, err)
		return
	}
	respondWithTotal(w, http.StatusOK, list, list.Count)
}

// handlePage serves GET /page/:number.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Only GET is allowed")
		return
	}

	parts := splitPath(r.URL.Path, "/page/")
	if len(parts) != 1 {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Endpoint not found")
		return
	}

	list, err := s.resolver.Page(parts[0])
	if err != nil {
		respondResolveError(w, err)
		return
	}
	respondWithTotal(w, http.StatusOK, list, list.Count)
}

// splitPath splits the path remainder after prefix into non-empty segments.
func splitPath(path, prefix string) []string {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

// respondResolveError maps a resolver error to the HTTP status and error
// code of its kind. Format and range failures are the caller's fault;
// not-found means the address was valid but nothing is there.
func respondResolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errors.ErrFormat):
		respondError(w, http.StatusBadRequest, "INVALID_FORMAT", err.Error())
	case errors.Is(err, errors.ErrOutOfRange):
		respondError(w, http.StatusBadRequest, "OUT_OF_RANGE", err.Error())
	case errors.Is(err, errors.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL", "Internal server error")
	}
}

func respond(w http.ResponseWriter, status int, data interface{}) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondWithTotal(w http.ResponseWriter, status int, data interface{}, total int) {
	response := APIResponse{
		Success: true,
		Data:    data,
		Meta: &APIMeta{
			Total:     total,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	response := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
		},
		Meta: &APIMeta{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}
