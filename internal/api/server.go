// Package api provides the Quran REST API server.
package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/whoisashraf/quran-api/core/corpus"
	"github.com/whoisashraf/quran-api/core/resolver"
	"github.com/whoisashraf/quran-api/internal/cache"
	"github.com/whoisashraf/quran-api/internal/logging"
)

// Version is reported by the root and health endpoints.
const Version = "0.1.0"

// Server serves the corpus query API. All dependencies are injected; a
// Server owns no global state.
type Server struct {
	cfg       Config
	store     *corpus.Store
	resolver  *resolver.Resolver
	respCache *cache.TTLCache[string, cachedResponse]
	limiter   *RateLimiter
	startTime time.Time
	httpSrv   *http.Server
}

// NewServer creates a server over the given store.
func NewServer(cfg Config, store *corpus.Store) *Server {
	s := &Server{
		cfg:       cfg,
		store:     store,
		resolver:  resolver.New(store),
		respCache: cache.New[string, cachedResponse](cfg.CacheTTL),
		startTime: time.Now(),
	}
	if cfg.RateLimitRequests > 0 {
		burst := cfg.RateLimitBurst
		if burst == 0 {
			burst = 10
		}
		s.limiter = NewRateLimiter(RateLimiterConfig{
			RequestsPerMinute: cfg.RateLimitRequests,
			BurstSize:         burst,
		})
	}
	return s
}

// routes configures all HTTP routes.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/surah", s.handleSurahList)
	mux.HandleFunc("/surah/", s.handleSurah)
	mux.HandleFunc("/ayah/", s.handleAyah)
	mux.HandleFunc("/juz/", s.handleJuz)
	mux.HandleFunc("/page/", s.handlePage)

	return mux
}

// Handler builds the full middleware chain around the route mux.
func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.routes()

	handler = s.cacheMiddleware(handler)
	handler = s.etagMiddleware(handler)
	handler = securityHeaders(handler)
	if s.limiter != nil {
		handler = s.limiter.Middleware(handler)
	}
	handler = corsMiddleware(s.cfg.AllowedOrigins, handler)
	handler = logging.CombinedMiddleware(handler)

	return handler
}

// Start runs the server until the context is canceled or the listener
// fails.
func (s *Server) Start(ctx context.Context) error {
	logging.ServerStartup("rest_api", "http", s.cfg.Port,
		"surahs", s.store.ChapterCount(),
		"ayahs", s.store.VerseCount(),
		"checksum", s.store.Checksum())
	if s.limiter != nil {
		logging.Info("rate limiting enabled",
			"requests_per_minute", s.cfg.RateLimitRequests,
			"burst_size", s.cfg.RateLimitBurst)
	}

	s.httpSrv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.httpSrv.Shutdown(shutdownCtx)
		if s.limiter != nil {
			s.limiter.Stop()
		}
		return err
	case err := <-errCh:
		if s.limiter != nil {
			s.limiter.Stop()
		}
		return err
	}
}

// etag is the strong validator for every response: the corpus is
// immutable for the lifetime of the process, so its checksum validates
// any projection of it.
func (s *Server) etag() string {
	return `"` + s.store.Checksum() + `"`
}

// etagMiddleware stamps GET responses with the corpus ETag and serves
// 304 when the client already holds the current corpus.
func (s *Server) etagMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		tag := s.etag()
		w.Header().Set("ETag", tag)
		if r.Header.Get("If-None-Match") == tag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// cachedResponse is a buffered response held by the response cache.
type cachedResponse struct {
	status      int
	contentType string
	body        []byte
}

// bufferingWriter captures a response so it can be cached.
type bufferingWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (bw *bufferingWriter) WriteHeader(code int) {
	if bw.status == 0 {
		bw.status = code
		bw.ResponseWriter.WriteHeader(code)
	}
}

func (bw *bufferingWriter) Write(b []byte) (int, error) {
	if bw.status == 0 {
		bw.WriteHeader(http.StatusOK)
	}
	bw.buf.Write(b)
	return bw.ResponseWriter.Write(b)
}

// cacheMiddleware serves repeated GET queries from the response cache.
// Only successful responses are cached; error responses are cheap to
// recompute and should not linger.
func (s *Server) cacheMiddleware(next http.Handler) http.Handler {
	if s.cfg.CacheTTL <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := r.URL.Path
		if hit, ok := s.respCache.Get(key); ok {
			w.Header().Set("Content-Type", hit.contentType)
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(hit.status)
			w.Write(hit.body)
			return
		}

		bw := &bufferingWriter{ResponseWriter: w}
		next.ServeHTTP(bw, r)

		if bw.status == http.StatusOK {
			s.respCache.Set(key, cachedResponse{
				status:      bw.status,
				contentType: bw.Header().Get("Content-Type"),
				body:        bw.buf.Bytes(),
			})
		}
	})
}
