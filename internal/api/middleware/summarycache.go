package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/reviewlens/reviewlens/internal/cache"
)

// SummaryCache serves computed dashboard summaries from the cache, keyed
// by dataset load id and request URI. The dataset is immutable for the
// process lifetime, so a cached summary never goes stale within a
// session; the TTL only bounds memory. Cache errors fail open to a fresh
// computation.
type SummaryCache struct {
	cache     cache.Cache
	datasetID uuid.UUID
	ttl       time.Duration
}

// NewSummaryCache creates a new SummaryCache middleware.
func NewSummaryCache(c cache.Cache, datasetID uuid.UUID, ttl time.Duration) *SummaryCache {
	return &SummaryCache{cache: c, datasetID: datasetID, ttl: ttl}
}

// Serve replays a cached response body when present, and stores the
// response of a successful computation otherwise. Only GETs with a 200
// outcome are cached.
func (sc *SummaryCache) Serve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := cache.SummaryKey(sc.datasetID, r.URL.RequestURI())
		if body, found, err := sc.cache.Get(r.Context(), key); err == nil && found {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			w.Write(body)
			return
		}

		rec := &bodyRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK {
			// Best effort; a failed store just means recomputing next time.
			sc.cache.Set(r.Context(), key, rec.body.Bytes(), sc.ttl)
		}
	})
}

type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *bodyRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
