package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	mw "github.com/reviewlens/reviewlens/internal/api/middleware"
	"github.com/reviewlens/reviewlens/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	RateLimit    *mw.RateLimit
	SummaryCache *mw.SummaryCache

	HealthHandler http.HandlerFunc

	OverviewHandler           http.HandlerFunc
	PreprocessingStatsHandler http.HandlerFunc
	PreprocessingSample       http.HandlerFunc
	ListClustersHandler       http.HandlerFunc
	GetClusterHandler         http.HandlerFunc
	SentimentHandler          http.HandlerFunc
	SentimentDetailHandler    http.HandlerFunc
	SentimentSamplesHandler   http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	// Public health check
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))

	// Dashboard views
	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}
		if deps.SummaryCache != nil {
			r.Use(deps.SummaryCache.Serve)
		}

		r.Get("/api/v1/overview", orNotImplemented(deps.OverviewHandler))

		r.Get("/api/v1/preprocessing/stats", orNotImplemented(deps.PreprocessingStatsHandler))
		r.Get("/api/v1/preprocessing/samples/{index}", orNotImplemented(deps.PreprocessingSample))

		r.Get("/api/v1/clusters", orNotImplemented(deps.ListClustersHandler))
		r.Get("/api/v1/clusters/{clusterID}", orNotImplemented(deps.GetClusterHandler))

		r.Get("/api/v1/sentiment", orNotImplemented(deps.SentimentHandler))
		r.Get("/api/v1/sentiment/detail", orNotImplemented(deps.SentimentDetailHandler))
		r.Get("/api/v1/sentiment/samples", orNotImplemented(deps.SentimentSamplesHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
