package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/reviewlens/reviewlens/internal/analytics"
	"github.com/reviewlens/reviewlens/internal/api/response"
	"github.com/reviewlens/reviewlens/pkg/models"
)

type clustersResponse struct {
	Clusters    []models.ClusterStat `json:"clusters"`
	ByLocation  models.Crosstab      `json:"by_location"`
	BySentiment models.Crosstab      `json:"by_sentiment"`
}

// NewListClustersHandler returns the handler for GET /api/v1/clusters:
// the per-cluster distribution plus the location and sentiment breakdowns.
func NewListClustersHandler(engine *analytics.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, clustersResponse{
			Clusters:    engine.ClusterSummary(),
			ByLocation:  engine.ClusterLocationCrosstab(),
			BySentiment: engine.ClusterSentimentCrosstab(),
		})
	}
}

// NewGetClusterHandler returns the handler for GET /api/v1/clusters/{clusterID}.
func NewGetClusterHandler(engine *analytics.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "clusterID"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"cluster id must be an integer", nil)
			return
		}

		detail, err := engine.ClusterDetail(id)
		if err != nil {
			if errors.Is(err, analytics.ErrClusterNotFound) {
				response.Error(w, http.StatusNotFound, "CLUSTER_NOT_FOUND",
					"No reviews carry the requested cluster id", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, detail)
	}
}
