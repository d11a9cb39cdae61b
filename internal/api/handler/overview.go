// Package handler contains one HTTP handler per dashboard view. Handlers
// parse and validate the selection, delegate to the aggregation engine,
// and map sentinel errors onto response codes.
package handler

import (
	"net/http"

	"github.com/reviewlens/reviewlens/internal/analytics"
	"github.com/reviewlens/reviewlens/internal/api/response"
	"github.com/reviewlens/reviewlens/pkg/models"
)

type overviewResponse struct {
	Overview        models.Overview        `json:"overview"`
	Locations       []models.LocationStat  `json:"locations"`
	RatingHistogram []models.RatingBucket  `json:"rating_histogram"`
	LocationShares  []models.LocationShare `json:"location_shares"`
}

// NewOverviewHandler returns the handler for GET /api/v1/overview,
// the Home view: headline metrics plus the three distribution widgets.
func NewOverviewHandler(engine *analytics.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, overviewResponse{
			Overview:        engine.Overview(),
			Locations:       engine.LocationSummary(),
			RatingHistogram: engine.RatingHistogram(),
			LocationShares:  engine.LocationShares(),
		})
	}
}
