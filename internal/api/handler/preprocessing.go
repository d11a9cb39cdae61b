package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/reviewlens/reviewlens/internal/analytics"
	"github.com/reviewlens/reviewlens/internal/api/response"
)

// NewPreprocessingStatsHandler returns the handler for
// GET /api/v1/preprocessing/stats.
func NewPreprocessingStatsHandler(engine *analytics.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, engine.PreprocessingStats())
	}
}

// NewPreprocessingSampleHandler returns the handler for
// GET /api/v1/preprocessing/samples/{index}: one record with every
// preprocessing stage, for the side-by-side comparison view.
func NewPreprocessingSampleHandler(engine *analytics.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"index must be an integer", nil)
			return
		}

		record, err := engine.SampleRecord(index)
		if err != nil {
			if errors.Is(err, analytics.ErrIndexOutOfRange) {
				response.Error(w, http.StatusNotFound, "SAMPLE_NOT_FOUND",
					"No record at the requested index", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, record)
	}
}
