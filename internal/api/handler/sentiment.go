package handler

import (
	"errors"
	"net/http"

	"github.com/reviewlens/reviewlens/internal/analytics"
	"github.com/reviewlens/reviewlens/internal/api/response"
	"github.com/reviewlens/reviewlens/pkg/filter"
	"github.com/reviewlens/reviewlens/pkg/models"
)

type sentimentResponse struct {
	Sentiments []models.SentimentStat `json:"sentiments"`
	ByLocation models.Crosstab        `json:"by_location"`
	ByRating   models.Crosstab        `json:"by_rating"`
}

// NewSentimentHandler returns the handler for GET /api/v1/sentiment:
// the overall sentiment distribution plus both crosstab widgets.
func NewSentimentHandler(engine *analytics.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, sentimentResponse{
			Sentiments: engine.SentimentSummary(),
			ByLocation: engine.SentimentLocationCrosstab(),
			ByRating:   engine.SentimentRatingCrosstab(),
		})
	}
}

// NewSentimentDetailHandler returns the handler for
// GET /api/v1/sentiment/detail?location=. An absent location or the
// "all" sentinel means the whole table.
func NewSentimentDetailHandler(engine *analytics.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location := r.URL.Query().Get("location")

		detail, err := engine.SentimentDetail(location)
		if err != nil {
			if errors.Is(err, analytics.ErrLocationNotFound) {
				response.Error(w, http.StatusNotFound, "LOCATION_NOT_FOUND",
					"No reviews for the requested location", nil)
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, detail)
	}
}

type sentimentSamplesResponse struct {
	Sentiment models.Sentiment `json:"sentiment"`
	Location  string           `json:"location"`
	Reviews   []string         `json:"reviews"`
}

// NewSentimentSamplesHandler returns the handler for
// GET /api/v1/sentiment/samples?sentiment=&location=. Zero matching
// records is reported as NO_MATCHING_REVIEWS so the front end can
// distinguish "no data for this combination" from a short sample.
func NewSentimentSamplesHandler(engine *analytics.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("sentiment")
		if raw == "" {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"sentiment is required", nil)
			return
		}
		sentiment := models.NormalizeSentiment(raw)

		location := r.URL.Query().Get("location")
		if location == "" {
			location = filter.All
		}

		reviews, err := engine.SampleReviews(sentiment, location)
		if err != nil {
			if errors.Is(err, analytics.ErrNoMatchingReviews) {
				response.Error(w, http.StatusNotFound, "NO_MATCHING_REVIEWS",
					"No reviews match the selected sentiment and location", map[string]string{
						"sentiment": string(sentiment),
						"location":  location,
					})
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, sentimentSamplesResponse{
			Sentiment: sentiment,
			Location:  location,
			Reviews:   reviews,
		})
	}
}
