package handler_test

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/reviewlens/reviewlens/internal/analytics"
	"github.com/reviewlens/reviewlens/internal/dataset"
	"github.com/reviewlens/reviewlens/pkg/models"
	"github.com/stretchr/testify/require"
)

// fixtureReviews is the shared six-row table used across handler tests:
// locations A (3 rows) and B (3 rows), clusters 0..2, all three
// sentiment categories present.
func fixtureReviews() []models.Review {
	return []models.Review{
		{
			Text: "Pelayanan sangat baik", Rating: 5, Location: "A",
			Cluster: 0, Sentiment: models.SentimentPositive,
			Stages: models.PreprocessingStages{Stopwords: "pelayanan baik", Stemmed: "layan baik"},
		},
		{
			Text: "Dokter ramah sekali", Rating: 4, Location: "A",
			Cluster: 0, Sentiment: models.SentimentPositive,
			Stages: models.PreprocessingStages{Stopwords: "dokter ramah"},
		},
		{
			Text: "Biasa saja", Rating: 3, Location: "A",
			Cluster: 1, Sentiment: models.SentimentNeutral,
			Stages: models.PreprocessingStages{Stopwords: "biasa"},
		},
		{
			Text: "Antri lama", Rating: 2, Location: "B",
			Cluster: 2, Sentiment: models.SentimentNegative,
			Stages: models.PreprocessingStages{Stopwords: "antri lama"},
		},
		{
			Text: "Kotor dan lambat", Rating: 1, Location: "B",
			Cluster: 2, Sentiment: models.SentimentNegative,
			Stages: models.PreprocessingStages{Stopwords: "kotor lambat"},
		},
		{
			Text: "Cukup memuaskan", Rating: 4, Location: "B",
			Cluster: 0, Sentiment: models.SentimentPositive,
			Stages: models.PreprocessingStages{Stopwords: "cukup puas"},
		},
	}
}

func fixtureEngine() *analytics.Engine {
	return analytics.New(dataset.New(fixtureReviews()),
		analytics.WithRandSource(rand.NewSource(1)))
}

func emptyEngine() *analytics.Engine {
	return analytics.New(dataset.Empty(),
		analytics.WithRandSource(rand.NewSource(1)))
}

// get serves a request through a chi router so URL params resolve.
func get(t *testing.T, pattern string, h http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Get(pattern, h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "expected data envelope, got %s", w.Body.String())
	return data
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %s", w.Body.String())
	return errObj
}
