package models

// Overview holds the headline metrics for the whole dataset.
type Overview struct {
	TotalReviews  int     `json:"total_reviews"`
	Locations     int     `json:"locations"`
	AverageRating float64 `json:"average_rating"`
}

// LocationStat is the per-location rating summary, sorted lexically by
// location in engine output.
type LocationStat struct {
	Location      string  `json:"location"`
	ReviewCount   int     `json:"review_count"`
	AverageRating float64 `json:"average_rating"`
}

// RatingBucket is one bar of the rating histogram. Buckets cover the full
// 1..5 range, zero-filled.
type RatingBucket struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

// LocationShare is one slice of the reviews-per-location breakdown,
// sorted by count descending in engine output.
type LocationShare struct {
	Location string  `json:"location"`
	Count    int     `json:"count"`
	SharePct float64 `json:"share_pct"`
}

// ClusterStat is the per-cluster count and share, sorted by cluster id
// ascending in engine output.
type ClusterStat struct {
	Cluster  int     `json:"cluster"`
	Count    int     `json:"count"`
	SharePct float64 `json:"share_pct"`
}

// ClusterDetail describes one cluster in depth.
type ClusterDetail struct {
	Cluster       int      `json:"cluster"`
	Count         int      `json:"count"`
	AverageRating float64  `json:"average_rating"`
	MinRating     int      `json:"min_rating"`
	MaxRating     int      `json:"max_rating"`
	TopLocation   string   `json:"top_location"`
	SampleReviews []string `json:"sample_reviews"`
}

// Crosstab is a 2-D count mapping between two categorical columns.
// Rows and Columns carry the deterministic display order; Counts is
// zero-filled over the full Rows x Columns grid.
type Crosstab struct {
	Rows    []string                  `json:"rows"`
	Columns []string                  `json:"columns"`
	Counts  map[string]map[string]int `json:"counts"`
}

// SentimentStat is the count and share for one sentiment category.
type SentimentStat struct {
	Sentiment Sentiment `json:"sentiment"`
	Count     int       `json:"count"`
	SharePct  float64   `json:"share_pct"`
}

// SentimentRating is the mean rating of reviews carrying one sentiment.
type SentimentRating struct {
	Sentiment     Sentiment `json:"sentiment"`
	Count         int       `json:"count"`
	AverageRating float64   `json:"average_rating"`
}

// SentimentDetail is the sentiment breakdown of an optionally
// location-filtered subset.
type SentimentDetail struct {
	Location     string            `json:"location"`
	TotalReviews int               `json:"total_reviews"`
	Stats        []SentimentStat   `json:"stats"`
	Ratings      []SentimentRating `json:"ratings"`
}

// PreprocessingStats compares mean word counts before and after the
// stopword-removal stage of the upstream pipeline.
type PreprocessingStats struct {
	AvgWordsBefore float64 `json:"avg_words_before"`
	AvgWordsAfter  float64 `json:"avg_words_after"`
	ReductionPct   float64 `json:"reduction_pct"`
}
