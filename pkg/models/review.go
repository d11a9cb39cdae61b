// Package models contains shared data models used across the ReviewLens codebase.
package models

import "strings"

// Sentiment is an externally assigned review tone label.
// The canonical schema is 3-way: Positive, Neutral, Negative.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Sentiments lists the canonical categories in display order.
// Summaries are zero-filled over this set, so a category absent from a
// filtered subset still reports count 0 instead of disappearing.
var Sentiments = []Sentiment{SentimentPositive, SentimentNeutral, SentimentNegative}

// NormalizeSentiment maps labeling variants onto the canonical schema.
// The upstream classifier has shipped two label sets over time: the 3-way
// English one and a 2-way Indonesian one (positif/negatif); both collapse
// onto the canonical values here. Unknown labels pass through verbatim.
func NormalizeSentiment(raw string) Sentiment {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "positive", "positif":
		return SentimentPositive
	case "neutral", "netral":
		return SentimentNeutral
	case "negative", "negatif":
		return SentimentNegative
	default:
		return Sentiment(strings.TrimSpace(raw))
	}
}

// Review is a single row of the pre-computed review dataset.
// Cluster and Sentiment are produced by external pipelines; this service
// only reads them.
type Review struct {
	Text      string    `json:"review"`
	Rating    int       `json:"rating"`
	Location  string    `json:"location"`
	Cluster   int       `json:"cluster"`
	Sentiment Sentiment `json:"predicted_sentiment"`

	Stages PreprocessingStages `json:"preprocessing"`
}

// PreprocessingStages holds the display-only intermediate artifacts of the
// upstream text-preprocessing pipeline.
type PreprocessingStages struct {
	Clean     string `json:"clean_data"`
	Casefold  string `json:"casefold_data"`
	Tokenized string `json:"tokenizing_data"`
	Stopwords string `json:"stopwords_data"`
	Stemmed   string `json:"stemming_data"`
}
