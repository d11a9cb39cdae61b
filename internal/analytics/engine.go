// Package analytics implements the aggregation engine behind the dashboard
// views: pure functions from the loaded review table and an optional
// selection to the grouped statistics the front end renders.
//
// Every operation tolerates an empty (or filtered-to-empty) table and
// reports zeros or a sentinel error instead of dividing by zero. Nothing
// here mutates the table.
package analytics

import (
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reviewlens/reviewlens/internal/dataset"
	"github.com/reviewlens/reviewlens/pkg/filter"
	"github.com/reviewlens/reviewlens/pkg/models"
)

// Sample bounds per view.
const (
	ClusterSampleSize   = 3
	SentimentSampleSize = 5
)

// Engine computes summary statistics over an immutable review table.
type Engine struct {
	table *dataset.Table

	// rng drives review sampling. rand.Rand is not safe for concurrent
	// use, so draws are serialized behind mu.
	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandSource replaces the time-seeded default source so sampling is
// reproducible in tests.
func WithRandSource(src rand.Source) Option {
	return func(e *Engine) { e.rng = rand.New(src) }
}

// New builds an engine over the given table.
func New(table *dataset.Table, opts ...Option) *Engine {
	e := &Engine{
		table: table,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DatasetID returns the load id of the underlying table.
func (e *Engine) DatasetID() uuid.UUID { return e.table.ID() }

// DatasetSize returns the number of loaded records.
func (e *Engine) DatasetSize() int { return e.table.Len() }

// Overview returns the headline metrics for the whole table.
func (e *Engine) Overview() models.Overview {
	reviews := e.table.Reviews()
	if len(reviews) == 0 {
		return models.Overview{}
	}

	locations := make(map[string]struct{})
	sum := 0
	for _, r := range reviews {
		locations[r.Location] = struct{}{}
		sum += r.Rating
	}

	return models.Overview{
		TotalReviews:  len(reviews),
		Locations:     len(locations),
		AverageRating: round2(float64(sum) / float64(len(reviews))),
	}
}

// LocationSummary returns mean rating and review count per location,
// sorted lexically by location.
func (e *Engine) LocationSummary() []models.LocationStat {
	type agg struct {
		count int
		sum   int
	}
	groups := make(map[string]*agg)
	for _, r := range e.table.Reviews() {
		a, ok := groups[r.Location]
		if !ok {
			a = &agg{}
			groups[r.Location] = a
		}
		a.count++
		a.sum += r.Rating
	}

	stats := make([]models.LocationStat, 0, len(groups))
	for location, a := range groups {
		stats = append(stats, models.LocationStat{
			Location:      location,
			ReviewCount:   a.count,
			AverageRating: round2(float64(a.sum) / float64(a.count)),
		})
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Location < stats[j].Location })
	return stats
}

// RatingHistogram returns the count of records per rating value over the
// full 1..5 range, ascending and zero-filled.
func (e *Engine) RatingHistogram() []models.RatingBucket {
	counts := make(map[int]int)
	for _, r := range e.table.Reviews() {
		counts[r.Rating]++
	}

	buckets := make([]models.RatingBucket, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		buckets = append(buckets, models.RatingBucket{Rating: rating, Count: counts[rating]})
	}
	return buckets
}

// LocationShares returns the count and percentage share of records per
// location, sorted by count descending (ties broken lexically).
func (e *Engine) LocationShares() []models.LocationShare {
	reviews := e.table.Reviews()
	counts := make(map[string]int)
	for _, r := range reviews {
		counts[r.Location]++
	}

	shares := make([]models.LocationShare, 0, len(counts))
	for location, count := range counts {
		shares = append(shares, models.LocationShare{
			Location: location,
			Count:    count,
			SharePct: percent(count, len(reviews)),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Location < shares[j].Location
	})
	return shares
}

// ClusterSummary returns the count and percentage share per cluster id,
// ascending by id. Cluster ids are not assumed contiguous.
func (e *Engine) ClusterSummary() []models.ClusterStat {
	reviews := e.table.Reviews()
	counts := make(map[int]int)
	for _, r := range reviews {
		counts[r.Cluster]++
	}

	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	stats := make([]models.ClusterStat, 0, len(ids))
	for _, id := range ids {
		stats = append(stats, models.ClusterStat{
			Cluster:  id,
			Count:    counts[id],
			SharePct: percent(counts[id], len(reviews)),
		})
	}
	return stats
}

// ClusterDetail describes the records of one cluster: count, rating
// spread, most frequent location (ties broken lexically) and a bounded
// random sample of review texts. Returns ErrClusterNotFound when no
// record carries the id.
func (e *Engine) ClusterDetail(id int) (models.ClusterDetail, error) {
	matches := e.matching(filter.ByCluster(id))
	if len(matches) == 0 {
		return models.ClusterDetail{}, ErrClusterNotFound
	}

	sum := 0
	minRating, maxRating := matches[0].Rating, matches[0].Rating
	locationCounts := make(map[string]int)
	for _, r := range matches {
		sum += r.Rating
		if r.Rating < minRating {
			minRating = r.Rating
		}
		if r.Rating > maxRating {
			maxRating = r.Rating
		}
		locationCounts[r.Location]++
	}

	return models.ClusterDetail{
		Cluster:       id,
		Count:         len(matches),
		AverageRating: round2(float64(sum) / float64(len(matches))),
		MinRating:     minRating,
		MaxRating:     maxRating,
		TopLocation:   modeLocation(locationCounts),
		SampleReviews: e.sampleTexts(matches, ClusterSampleSize),
	}, nil
}

// ClusterLocationCrosstab maps (location, cluster) pairs to counts.
// Rows are locations in lexical order, columns cluster ids ascending.
func (e *Engine) ClusterLocationCrosstab() models.Crosstab {
	reviews := e.table.Reviews()
	return crosstab(locationKeys(reviews), clusterKeys(reviews), reviews,
		func(r models.Review) (string, string) {
			return r.Location, strconv.Itoa(r.Cluster)
		})
}

// SentimentLocationCrosstab maps (location, sentiment) pairs to counts.
func (e *Engine) SentimentLocationCrosstab() models.Crosstab {
	reviews := e.table.Reviews()
	return crosstab(locationKeys(reviews), sentimentKeys(reviews), reviews,
		func(r models.Review) (string, string) {
			return r.Location, string(r.Sentiment)
		})
}

// ClusterSentimentCrosstab maps (cluster, sentiment) pairs to counts.
// Rows are cluster ids ascending, columns the sentiment categories.
func (e *Engine) ClusterSentimentCrosstab() models.Crosstab {
	reviews := e.table.Reviews()
	return crosstab(clusterKeys(reviews), sentimentKeys(reviews), reviews,
		func(r models.Review) (string, string) {
			return strconv.Itoa(r.Cluster), string(r.Sentiment)
		})
}

// SentimentRatingCrosstab maps (sentiment, rating) pairs to counts.
// Rating columns always span the full 1..5 range.
func (e *Engine) SentimentRatingCrosstab() models.Crosstab {
	reviews := e.table.Reviews()
	return crosstab(sentimentKeys(reviews), []string{"1", "2", "3", "4", "5"}, reviews,
		func(r models.Review) (string, string) {
			return string(r.Sentiment), strconv.Itoa(r.Rating)
		})
}

// SentimentSummary returns count and percentage share per sentiment over
// the whole table. Canonical categories absent from the data report 0.
func (e *Engine) SentimentSummary() []models.SentimentStat {
	return sentimentStats(e.table.Reviews())
}

// SentimentDetail recomputes the sentiment breakdown restricted to one
// location ("all" or empty for the whole table), including mean rating
// per sentiment within the subset. Returns ErrLocationNotFound when a
// concrete location has no records.
func (e *Engine) SentimentDetail(location string) (models.SentimentDetail, error) {
	subset := e.matching(filter.ByLocation(location))
	if len(subset) == 0 && location != "" && location != filter.All {
		return models.SentimentDetail{}, ErrLocationNotFound
	}

	label := location
	if label == "" {
		label = filter.All
	}

	type agg struct {
		count int
		sum   int
	}
	groups := make(map[models.Sentiment]*agg)
	for _, r := range subset {
		a, ok := groups[r.Sentiment]
		if !ok {
			a = &agg{}
			groups[r.Sentiment] = a
		}
		a.count++
		a.sum += r.Rating
	}

	ratings := make([]models.SentimentRating, 0, len(models.Sentiments))
	for _, s := range sentimentCategories(subset) {
		sr := models.SentimentRating{Sentiment: s}
		if a, ok := groups[s]; ok {
			sr.Count = a.count
			sr.AverageRating = round2(float64(a.sum) / float64(a.count))
		}
		ratings = append(ratings, sr)
	}

	return models.SentimentDetail{
		Location:     label,
		TotalReviews: len(subset),
		Stats:        sentimentStats(subset),
		Ratings:      ratings,
	}, nil
}

// SampleReviews draws up to SentimentSampleSize review texts matching a
// sentiment and an optional location filter, without replacement.
// Zero matches is a distinct no-data condition (ErrNoMatchingReviews),
// never a silent empty list.
func (e *Engine) SampleReviews(sentiment models.Sentiment, location string) ([]string, error) {
	matches := e.matching(filter.And(
		filter.BySentiment(sentiment),
		filter.ByLocation(location),
	))
	if len(matches) == 0 {
		return nil, ErrNoMatchingReviews
	}
	return e.sampleTexts(matches, SentimentSampleSize), nil
}

// SampleRecord returns the record at a row index, with all preprocessing
// artifact columns, for the stage-by-stage comparison view.
func (e *Engine) SampleRecord(index int) (models.Review, error) {
	r, ok := e.table.Review(index)
	if !ok {
		return models.Review{}, ErrIndexOutOfRange
	}
	return r, nil
}

// PreprocessingStats compares the mean word count of the raw review text
// against the stopword-filtered column and reports the reduction.
func (e *Engine) PreprocessingStats() models.PreprocessingStats {
	reviews := e.table.Reviews()
	if len(reviews) == 0 {
		return models.PreprocessingStats{}
	}

	before, after := 0, 0
	for _, r := range reviews {
		before += len(strings.Fields(r.Text))
		after += len(strings.Fields(r.Stages.Stopwords))
	}

	avgBefore := float64(before) / float64(len(reviews))
	avgAfter := float64(after) / float64(len(reviews))

	stats := models.PreprocessingStats{
		AvgWordsBefore: round1(avgBefore),
		AvgWordsAfter:  round1(avgAfter),
	}
	if before > 0 {
		stats.ReductionPct = round1((avgBefore - avgAfter) / avgBefore * 100)
	}
	return stats
}

// matching returns the records passing f, in table order.
func (e *Engine) matching(f filter.Filter) []models.Review {
	var matches []models.Review
	for _, r := range e.table.Reviews() {
		if f(r) {
			matches = append(matches, r)
		}
	}
	return matches
}

// sampleTexts draws up to bound review texts without replacement.
// Fewer than bound records returns all of them, in random order.
func (e *Engine) sampleTexts(reviews []models.Review, bound int) []string {
	n := bound
	if len(reviews) < n {
		n = len(reviews)
	}

	e.mu.Lock()
	perm := e.rng.Perm(len(reviews))
	e.mu.Unlock()

	texts := make([]string, 0, n)
	for _, i := range perm[:n] {
		texts = append(texts, reviews[i].Text)
	}
	return texts
}

// sentimentStats computes the zero-filled per-sentiment counts and shares
// for a record subset.
func sentimentStats(reviews []models.Review) []models.SentimentStat {
	counts := make(map[models.Sentiment]int)
	for _, r := range reviews {
		counts[r.Sentiment]++
	}

	categories := sentimentCategories(reviews)
	stats := make([]models.SentimentStat, 0, len(categories))
	for _, s := range categories {
		stats = append(stats, models.SentimentStat{
			Sentiment: s,
			Count:     counts[s],
			SharePct:  percent(counts[s], len(reviews)),
		})
	}
	return stats
}

// sentimentCategories returns the canonical categories plus any
// off-schema labels observed in the subset, the latter sorted lexically.
func sentimentCategories(reviews []models.Review) []models.Sentiment {
	canonical := make(map[models.Sentiment]bool, len(models.Sentiments))
	for _, s := range models.Sentiments {
		canonical[s] = true
	}

	seen := make(map[models.Sentiment]bool)
	var extras []models.Sentiment
	for _, r := range reviews {
		if canonical[r.Sentiment] || seen[r.Sentiment] {
			continue
		}
		seen[r.Sentiment] = true
		extras = append(extras, r.Sentiment)
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })

	return append(append([]models.Sentiment{}, models.Sentiments...), extras...)
}

// crosstab builds a zero-filled 2-D count grid over fixed row and column
// keys. Records whose keys fall outside the grid are ignored.
func crosstab(rows, cols []string, reviews []models.Review, key func(models.Review) (string, string)) models.Crosstab {
	counts := make(map[string]map[string]int, len(rows))
	for _, row := range rows {
		counts[row] = make(map[string]int, len(cols))
		for _, col := range cols {
			counts[row][col] = 0
		}
	}

	for _, r := range reviews {
		row, col := key(r)
		if cells, ok := counts[row]; ok {
			if _, ok := cells[col]; ok {
				cells[col]++
			}
		}
	}

	return models.Crosstab{Rows: rows, Columns: cols, Counts: counts}
}

func locationKeys(reviews []models.Review) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, r := range reviews {
		if !seen[r.Location] {
			seen[r.Location] = true
			keys = append(keys, r.Location)
		}
	}
	sort.Strings(keys)
	return keys
}

func clusterKeys(reviews []models.Review) []string {
	seen := make(map[int]bool)
	var ids []int
	for _, r := range reviews {
		if !seen[r.Cluster] {
			seen[r.Cluster] = true
			ids = append(ids, r.Cluster)
		}
	}
	sort.Ints(ids)

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, strconv.Itoa(id))
	}
	return keys
}

func sentimentKeys(reviews []models.Review) []string {
	categories := sentimentCategories(reviews)
	keys := make([]string, 0, len(categories))
	for _, s := range categories {
		keys = append(keys, string(s))
	}
	return keys
}

// modeLocation returns the most frequent location, breaking ties in
// favor of the lexically smallest name.
func modeLocation(counts map[string]int) string {
	best, bestCount := "", -1
	for location, count := range counts {
		if count > bestCount || (count == bestCount && location < best) {
			best, bestCount = location, count
		}
	}
	return best
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }

func round2(x float64) float64 { return math.Round(x*100) / 100 }

// percent returns part/total as a percentage rounded to one decimal,
// or 0 when total is 0.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}
