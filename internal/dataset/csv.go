package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/reviewlens/reviewlens/pkg/models"
)

// Required CSV columns. The preprocessing artifact columns are optional;
// a dataset exported before the preprocessing stages were materialized
// still loads, with empty stage fields.
var requiredColumns = []string{"review", "rating", "location", "cluster", "predicted_sentiment"}

// Load reads the review CSV at path into a Table.
// A missing file, unreadable content, or a header without the required
// columns is a load error; the caller decides whether to abort or degrade
// to an empty table. Rows that fail to parse (non-numeric rating or
// cluster, rating outside 1..5) are skipped and counted, not fatal.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	table, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return table, nil
}

func parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var (
		reviews []models.Review
		skipped int
	)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		rec, ok := parseRow(row, cols)
		if !ok {
			skipped++
			continue
		}
		reviews = append(reviews, rec)
	}

	if skipped > 0 {
		slog.Warn("skipped malformed dataset rows", "skipped", skipped, "loaded", len(reviews))
	}

	return New(reviews), nil
}

func parseRow(row []string, cols map[string]int) (models.Review, bool) {
	rating, err := strconv.Atoi(strings.TrimSpace(field(row, cols, "rating")))
	if err != nil || rating < 1 || rating > 5 {
		return models.Review{}, false
	}
	cluster, err := strconv.Atoi(strings.TrimSpace(field(row, cols, "cluster")))
	if err != nil || cluster < 0 {
		return models.Review{}, false
	}

	return models.Review{
		Text:      field(row, cols, "review"),
		Rating:    rating,
		Location:  strings.TrimSpace(field(row, cols, "location")),
		Cluster:   cluster,
		Sentiment: models.NormalizeSentiment(field(row, cols, "predicted_sentiment")),
		Stages: models.PreprocessingStages{
			Clean:     field(row, cols, "clean_data"),
			Casefold:  field(row, cols, "casefold_data"),
			Tokenized: field(row, cols, "tokenizing_data"),
			Stopwords: field(row, cols, "stopwords_data"),
			Stemmed:   field(row, cols, "stemming_data"),
		},
	}, true
}

// field returns the named column of a row, or "" when the column is
// absent from the header or the row is short.
func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
