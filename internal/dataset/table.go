// Package dataset loads the pre-computed review CSV and exposes it as an
// immutable in-memory table. The table is built once at startup and only
// read afterwards, so it is safe to share across requests without locking.
package dataset

import (
	"github.com/google/uuid"
	"github.com/reviewlens/reviewlens/pkg/models"
)

// Table is a read-only handle over the loaded review records.
// Every table carries a UUID assigned at construction, used for cache
// keys and log correlation.
type Table struct {
	id      uuid.UUID
	reviews []models.Review
}

// New builds a table over the given records. The caller hands over
// ownership of the slice and must not mutate it afterwards.
func New(reviews []models.Review) *Table {
	return &Table{id: uuid.New(), reviews: reviews}
}

// Empty returns a table with zero records. Used as the degraded
// substitute when the dataset file cannot be loaded.
func Empty() *Table {
	return New(nil)
}

// ID returns the load id of this table.
func (t *Table) ID() uuid.UUID { return t.id }

// Len returns the number of records.
func (t *Table) Len() int { return len(t.reviews) }

// Reviews returns the backing records in load order. Callers must treat
// the slice as read-only.
func (t *Table) Reviews() []models.Review { return t.reviews }

// Review returns the record at index i, or false when i is out of range.
func (t *Table) Review(i int) (models.Review, bool) {
	if i < 0 || i >= len(t.reviews) {
		return models.Review{}, false
	}
	return t.reviews[i], true
}
