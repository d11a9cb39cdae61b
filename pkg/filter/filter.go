// Package filter provides composable predicates over review records.
// Filters are pure functions with no side effects; the zero combinators
// never mutate the records they inspect.
package filter

import "github.com/reviewlens/reviewlens/pkg/models"

// All is the location sentinel meaning "no location filter".
const All = "all"

// Filter reports whether a review belongs to a selected subset.
type Filter func(models.Review) bool

// Everything matches every record.
func Everything() Filter {
	return func(models.Review) bool { return true }
}

// ByLocation matches records for one location. An empty string or the
// All sentinel matches everything.
func ByLocation(location string) Filter {
	if location == "" || location == All {
		return Everything()
	}
	return func(r models.Review) bool { return r.Location == location }
}

// ByCluster matches records carrying the given cluster label.
func ByCluster(id int) Filter {
	return func(r models.Review) bool { return r.Cluster == id }
}

// BySentiment matches records carrying the given sentiment label.
func BySentiment(s models.Sentiment) Filter {
	return func(r models.Review) bool { return r.Sentiment == s }
}

// And combines filters; a record must pass all of them.
func And(filters ...Filter) Filter {
	return func(r models.Review) bool {
		for _, f := range filters {
			if !f(r) {
				return false
			}
		}
		return true
	}
}
