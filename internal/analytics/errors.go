package analytics

import "errors"

var (
	ErrClusterNotFound   = errors.New("cluster not found")
	ErrLocationNotFound  = errors.New("location not found")
	ErrNoMatchingReviews = errors.New("no reviews match the selection")
	ErrIndexOutOfRange   = errors.New("sample index out of range")
)
