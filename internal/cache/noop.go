package cache

import (
	"context"
	"time"
)

// Noop is the Cache used when Redis is not configured. Every read misses
// and every write succeeds silently, so callers degrade to recomputing
// summaries on each request, which is always correct.
type Noop struct{}

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (Noop) Delete(context.Context, string) error                     { return nil }
func (Noop) Ping(context.Context) error                               { return nil }
func (Noop) IncrWithExpiry(context.Context, string, time.Duration) (int64, error) {
	return 0, nil
}
