package cache

import (
	"crypto/sha256"
	"fmt"

	"github.com/google/uuid"
)

// SummaryKey identifies a computed summary by dataset load id and the
// request URI that produced it. Keying on the dataset id means a restart
// with a fresh dataset never serves stale summaries.
func SummaryKey(datasetID uuid.UUID, requestURI string) string {
	hash := sha256.Sum256([]byte(requestURI))
	return fmt.Sprintf("summary:%s:%x", datasetID, hash[:8])
}

func RateLimitKey(clientIP string) string {
	return fmt.Sprintf("ratelimit:%s", clientIP)
}
