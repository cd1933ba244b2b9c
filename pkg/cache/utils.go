package cache

import (
	"fmt"
	"time"
)

// GenerateKey creates a cache key with prefix and ID.
func GenerateKey(prefix string, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

// BucketKey creates a ticker cache key truncated to a coarse minute bucket,
// so all requests within the same window share one entry.
func BucketKey(ticker string, t time.Time, bucketMinutes int) string {
	if bucketMinutes <= 0 {
		bucketMinutes = 1
	}
	bucket := t.UTC().Truncate(time.Duration(bucketMinutes) * time.Minute)
	return fmt.Sprintf("sentiment:%s:%s", ticker, bucket.Format("200601021504"))
}

// DailyKey creates the per-day ticker key. It is overwritten on every
// aggregation, so it always holds the day's last-known sentiment.
func DailyKey(ticker string, t time.Time) string {
	return fmt.Sprintf("sentiment:daily:%s:%s", ticker, t.UTC().Format("2006-01-02"))
}
