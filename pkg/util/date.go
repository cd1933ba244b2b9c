package util

import (
	"fmt"
	"time"
)

var timeLayouts = []string{
	time.RFC3339,
	"20060102T150405", // Alpha Vantage time_published
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses t against the known provider time layouts.
func ParseTime(t string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, t); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format: %q", t)
}

// ParseTimeDefault parses t, returning def when parsing fails.
func ParseTimeDefault(t string, def time.Time) time.Time {
	parsed, err := ParseTime(t)
	if err != nil {
		return def
	}
	return parsed
}
