package cli

import (
	"fmt"
	"time"
)

// ParseTime parses str as a date in either "YYYY-MM-DD" or RFC3339 format.
// Dates without a time are taken at midnight UTC.
func ParseTime(str string) (time.Time, error) {
	layouts := []string{
		"2006-01-02",
		time.RFC3339,
	}

	var parseErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, str)
		if err == nil {
			return t, nil
		}
		parseErr = err
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s (use YYYY-MM-DD or RFC3339): %w", str, parseErr)
}

// endOfDay moves a date-only bound to the last instant of that day so
// that --until includes it.
func endOfDay(str string, t time.Time) time.Time {
	if len(str) == len("2006-01-02") {
		return t.Add(24*time.Hour - time.Nanosecond)
	}
	return t
}
