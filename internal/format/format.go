package format

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	dateLayout     = "Monday, January 2, 2006"
	dateTimeLayout = "Jan 2, 2006 at 3:04 PM"
)

// Date renders the market-day header line: full weekday, long month, numeric
// day and year, en-US order.
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// DateTime renders the last-updated header line: short date plus a 12-hour
// clock time.
func DateTime(t time.Time) string {
	return t.Format(dateTimeLayout)
}

// Price renders a price in dollars with exactly two decimal places. A
// non-finite price renders as "N/A" rather than leaking NaN into the page.
func Price(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", p)
}

// ParseTimestamp parses the loosely formatted timestamps the back office
// publishes. Returns the zero time when nothing matches.
func ParseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	}

	for _, l := range layouts {
		if ts, err := time.Parse(l, raw); err == nil {
			return ts
		}
	}

	return time.Time{}
}
