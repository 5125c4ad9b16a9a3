package services

import (
	"time"

	"trackhub/backend/models"
)

// Layouts accepted for record date fields. Records come from forms and
// imports, so both bare dates and full timestamps show up.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseDate parses an ISO-ish date string. The boolean is false when the
// string does not parse; callers must tolerate that rather than error out.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inDateRange applies an inclusive date-range filter to a record date. A
// record with an unparsable date is excluded when a bound is active and
// included otherwise. An unparsable bound degrades to no bound.
func inDateRange(dateStr string, r models.DateRange) bool {
	start, hasStart := parseDate(r.Start)
	end, hasEnd := parseDate(r.End)
	if !hasStart && !hasEnd {
		return true
	}

	t, ok := parseDate(dateStr)
	if !ok {
		return false
	}
	if hasStart && t.Before(start) {
		return false
	}
	if hasEnd {
		// A bare-date end bound covers the whole day, so a record stored
		// with a timestamp on that day still falls inside the range.
		if bareDate(r.End) {
			end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		if t.After(end) {
			return false
		}
	}
	return true
}

func bareDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// trendDateFormat is the bucket label used by date-keyed groupings.
const trendDateFormat = "Jan 02, 2006"
