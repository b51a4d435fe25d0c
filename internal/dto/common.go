package dto

import "time"

// DateLayout is the wire format for calendar dates (ISO-8601 date).
const DateLayout = "2006-01-02"

// ParseDate parses a wire-format date string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a time as a wire-format date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
