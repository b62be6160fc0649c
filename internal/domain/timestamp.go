package domain

import (
	"fmt"
	"strings"
	"time"
)

// timestampLayouts are tried in order when parsing instants received from the
// login flow or the issue backend.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an instant in any of the accepted layouts.
// An empty string or a value that fits no layout yields ErrMalformedDate.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedDate)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
}

// OptionalTimestamp is ParseTimestamp for fields where a bad value degrades to absent.
func OptionalTimestamp(s string) *time.Time {
	t, err := ParseTimestamp(s)
	if err != nil {
		return nil
	}
	return &t
}
