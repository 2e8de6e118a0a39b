package shipstation

import (
	"strings"
	"time"
)

// DateFormat is how ShipStation expects feed timestamps
const DateFormat = "01/02/2006 15:04"

var timestampLayouts = []string{
	DateFormat,
	"01/02/2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

// ParseTimestamp parses a ShipStation date in UTC
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp formats t in UTC the way the feed expects
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(DateFormat)
}
