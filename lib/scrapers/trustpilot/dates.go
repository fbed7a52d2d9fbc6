package trustpilot

import (
	"strings"
	"time"
)

// DateFormat is the normalized form review dates are stored in.
const DateFormat = "2006-01-02"

// layouts the "Date of experience" text has been observed in. Unpadded
// layout verbs accept both padded and unpadded values, so one entry covers
// "July 7, 2025" and "July 07, 2025".
var dateLayouts = []string{
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"2.1.2006",
	"2006-1-2",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate tries each supported layout in order and returns the first
// successful parse.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
