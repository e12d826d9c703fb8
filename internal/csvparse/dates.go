package csvparse

import (
	"strings"
	"time"

	"github.com/rocjay1/superstore-analytics/internal/models"
)

// dayFirstLayouts are tried before monthFirstLayouts, so 03/04/2014 is the
// 3rd of April. A value that only makes sense month first (11/30/2014) still
// parses through the fallback.
var dayFirstLayouts = expand(
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2006-01-02",
	"2006/01/02",
)

var monthFirstLayouts = expand(
	"1/2/2006",
	"1-2-2006",
	"1/2/06",
)

var namedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

func expand(layouts ...string) []string {
	out := make([]string, 0, len(layouts)*3)
	for _, l := range layouts {
		out = append(out, l, l+" 15:04", l+" 15:04:05")
	}
	return out
}

// ParseDate parses an order date with day-first resolution. It returns nil for
// empty or unparseable values. The time of day is discarded.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, group := range [][]string{dayFirstLayouts, monthFirstLayouts, namedLayouts} {
		for _, layout := range group {
			if t, err := time.Parse(layout, s); err == nil {
				day := models.CalendarDate(t)
				return &day
			}
		}
	}
	return nil
}
