package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a range from two instants, ignoring their time of day.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: CalendarDate(start), End: CalendarDate(end)}
}

// Contains reports whether the calendar date of t lies within the range.
func (d DateRange) Contains(t time.Time) bool {
	day := CalendarDate(t)
	return !day.Before(d.Start) && !day.After(d.End)
}

type dateRangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (d DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateRangeJSON{
		Start: d.Start.Format(DateLayout),
		End:   d.End.Format(DateLayout),
	})
}

func (d *DateRange) UnmarshalJSON(data []byte) error {
	var raw dateRangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := time.Parse(DateLayout, raw.Start)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", raw.Start, err)
	}
	end, err := time.Parse(DateLayout, raw.End)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", raw.End, err)
	}
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", raw.End, raw.Start)
	}
	*d = NewDateRange(start, end)
	return nil
}

// Selection is the set of constraints chosen in the filter controls.
// Constraints are AND-combined. A column missing from Categorical is not
// constrained; a column mapped to an empty slice excludes every row.
type Selection struct {
	DateRange   *DateRange          `json:"dateRange,omitempty"`
	Categorical map[string][]string `json:"categorical,omitempty"`
}

// Clone returns a deep copy of the selection.
func (s Selection) Clone() Selection {
	out := Selection{}
	if s.DateRange != nil {
		dr := *s.DateRange
		out.DateRange = &dr
	}
	if s.Categorical != nil {
		out.Categorical = make(map[string][]string, len(s.Categorical))
		for k, v := range s.Categorical {
			out.Categorical[k] = append([]string{}, v...)
		}
	}
	return out
}

// With returns a copy of the selection restricting column to values.
func (s Selection) With(column string, values []string) Selection {
	out := s.Clone()
	if out.Categorical == nil {
		out.Categorical = make(map[string][]string)
	}
	out.Categorical[column] = append([]string{}, values...)
	return out
}
