package form

import (
	"strings"
	"time"
)

type dateLayout struct {
	parse  string
	format string
}

// Dates are written day first with slashes, dashes or dots.
var dateLayouts = []dateLayout{
	{parse: "2/1/2006", format: "02/01/2006"},
	{parse: "2-1-2006", format: "02-01-2006"},
	{parse: "2.1.2006", format: "02.01.2006"},
}

// ParseDate parses a day-first date and reports the layout to format
// derived dates with.
func ParseDate(s string) (time.Time, string, bool) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l.parse, s); err == nil {
			return t, l.format, true
		}
	}
	return time.Time{}, "", false
}

// EndOfWeek returns the Friday belonging to a Monday start date, written in
// the same style as start. It returns "" when start is blank or not a date.
func EndOfWeek(start string) string {
	if strings.TrimSpace(start) == "" {
		return ""
	}
	t, layout, ok := ParseDate(start)
	if !ok {
		return ""
	}
	return t.AddDate(0, 0, 4).Format(layout)
}

// WeekDates returns Monday and Friday of the week offset weeks away from the
// week containing base. A blank base means now. Both results are empty when
// base cannot be parsed.
func WeekDates(base string, offset int, now time.Time) (monday, friday string) {
	day, layout := now, dateLayouts[0].format
	if strings.TrimSpace(base) != "" {
		var ok bool
		if day, layout, ok = ParseDate(base); !ok {
			return "", ""
		}
	}

	sinceMonday := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, 7*offset-sinceMonday)
	return start.Format(layout), start.AddDate(0, 0, 4).Format(layout)
}
