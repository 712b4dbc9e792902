package dates

import (
	"time"

	"github.com/teambition/rrule-go"
)

// Sundays returns every Sunday between start and end, both inclusive. An
// inverted range or one containing no Sunday yields an empty slice.
func Sundays(start, end time.Time) []time.Time {
	start = Midnight(start)
	end = Midnight(end)
	if end.Before(start) {
		return nil
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.DAILY,
		Dtstart:   start,
		Until:     end,
		Byweekday: []rrule.Weekday{rrule.SU},
	})
	if err != nil {
		return nil
	}

	occurrences := rule.All()
	sundays := make([]time.Time, 0, len(occurrences))
	for _, d := range occurrences {
		sundays = append(sundays, Midnight(d))
	}
	return sundays
}

// Midnight truncates a time to its date in UTC.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// FormatDate renders a date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
