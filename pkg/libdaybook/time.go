package libdaybook

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

// DayKeyLayout is the calendar-day grouping key format.
const DayKeyLayout = "2006-01-02"

// DayKey returns the calendar-day grouping key of the given time.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a calendar-day grouping key.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.Parse(DayKeyLayout, key)
	return t, errors.Wrap(err, "could not parse day key")
}

// FormatDate renders a stored timestamp for display, e.g. "2024.05.01 Wed 15:04".
// It tolerates any reasonable timestamp format the server may have stored.
func FormatDate(value string) (string, error) {
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return "", errors.Wrap(err, "could not parse date")
	}
	return t.Local().Format("2006.01.02 Mon 15:04"), nil
}
