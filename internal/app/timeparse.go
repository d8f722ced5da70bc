package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseDateTime accepts an absolute timestamp, a bare "HH:MM" (today), or a
// day keyword (today, tomorrow, yesterday, +Nd, -Nd) optionally followed by
// a "HH:MM" time. Keywords without a time resolve to local midnight.
func parseDateTime(input string, now time.Time, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty time")
	}

	dayPart, clockPart, hasClock := strings.Cut(s, " ")
	if day, ok, err := parseDay(dayPart, now, loc); err != nil {
		return time.Time{}, err
	} else if ok {
		if !hasClock {
			return day, nil
		}
		return atClock(day, strings.TrimSpace(clockPart), loc)
	}

	if t, err := time.ParseInLocation("15:04", s, loc); err == nil {
		y, m, d := now.In(loc).Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
	}

	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if ts, err := time.ParseInLocation(layout, strings.TrimSpace(input), loc); err == nil {
			return ts, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported datetime format: %s", input)
}

// parseDay resolves a day keyword to local midnight.
func parseDay(s string, now time.Time, loc *time.Location) (time.Time, bool, error) {
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch s {
	case "today":
		return today, true, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), true, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), true, nil
	}

	if (strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-")) && strings.HasSuffix(s, "d") {
		n, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return time.Time{}, false, fmt.Errorf("invalid relative day: %s", s)
		}
		return today.AddDate(0, 0, n), true, nil
	}
	return time.Time{}, false, nil
}

func atClock(day time.Time, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q (want HH:MM)", hhmm)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc), nil
}

// parseDate resolves --date values to local midnight; empty means today.
func parseDate(input string, now time.Time, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(input) == "" {
		input = "today"
	}
	t, err := parseDateTime(input, now, loc)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}
