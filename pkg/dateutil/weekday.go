package dateutil

import (
	"fmt"
	"strconv"
	"strings"
)

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var weekdayLookup = func() map[string]int {
	m := make(map[string]int, 21)
	for i, name := range weekdayNames {
		m[strings.ToLower(name)] = i
		m[strings.ToLower(name[:3])] = i
		m[strconv.Itoa(i)] = i
	}
	return m
}()

// WeekdayName returns the full English name for 0 (Sunday) through 6 (Saturday).
func WeekdayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return weekdayNames[weekday]
}

// WeekdayShort returns the three letter abbreviation.
func WeekdayShort(weekday int) string {
	name := WeekdayName(weekday)
	if name == "" {
		return ""
	}
	return name[:3]
}

// ParseWeekday accepts a full day name, a three letter abbreviation or 0-6, case-insensitively.
func ParseWeekday(raw string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if day, ok := weekdayLookup[key]; ok {
		return day, nil
	}
	return 0, fmt.Errorf("unrecognized day of week %q", raw)
}
