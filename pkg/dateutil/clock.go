package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])?$`)

// ParseClock accepts "H:mm", "HH:mm" or "H:mm AM/PM" and returns the 24-hour "HH:mm" form.
func ParseClock(raw string) (string, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", fmt.Errorf("invalid time %q", raw)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if minute > 59 {
		return "", fmt.Errorf("invalid time %q: minutes out of range", raw)
	}

	if meridiem := strings.ToUpper(m[3]); meridiem != "" {
		if hour < 1 || hour > 12 {
			return "", fmt.Errorf("invalid time %q: hour out of range for 12-hour clock", raw)
		}
		switch {
		case meridiem == "AM" && hour == 12:
			hour = 0
		case meridiem == "PM" && hour != 12:
			hour += 12
		}
	} else if hour > 23 {
		return "", fmt.Errorf("invalid time %q: hour out of range", raw)
	}

	return FormatClock(hour, minute), nil
}

// IsClock reports whether raw is already a normalized 24-hour "HH:mm" value.
func IsClock(raw string) bool {
	if len(raw) != 5 {
		return false
	}
	normalized, err := ParseClock(raw)
	return err == nil && normalized == raw
}

// FormatClock renders hour and minute as "HH:mm".
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// Minutes converts a normalized "HH:mm" value to minutes since midnight; invalid input yields -1.
func Minutes(clock string) int {
	normalized, err := ParseClock(clock)
	if err != nil {
		return -1
	}
	hour, _ := strconv.Atoi(normalized[:2])
	minute, _ := strconv.Atoi(normalized[3:])
	return hour*60 + minute
}

// Format12h renders a normalized clock as "h:mm AM/PM".
func Format12h(clock string) string {
	mins := Minutes(clock)
	if mins < 0 {
		return clock
	}
	hour, minute := mins/60, mins%60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}
