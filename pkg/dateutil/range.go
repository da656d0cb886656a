package dateutil

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

var rruleWeekdays = [7]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// MaxRangeDays caps range enumeration so a malformed request cannot expand unbounded.
const MaxRangeDays = 366

// Range enumerates every date from start to end inclusive.
func Range(start, end Date) ([]Date, error) {
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: start.Time(),
		Until:   end.Time(),
	})
	if err != nil {
		return nil, fmt.Errorf("build daily rule: %w", err)
	}
	return toDates(rule.All()), nil
}

// WeekdayDates enumerates the dates between start and end (inclusive) that fall on weekday (0=Sunday).
func WeekdayDates(start, end Date, weekday int) ([]Date, error) {
	if weekday < 0 || weekday > 6 {
		return nil, fmt.Errorf("weekday %d out of range", weekday)
	}
	if err := checkRange(start, end); err != nil {
		return nil, err
	}
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   start.Time(),
		Until:     end.Time(),
		Byweekday: []rrule.Weekday{rruleWeekdays[weekday]},
	})
	if err != nil {
		return nil, fmt.Errorf("build weekly rule: %w", err)
	}
	return toDates(rule.All()), nil
}

func checkRange(start, end Date) error {
	if end.Before(start) {
		return fmt.Errorf("range end %s is before start %s", end, start)
	}
	if start.DaysUntil(end) >= MaxRangeDays {
		return fmt.Errorf("range %s..%s exceeds %d days", start, end, MaxRangeDays)
	}
	return nil
}

func toDates(times []time.Time) []Date {
	out := make([]Date, 0, len(times))
	for _, t := range times {
		out = append(out, FromTime(t))
	}
	return out
}
