// Package schedule merges the recurring base schedule with per-date overrides.
// Everything here is pure: no I/O, no clock, no shared state.
package schedule

import (
	"sort"

	"github.com/noah-isme/schedlume-api/internal/models"
	"github.com/noah-isme/schedlume-api/pkg/dateutil"
)

// Resolve returns the classes that occur on date, ordered by start time.
//
// Base schedules on the date's weekday are emitted once each, modified by at
// most one edit or cancel override. Add overrides contribute extra classes.
// Overrides for other dates, overrides naming a base schedule that is absent
// and overrides of unknown kind are ignored. Canceled classes stay in the
// result with IsCanceled set. notes may be nil.
func Resolve(date dateutil.Date, base []models.SubjectSchedule, overrides []models.DayOverride, notes NoteIndex) []models.ResolvedClass {
	day := date.String()
	weekday := date.Weekday()
	targeted, added := partition(day, overrides)

	out := make([]models.ResolvedClass, 0, len(base)+len(added))
	seen := make(map[string]struct{}, len(base))
	for _, b := range base {
		if b.DayOfWeek != weekday {
			continue
		}
		if _, dup := seen[b.ID]; dup {
			continue
		}
		seen[b.ID] = struct{}{}

		rc := fromBase(day, b)
		if o, ok := targeted[b.ID]; ok {
			applyOverride(&rc, o)
		}
		out = append(out, rc)
	}
	for _, o := range added {
		out = append(out, fromAdd(day, o))
	}

	if notes != nil {
		for i := range out {
			out[i].HasNote = notes.HasNote(out[i].InstanceKey)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return dateutil.Minutes(out[i].StartTime) < dateutil.Minutes(out[j].StartTime)
	})
	return out
}

// ResolveRange resolves every date from start to end inclusive.
func ResolveRange(start, end dateutil.Date, base []models.SubjectSchedule, overrides []models.DayOverride, notes NoteIndex) ([]models.DaySchedule, error) {
	dates, err := dateutil.Range(start, end)
	if err != nil {
		return nil, err
	}
	days := make([]models.DaySchedule, 0, len(dates))
	for _, d := range dates {
		days = append(days, models.DaySchedule{
			Date:    d.String(),
			Weekday: d.Weekday(),
			Classes: Resolve(d, base, overrides, notes),
		})
	}
	return days, nil
}

// Summarize condenses a resolved day into counters for month views.
func Summarize(day models.DaySchedule) models.DaySummary {
	summary := models.DaySummary{Date: day.Date, Weekday: day.Weekday}
	for _, c := range day.Classes {
		switch {
		case c.IsCanceled:
			summary.CanceledCount++
		case c.IsAdded:
			summary.AddedCount++
			summary.ClassCount++
		case c.IsOverridden:
			summary.OverriddenCount++
			summary.ClassCount++
		default:
			summary.ClassCount++
		}
		if c.HasNote {
			summary.NoteCount++
		}
	}
	return summary
}

// Orphaned returns overrides that reference a base schedule missing from base.
func Orphaned(base []models.SubjectSchedule, overrides []models.DayOverride) []models.DayOverride {
	ids := make(map[string]struct{}, len(base))
	for _, b := range base {
		ids[b.ID] = struct{}{}
	}
	var orphans []models.DayOverride
	for _, o := range overrides {
		if !o.Kind.RequiresBase() {
			continue
		}
		if _, ok := ids[o.BaseID()]; !ok {
			orphans = append(orphans, o)
		}
	}
	return orphans
}

// partition splits the overrides for day into edit/cancel overrides keyed by
// base schedule id and add overrides in input order. When two overrides
// collide, the most recently updated wins and equal timestamps go to the
// later one in the input.
func partition(day string, overrides []models.DayOverride) (map[string]models.DayOverride, []models.DayOverride) {
	targeted := make(map[string]models.DayOverride)
	addIndex := make(map[string]int)
	var added []models.DayOverride

	for _, o := range overrides {
		if o.Date != day {
			continue
		}
		switch o.Kind {
		case models.OverrideEdit, models.OverrideCancel:
			baseID := o.BaseID()
			if baseID == "" {
				continue
			}
			if current, ok := targeted[baseID]; !ok || supersedes(o, current) {
				targeted[baseID] = o
			}
		case models.OverrideAdd:
			if idx, ok := addIndex[o.ID]; ok {
				if supersedes(o, added[idx]) {
					added[idx] = o
				}
				continue
			}
			addIndex[o.ID] = len(added)
			added = append(added, o)
		}
	}
	return targeted, added
}

func supersedes(candidate, current models.DayOverride) bool {
	return !candidate.UpdatedAt.Before(current.UpdatedAt)
}

func fromBase(day string, b models.SubjectSchedule) models.ResolvedClass {
	baseID := b.ID
	return models.ResolvedClass{
		InstanceKey:    InstanceKey(day, b.ID),
		BaseScheduleID: &baseID,
		Date:           day,
		SubjectName:    b.SubjectName,
		StartTime:      b.StartTime,
		EndTime:        b.EndTime,
		Location:       b.Location,
		Professor:      b.Professor,
		Color:          b.Color,
	}
}

func applyOverride(rc *models.ResolvedClass, o models.DayOverride) {
	overrideID := o.ID
	switch o.Kind {
	case models.OverrideCancel:
		rc.OverrideID = &overrideID
		rc.IsCanceled = true
	case models.OverrideEdit:
		rc.OverrideID = &overrideID
		rc.IsOverridden = true
		rc.SubjectName = o.SubjectName
		rc.StartTime = o.StartTime
		rc.EndTime = o.EndTime
		rc.Location = o.Location
		rc.Professor = o.Professor
		rc.Color = o.Color
	case models.OverrideAdd:
		// add overrides never target a base schedule
	}
}

func fromAdd(day string, o models.DayOverride) models.ResolvedClass {
	overrideID := o.ID
	return models.ResolvedClass{
		InstanceKey: AddInstanceKey(day, o.ID),
		OverrideID:  &overrideID,
		Date:        day,
		SubjectName: o.SubjectName,
		StartTime:   o.StartTime,
		EndTime:     o.EndTime,
		Location:    o.Location,
		Professor:   o.Professor,
		Color:       o.Color,
		IsAdded:     true,
	}
}
