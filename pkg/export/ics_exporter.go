package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// CalendarEvent is a single timed entry for an iCalendar feed.
type CalendarEvent struct {
	UID         string
	Summary     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Cancelled   bool
}

// ICSExporter renders events as an RFC 5545 calendar.
type ICSExporter struct {
	productID string
	name      string
}

// NewICSExporter constructs an iCalendar exporter.
func NewICSExporter(productID, name string) *ICSExporter {
	return &ICSExporter{productID: productID, name: name}
}

// Render serialises events; stamp is written as DTSTAMP on every event.
func (e *ICSExporter) Render(events []CalendarEvent, stamp time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(e.productID)
	if e.name != "" {
		cal.SetXWRCalName(e.name)
	}

	for _, ev := range events {
		if ev.UID == "" {
			return nil, fmt.Errorf("ics event %q has no uid", ev.Summary)
		}
		if !ev.End.After(ev.Start) {
			return nil, fmt.Errorf("ics event %s ends before it starts", ev.UID)
		}
		vevent := cal.AddEvent(ev.UID)
		vevent.SetDtStampTime(stamp)
		vevent.SetStartAt(ev.Start)
		vevent.SetEndAt(ev.End)
		vevent.SetSummary(ev.Summary)
		if ev.Location != "" {
			vevent.SetLocation(ev.Location)
		}
		if ev.Description != "" {
			vevent.SetDescription(ev.Description)
		}
		if ev.Cancelled {
			vevent.SetProperty(ical.ComponentPropertyStatus, "CANCELLED")
		} else {
			vevent.SetProperty(ical.ComponentPropertyStatus, "CONFIRMED")
		}
	}

	return []byte(cal.Serialize()), nil
}
