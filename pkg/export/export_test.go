package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"name", "note"},
		Rows:    []map[string]string{{"name": "a", "note": "x, y"}, {"name": "b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "name,note\na,\"x, y\"\nb,\n", string(out))

	_, err = NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(PDFDocument{
		Title: "Weekly Schedule",
		Sections: []PDFSection{
			{Heading: "Monday", Data: Dataset{Headers: []string{"subject_name", "start_time"}, Rows: []map[string]string{{"subject_name": "Physics", "start_time": "09:00"}}}, Accent: []string{"#F97B5C"}},
			{Heading: "Tuesday", Data: Dataset{Headers: []string{"subject_name"}}},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = NewPDFExporter().Render(PDFDocument{})
	assert.Error(t, err)
}

func TestParseHex(t *testing.T) {
	r, g, b, ok := parseHex("#F97B5C")
	require.True(t, ok)
	assert.Equal(t, []int{0xF9, 0x7B, 0x5C}, []int{r, g, b})
	_, _, _, ok = parseHex("coral")
	assert.False(t, ok)
	assert.Equal(t, "Subject Name", headerLabel("subject_name"))
}

func TestICSExporterRender(t *testing.T) {
	start := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	out, err := NewICSExporter("-//test//EN", "Classes").Render([]CalendarEvent{
		{UID: "2024-03-11:phys", Summary: "Physics", Location: "Lab A", Start: start, End: start.Add(90 * time.Minute)},
		{UID: "2024-03-11:calc", Summary: "Calculus", Start: start.Add(4 * time.Hour), End: start.Add(5 * time.Hour), Cancelled: true},
	}, start)
	require.NoError(t, err)

	cal, err := ical.ParseCalendar(strings.NewReader(string(out)))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "2024-03-11:phys", events[0].Id())
	assert.Equal(t, "Physics", events[0].GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "CANCELLED", events[1].GetProperty(ical.ComponentPropertyStatus).Value)
}

func TestICSExporterRejectsBadEvents(t *testing.T) {
	start := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)
	_, err := NewICSExporter("-//test//EN", "").Render([]CalendarEvent{{Summary: "x", Start: start, End: start.Add(time.Hour)}}, start)
	assert.Error(t, err)
	_, err = NewICSExporter("-//test//EN", "").Render([]CalendarEvent{{UID: "u", Start: start, End: start}}, start)
	assert.Error(t, err)
}
