package csvimport

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/schedlume-api/pkg/csvparse"
)

func TestResolveHeadersCanonical(t *testing.T) {
	m := ResolveHeaders([]string{"subject_name", "day_of_week", "start_time", "end_time", "location", "professor", "color"})
	for i, f := range CanonicalFields {
		assert.Equal(t, i, m.Index[f])
	}
	assert.Empty(t, m.Missing())
	assert.Empty(t, m.Ignored)
}

func TestResolveHeadersAliases(t *testing.T) {
	aliased := ResolveHeaders([]string{"Class", "Day", "From", "To", "Room", "Instructor"})
	canonical := ResolveHeaders([]string{"subject_name", "day_of_week", "start_time", "end_time", "location", "professor"})
	assert.Equal(t, canonical.Index, aliased.Index)

	m := ResolveHeaders([]string{" COURSE_NAME ", "Weekday", "Begin", "Finish", "Venue", "Lecturer", "Colour"})
	assert.Len(t, m.Index, 7)
	assert.Equal(t, 6, m.Index[FieldColor])
}

func TestResolveHeadersUnknownAndDuplicates(t *testing.T) {
	m := ResolveHeaders([]string{"subject", "notes", "day", "class", "start", "end", ""})
	assert.Equal(t, 0, m.Index[FieldSubjectName])
	assert.Equal(t, []string{"notes"}, m.Ignored)
	assert.Equal(t, []string{"class"}, m.Duplicates)
	assert.Empty(t, m.Missing())
}

func TestHeaderMapMissingAndValue(t *testing.T) {
	m := ResolveHeaders([]string{"subject", "room"})
	assert.Equal(t, []Field{FieldDayOfWeek, FieldStartTime, FieldEndTime}, m.Missing())
	assert.Equal(t, "Lab", m.Value([]string{"Math", "  Lab "}, FieldLocation))
	assert.Equal(t, "", m.Value([]string{"Math"}, FieldLocation))
	assert.Equal(t, "", m.Value([]string{"Math", "Lab"}, FieldColor))
}

func TestInspectHeadersReadsOnlyHeaderLine(t *testing.T) {
	m, err := InspectHeaders(strings.NewReader("Class,Day,From,To,Notes\n\"unterminated,Mon\n"))
	require.NoError(t, err)
	assert.True(t, m.Has(FieldSubjectName))
	assert.Empty(t, m.Missing())
	assert.Equal(t, []string{"notes"}, m.Ignored)

	_, err = InspectHeaders(strings.NewReader(""))
	assert.ErrorIs(t, err, csvparse.ErrEmpty)
}
