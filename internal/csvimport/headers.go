// Package csvimport turns parsed CSV rows into base schedules and back.
package csvimport

import (
	"io"
	"strings"

	"github.com/noah-isme/schedlume-api/pkg/csvparse"
)

// Field is a canonical schedule column.
type Field string

const (
	FieldSubjectName Field = "subject_name"
	FieldDayOfWeek   Field = "day_of_week"
	FieldStartTime   Field = "start_time"
	FieldEndTime     Field = "end_time"
	FieldLocation    Field = "location"
	FieldProfessor   Field = "professor"
	FieldColor       Field = "color"
)

// CanonicalFields is the export column order.
var CanonicalFields = []Field{
	FieldSubjectName,
	FieldDayOfWeek,
	FieldStartTime,
	FieldEndTime,
	FieldLocation,
	FieldProfessor,
	FieldColor,
}

// RequiredFields must be present as columns for an import to proceed.
var RequiredFields = []Field{FieldSubjectName, FieldDayOfWeek, FieldStartTime, FieldEndTime}

var headerAliases = map[Field][]string{
	FieldSubjectName: {"subject_name", "subject", "class", "course", "class_name", "course_name", "name"},
	FieldDayOfWeek:   {"day_of_week", "day", "weekday"},
	FieldStartTime:   {"start_time", "start", "from", "begin", "starts"},
	FieldEndTime:     {"end_time", "end", "to", "finish", "ends"},
	FieldLocation:    {"location", "room", "place", "venue", "classroom"},
	FieldProfessor:   {"professor", "teacher", "instructor", "lecturer", "prof"},
	FieldColor:       {"color", "colour"},
}

var aliasLookup = func() map[string]Field {
	m := make(map[string]Field)
	for _, field := range CanonicalFields {
		for _, alias := range headerAliases[field] {
			m[alias] = field
		}
	}
	return m
}()

// HeaderMap records which raw column feeds each canonical field.
type HeaderMap struct {
	Index      map[Field]int
	Ignored    []string
	Duplicates []string
}

// ResolveHeaders maps raw header names onto canonical fields. Matching is
// case-insensitive and trimmed; unknown headers are ignored and a second
// header resolving to an already mapped field is ignored as a duplicate.
func ResolveHeaders(raw []string) HeaderMap {
	m := HeaderMap{Index: make(map[Field]int, len(CanonicalFields))}
	keys := csvparse.NormalizeHeaders(raw)
	for i, header := range raw {
		key := keys[i]
		field, ok := aliasLookup[key]
		if !ok {
			if key != "" {
				m.Ignored = append(m.Ignored, header)
			}
			continue
		}
		if _, taken := m.Index[field]; taken {
			m.Duplicates = append(m.Duplicates, header)
			continue
		}
		m.Index[field] = i
	}
	return m
}

// InspectHeaders reads only the header line of r and resolves it.
func InspectHeaders(r io.Reader) (HeaderMap, error) {
	raw, err := csvparse.Headers(r)
	if err != nil {
		return HeaderMap{}, err
	}
	return ResolveHeaders(raw), nil
}

// Has reports whether field was mapped.
func (m HeaderMap) Has(field Field) bool {
	_, ok := m.Index[field]
	return ok
}

// Missing lists required fields without a column, in canonical order.
func (m HeaderMap) Missing() []Field {
	var missing []Field
	for _, field := range RequiredFields {
		if !m.Has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// Value returns the trimmed cell for field with line breaks normalized to LF,
// or "" when unmapped or the row is short.
func (m HeaderMap) Value(row []string, field Field) string {
	idx, ok := m.Index[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return csvparse.NormalizeNewlines(strings.TrimSpace(row[idx]))
}
