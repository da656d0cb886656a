// Package csvparse tokenizes RFC 4180 CSV input into rows of string fields
// without any knowledge of the schedule schema.
package csvparse

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrEmpty is returned when the input holds no records at all.
var ErrEmpty = errors.New("csv input is empty")

// ParseError reports malformed CSV structure such as an unterminated quoted field.
type ParseError struct {
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Record is one parsed row together with the file line it starts on.
type Record struct {
	Line   int
	Fields []string
}

// Parse reads every record from r. Blank lines produce no record and records
// may carry differing field counts; schema checks belong to the caller.
func Parse(r io.Reader) ([]Record, error) {
	reader := newReader(r)
	var records []Record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, translate(err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, Record{Line: line, Fields: fields})
	}
	return records, nil
}

// Headers reads only the first record and returns its fields trimmed and
// lower-cased. Data rows are never consumed.
func Headers(r io.Reader) ([]string, error) {
	record, err := newReader(r).Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, translate(err)
	}
	return NormalizeHeaders(record), nil
}

// NormalizeHeaders trims and lower-cases raw header names for alias matching.
func NormalizeHeaders(raw []string) []string {
	out := make([]string, len(raw))
	for i, h := range raw {
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}

// NormalizeNewlines rewrites CRLF and lone CR as LF. Quoted CRLF does not
// survive a read, so LF is the only line break a field keeps.
func NormalizeNewlines(v string) string {
	if !strings.ContainsRune(v, '\r') {
		return v
	}
	return strings.ReplaceAll(strings.ReplaceAll(v, "\r\n", "\n"), "\r", "\n")
}

func newReader(r io.Reader) *csv.Reader {
	buffered := bufio.NewReader(r)
	if prefix, err := buffered.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = buffered.Discard(len(utf8BOM))
	}
	reader := csv.NewReader(buffered)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = false
	return reader
}

func translate(err error) error {
	var csvErr *csv.ParseError
	if !errors.As(err, &csvErr) {
		return &ParseError{Message: err.Error(), Err: err}
	}
	message := csvErr.Err.Error()
	switch {
	case errors.Is(csvErr.Err, csv.ErrQuote):
		message = "unterminated or malformed quoted field"
	case errors.Is(csvErr.Err, csv.ErrBareQuote):
		message = "unexpected quote in unquoted field"
	}
	return &ParseError{Line: csvErr.StartLine, Column: csvErr.Column, Message: message, Err: csvErr}
}
