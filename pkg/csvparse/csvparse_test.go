package csvparse

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuotedFields(t *testing.T) {
	input := "subject,location,notes\n" +
		"\"Math, Advanced\",\"Room \"\"A\"\"\",\"line one\nline two\"\n" +
		"Physics,Lab,\n"

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Math, Advanced", `Room "A"`, "line one\nline two"}, records[1].Fields)
	assert.Equal(t, []string{"Physics", "Lab", ""}, records[2].Fields)
}

func TestParseSkipsBlankLinesAndBOM(t *testing.T) {
	input := "\ufeffsubject,day\r\nMath,Mon\r\n\r\nPhysics,Tue\r\n\r\n\r\n"

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "subject", records[0].Fields[0])
	assert.Equal(t, []string{"Physics", "Tue"}, records[2].Fields)
}

func TestParseReportsStartLines(t *testing.T) {
	input := "subject,day\n\nMath,Mon\n\"Multi\nline\",Tue\nArt,Wed\n"

	records, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 4)

	lines := make([]int, len(records))
	for i, r := range records {
		lines[i] = r.Line
	}
	assert.Equal(t, []int{1, 3, 4, 6}, lines)
}

func TestParseAllowsRaggedRows(t *testing.T) {
	records, err := Parse(strings.NewReader("a,b,c\n1,2\n1,2,3,4\n"))
	require.NoError(t, err)
	assert.Len(t, records[1].Fields, 2)
	assert.Len(t, records[2].Fields, 4)
}

func TestParseUnterminatedQuote(t *testing.T) {
	_, err := Parse(strings.NewReader("subject,day\n\"Math,Mon\nPhysics,Tue\n"))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Line)
	assert.Contains(t, parseErr.Error(), "quoted field")
}

func TestParseEmptyInput(t *testing.T) {
	records, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHeaders(t *testing.T) {
	headers, err := Headers(strings.NewReader("\ufeff  Class , DAY,From,To\nMath,Mon,9:00,10:00\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"class", "day", "from", "to"}, headers)
}

func TestHeadersIgnoresDataRows(t *testing.T) {
	headers, err := Headers(strings.NewReader("subject,day\n\"broken,Mon\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"subject", "day"}, headers)
}

func TestHeadersEmptyInput(t *testing.T) {
	_, err := Headers(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Headers(strings.NewReader("\n\r\n\n"))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestHeadersUnterminatedQuote(t *testing.T) {
	_, err := Headers(strings.NewReader("\"subject,day\nMath,Mon\n"))
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 1, parseErr.Line)
}

func TestNormalizeHeaders(t *testing.T) {
	assert.Equal(t, []string{"class", "day", "from", "to", ""}, NormalizeHeaders([]string{"  Class ", "DAY", "From", "To", " "}))
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "Lab\nB", NormalizeNewlines("Lab\r\nB"))
	assert.Equal(t, "a\nb\nc", NormalizeNewlines("a\rb\r\nc"))
	assert.Equal(t, "plain", NormalizeNewlines("plain"))
}
