package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/schedlume-api/internal/models"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateAcceptsGoodFile(t *testing.T) {
	path := writeFile(t, "good.csv", "subject_name,day_of_week,start_time,end_time\nCalculus,Monday,09:00,10:30\nPhysics,tue,1:00 PM,2:30 PM\n")

	out, err := runCLI(t, "validate", path)

	require.NoError(t, err)
	assert.Contains(t, out, "good.csv: 2 class(es) ok")
}

func TestValidateReportsRowErrors(t *testing.T) {
	path := writeFile(t, "bad.csv", "subject_name,day_of_week,start_time,end_time\nCalculus,Funday,09:00,10:30\n")

	out, err := runCLI(t, "validate", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.csv")
	assert.Contains(t, out, "row 2")
}

func TestValidateMissingFile(t *testing.T) {
	_, err := runCLI(t, "validate", filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
}

func TestValidateRequiresArgument(t *testing.T) {
	_, err := runCLI(t, "validate")
	require.Error(t, err)
}

func TestPrintDay(t *testing.T) {
	room := "Room 204"
	var out bytes.Buffer
	printDay(&out, &models.DaySchedule{
		Date:    "2024-03-04",
		Weekday: 1,
		Classes: []models.ResolvedClass{
			{SubjectName: "Calculus", StartTime: "09:00", EndTime: "10:30", Location: &room, HasNote: true},
			{SubjectName: "Physics", StartTime: "13:00", EndTime: "14:30", IsCanceled: true},
		},
	})

	assert.Equal(t, "2024-03-04 (Monday)\n  09:00-10:30  Calculus @ Room 204 [note]\n  13:00-14:30  Physics [canceled]\n", out.String())
}

func TestPrintEmptyDay(t *testing.T) {
	var out bytes.Buffer
	printDay(&out, &models.DaySchedule{Date: "2024-03-09", Weekday: 6})
	assert.Contains(t, out.String(), "no classes")
}

func TestBackupFileNameMatchesPrunePattern(t *testing.T) {
	name := backupFileName(time.Date(2024, 3, 4, 9, 5, 0, 0, time.UTC))

	assert.Equal(t, "schedlume-backup-20240304-090500.json", name)
	ok, err := filepath.Match(backupPattern, name)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateWarnsAboutUnusedColumns(t *testing.T) {
	path := writeFile(t, "extra.csv", "Subject,Day,Start,End,Notes,Course\nCalculus,Monday,09:00,10:30,quiz,x\n")

	out, err := runCLI(t, "validate", path)

	require.NoError(t, err)
	assert.Contains(t, out, "ignored column(s): notes")
	assert.Contains(t, out, "duplicate column(s), first one used: course")
	assert.Contains(t, out, "extra.csv: 1 class(es) ok")
}
