package models

import "time"

// NoteMaxLength bounds class note bodies.
const NoteMaxLength = 1000

// GeneralNoteTitleMaxLength bounds general note titles.
const GeneralNoteTitleMaxLength = 100

// ClassNote is the single note attached to one class occurrence.
type ClassNote struct {
	ID               string    `db:"id" json:"id"`
	ClassInstanceKey string    `db:"class_instance_key" json:"class_instance_key"`
	Date             string    `db:"date" json:"date"`
	SubjectName      string    `db:"subject_name" json:"subject_name"`
	StartTime        string    `db:"start_time" json:"start_time"`
	NoteText         string    `db:"note_text" json:"note_text"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// GeneralNote is a free-standing note on a date, optionally with a due date.
type GeneralNote struct {
	ID         string    `db:"id" json:"id"`
	Date       string    `db:"date" json:"date"`
	Title      string    `db:"title" json:"title"`
	NoteText   *string   `db:"note_text" json:"note_text,omitempty"`
	HasDueDate bool      `db:"has_due_date" json:"has_due_date"`
	DueDate    *string   `db:"due_date" json:"due_date,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// NotificationRecord marks a reminder as already shown for a note on a date.
type NotificationRecord struct {
	ID               string    `db:"id" json:"id"`
	NoteID           string    `db:"note_id" json:"note_id"`
	NotificationDate string    `db:"notification_date" json:"notification_date"`
	ShownAt          time.Time `db:"shown_at" json:"shown_at"`
}

// NotificationRecordID builds the record id for a note and date.
func NotificationRecordID(noteID, date string) string {
	return noteID + ":" + date
}

// Reminder is a due-date notification computed for a general note.
type Reminder struct {
	NoteID       string `json:"note_id"`
	Title        string `json:"title"`
	DueDate      string `json:"due_date"`
	DaysUntilDue int    `json:"days_until_due"`
	Message      string `json:"message"`
	AlreadyShown bool   `json:"already_shown"`
}
