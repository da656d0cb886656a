package dto

import "github.com/noah-isme/schedlume-api/internal/csvimport"

// ImportResult reports the outcome of a schedule import. On rejection Errors
// holds a preview of the problems and RemainingErrors counts the rest.
// IgnoredColumns and DuplicateColumns list header names that feed no field.
type ImportResult struct {
	Success          bool                        `json:"success"`
	FileName         string                      `json:"file_name,omitempty"`
	Imported         int                         `json:"imported"`
	Errors           []csvimport.ValidationError `json:"errors,omitempty"`
	TotalErrors      int                         `json:"total_errors"`
	RemainingErrors  int                         `json:"remaining_errors"`
	OrphanOverrides  int                         `json:"orphan_overrides,omitempty"`
	IgnoredColumns   []string                    `json:"ignored_columns,omitempty"`
	DuplicateColumns []string                    `json:"duplicate_columns,omitempty"`
}
