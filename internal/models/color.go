package models

import (
	"regexp"
	"strings"
)

// DefaultColor is used for presentation when a class has no usable color.
const DefaultColor = "#5CA3F9"

// SubjectColors maps the named presets to their hex values.
var SubjectColors = map[string]string{
	"coral":    "#F97B5C",
	"sky":      "#5CA3F9",
	"mint":     "#5CF9A3",
	"lavender": "#A35CF9",
	"gold":     "#F9C75C",
	"rose":     "#F95CA3",
	"teal":     "#5CF9E8",
	"orange":   "#F9A35C",
}

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// DisplayColor resolves a stored color to a hex value. Stored colors are kept
// verbatim; anything that is neither a preset nor "#RRGGBB" falls back to DefaultColor.
func DisplayColor(color *string) string {
	if color == nil {
		return DefaultColor
	}
	raw := strings.TrimSpace(*color)
	if hex, ok := SubjectColors[strings.ToLower(raw)]; ok {
		return hex
	}
	if hexColorPattern.MatchString(raw) {
		return strings.ToUpper(raw)
	}
	return DefaultColor
}
