package schedule

import (
	"fmt"
	"strings"

	"github.com/noah-isme/schedlume-api/pkg/dateutil"
)

const addSegment = "override:"

// InstanceRef is the decoded form of an instance key.
type InstanceRef struct {
	Date           string
	BaseScheduleID string
	OverrideID     string
}

// IsAdded reports whether the key points at a one-off added class.
func (r InstanceRef) IsAdded() bool {
	return r.OverrideID != ""
}

// InstanceKey identifies the occurrence of a base schedule on a date.
func InstanceKey(date, baseScheduleID string) string {
	return date + ":" + baseScheduleID
}

// AddInstanceKey identifies a class added by an override.
func AddInstanceKey(date, overrideID string) string {
	return date + ":" + addSegment + overrideID
}

// ParseInstanceKey splits a key produced by InstanceKey or AddInstanceKey.
func ParseInstanceKey(key string) (InstanceRef, error) {
	date, rest, ok := strings.Cut(key, ":")
	if !ok || rest == "" {
		return InstanceRef{}, fmt.Errorf("malformed instance key %q", key)
	}
	if !dateutil.IsDate(date) {
		return InstanceRef{}, fmt.Errorf("malformed instance key %q: bad date", key)
	}
	if id, isAdd := strings.CutPrefix(rest, addSegment); isAdd {
		if id == "" {
			return InstanceRef{}, fmt.Errorf("malformed instance key %q: empty override id", key)
		}
		return InstanceRef{Date: date, OverrideID: id}, nil
	}
	return InstanceRef{Date: date, BaseScheduleID: rest}, nil
}
