package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceKeyRoundTrip(t *testing.T) {
	ref, err := ParseInstanceKey(InstanceKey("2024-03-11", "abc-123"))
	require.NoError(t, err)
	assert.Equal(t, InstanceRef{Date: "2024-03-11", BaseScheduleID: "abc-123"}, ref)
	assert.False(t, ref.IsAdded())

	ref, err = ParseInstanceKey(AddInstanceKey("2024-03-11", "ov-9"))
	require.NoError(t, err)
	assert.Equal(t, InstanceRef{Date: "2024-03-11", OverrideID: "ov-9"}, ref)
	assert.True(t, ref.IsAdded())
}

func TestParseInstanceKeyRejects(t *testing.T) {
	for _, key := range []string{"", "2024-03-11", "2024-03-11:", "not-a-date:abc", "2024-03-11:override:"} {
		_, err := ParseInstanceKey(key)
		assert.Error(t, err, key)
	}
}
