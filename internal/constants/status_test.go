package constants

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemStatus_String(t *testing.T) {
	tests := []struct {
		name     string
		status   ItemStatus
		expected string
	}{
		{name: "pending", status: ItemStatusPending, expected: "pending"},
		{name: "received", status: ItemStatusReceived, expected: "received"},
		{name: "implemented", status: ItemStatusImplemented, expected: "implemented"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.status.String())
		})
	}
}

func TestItemStatus_IsValid(t *testing.T) {
	for _, s := range ValidItemStatuses() {
		assert.True(t, s.IsValid(), "%s should be valid", s)
	}
	assert.False(t, ItemStatus("").IsValid())
	assert.False(t, ItemStatus("done").IsValid())
	assert.False(t, ItemStatus("Pending").IsValid())
}

func TestItemStatus_JSONRoundTrip(t *testing.T) {
	type wrapper struct {
		Status ItemStatus `json:"status"`
	}

	data, err := json.Marshal(wrapper{Status: ItemStatusReceived})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"received"}`, string(data))

	var got wrapper
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, ItemStatusReceived, got.Status)
}

func TestValidItemStatuses_LifecycleOrder(t *testing.T) {
	assert.Equal(t, []ItemStatus{ItemStatusPending, ItemStatusReceived, ItemStatusImplemented}, ValidItemStatuses())
}

func TestPolicyConstants(t *testing.T) {
	assert.Equal(t, 2, HighChurnThreshold)
	assert.Equal(t, 10, MinJustificationLength)
}
