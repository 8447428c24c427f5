package queries

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The read model is the wire contract; every key must stay camelCase,
// including the nested sections.
func TestParcelResponse_WireKeys(t *testing.T) {
	row := parcelRow{
		ID:            uuid.New(),
		TrackingID:    "TRK-20260829-123456",
		SenderID:      uuid.New(),
		ReceiverName:  "Jane Receiver",
		ReceiverEmail: "jane@example.com",
		ParcelType:    "package",
		WeightKg:      2.0,
		Description:   "Books",
		Urgency:       "express",
		BaseFee:       50,
		WeightFee:     20,
		UrgencyFee:    25,
		TotalFee:      95,
		CurrentStatus: "requested",
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	payload, err := json.Marshal(toParcelResponse(row, nil))
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(payload, &decoded))

	for _, key := range []string{
		"id", "trackingId", "senderId",
		"receiver", "details", "delivery", "pricing",
		"status", "statusHistory", "isBlocked", "isCancelled",
		"createdAt", "updatedAt",
	} {
		assert.Contains(t, decoded, key)
	}
	for _, key := range []string{"Receiver", "Details", "Delivery", "Pricing"} {
		assert.NotContains(t, decoded, key)
	}

	var nested struct {
		Details struct {
			WeightKg float64 `json:"weightKg"`
		} `json:"details"`
		Pricing struct {
			TotalFee float64 `json:"totalFee"`
		} `json:"pricing"`
	}
	require.NoError(t, json.Unmarshal(payload, &nested))
	assert.Equal(t, 2.0, nested.Details.WeightKg)
	assert.Equal(t, 95.0, nested.Pricing.TotalFee)
}
