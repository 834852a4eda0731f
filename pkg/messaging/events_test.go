package messaging

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEventWrapsPayloadWithEnvelope(t *testing.T) {
	aggID := uuid.New()
	payload := PatientEvent{PatientID: "p1", Status: "ARRIVED", Unit: "ED"}

	ev, err := NewEvent(EventTypePatientArrived, aggID, payload, EventMetadata{Source: "engine"})
	require.NoError(t, err)

	assert.Equal(t, EventTypePatientArrived, ev.Type)
	assert.Equal(t, aggID, ev.AggregateID)
	assert.Equal(t, "engine", ev.Metadata.Source)
	assert.NotEqual(t, uuid.Nil, ev.ID)
}

func TestParseEventDataRoundTripsThePayload(t *testing.T) {
	payload := TransportEvent{PatientID: "p2", Mode: "PULLEY", FromUnit: "ED", ToUnit: "INPATIENT", SimTime: 42.5}
	ev, err := NewEvent(EventTypeTransportDispatched, uuid.New(), payload, EventMetadata{})
	require.NoError(t, err)

	parsed, err := ParseEventData[TransportEvent](ev)
	require.NoError(t, err)
	assert.Equal(t, payload, *parsed)
}

func TestParseEventDataErrorsOnShapeMismatch(t *testing.T) {
	ev, err := NewEvent(EventTypeOccupancySample, uuid.New(), "not-an-object", EventMetadata{})
	require.NoError(t, err)

	_, err = ParseEventData[OccupancySampleEvent](ev)
	assert.Error(t, err)
}
