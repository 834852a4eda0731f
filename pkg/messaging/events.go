package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Wire event-type strings published over the telemetry NATS subject space.
// Distinct from internal/eventqueue.Kind, which is the scheduler's internal
// dispatch key and never crosses a process boundary.
const (
	EventTypePatientArrived    = "patient.arrived"
	EventTypePatientAdmitted   = "patient.admitted"
	EventTypePatientDischarged = "patient.discharged"

	EventTypeTransportDispatched = "transport.dispatched"
	EventTypeTransportCompleted  = "transport.completed"

	EventTypeOccupancySample = "metrics.occupancy_sample"
)

// Event is the base envelope for everything published over NATS.
type Event struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	AggregateID uuid.UUID       `json:"aggregate_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Data        json.RawMessage `json:"data"`
	Metadata    EventMetadata   `json:"metadata"`
}

// EventMetadata carries correlation fields for downstream consumers.
type EventMetadata struct {
	CorrelationID string `json:"correlation_id"`
	Source        string `json:"source"`
}

// PatientEvent is the payload of a patient.* event.
type PatientEvent struct {
	PatientID string `json:"patient_id"`
	Status    string `json:"status"`
	Unit      string `json:"unit"`
}

// TransportEvent is the payload of a transport.* event.
type TransportEvent struct {
	PatientID string  `json:"patient_id"`
	Mode      string  `json:"mode"`
	FromUnit  string  `json:"from_unit"`
	ToUnit    string  `json:"to_unit"`
	SimTime   float64 `json:"sim_time"`
}

// OccupancySampleEvent is the payload of a metrics.occupancy_sample event.
type OccupancySampleEvent struct {
	Unit    string  `json:"unit"`
	Count   int     `json:"count"`
	SimTime float64 `json:"sim_time"`
}

// NewEvent wraps data into an envelope with a fresh id and timestamp.
func NewEvent(eventType string, aggregateID uuid.UUID, data interface{}, metadata EventMetadata) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Event{
		ID:          uuid.New(),
		Type:        eventType,
		AggregateID: aggregateID,
		Timestamp:   time.Now(),
		Data:        dataBytes,
		Metadata:    metadata,
	}, nil
}

// ParseEventData unmarshals an event's payload into the given type.
func ParseEventData[T any](event *Event) (*T, error) {
	var data T
	if err := json.Unmarshal(event.Data, &data); err != nil {
		return nil, err
	}
	return &data, nil
}
