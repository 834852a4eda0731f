package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/patientflow/edsim/internal/domain"
)

func TestNewWithZeroConfigDisablesBothSinks(t *testing.T) {
	p := New(Config{}, nil)
	assert.Nil(t, p.nats)
	assert.Nil(t, p.influxWriter)
}

func TestPublishersAreNoOpsWithoutConfiguredSinks(t *testing.T) {
	p := New(Config{}, nil)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		p.PublishPatientEvent(ctx, "patient.arrived", "p1", domain.Arrived, domain.UnitED)
		p.PublishTransportEvent(ctx, "transport.dispatched", "p1", domain.Pulley, domain.UnitInpatient, 10)
		p.WriteOccupancy(ctx, domain.UnitED, 10, 5)
	})
}

func TestCloseIsSafeWithNoSinksConfigured(t *testing.T) {
	p := New(Config{}, nil)
	assert.NotPanics(t, p.Close)
}
