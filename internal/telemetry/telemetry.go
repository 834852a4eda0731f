// Package telemetry is an optional ambient service: it publishes domain
// events over NATS and writes occupancy samples to InfluxDB, both outside
// the core per spec.md §1. A run proceeds identically with telemetry
// disabled or unreachable — every call is fire-and-forget and NATS
// publishes are circuit breaker guarded (InfluxDB writes are not), grounded
// on internal/risk/calculator.go's PublishRiskAlert pattern.
package telemetry

import (
	"context"
	"time"

	"go.uber.org/zap"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxapi "github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/pkg/circuit"
	"github.com/patientflow/edsim/pkg/messaging"
)

// Config configures the optional telemetry sinks. A zero value disables
// both; NATSURL and InfluxURL are independently optional.
type Config struct {
	NATSURL   string
	InfluxURL string
	InfluxOrg string
	InfluxBucket string
	InfluxToken  string
}

// Publisher fans domain events out to NATS and occupancy samples out to
// InfluxDB, tolerating either backend being absent or flapping.
type Publisher struct {
	log *zap.Logger

	nats    *messaging.Client
	breaker *circuit.Breaker

	influxWriter influxapi.WriteAPIBlocking
	influxClient influxdb2.Client
}

// New connects the configured sinks. Connection failures are logged, not
// returned — telemetry is best-effort and must never block a run.
func New(cfg Config, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Publisher{
		log: log,
		breaker: circuit.NewBreaker(circuit.Config{
			Name:        "telemetry.nats",
			MaxFailures: 5,
			Timeout:     10 * time.Second,
			HalfOpenMax: 1,
		}),
	}

	if cfg.NATSURL != "" {
		client, err := messaging.NewClient(messaging.Config{
			URL:            cfg.NATSURL,
			Name:           "edsim",
			ReconnectWait:  time.Second,
			MaxReconnects:  5,
			ConnectTimeout: 5 * time.Second,
		})
		if err != nil {
			log.Warn("telemetry: nats connect failed, publishing disabled", zap.Error(err))
		} else {
			p.nats = client
		}
	}

	if cfg.InfluxURL != "" {
		p.influxClient = influxdb2.NewClient(cfg.InfluxURL, cfg.InfluxToken)
		p.influxWriter = p.influxClient.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket)
	}

	return p
}

// PublishPatientEvent fans a state-machine transition out over NATS. A
// no-op if NATS is unconfigured or the breaker is open.
func (p *Publisher) PublishPatientEvent(ctx context.Context, eventType string, patientID string, status domain.Status, unit domain.UnitName) {
	if p.nats == nil {
		return
	}
	err := p.breaker.Execute(ctx, func() error {
		return p.nats.Publish(ctx, eventType, map[string]string{
			"patient_id": patientID,
			"status":     status.String(),
			"unit":       unit.String(),
		})
	})
	if err != nil {
		p.log.Debug("telemetry: patient event publish failed", zap.Error(err))
	}
}

// PublishTransportEvent fans a transport dispatch or completion out over
// NATS. A no-op if NATS is unconfigured or the breaker is open.
func (p *Publisher) PublishTransportEvent(ctx context.Context, eventType string, patientID string, mode domain.TransportMode, toUnit domain.UnitName, simTime float64) {
	if p.nats == nil {
		return
	}
	err := p.breaker.Execute(ctx, func() error {
		return p.nats.Publish(ctx, eventType, messaging.TransportEvent{
			PatientID: patientID,
			Mode:      mode.String(),
			ToUnit:    toUnit.String(),
			SimTime:   simTime,
		})
	})
	if err != nil {
		p.log.Debug("telemetry: transport event publish failed", zap.Error(err))
	}
}

// WriteOccupancy writes one occupancy sample for a unit at a simulated
// time. A no-op if InfluxDB is unconfigured.
func (p *Publisher) WriteOccupancy(ctx context.Context, unit domain.UnitName, simTime float64, count int) {
	if p.influxWriter == nil {
		return
	}
	point := influxdb2.NewPoint(
		"occupancy",
		map[string]string{"unit": unit.String()},
		map[string]interface{}{"count": count, "sim_time": simTime},
		time.Now(),
	)
	if err := p.influxWriter.WritePoint(ctx, point); err != nil {
		p.log.Debug("telemetry: influx write failed", zap.Error(err))
	}
}

// Healthy reports whether the NATS sink is reachable, i.e. its breaker
// isn't open. A Publisher with no NATS URL configured is always healthy —
// there's nothing to be unhealthy about.
func (p *Publisher) Healthy() bool {
	if p.nats == nil {
		return true
	}
	return p.breaker.State() != circuit.StateOpen
}

// Close releases both sinks. Safe to call on a Publisher with no sinks
// configured.
func (p *Publisher) Close() {
	if p.nats != nil {
		p.nats.Close()
	}
	if p.influxClient != nil {
		p.influxClient.Close()
	}
}
