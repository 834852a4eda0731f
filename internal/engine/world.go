// Package engine is the scheduler/dispatcher and patient state machine of
// spec.md §4.1–§4.2. Grounded on internal/matching/engine.go's Start/Stop
// run-loop shape, replacing its wall-clock ticker with a pure
// simulation-time pop-and-dispatch loop, and on
// original_source/zbrain_simulator.py's _process_event dispatch table,
// translated into one Go method per event kind over a closed enum.
package engine

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/patientflow/edsim/internal/config"
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/eventqueue"
	"github.com/patientflow/edsim/internal/live"
	"github.com/patientflow/edsim/internal/metrics"
	"github.com/patientflow/edsim/internal/rng"
	"github.com/patientflow/edsim/internal/snapshot"
	"github.com/patientflow/edsim/internal/staffing"
	"github.com/patientflow/edsim/internal/telemetry"
	"github.com/patientflow/edsim/internal/transport"
)

// Engine owns every piece of simulation state and drives the dispatch loop.
// Not safe for concurrent use: per spec.md §5 all mutation happens on the
// single dispatcher goroutine.
type Engine struct {
	cfg    config.Config
	rng    *rng.Stream
	queue  *eventqueue.Queue
	units  map[domain.UnitName]*domain.Unit
	pool   *staffing.Pool
	broker *transport.Broker
	acc    *metrics.Accumulator
	log    *zap.Logger

	patients map[uuid.UUID]*domain.Patient
	simTime  float64
	horizon  float64

	// inpatientStart tracks admission time per patient for the "been in
	// inpatient at least lo_acuity minutes" check. Pure dispatcher runtime
	// state, not part of the patient's fixed milestone set.
	inpatientStart map[uuid.UUID]float64

	// Optional ambient observers. All nil-safe: a run with none attached
	// behaves identically to one with every sink live, per spec.md §1.
	telemetry *telemetry.Publisher
	snapshot  *snapshot.Publisher
	feed      *live.Feed
}

// WithTelemetry attaches a NATS/InfluxDB publisher. Returns the Engine for
// chaining at construction time.
func (e *Engine) WithTelemetry(p *telemetry.Publisher) *Engine {
	e.telemetry = p
	return e
}

// WithSnapshot attaches a Redis occupancy snapshot publisher.
func (e *Engine) WithSnapshot(p *snapshot.Publisher) *Engine {
	e.snapshot = p
	return e
}

// WithLiveFeed attaches a WebSocket broadcast feed.
func (e *Engine) WithLiveFeed(f *live.Feed) *Engine {
	e.feed = f
	return e
}

// notifyOccupancy fans an occupancy sample out to every attached observer.
// Called from the periodic occupancy-check handlers alongside their
// Accumulator sample.
func (e *Engine) notifyOccupancy(unit domain.UnitName, count int) {
	ctx := context.Background()
	if e.telemetry != nil {
		e.telemetry.WriteOccupancy(ctx, unit, e.simTime, count)
	}
	if e.snapshot != nil {
		e.snapshot.Publish(ctx, unit, e.simTime, count)
	}
	if e.feed != nil {
		e.feed.BroadcastOccupancy(unit, e.simTime, count)
	}
}

// notifyPatientEvent fans a patient state transition out to the telemetry
// sink and the live feed. The snapshot publisher only receives occupancy.
func (e *Engine) notifyPatientEvent(eventType string, p *domain.Patient) {
	if e.telemetry != nil {
		e.telemetry.PublishPatientEvent(context.Background(), eventType, p.ID.String(), p.Status, p.CurrentUnit)
	}
	if e.feed != nil {
		e.feed.BroadcastPatientTransition(p.ID.String(), p.Status, e.simTime)
	}
}

// notifyTransportEvent fans a transport dispatch or completion out to the
// telemetry sink. No live-feed analog: the feed's patient-transition update
// carries the patient id, status and sim time, not the units of the move.
func (e *Engine) notifyTransportEvent(eventType string, p *domain.Patient, toUnit domain.UnitName) {
	if e.telemetry != nil {
		e.telemetry.PublishTransportEvent(context.Background(), eventType, p.ID.String(), p.TransportType, toUnit, e.simTime)
	}
}

// New builds an Engine ready to Run against cfg.
func New(cfg config.Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		cfg:      cfg,
		rng:      rng.New(cfg.Seed),
		queue:    eventqueue.New(),
		units:    make(map[domain.UnitName]*domain.Unit),
		pool:     staffing.NewPool(),
		acc:      metrics.New(),
		log:            log,
		patients:       make(map[uuid.UUID]*domain.Patient),
		horizon:        cfg.Horizon(),
		inpatientStart: make(map[uuid.UUID]float64),
	}

	for name, capacity := range cfg.UnitCapacity {
		e.units[name] = domain.NewUnit(name, capacity)
	}
	for unitName, roster := range cfg.StaffPerUnit {
		u := e.units[unitName]
		for staffType, count := range roster {
			for i := 0; i < count; i++ {
				s := domain.NewStaff(staffType)
				e.pool.Register(s)
				if u != nil {
					u.AddToRoster(s)
				}
			}
		}
	}
	for i := 0; i < cfg.TransportStaffCount; i++ {
		e.pool.Register(domain.NewStaff(domain.Transport))
	}
	for i := 0; i < cfg.VolunteerTransportStaffCount; i++ {
		e.pool.Register(domain.NewStaff(domain.VolunteerTransport))
	}

	e.broker = transport.New(cfg, e.pool, e.rng)
	return e
}

func (e *Engine) unit(name domain.UnitName) *domain.Unit {
	u, ok := e.units[name]
	if !ok {
		u = domain.NewUnit(name, 0)
		e.units[name] = u
	}
	return u
}

// push enqueues an event no earlier than the current sim time.
func (e *Engine) push(fireTime float64, kind eventqueue.Kind, patientID uuid.UUID, hasPatient bool, payload eventqueue.Payload) {
	e.queue.Push(eventqueue.Event{
		FireTime:   fireTime,
		Kind:       kind,
		HasPatient: hasPatient,
		PatientID:  patientID,
		Payload:    payload,
	})
}

func (e *Engine) pushPatientEvent(fireTime float64, kind eventqueue.Kind, patientID uuid.UUID) {
	e.push(fireTime, kind, patientID, true, eventqueue.Payload{})
}

func (e *Engine) retry(kind eventqueue.Kind, patientID uuid.UUID) {
	e.pushPatientEvent(e.simTime+e.cfg.TickIntervalMinutes, kind, patientID)
}

func (e *Engine) patient(id uuid.UUID) (*domain.Patient, bool) {
	p, ok := e.patients[id]
	return p, ok
}

// drawAcuity returns the seeded acuity draw for a new arrival using
// the configured mix, defaulting to NonUrgent on an unreachable empty mix
// (guard-rail; cannot occur with a validated config).
func (e *Engine) drawAcuity() domain.Acuity {
	roll := e.rng.Float01()
	order := []domain.Acuity{domain.Critical, domain.UrgentAdmit, domain.UrgentObs, domain.NonUrgent}
	var cumulative float64
	for _, a := range order {
		cumulative += e.cfg.AcuityMix[a]
		if roll < cumulative {
			return a
		}
	}
	return domain.NonUrgent
}
