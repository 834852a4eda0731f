// Package transport implements the tiered transport broker of spec.md §4.3:
// pulley, then paid staff for CRITICAL, then volunteer within their window,
// then paid staff fallback. Grounded on internal/risk/calculator.go's
// sequential chain-of-checks shape.
package transport

import (
	"math"

	"github.com/google/uuid"

	"github.com/patientflow/edsim/internal/config"
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/rng"
	"github.com/patientflow/edsim/internal/staffing"
)

// Dispatch is the outcome of a successful broker decision.
type Dispatch struct {
	Mode         domain.TransportMode
	CompleteTime float64
	StaffID      uuid.UUID
	HasStaff     bool
}

// Broker owns the pulley slot counter and consults the staffing pool for the
// two transport-capable staff types.
type Broker struct {
	cfg  config.Config
	pool *staffing.Pool
	rng  *rng.Stream

	pulleyInUse int
}

// New constructs a broker bound to the given config, staff pool, and RNG
// stream.
func New(cfg config.Config, pool *staffing.Pool, r *rng.Stream) *Broker {
	return &Broker{cfg: cfg, pool: pool, rng: r}
}

// PulleyInUse returns the current pulley slot occupancy, for metrics sampling.
func (b *Broker) PulleyInUse() int {
	return b.pulleyInUse
}

func (b *Broker) pulleyEligible(from, to domain.UnitName) bool {
	if b.pulleyInUse >= b.cfg.PulleyCapacity {
		return false
	}
	fromOK, toOK := false, false
	for _, u := range b.cfg.PulleyEligibleUnits {
		if u == from {
			fromOK = true
			break
		}
	}
	for _, u := range b.cfg.PulleyEligibleDests {
		if u == to {
			toOK = true
			break
		}
	}
	return fromOK && toOK
}

func (b *Broker) volunteerWindowOpen(now float64) bool {
	minuteOfDay := math.Mod(now, 1440)
	return minuteOfDay >= b.cfg.VolunteerHoursStart && minuteOfDay < b.cfg.VolunteerHoursEnd
}

func (b *Broker) volunteerEligibleAcuity(a domain.Acuity) bool {
	for _, e := range b.cfg.VolunteerAcuityEligible {
		if e == a {
			return true
		}
	}
	return false
}

// Request runs the four-tier chain for a patient currently in `from`,
// headed to `to`, at time `now`. Returns ok=false if every tier is
// exhausted — the caller retries at now + TICK per the retry idiom.
func (b *Broker) Request(now float64, p *domain.Patient, from, to domain.UnitName) (Dispatch, bool) {
	// Tier 1: pulley.
	if b.pulleyEligible(from, to) {
		b.pulleyInUse++
		d := b.rng.Uniform(b.cfg.PulleyTransferTime.Lo, b.cfg.PulleyTransferTime.Hi)
		return Dispatch{Mode: domain.Pulley, CompleteTime: now + d}, true
	}

	// Tier 2: paid staff reserved for CRITICAL.
	if p.Acuity == domain.Critical {
		d := b.rng.Uniform(b.cfg.TransferProcessTime.Lo, b.cfg.TransferProcessTime.Hi)
		if s, ok := b.pool.FindAndAssign(domain.Transport, nil, now, now+d, to, "transport"); ok {
			return Dispatch{Mode: domain.PaidStaff, CompleteTime: now + d, StaffID: s.ID, HasStaff: true}, true
		}
	}

	// Tier 3: volunteer, within window and eligible acuity.
	if b.volunteerWindowOpen(now) && b.volunteerEligibleAcuity(p.Acuity) {
		d := b.rng.Uniform(b.cfg.VolunteerTransferProcessTime.Lo, b.cfg.VolunteerTransferProcessTime.Hi)
		if s, ok := b.pool.FindAndAssign(domain.VolunteerTransport, nil, now, now+d, to, "transport"); ok {
			return Dispatch{Mode: domain.Volunteer, CompleteTime: now + d, StaffID: s.ID, HasStaff: true}, true
		}
	}

	// Tier 4: paid staff fallback.
	d := b.rng.Uniform(b.cfg.TransferProcessTime.Lo, b.cfg.TransferProcessTime.Hi)
	if s, ok := b.pool.FindAndAssign(domain.Transport, nil, now, now+d, to, "transport"); ok {
		return Dispatch{Mode: domain.PaidStaff, CompleteTime: now + d, StaffID: s.ID, HasStaff: true}, true
	}

	return Dispatch{}, false
}

// CompletePulley decrements the pulley slot counter. Called when a pulley
// leg completes.
func (b *Broker) CompletePulley() {
	if b.pulleyInUse > 0 {
		b.pulleyInUse--
	}
}
