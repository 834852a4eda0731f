package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patientflow/edsim/internal/config"
	"github.com/patientflow/edsim/internal/domain"
	"github.com/patientflow/edsim/internal/rng"
	"github.com/patientflow/edsim/internal/staffing"
)

func baseConfig() config.Config {
	return config.Config{
		PulleyCapacity:               1,
		PulleyEligibleUnits:          []domain.UnitName{domain.UnitED},
		PulleyEligibleDests:          []domain.UnitName{domain.UnitInpatient},
		PulleyTransferTime:           config.Range{Lo: 5, Hi: 5},
		VolunteerHoursStart:          480,
		VolunteerHoursEnd:            1080,
		VolunteerAcuityEligible:      []domain.Acuity{domain.NonUrgent, domain.UrgentAdmit},
		TransferProcessTime:          config.Range{Lo: 10, Hi: 10},
		VolunteerTransferProcessTime: config.Range{Lo: 8, Hi: 8},
	}
}

func TestRequestUsesPulleyWhenEligible(t *testing.T) {
	cfg := baseConfig()
	pool := staffing.NewPool()
	b := New(cfg, pool, rng.New(1))
	p := domain.NewPatient(0, domain.Critical)

	d, ok := b.Request(0, p, domain.UnitED, domain.UnitInpatient)
	require.True(t, ok)
	assert.Equal(t, domain.Pulley, d.Mode)
	assert.Equal(t, 5.0, d.CompleteTime)
	assert.Equal(t, 1, b.PulleyInUse())
}

func TestRequestPulleyCapacityExhaustedFallsThrough(t *testing.T) {
	cfg := baseConfig()
	pool := staffing.NewPool()
	transport := domain.NewStaff(domain.Transport)
	pool.Register(transport)
	b := New(cfg, pool, rng.New(1))
	p := domain.NewPatient(0, domain.Critical)

	first, ok := b.Request(0, p, domain.UnitED, domain.UnitInpatient)
	require.True(t, ok)
	assert.Equal(t, domain.Pulley, first.Mode)

	second, ok := b.Request(0, p, domain.UnitED, domain.UnitInpatient)
	require.True(t, ok)
	assert.Equal(t, domain.PaidStaff, second.Mode)
	assert.True(t, second.HasStaff)
}

func TestRequestPulleyIneligibleUnitPairFallsThrough(t *testing.T) {
	cfg := baseConfig()
	pool := staffing.NewPool()
	pool.Register(domain.NewStaff(domain.Transport))
	b := New(cfg, pool, rng.New(1))
	p := domain.NewPatient(0, domain.Critical)

	d, ok := b.Request(0, p, domain.UnitCDU, domain.UnitInpatient)
	require.True(t, ok)
	assert.Equal(t, domain.PaidStaff, d.Mode)
}

func TestRequestCriticalUsesPaidStaffTierWhenPulleyUnavailable(t *testing.T) {
	cfg := baseConfig()
	cfg.PulleyCapacity = 0
	pool := staffing.NewPool()
	pool.Register(domain.NewStaff(domain.Transport))
	b := New(cfg, pool, rng.New(1))
	p := domain.NewPatient(0, domain.Critical)

	d, ok := b.Request(0, p, domain.UnitED, domain.UnitInpatient)
	require.True(t, ok)
	assert.Equal(t, domain.PaidStaff, d.Mode)
	assert.True(t, d.HasStaff)
}

func TestRequestVolunteerTierRequiresWindowAndEligibleAcuity(t *testing.T) {
	cfg := baseConfig()
	cfg.PulleyCapacity = 0
	pool := staffing.NewPool()
	pool.Register(domain.NewStaff(domain.VolunteerTransport))
	b := New(cfg, pool, rng.New(1))
	p := domain.NewPatient(0, domain.NonUrgent)

	d, ok := b.Request(500, p, domain.UnitED, domain.UnitInpatient)
	require.True(t, ok)
	assert.Equal(t, domain.Volunteer, d.Mode)
	assert.Equal(t, 508.0, d.CompleteTime)
}

func TestRequestVolunteerIneligibleOutsideWindowFallsBackToPaidStaff(t *testing.T) {
	cfg := baseConfig()
	cfg.PulleyCapacity = 0
	pool := staffing.NewPool()
	pool.Register(domain.NewStaff(domain.Transport))
	pool.Register(domain.NewStaff(domain.VolunteerTransport))
	b := New(cfg, pool, rng.New(1))
	p := domain.NewPatient(0, domain.NonUrgent)

	d, ok := b.Request(1200, p, domain.UnitED, domain.UnitInpatient)
	require.True(t, ok)
	assert.Equal(t, domain.PaidStaff, d.Mode)
}

func TestRequestVolunteerIneligibleAcuityFallsBackToPaidStaff(t *testing.T) {
	cfg := baseConfig()
	cfg.PulleyCapacity = 0
	pool := staffing.NewPool()
	pool.Register(domain.NewStaff(domain.Transport))
	pool.Register(domain.NewStaff(domain.VolunteerTransport))
	b := New(cfg, pool, rng.New(1))
	p := domain.NewPatient(0, domain.Critical)

	d, ok := b.Request(500, p, domain.UnitED, domain.UnitInpatient)
	require.True(t, ok)
	assert.Equal(t, domain.PaidStaff, d.Mode)
}

func TestRequestReturnsFalseWhenEveryTierExhausted(t *testing.T) {
	cfg := baseConfig()
	cfg.PulleyCapacity = 0
	pool := staffing.NewPool()
	b := New(cfg, pool, rng.New(1))
	p := domain.NewPatient(0, domain.NonUrgent)

	_, ok := b.Request(500, p, domain.UnitED, domain.UnitInpatient)
	assert.False(t, ok)
}

func TestCompletePulleyNeverGoesNegative(t *testing.T) {
	cfg := baseConfig()
	pool := staffing.NewPool()
	b := New(cfg, pool, rng.New(1))

	b.CompletePulley()
	assert.Equal(t, 0, b.PulleyInUse())
}

func TestCompletePulleyDecrementsCounter(t *testing.T) {
	cfg := baseConfig()
	pool := staffing.NewPool()
	b := New(cfg, pool, rng.New(1))
	p := domain.NewPatient(0, domain.Critical)

	_, ok := b.Request(0, p, domain.UnitED, domain.UnitInpatient)
	require.True(t, ok)
	assert.Equal(t, 1, b.PulleyInUse())

	b.CompletePulley()
	assert.Equal(t, 0, b.PulleyInUse())
}
