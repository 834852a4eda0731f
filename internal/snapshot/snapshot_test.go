package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patientflow/edsim/internal/domain"
)

func TestPublishWithoutRedisStillUpdatesInMemorySnapshot(t *testing.T) {
	p := New("", time.Minute)
	p.Publish(context.Background(), domain.UnitED, 10, 5)

	occ, ok := p.Latest(domain.UnitED)
	require.True(t, ok)
	assert.Equal(t, "ED", occ.Unit)
	assert.Equal(t, 5, occ.Count)
	assert.Equal(t, 10.0, occ.SimTime)
}

func TestLatestUnknownUnitReturnsFalse(t *testing.T) {
	p := New("", time.Minute)
	_, ok := p.Latest(domain.UnitInpatient)
	assert.False(t, ok)
}

func TestAllReturnsAnIndependentCopy(t *testing.T) {
	p := New("", time.Minute)
	p.Publish(context.Background(), domain.UnitED, 0, 1)

	snap := p.All()
	snap[domain.UnitED] = Occupancy{Unit: "ED", Count: 999}

	occ, _ := p.Latest(domain.UnitED)
	assert.Equal(t, 1, occ.Count)
}

func TestPublishOverwritesPreviousSampleForSameUnit(t *testing.T) {
	p := New("", time.Minute)
	p.Publish(context.Background(), domain.UnitED, 0, 3)
	p.Publish(context.Background(), domain.UnitED, 5, 7)

	occ, ok := p.Latest(domain.UnitED)
	require.True(t, ok)
	assert.Equal(t, 7, occ.Count)
	assert.Equal(t, 5.0, occ.SimTime)
}

func TestCloseWithoutRedisConfiguredIsANoOp(t *testing.T) {
	p := New("", time.Minute)
	assert.NoError(t, p.Close())
}
