package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float01(), b.Float01())
	}
}

func TestUniformRange(t *testing.T) {
	s := New(1)
	for i := 0; i < 200; i++ {
		v := s.Uniform(10, 20)
		assert.GreaterOrEqual(t, v, 10.0)
		assert.Less(t, v, 20.0)
	}
}

func TestUniformDegenerateRangeReturnsLo(t *testing.T) {
	s := New(1)
	assert.Equal(t, 10.0, s.Uniform(10, 10))
	assert.Equal(t, 10.0, s.Uniform(10, 5))
}

func TestBernoulliExtremes(t *testing.T) {
	s := New(1)
	for i := 0; i < 50; i++ {
		assert.False(t, s.Bernoulli(0))
	}
	for i := 0; i < 50; i++ {
		assert.True(t, s.Bernoulli(1))
	}
}

func TestChoice2OnlyReturnsGivenValues(t *testing.T) {
	s := New(7)
	for i := 0; i < 100; i++ {
		v := s.Choice2(1, 2)
		assert.Contains(t, []int{1, 2}, v)
	}
}

func TestExponentialIsNonNegative(t *testing.T) {
	s := New(3)
	for i := 0; i < 100; i++ {
		assert.GreaterOrEqual(t, s.Exponential(0.5), 0.0)
	}
}
