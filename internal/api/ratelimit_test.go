package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUpToLimitWithinWindow(t *testing.T) {
	rl := newRateLimiter(3, time.Minute)

	assert.True(t, rl.Allow("client-a"))
	assert.True(t, rl.Allow("client-a"))
	assert.True(t, rl.Allow("client-a"))
	assert.False(t, rl.Allow("client-a"))
}

func TestRateLimiterTracksKeysIndependently(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)

	assert.True(t, rl.Allow("client-a"))
	assert.True(t, rl.Allow("client-b"))
	assert.False(t, rl.Allow("client-a"))
}

func TestRateLimiterAllowsAgainAfterWindowExpires(t *testing.T) {
	rl := newRateLimiter(1, 20*time.Millisecond)

	assert.True(t, rl.Allow("client-a"))
	assert.False(t, rl.Allow("client-a"))

	time.Sleep(30 * time.Millisecond)
	assert.True(t, rl.Allow("client-a"))
}
