package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/esrlabs/sindri/jobs"
)

func TestGuard_AllowWithinRate(t *testing.T) {
	g := NewGuard(map[time.Duration]int{time.Second: 2})

	assert.True(t, g.Allow(jobs.ClientID(0)))
	assert.True(t, g.Allow(jobs.ClientID(0)))
	assert.False(t, g.Allow(jobs.ClientID(0)), "a third request within the same window should be throttled")
}

func TestGuard_TracksClientsIndependently(t *testing.T) {
	g := NewGuard(map[time.Duration]int{time.Second: 1})

	assert.True(t, g.Allow(jobs.ClientID(0)))
	assert.False(t, g.Allow(jobs.ClientID(0)))
	assert.True(t, g.Allow(jobs.ClientID(1)), "a different client must not share client 0's budget")
}

func TestGuard_NilRatesUsesDefaults(t *testing.T) {
	g := NewGuard(nil)
	assert.True(t, g.Allow(jobs.ClientID(0)))
}
