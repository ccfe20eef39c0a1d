package commands

import (
	"context"
	"errors"
	"jabbot/internal/core/domain"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockProber struct {
	err    error
	result *domain.ProbeResult
	host   string
	called bool
}

func (m *MockProber) Probe(_ context.Context, host string) (*domain.ProbeResult, error) {
	m.called = true
	m.host = host
	return m.result, m.err
}

func TestNewPingHandler(t *testing.T) {
	mp := &MockProber{}

	pingHandler := NewPingHandler(mp, "ping")

	assert.NotNil(t, pingHandler)
	assert.Equal(t, "ping", pingHandler.GetCommand())
}

func TestPingRespondDefaultHost(t *testing.T) {
	mp := &MockProber{result: &domain.ProbeResult{Average: 23140 * time.Microsecond, Averaged: true}}

	pingHandler := NewPingHandler(mp, "ping")

	reply, err := pingHandler.Respond(t.Context(), time.Second, &domain.Invocation{Command: "ping"})
	require.NoError(t, err)

	assert.Equal(t, "google.com", mp.host)
	assert.Equal(t, "🏓 Ping to google.com: 23.1ms average", reply)
}

func TestPingRespondExplicitHost(t *testing.T) {
	mp := &MockProber{result: &domain.ProbeResult{Average: 5 * time.Millisecond, Averaged: true}}

	pingHandler := NewPingHandler(mp, "ping")

	reply, err := pingHandler.Respond(t.Context(), time.Second,
		&domain.Invocation{Command: "ping", Args: []string{"example.org"}})
	require.NoError(t, err)

	assert.Equal(t, "example.org", mp.host)
	assert.Equal(t, "🏓 Ping to example.org: 5.0ms average", reply)
}

func TestPingRespondFallbackTiming(t *testing.T) {
	mp := &MockProber{result: &domain.ProbeResult{Elapsed: 2 * time.Second}}

	pingHandler := NewPingHandler(mp, "ping")

	reply, err := pingHandler.Respond(t.Context(), time.Second, &domain.Invocation{Command: "ping"})
	require.NoError(t, err)

	assert.Equal(t, "🏓 Ping to google.com: 2000ms (total time)", reply)
}

func TestPingRespondRejectsMalformedHost(t *testing.T) {
	mp := &MockProber{}

	pingHandler := NewPingHandler(mp, "ping")

	reply, err := pingHandler.Respond(t.Context(), time.Second,
		&domain.Invocation{Command: "ping", Args: []string{"example.org;reboot"}})
	require.NoError(t, err)

	assert.Equal(t, "❌ Invalid hostname format", reply)
	assert.False(t, mp.called)
}

func TestPingRespondRejectsOverlongHost(t *testing.T) {
	mp := &MockProber{}

	pingHandler := NewPingHandler(mp, "ping")

	reply, err := pingHandler.Respond(t.Context(), time.Second,
		&domain.Invocation{Command: "ping", Args: []string{strings.Repeat("a", 254)}})
	require.NoError(t, err)

	assert.Equal(t, "❌ Invalid hostname format", reply)
	assert.False(t, mp.called)
}

func TestPingRespondUtilityMissing(t *testing.T) {
	mp := &MockProber{err: domain.ErrProbeUnavailable}

	pingHandler := NewPingHandler(mp, "ping")

	reply, err := pingHandler.Respond(t.Context(), time.Second, &domain.Invocation{Command: "ping"})
	require.NoError(t, err)

	assert.Equal(t, "❌ Ping command not available on this system", reply)
}

func TestPingRespondProbeError(t *testing.T) {
	mp := &MockProber{err: errors.New("unknown host")}

	pingHandler := NewPingHandler(mp, "ping")

	reply, err := pingHandler.Respond(t.Context(), time.Second, &domain.Invocation{Command: "ping"})
	require.NoError(t, err)

	assert.Equal(t, "❌ Ping failed to google.com: unknown host", reply)
}
