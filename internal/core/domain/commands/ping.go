package commands

import (
	"context"
	"errors"
	"fmt"
	"jabbot/internal/core/domain"
	"jabbot/internal/core/port"
	"regexp"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultPingHost is probed when the command is invoked without arguments.
const DefaultPingHost = "google.com"

const maxHostnameLength = 253

var hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+$`)

type PingHandler struct {
	prober  port.Prober
	command string
}

func NewPingHandler(prober port.Prober, command string) *PingHandler {
	return &PingHandler{prober: prober, command: command}
}

func (h *PingHandler) GetCommand() string {
	return h.command
}

func (h *PingHandler) Respond(ctx context.Context, timeout time.Duration, invocation *domain.Invocation) (string, error) {
	host := DefaultPingHost
	if len(invocation.Args) > 0 {
		host = invocation.Args[0]
	}

	l := log.With().
		Str("command", h.GetCommand()).
		Str("host", host).
		Logger()

	// Validated before anything reaches the shell.
	if len(host) > maxHostnameLength || !hostnamePattern.MatchString(host) {
		l.Warn().Msg("rejected malformed host")
		return "❌ Invalid hostname format", nil
	}

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := h.prober.Probe(ctx, host)
	if errors.Is(err, domain.ErrProbeUnavailable) {
		return "❌ Ping command not available on this system", nil
	}
	if err != nil {
		l.Warn().Err(err).Msg("probe failed")
		return fmt.Sprintf("❌ Ping failed to %s: %v", host, err), nil
	}

	if result.Averaged {
		return fmt.Sprintf("🏓 Ping to %s: %.1fms average", host, millis(result.Average)), nil
	}

	return fmt.Sprintf("🏓 Ping to %s: %.0fms (total time)", host, millis(result.Elapsed)), nil
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
