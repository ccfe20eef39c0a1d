package probe

import (
	"context"
	"errors"
	"jabbot/internal/core/domain"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	probeCount    = "3"
	probeDeadline = "5"
)

// PingProber shells out to the system ping utility. A missing binary is
// detected once at construction and reported per probe as
// domain.ErrProbeUnavailable.
type PingProber struct {
	binary string
}

func NewPingProber() *PingProber {
	binary, err := exec.LookPath("ping")
	if err != nil {
		log.Warn().Msg("ping binary not found, probe requests will be rejected")
		return &PingProber{}
	}

	log.Debug().Str("binary", binary).Msg("ping binary found")

	return &PingProber{binary: binary}
}

func (p *PingProber) Probe(ctx context.Context, host string) (*domain.ProbeResult, error) {
	if p.binary == "" {
		return nil, domain.ErrProbeUnavailable
	}

	start := time.Now()

	cmd := exec.CommandContext(ctx, p.binary, "-c", probeCount, "-W", probeDeadline, host)
	out, err := cmd.Output()
	elapsed := time.Since(start)

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, errors.New(strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, err
	}

	average, ok := parseAverage(string(out))
	if !ok {
		log.Debug().Str("host", host).Msg("no average in ping output, using wall clock")
		return &domain.ProbeResult{Elapsed: elapsed}, nil
	}

	return &domain.ProbeResult{Average: average, Elapsed: elapsed, Averaged: true}, nil
}

// parseAverage extracts the round-trip average from the utility's summary
// line, "rtt min/avg/max/mdev = 14.171/14.525/14.880/0.290 ms" on Linux and
// the round-trip variant on BSD.
func parseAverage(output string) (time.Duration, bool) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "avg") || !strings.Contains(line, "ms") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		values := strings.Split(strings.TrimSpace(parts[1]), "/")
		if len(values) < 2 {
			continue
		}

		avg, err := strconv.ParseFloat(values[1], 64)
		if err != nil {
			continue
		}

		return time.Duration(avg * float64(time.Millisecond)), true
	}

	return 0, false
}
