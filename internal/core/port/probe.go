package port

import (
	"context"

	"jabbot/internal/core/domain"
)

type Prober interface {
	// Probe measures reachability of a host and reports the averaged round-trip
	// time. Returns domain.ErrProbeUnavailable when the probe utility is not
	// installed on this system.
	Probe(ctx context.Context, host string) (*domain.ProbeResult, error)
}
