package port

import (
	"context"

	"jabbot/internal/core/domain"
)

type SpeedTester interface {
	// Measure runs a full bandwidth measurement against the nearest available
	// server and reports latency plus download and upload throughput.
	Measure(ctx context.Context) (*domain.SpeedResult, error)
}
