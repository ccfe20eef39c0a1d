package speed

import (
	"context"
	"errors"
	"fmt"
	"jabbot/internal/core/domain"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/showwin/speedtest-go/speedtest"
)

// Tester measures bandwidth against the nearest speedtest.net server. Each
// measurement uses a fresh client so no connection state outlives a run.
type Tester struct{}

func NewTester() *Tester {
	return &Tester{}
}

func (t *Tester) Measure(ctx context.Context) (*domain.SpeedResult, error) {
	client := speedtest.New()

	servers, err := client.FetchServerListContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch server list: %w", err)
	}

	if available := servers.Available(); available != nil {
		servers = *available
	}

	if len(servers) == 0 {
		return nil, errors.New("no speed test servers available")
	}

	sort.Slice(servers, func(i, j int) bool { return servers[i].Distance < servers[j].Distance })
	server := servers[0]

	log.Debug().Str("server", server.Sponsor).Str("host", server.Host).Msg("measuring against nearest server")

	if err := server.PingTestContext(ctx, nil); err != nil {
		return nil, fmt.Errorf("latency test failed: %w", err)
	}

	if err := server.DownloadTestContext(ctx); err != nil {
		return nil, fmt.Errorf("download test failed: %w", err)
	}

	if err := server.UploadTestContext(ctx); err != nil {
		return nil, fmt.Errorf("upload test failed: %w", err)
	}

	return &domain.SpeedResult{
		Server:   server.Sponsor,
		Latency:  server.Latency,
		Download: server.DLSpeed.Mbps(),
		Upload:   server.ULSpeed.Mbps(),
	}, nil
}
