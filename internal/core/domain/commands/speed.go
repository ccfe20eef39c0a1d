package commands

import (
	"context"
	"fmt"
	"jabbot/internal/core/domain"
	"jabbot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

type SpeedHandler struct {
	tester  port.SpeedTester
	timeout time.Duration
	command string
}

// NewSpeedHandler builds a speed test command with its own timeout. A full
// measurement takes minutes, far beyond the dispatcher default.
func NewSpeedHandler(tester port.SpeedTester, timeout time.Duration, command string) *SpeedHandler {
	return &SpeedHandler{tester: tester, timeout: timeout, command: command}
}

func (h *SpeedHandler) GetCommand() string {
	return h.command
}

func (h *SpeedHandler) Respond(ctx context.Context, _ time.Duration, _ *domain.Invocation) (string, error) {
	l := log.With().Str("command", h.GetCommand()).Logger()
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	result, err := h.tester.Measure(ctx)
	if err != nil {
		return "", fmt.Errorf("speed test failed: %w", err)
	}

	l.Info().Str("server", result.Server).Msg("measurement finished")

	return fmt.Sprintf("🚀 Speed test via %s:\n"+
		"• Ping: %dms\n"+
		"• Download: %.2f Mbps\n"+
		"• Upload: %.2f Mbps",
		result.Server, result.Latency.Milliseconds(), result.Download, result.Upload), nil
}
