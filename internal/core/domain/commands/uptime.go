package commands

import (
	"context"
	"fmt"
	"jabbot/internal/core/domain"
	"time"

	"github.com/rs/zerolog/log"
)

type UptimeHandler struct {
	started time.Time
	command string
}

func NewUptimeHandler(started time.Time, command string) *UptimeHandler {
	return &UptimeHandler{started: started, command: command}
}

func (h *UptimeHandler) GetCommand() string {
	return h.command
}

func (h *UptimeHandler) Respond(_ context.Context, _ time.Duration, _ *domain.Invocation) (string, error) {
	l := log.With().Str("command", h.GetCommand()).Logger()
	l.Info().Msg("handling request")

	return fmt.Sprintf("⏱️ Bot uptime: %s", domain.FormatUptime(time.Since(h.started))), nil
}
