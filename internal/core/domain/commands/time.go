package commands

import (
	"context"
	"fmt"
	"jabbot/internal/core/domain"
	"time"

	"github.com/rs/zerolog/log"
)

type TimeHandler struct {
	identity domain.Identity
	command  string
}

func NewTimeHandler(identity domain.Identity, command string) *TimeHandler {
	return &TimeHandler{identity: identity, command: command}
}

func (h *TimeHandler) GetCommand() string {
	return h.command
}

func (h *TimeHandler) Respond(_ context.Context, _ time.Duration, _ *domain.Invocation) (string, error) {
	l := log.With().Str("command", h.GetCommand()).Logger()
	l.Info().Msg("handling request")

	now := time.Now().In(domain.Zone(h.identity.TimezoneOffset))

	clock := now.Format("15:04:05") + " " + domain.ZoneLabel(h.identity.TimezoneOffset)
	date := now.Format("Monday, 02 January 2006")

	return fmt.Sprintf("🕐 Current time: %s\n📅 Date: %s", clock, date), nil
}
