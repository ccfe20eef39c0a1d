package commands

import (
	"context"
	"fmt"
	"jabbot/internal/core/domain"
	"jabbot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
)

type StatusHandler struct {
	rooms    port.RoomDirectory
	identity domain.Identity
	command  string
}

func NewStatusHandler(rooms port.RoomDirectory, identity domain.Identity, command string) *StatusHandler {
	return &StatusHandler{rooms: rooms, identity: identity, command: command}
}

func (h *StatusHandler) GetCommand() string {
	return h.command
}

func (h *StatusHandler) Respond(_ context.Context, _ time.Duration, _ *domain.Invocation) (string, error) {
	l := log.With().Str("command", h.GetCommand()).Logger()
	l.Info().Msg("handling request")

	return fmt.Sprintf("🤖 Bot Status:\n"+
		"• Online: ✅ Yes\n"+
		"• Connected rooms: %d\n"+
		"• Server: %s\n"+
		"• Nickname: %s\n"+
		"• Timezone: %s",
		len(h.rooms.JoinedRooms()), h.identity.Server, h.identity.Nickname,
		domain.ZoneLabel(h.identity.TimezoneOffset)), nil
}
