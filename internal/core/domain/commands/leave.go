package commands

import (
	"context"
	"errors"
	"fmt"
	"jabbot/internal/core/domain"
	"jabbot/internal/core/port"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type LeaveHandler struct {
	admin      port.RoomAdmin
	authorizer port.Authorizer
	command    string
}

func NewLeaveHandler(admin port.RoomAdmin, authorizer port.Authorizer, command string) *LeaveHandler {
	return &LeaveHandler{admin: admin, authorizer: authorizer, command: command}
}

func (h *LeaveHandler) GetCommand() string {
	return h.command
}

func (h *LeaveHandler) Respond(ctx context.Context, timeout time.Duration, invocation *domain.Invocation) (string, error) {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("sender", invocation.Sender.Address).
		Logger()

	if !h.authorizer.IsAuthorized(invocation.Sender.Address) {
		l.Warn().Msg("unauthorized room management attempt")
		return "❌ You are not authorized to manage rooms", nil
	}

	if len(invocation.Args) == 0 {
		return "❌ Usage: leave <room address>", nil
	}

	room := invocation.Args[0]
	if !strings.Contains(room, "@") {
		return "❌ Invalid room address", nil
	}

	l.Info().Str("room", room).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := h.admin.Leave(ctx, room)
	if errors.Is(err, domain.ErrRoomNotJoined) {
		return fmt.Sprintf("❌ Not joined to %s", room), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to leave %s: %w", room, err)
	}

	return fmt.Sprintf("👋 Left %s", room), nil
}
