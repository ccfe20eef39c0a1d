package commands

import (
	"context"
	"fmt"
	"jabbot/internal/core/domain"
	"jabbot/internal/core/port"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type JoinHandler struct {
	admin      port.RoomAdmin
	authorizer port.Authorizer
	command    string
}

func NewJoinHandler(admin port.RoomAdmin, authorizer port.Authorizer, command string) *JoinHandler {
	return &JoinHandler{admin: admin, authorizer: authorizer, command: command}
}

func (h *JoinHandler) GetCommand() string {
	return h.command
}

func (h *JoinHandler) Respond(ctx context.Context, timeout time.Duration, invocation *domain.Invocation) (string, error) {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("sender", invocation.Sender.Address).
		Logger()

	if !h.authorizer.IsAuthorized(invocation.Sender.Address) {
		l.Warn().Msg("unauthorized room management attempt")
		return "❌ You are not authorized to manage rooms", nil
	}

	if len(invocation.Args) == 0 {
		return "❌ Usage: join <room address>", nil
	}

	room := invocation.Args[0]
	if !strings.Contains(room, "@") {
		return "❌ Invalid room address", nil
	}

	l.Info().Str("room", room).Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := h.admin.Join(ctx, room); err != nil {
		return "", fmt.Errorf("failed to join %s: %w", room, err)
	}

	return fmt.Sprintf("✅ Joined %s", room), nil
}
