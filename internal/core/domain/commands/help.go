package commands

import (
	"context"
	"fmt"
	"jabbot/internal/core/domain"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type HelpHandler struct {
	identity domain.Identity
	command  string
}

func NewHelpHandler(identity domain.Identity, command string) *HelpHandler {
	return &HelpHandler{identity: identity, command: command}
}

func (h *HelpHandler) GetCommand() string {
	return h.command
}

func (h *HelpHandler) Respond(_ context.Context, _ time.Duration, _ *domain.Invocation) (string, error) {
	l := log.With().Str("command", h.GetCommand()).Logger()
	l.Info().Msg("handling request")

	lines := []string{
		"🤖 Available Commands:\n",
		fmt.Sprintf("• ping [host] - Ping a host (default: %s)\n", DefaultPingHost),
		fmt.Sprintf("• time - Show current time (%s)\n", domain.ZoneLabel(h.identity.TimezoneOffset)),
		"• status - Show bot status\n",
		"• uptime - Show bot uptime\n",
		"• stats - Show process resource usage\n",
		"• speed - Run a network speed test\n",
		"• join <room> - Join a room (admins)\n",
		"• leave <room> - Leave a room (admins)\n",
		"• help - Show this help message\n\n",
		fmt.Sprintf("💡 Use: !<command> or %s: <command>", h.identity.Nickname),
	}

	sb := &strings.Builder{}
	for _, line := range lines {
		_, err := sb.WriteString(line)
		if err != nil {
			return "", fmt.Errorf("failed to construct response: %w", err)
		}
	}

	return sb.String(), nil
}
