package commands

import (
	"jabbot/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHelpHandler(t *testing.T) {
	helpHandler := NewHelpHandler(domain.Identity{Nickname: "JabBot"}, "help")

	assert.NotNil(t, helpHandler)
	assert.Equal(t, "help", helpHandler.GetCommand())
}

func TestHelpRespondListsCommands(t *testing.T) {
	identity := domain.Identity{Nickname: "JabBot", TimezoneOffset: 7}
	helpHandler := NewHelpHandler(identity, "help")

	reply, err := helpHandler.Respond(t.Context(), time.Second, &domain.Invocation{Command: "help"})
	require.NoError(t, err)

	assert.Contains(t, reply, "🤖 Available Commands:")
	assert.Contains(t, reply, "• ping [host] - Ping a host (default: google.com)")
	assert.Contains(t, reply, "• time - Show current time (GMT+7)")
	assert.Contains(t, reply, "• join <room> - Join a room (admins)")
	assert.Contains(t, reply, "💡 Use: !<command> or JabBot: <command>")
}
