package commands

import (
	"jabbot/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRespond(t *testing.T) {
	timeHandler := NewTimeHandler(domain.Identity{TimezoneOffset: 7}, "time")

	reply, err := timeHandler.Respond(t.Context(), time.Second, &domain.Invocation{Command: "time"})
	require.NoError(t, err)

	assert.Contains(t, reply, "🕐 Current time: ")
	assert.Contains(t, reply, " GMT+7\n")
	assert.Contains(t, reply, "📅 Date: ")
}
