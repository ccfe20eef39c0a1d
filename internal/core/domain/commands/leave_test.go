package commands

import (
	"errors"
	"jabbot/internal/core/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeaveHandler(t *testing.T) {
	ma := &MockRoomAdmin{}
	mz := &MockAuthorizer{}

	leaveHandler := NewLeaveHandler(ma, mz, "leave")

	assert.NotNil(t, leaveHandler)
	assert.Equal(t, "leave", leaveHandler.GetCommand())
}

func TestLeaveRespondSuccessful(t *testing.T) {
	ma := &MockRoomAdmin{}
	mz := &MockAuthorizer{authorized: true}

	leaveHandler := NewLeaveHandler(ma, mz, "leave")

	reply, err := leaveHandler.Respond(t.Context(), time.Second, &domain.Invocation{
		Command: "leave",
		Args:    []string{"go@conference.example.org"},
		Sender:  domain.Sender{Address: "admin@example.org"},
	})
	require.NoError(t, err)

	assert.Equal(t, "👋 Left go@conference.example.org", reply)
	assert.Equal(t, []string{"go@conference.example.org"}, ma.left)
}

func TestLeaveRespondNotJoined(t *testing.T) {
	ma := &MockRoomAdmin{leaveErr: domain.ErrRoomNotJoined}
	mz := &MockAuthorizer{authorized: true}

	leaveHandler := NewLeaveHandler(ma, mz, "leave")

	reply, err := leaveHandler.Respond(t.Context(), time.Second,
		&domain.Invocation{Command: "leave", Args: []string{"go@conference.example.org"}})
	require.NoError(t, err)

	assert.Equal(t, "❌ Not joined to go@conference.example.org", reply)
}

func TestLeaveRespondUnauthorized(t *testing.T) {
	ma := &MockRoomAdmin{}
	mz := &MockAuthorizer{}

	leaveHandler := NewLeaveHandler(ma, mz, "leave")

	reply, err := leaveHandler.Respond(t.Context(), time.Second, &domain.Invocation{
		Command: "leave",
		Args:    []string{"go@conference.example.org"},
		Sender:  domain.Sender{Address: "stranger@example.org"},
	})
	require.NoError(t, err)

	assert.Equal(t, "❌ You are not authorized to manage rooms", reply)
	assert.Empty(t, ma.left)
}

func TestLeaveRespondMissingArg(t *testing.T) {
	ma := &MockRoomAdmin{}
	mz := &MockAuthorizer{authorized: true}

	leaveHandler := NewLeaveHandler(ma, mz, "leave")

	reply, err := leaveHandler.Respond(t.Context(), time.Second, &domain.Invocation{Command: "leave"})
	require.NoError(t, err)

	assert.Equal(t, "❌ Usage: leave <room address>", reply)
}

func TestLeaveRespondError(t *testing.T) {
	ma := &MockRoomAdmin{leaveErr: errors.New("mock error")}
	mz := &MockAuthorizer{authorized: true}

	leaveHandler := NewLeaveHandler(ma, mz, "leave")

	_, err := leaveHandler.Respond(t.Context(), time.Second,
		&domain.Invocation{Command: "leave", Args: []string{"go@conference.example.org"}})
	require.Errorf(t, err, "failed to leave go@conference.example.org: mock error")
}
