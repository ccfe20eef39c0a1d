package service

import (
	"jabbot/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnPresenceWelcomesNewOccupant(t *testing.T) {
	tracker := NewRoomTracker("Bot")
	tracker.OnJoinRoom("go@conference.example.org")

	welcome := tracker.OnPresence(&domain.Presence{
		Room:     "go@conference.example.org",
		Nickname: "alice",
		Online:   true,
	})

	require.NotNil(t, welcome)
	assert.Equal(t, "go@conference.example.org", welcome.Room)
	assert.Equal(t, "alice", welcome.Nickname)
}

func TestOnPresenceIdempotent(t *testing.T) {
	tracker := NewRoomTracker("Bot")
	tracker.OnJoinRoom("go@conference.example.org")

	presence := &domain.Presence{Room: "go@conference.example.org", Nickname: "alice", Online: true}

	assert.NotNil(t, tracker.OnPresence(presence))
	assert.Nil(t, tracker.OnPresence(presence))
	assert.Nil(t, tracker.OnPresence(presence))

	assert.Len(t, tracker.rooms["go@conference.example.org"], 1)
}

func TestOnPresenceIgnoresOwnNickname(t *testing.T) {
	tracker := NewRoomTracker("Bot")
	tracker.OnJoinRoom("go@conference.example.org")

	welcome := tracker.OnPresence(&domain.Presence{
		Room:     "go@conference.example.org",
		Nickname: "Bot",
		Online:   true,
	})

	assert.Nil(t, welcome)
	assert.Empty(t, tracker.rooms["go@conference.example.org"])
}

func TestOnPresenceUntrackedRoom(t *testing.T) {
	tracker := NewRoomTracker("Bot")

	welcome := tracker.OnPresence(&domain.Presence{
		Room:     "go@conference.example.org",
		Nickname: "alice",
		Online:   true,
	})

	assert.Nil(t, welcome)
}

func TestOnPresenceOfflineRemovesOccupant(t *testing.T) {
	tracker := NewRoomTracker("Bot")
	tracker.OnJoinRoom("go@conference.example.org")

	online := &domain.Presence{Room: "go@conference.example.org", Nickname: "alice", Online: true}
	offline := &domain.Presence{Room: "go@conference.example.org", Nickname: "alice", Online: false}

	require.NotNil(t, tracker.OnPresence(online))

	assert.Nil(t, tracker.OnPresence(offline))
	assert.Empty(t, tracker.rooms["go@conference.example.org"])

	// Coming back after going offline warrants a fresh welcome.
	assert.NotNil(t, tracker.OnPresence(online))
}

func TestOnJoinRoomIdempotent(t *testing.T) {
	tracker := NewRoomTracker("Bot")
	tracker.OnJoinRoom("go@conference.example.org")

	require.NotNil(t, tracker.OnPresence(&domain.Presence{
		Room:     "go@conference.example.org",
		Nickname: "alice",
		Online:   true,
	}))

	tracker.OnJoinRoom("go@conference.example.org")

	assert.Len(t, tracker.rooms["go@conference.example.org"], 1)
}

func TestOnLeaveRoom(t *testing.T) {
	tracker := NewRoomTracker("Bot")
	tracker.OnJoinRoom("go@conference.example.org")

	assert.True(t, tracker.Joined("go@conference.example.org"))

	tracker.OnLeaveRoom("go@conference.example.org")

	assert.False(t, tracker.Joined("go@conference.example.org"))
	assert.Empty(t, tracker.JoinedRooms())
}

func TestJoinedRoomsSorted(t *testing.T) {
	tracker := NewRoomTracker("Bot")
	tracker.OnJoinRoom("ops@conference.example.org")
	tracker.OnJoinRoom("go@conference.example.org")
	tracker.OnJoinRoom("art@conference.example.org")

	want := []string{"art@conference.example.org", "go@conference.example.org", "ops@conference.example.org"}
	assert.Equal(t, want, tracker.JoinedRooms())
}

func TestReset(t *testing.T) {
	tracker := NewRoomTracker("Bot")
	tracker.OnJoinRoom("go@conference.example.org")
	tracker.OnPresence(&domain.Presence{Room: "go@conference.example.org", Nickname: "alice", Online: true})

	tracker.Reset()

	assert.Empty(t, tracker.JoinedRooms())
	assert.False(t, tracker.Joined("go@conference.example.org"))
}
