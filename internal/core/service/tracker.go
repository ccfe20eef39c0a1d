package service

import (
	"jabbot/internal/core/domain"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// RoomTracker keeps the per-room occupant sets the bot has seen. The mutex
// guards against transport callbacks and the scheduler reading concurrently.
type RoomTracker struct {
	rooms map[string]map[string]struct{}
	nick  string
	mutex *sync.Mutex
}

func NewRoomTracker(nickname string) *RoomTracker {
	return &RoomTracker{
		rooms: make(map[string]map[string]struct{}),
		nick:  nickname,
		mutex: &sync.Mutex{},
	}
}

// OnJoinRoom starts tracking occupants of a room. Tracking an already
// tracked room keeps its known occupants.
func (t *RoomTracker) OnJoinRoom(room string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.rooms[room]; ok {
		return
	}

	log.Info().Str("room", room).Msg("tracking room occupants")
	t.rooms[room] = make(map[string]struct{})
}

func (t *RoomTracker) OnLeaveRoom(room string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	delete(t.rooms, room)
}

// OnPresence updates room state and reports whether the presence warrants a
// welcome. Presences from untracked rooms, from the bot itself and from
// occupants seen before yield nil. An occupant going offline is forgotten,
// so a later return is welcomed again.
func (t *RoomTracker) OnPresence(presence *domain.Presence) *domain.Welcome {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	occupants, ok := t.rooms[presence.Room]
	if !ok {
		return nil
	}

	if !presence.Online {
		delete(occupants, presence.Nickname)
		return nil
	}

	if presence.Nickname == t.nick {
		return nil
	}

	if _, ok := occupants[presence.Nickname]; ok {
		return nil
	}

	occupants[presence.Nickname] = struct{}{}

	log.Info().Str("room", presence.Room).Str("nickname", presence.Nickname).Msg("new occupant in room")

	return &domain.Welcome{Room: presence.Room, Nickname: presence.Nickname}
}

// JoinedRooms returns the tracked room addresses in alphabetical order.
func (t *RoomTracker) JoinedRooms() []string {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	rooms := make([]string, 0, len(t.rooms))
	for room := range t.rooms {
		rooms = append(rooms, room)
	}

	sort.Strings(rooms)

	return rooms
}

func (t *RoomTracker) Joined(room string) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	_, ok := t.rooms[room]
	return ok
}

// Reset forgets all rooms and occupants.
func (t *RoomTracker) Reset() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.rooms = make(map[string]map[string]struct{})
}
