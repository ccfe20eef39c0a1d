package port

import "context"

type RoomDirectory interface {
	// JoinedRooms returns the addresses of all rooms currently joined.
	JoinedRooms() []string
}

type RoomAdmin interface {
	// Join joins a room and remembers it for future sessions.
	Join(ctx context.Context, room string) error

	// Leave departs from a room and forgets it.
	Leave(ctx context.Context, room string) error
}

type RoomStore interface {
	// Load returns the persisted room addresses. A missing store is not an
	// error and yields an empty list.
	Load() ([]string, error)

	// Save persists the given room addresses, replacing any previous set.
	Save(rooms []string) error
}
