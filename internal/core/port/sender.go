package port

import (
	"context"

	"jabbot/internal/core/domain"
)

type MessageSender interface {
	// Send delivers body to target over the transport. Kind selects between a
	// private message and a room broadcast.
	Send(ctx context.Context, target string, body string, kind domain.Kind) error
}

type RoomJoiner interface {
	// JoinRoom announces the bot into a room under the given nickname.
	JoinRoom(ctx context.Context, room string, nickname string) error
	// LeaveRoom withdraws the bot's presence from a room.
	LeaveRoom(ctx context.Context, room string, nickname string) error
}
