package domain

import "errors"

var (
	ErrProbeUnavailable = errors.New("probe utility not available")
	ErrRoomNotJoined    = errors.New("room not joined")
)
