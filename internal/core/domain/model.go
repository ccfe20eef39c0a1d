package domain

import "time"

type Kind string

const (
	Direct Kind = "direct"
	Group  Kind = "group"
)

// Sender identifies the originator of an inbound message. Address is the
// account-level bare address; for group messages it carries the room address
// and Nickname the sender's room nickname.
type Sender struct {
	Address  string
	Nickname string
}

type Message struct {
	Kind   Kind
	Sender Sender
	Body   string
}

// Presence reports a nickname in a room going online or offline.
type Presence struct {
	Room     string
	Nickname string
	Online   bool
}

// Invocation is one parsed command call, discarded after dispatch.
type Invocation struct {
	Command string
	Args    []string
	Sender  Sender
	Kind    Kind
}

// Welcome is produced by the room tracker when a new occupant appears.
type Welcome struct {
	Room     string
	Nickname string
}

// Identity carries the read-only bot configuration the core works from.
type Identity struct {
	Address        string
	Nickname       string
	Server         string
	TimezoneOffset int
	Rooms          []string
	Templates      Templates
}

// ProbeResult reports one reachability probe. Average holds the round-trip
// average parsed from the utility's summary; when the summary could not be
// parsed, Averaged is false and Elapsed carries the wall-clock fallback.
type ProbeResult struct {
	Average  time.Duration
	Elapsed  time.Duration
	Averaged bool
}

// SpeedResult reports one network speed measurement.
type SpeedResult struct {
	Server   string
	Latency  time.Duration
	Download float64
	Upload   float64
}
