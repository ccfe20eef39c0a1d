package service

import (
	"context"
	"fmt"
	"jabbot/internal/core/domain"
	"jabbot/internal/core/port"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	joinAnnounceGrace = 2 * time.Second
	welcomeGrace      = time.Second
)

// Session wires the router, tracker and scheduler to the transport and owns
// all connection-scoped state.
type Session struct {
	router    *Router
	tracker   *RoomTracker
	scheduler *Scheduler
	sender    port.MessageSender
	joiner    port.RoomJoiner
	store     port.RoomStore
	identity  domain.Identity
	limiter   *rate.Limiter

	joinGrace    time.Duration
	welcomeGrace time.Duration
}

// NewSession builds a session around an optional room store; a nil store
// disables persistence.
func NewSession(router *Router, tracker *RoomTracker, sender port.MessageSender, joiner port.RoomJoiner,
	store port.RoomStore, identity domain.Identity) (*Session, error) {
	s := &Session{
		router:       router,
		tracker:      tracker,
		sender:       sender,
		joiner:       joiner,
		store:        store,
		identity:     identity,
		limiter:      rate.NewLimiter(rate.Every(time.Second), 1),
		joinGrace:    joinAnnounceGrace,
		welcomeGrace: welcomeGrace,
	}

	scheduler, err := NewScheduler(identity.TimezoneOffset, s.Broadcast)
	if err != nil {
		return nil, err
	}

	s.scheduler = scheduler

	return s, nil
}

// HandleEstablished joins all configured and remembered rooms and starts the
// hourly announcements. The transport calls this on every (re)connect.
func (s *Session) HandleEstablished(ctx context.Context) {
	log.Info().Msg("session established")

	for _, room := range s.roomList() {
		if err := s.joinRoom(ctx, room); err != nil {
			log.Error().Err(err).Str("room", room).Msg("failed to join room")
		}
	}

	s.scheduler.Start(ctx)

	log.Info().Str("nickname", s.identity.Nickname).Msg("bot is now online and ready")
}

func (s *Session) HandleMessage(ctx context.Context, message *domain.Message) {
	s.router.Route(ctx, message)
}

// HandlePresence feeds the tracker and welcomes any new occupant after a
// short anti-flood pause.
func (s *Session) HandlePresence(ctx context.Context, presence *domain.Presence) {
	welcome := s.tracker.OnPresence(presence)
	if welcome == nil {
		return
	}

	if !s.pause(ctx, s.welcomeGrace) {
		return
	}

	body := domain.RenderTemplate(s.identity.Templates.UserWelcome, map[string]string{
		"nickname": welcome.Nickname,
		"room":     welcome.Room,
		"bot_nick": s.identity.Nickname,
	})

	if err := s.sender.Send(ctx, welcome.Room, body, domain.Group); err != nil {
		log.Warn().Err(err).Str("room", welcome.Room).Msg("failed to send welcome")
	}
}

// HandleLost halts announcements and drops volatile room state. The
// transport issues HandleEstablished again once the connection returns.
func (s *Session) HandleLost() {
	log.Warn().Msg("session lost")

	s.scheduler.Stop()
	s.tracker.Reset()
}

// Broadcast renders the hourly announcement and sends it to every joined
// room, paced by the shared limiter.
func (s *Session) Broadcast(ctx context.Context) error {
	zone := domain.Zone(s.identity.TimezoneOffset)
	now := time.Now().In(zone)

	body := domain.RenderTemplate(s.identity.Templates.Hourly, map[string]string{
		"time": now.Format("15:04"),
		"date": now.Format("02/01/2006"),
		"day":  now.Format("Monday"),
		"tz":   domain.ZoneLabel(s.identity.TimezoneOffset),
	})

	for _, room := range s.tracker.JoinedRooms() {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		if err := s.sender.Send(ctx, room, body, domain.Group); err != nil {
			return fmt.Errorf("failed to announce to %s: %w", room, err)
		}
	}

	return nil
}

// Join enters a room immediately and persists it for future sessions.
func (s *Session) Join(ctx context.Context, room string) error {
	if err := s.joinRoom(ctx, room); err != nil {
		return err
	}

	s.persistRooms()

	return nil
}

// Leave departs from a joined room and forgets it.
func (s *Session) Leave(ctx context.Context, room string) error {
	if !s.tracker.Joined(room) {
		return fmt.Errorf("%w: %s", domain.ErrRoomNotJoined, room)
	}

	if err := s.joiner.LeaveRoom(ctx, room, s.identity.Nickname); err != nil {
		return err
	}

	s.tracker.OnLeaveRoom(room)
	s.persistRooms()

	return nil
}

func (s *Session) joinRoom(ctx context.Context, room string) error {
	if err := s.joiner.JoinRoom(ctx, room, s.identity.Nickname); err != nil {
		return err
	}

	s.tracker.OnJoinRoom(room)

	if !s.pause(ctx, s.joinGrace) {
		return nil
	}

	zone := domain.Zone(s.identity.TimezoneOffset)
	body := domain.RenderTemplate(s.identity.Templates.Welcome, map[string]string{
		"nickname": s.identity.Nickname,
		"bot_nick": s.identity.Nickname,
		"room":     room,
		"time":     time.Now().In(zone).Format("15:04") + " " + domain.ZoneLabel(s.identity.TimezoneOffset),
	})

	if err := s.sender.Send(ctx, room, body, domain.Group); err != nil {
		log.Warn().Err(err).Str("room", room).Msg("failed to send join announcement")
	}

	return nil
}

// roomList merges configured rooms with remembered ones, configured first,
// dropping duplicates.
func (s *Session) roomList() []string {
	rooms := make([]string, 0, len(s.identity.Rooms))
	seen := make(map[string]struct{})

	add := func(room string) {
		if _, ok := seen[room]; ok {
			return
		}
		seen[room] = struct{}{}
		rooms = append(rooms, room)
	}

	for _, room := range s.identity.Rooms {
		add(room)
	}

	if s.store != nil {
		remembered, err := s.store.Load()
		if err != nil {
			log.Warn().Err(err).Msg("failed to load remembered rooms")
		}

		for _, room := range remembered {
			add(room)
		}
	}

	return rooms
}

func (s *Session) persistRooms() {
	if s.store == nil {
		return
	}

	if err := s.store.Save(s.tracker.JoinedRooms()); err != nil {
		log.Warn().Err(err).Msg("failed to persist room list")
	}
}

// pause waits out an anti-flood grace period. Returns false when the context
// was canceled during the wait.
func (s *Session) pause(ctx context.Context, grace time.Duration) bool {
	select {
	case <-time.After(grace):
		return true
	case <-ctx.Done():
		return false
	}
}
