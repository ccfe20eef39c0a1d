package service

import (
	"context"
	"jabbot/internal/core/domain"
	"jabbot/internal/core/port"
	"strings"

	"github.com/rs/zerolog/log"
)

type Router struct {
	dispatcher *Dispatcher
	sender     port.MessageSender
	identity   domain.Identity
}

func NewRouter(dispatcher *Dispatcher, sender port.MessageSender, identity domain.Identity) *Router {
	return &Router{dispatcher: dispatcher, sender: sender, identity: identity}
}

// Route classifies an inbound message, filters the bot's own echoes and
// dispatches when the message addresses the bot.
func (r *Router) Route(ctx context.Context, message *domain.Message) {
	switch message.Kind {
	case domain.Direct:
		r.routeDirect(ctx, message)
	case domain.Group:
		r.routeGroup(ctx, message)
	}
}

func (r *Router) routeDirect(ctx context.Context, message *domain.Message) {
	if message.Sender.Address == r.identity.Address {
		return
	}

	reply := r.dispatcher.Dispatch(ctx, strings.TrimSpace(message.Body), message.Sender, domain.Direct)
	r.deliver(ctx, message.Sender.Address, reply, domain.Direct)
}

func (r *Router) routeGroup(ctx context.Context, message *domain.Message) {
	if message.Sender.Nickname == r.identity.Nickname {
		return
	}

	command, ok := r.addressedCommand(message.Body)
	if !ok {
		return
	}

	// Sender.Address carries the room address for group messages.
	reply := r.dispatcher.Dispatch(ctx, command, message.Sender, domain.Group)
	r.deliver(ctx, message.Sender.Address, reply, domain.Group)
}

// addressedCommand extracts the command text from a room message. Only
// bodies starting with "<nickname>:" or "!" address the bot; everything
// else is ordinary chatter.
func (r *Router) addressedCommand(body string) (string, bool) {
	body = strings.TrimSpace(body)

	prefix := r.identity.Nickname + ":"
	if strings.HasPrefix(body, prefix) {
		command := strings.TrimSpace(strings.TrimPrefix(body, prefix))
		return strings.TrimPrefix(command, "!"), true
	}

	if strings.HasPrefix(body, "!") {
		return strings.TrimPrefix(body, "!"), true
	}

	return "", false
}

func (r *Router) deliver(ctx context.Context, target string, reply domain.Reply, kind domain.Kind) {
	if reply.Kind == domain.ReplyNone {
		return
	}

	if err := r.sender.Send(ctx, target, reply.Text, kind); err != nil {
		log.Warn().Err(err).Str("target", target).Msg("failed to send reply")
	}
}
