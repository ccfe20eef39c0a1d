package service

import (
	"context"
	"fmt"
	"jabbot/internal/core/domain"
	"jabbot/internal/core/port"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Dispatcher struct {
	registry port.CommandRegistry
	timeout  time.Duration
}

func NewDispatcher(registry port.CommandRegistry, timeout time.Duration) *Dispatcher {
	return &Dispatcher{registry: registry, timeout: timeout}
}

// Dispatch parses text into a command invocation, runs the matching handler
// and folds the outcome into a reply. Handler failures and panics become
// error replies; Dispatch itself never fails.
func (d *Dispatcher) Dispatch(ctx context.Context, text string, sender domain.Sender, kind domain.Kind) domain.Reply {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return domain.NoReply()
	}

	name := strings.ToLower(fields[0])

	handler, err := d.registry.Get(name)
	if err != nil {
		return domain.ErrorReply(fmt.Sprintf("❓ Unknown command '%s'. Type 'help' for available commands.", name))
	}

	invocation := &domain.Invocation{
		Command: name,
		Args:    fields[1:],
		Sender:  sender,
		Kind:    kind,
	}

	response, err := d.respond(ctx, handler, invocation)
	if err != nil {
		log.Warn().Err(err).Str("command", name).Msg("command handler failed")
		return domain.ErrorReply(fmt.Sprintf("❌ Error executing command: %v", err))
	}

	if response == "" {
		return domain.NoReply()
	}

	return domain.TextReply(response)
}

func (d *Dispatcher) respond(ctx context.Context, handler port.Command,
	invocation *domain.Invocation) (response string, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("recovered panicking handler")
			err = fmt.Errorf("%v", r)
		}
	}()

	return handler.Respond(ctx, d.timeout, invocation)
}
