package commands

import (
	"errors"
	"jabbot/internal/core/port"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[string]port.Command
}

// Register adds a handler under its lowercased command name. Registering the
// same name twice replaces the earlier handler.
func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	name := strings.ToLower(handler.GetCommand())

	log.Info().Str("handler", name).Msg("adding command handler to registry")
	r.commands[name] = handler
}

// Get resolves a command name to its handler, ignoring case.
func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		err := errors.New("can't fetch command, registry not initialized")
		return nil, err
	}

	handler, ok := r.commands[strings.ToLower(command)]
	if !ok {
		return nil, errors.New("command not found")
	}

	return handler, nil
}

// ListCommands returns all registered command names in alphabetical order.
func (r *Registry) ListCommands() []string {
	keys := make([]string, len(r.commands))

	i := 0
	for k := range r.commands {
		keys[i] = k
		i++
	}

	sort.Strings(keys)

	return keys
}
