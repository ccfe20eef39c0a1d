package port

import (
	"context"
	"time"

	"jabbot/internal/core/domain"
)

type Command interface {
	// Respond executes the command within the specified timeout and returns the reply text.
	// An empty reply with a nil error means the command has nothing to say.
	Respond(ctx context.Context, timeout time.Duration, invocation *domain.Invocation) (string, error)
	// GetCommand retrieves the command identifier associated with a specific command handler.
	GetCommand() string
}

type CommandRegistry interface {
	// Register adds a new command handler to the command registry.
	Register(handler Command)
	// Get retrieves a registered Command based on its string identifier or returns an error if not found.
	Get(command string) (Command, error)
	// ListCommands returns a list of all command identifiers currently registered in the command registry.
	ListCommands() []string
}
