package shared

import "context"

// Command is an intent to change state, routed by name
type Command interface {
	CommandName() string
}

// CommandDispatcher dispatches commands to their single registered handler.
// Dispatch is synchronous and returns the handler's own error unchanged.
type CommandDispatcher interface {
	Dispatch(ctx context.Context, cmd Command) error
}
