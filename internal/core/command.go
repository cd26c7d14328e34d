package core

import "context"

// Command is a slash command available to chat front ends.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}
