package core

import "context"

// SessionRepository persists conversation state for front ends whose host
// does not echo it back (chat bots, CLI).
type SessionRepository interface {
	Load(ctx context.Context, sessionID string) (ConversationState, error)
	Save(ctx context.Context, sessionID string, state ConversationState) error
}
