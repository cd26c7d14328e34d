package command

import (
	"context"
	"fmt"
	"sync"

	"github.com/sandevgo/cinebot/internal/core"
	"github.com/sandevgo/cinebot/internal/service/fulfillment"
	"github.com/sandevgo/cinebot/internal/service/render"
	"github.com/sandevgo/cinebot/pkg/log"
)

// SessionStore is a session repository that can also forget a session.
type SessionStore interface {
	core.SessionRepository
	Reset(ctx context.Context, sessionID string) error
}

// carried survive from one chat turn to the next; everything else is
// per-turn input.
var carried = []string{core.ParamSearchedMovies, core.ParamMovieSearchResults}

// TurnRunner plays the conversational host for chat front ends: it loads
// the session bag, runs a handler and stores the returned state.
type TurnRunner struct {
	handlers map[string]fulfillment.HandlerFunc
	sessions SessionStore
	locks    sessionLocks
}

func NewTurnRunner(handlers map[string]fulfillment.HandlerFunc, sessions SessionStore) *TurnRunner {
	return &TurnRunner{
		handlers: handlers,
		sessions: sessions,
		locks:    sessionLocks{held: make(map[string]*sessionLock)},
	}
}

// Run executes handler with params and returns the reply as Markdown.
func (t *TurnRunner) Run(ctx context.Context, sessionID, handler string, params map[string]any) (string, error) {
	fn, ok := t.handlers[handler]
	if !ok {
		return "", fmt.Errorf("unknown handler %q", handler)
	}

	// Load, run and save are one step per session, otherwise concurrent
	// turns in a chat overwrite each other's history.
	unlock := t.locks.lock(sessionID)
	defer unlock()

	prev, err := t.sessions.Load(ctx, sessionID)
	if err != nil {
		return "", err
	}

	prev.Session = sessionID
	state, err := carry(prev, params)
	if err != nil {
		return "", err
	}

	out := fn(ctx, state)
	if !out.Rejected {
		if err := t.sessions.Save(ctx, sessionID, out.State); err != nil {
			log.FromCtx(ctx).Error().Err(err).Str("session", sessionID).Msg("failed to save session")
		}
	}
	return render.Markdown(out.Messages), nil
}

func (t *TurnRunner) Reset(ctx context.Context, sessionID string) error {
	unlock := t.locks.lock(sessionID)
	defer unlock()
	return t.sessions.Reset(ctx, sessionID)
}

// sessionLocks hands out one mutex per session id. Entries are dropped
// once no turn holds or waits on them.
type sessionLocks struct {
	mu   sync.Mutex
	held map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	sl, ok := l.held[id]
	if !ok {
		sl = &sessionLock{}
		l.held[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()

		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.held, id)
		}
		l.mu.Unlock()
	}
}

func carry(prev core.ConversationState, params map[string]any) (core.ConversationState, error) {
	state := core.ConversationState{Session: prev.Session}
	var err error
	for _, key := range carried {
		if raw, ok := prev.Param(key); ok {
			if state, err = state.WithParam(key, raw); err != nil {
				return prev, err
			}
		}
	}
	for k, v := range params {
		if state, err = state.WithParam(k, v); err != nil {
			return prev, err
		}
	}
	return state, nil
}
