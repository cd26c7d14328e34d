package webhook

import (
	"encoding/json"

	"github.com/sandevgo/cinebot/internal/core"
)

// Request is the subset of a Dialogflow CX WebhookRequest the handlers read.
type Request struct {
	DetectIntentResponseID string          `json:"detectIntentResponseId,omitempty"`
	FulfillmentInfo        FulfillmentInfo `json:"fulfillmentInfo"`
	SessionInfo            *SessionInfo    `json:"sessionInfo"`
	LanguageCode           string          `json:"languageCode,omitempty"`
}

type FulfillmentInfo struct {
	Tag string `json:"tag,omitempty"`
}

type SessionInfo struct {
	Session    string                     `json:"session,omitempty"`
	Parameters map[string]json.RawMessage `json:"parameters,omitempty"`
}

// Response is a Dialogflow CX WebhookResponse.
type Response struct {
	FulfillmentResponse FulfillmentResponse `json:"fulfillmentResponse"`
	SessionInfo         *SessionInfo        `json:"sessionInfo,omitempty"`
}

type FulfillmentResponse struct {
	Messages []core.Message `json:"messages"`
}

func (s *SessionInfo) State() core.ConversationState {
	if s == nil {
		return core.ConversationState{}
	}
	return core.ConversationState{Session: s.Session, Parameters: s.Parameters}
}

func sessionInfoFrom(state core.ConversationState) *SessionInfo {
	return &SessionInfo{Session: state.Session, Parameters: state.Parameters}
}
