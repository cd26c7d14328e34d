package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// Session parameter keys understood by the handlers.
const (
	ParamProvider           = "provider"
	ParamGenre              = "genre"
	ParamMovie              = "movie"
	ParamDatePeriod         = "date-period"
	ParamSearchedMovies     = "searchedMovies"
	ParamMovieSearchResults = "movieSearchResults"
)

// ConversationState is the host-owned session bag. Parameters are kept as raw
// JSON so values the core does not interpret are echoed back byte for byte.
// Values are never mutated in place; the With* methods return copies.
type ConversationState struct {
	Session    string                     `json:"session,omitempty"`
	Parameters map[string]json.RawMessage `json:"parameters,omitempty"`
}

// NewState builds a state from plain Go values, mostly for chat front ends and tests.
func NewState(session string, params map[string]any) (ConversationState, error) {
	s := ConversationState{Session: session}
	for k, v := range params {
		var err error
		if s, err = s.WithParam(k, v); err != nil {
			return ConversationState{}, err
		}
	}
	return s, nil
}

func (s ConversationState) Param(key string) (json.RawMessage, bool) {
	raw, ok := s.Parameters[key]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

// StringParam returns a string parameter, or "" when absent or not a string.
func (s ConversationState) StringParam(key string) string {
	raw, ok := s.Param(key)
	if !ok {
		return ""
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return v
}

// DatePeriodYear returns date-period.startDate.year as text. Numbers and
// strings are both accepted since the host emits either; zero counts as absent.
func (s ConversationState) DatePeriodYear() string {
	raw, ok := s.Param(ParamDatePeriod)
	if !ok {
		return ""
	}
	var period struct {
		StartDate *struct {
			Year json.RawMessage `json:"year"`
		} `json:"startDate"`
	}
	if err := json.Unmarshal(raw, &period); err != nil || period.StartDate == nil {
		return ""
	}
	year := period.StartDate.Year
	if isNull(year) {
		return ""
	}
	var str string
	if err := json.Unmarshal(year, &str); err == nil {
		return strings.TrimSpace(str)
	}
	text := strings.TrimSpace(string(year))
	if text == "0" || text == "false" {
		return ""
	}
	return text
}

// SearchedMovies decodes the session movie history. Absent means empty.
func (s ConversationState) SearchedMovies() (SessionHistory, error) {
	return s.movies(ParamSearchedMovies)
}

// MovieSearchResults decodes the pending disambiguation candidates.
func (s ConversationState) MovieSearchResults() ([]Movie, error) {
	return s.movies(ParamMovieSearchResults)
}

func (s ConversationState) movies(key string) ([]Movie, error) {
	raw, ok := s.Param(key)
	if !ok {
		return nil, nil
	}
	var movies []Movie
	if err := json.Unmarshal(raw, &movies); err != nil {
		return nil, &Error{Kind: KindMalformedRequest, Field: key, Err: err}
	}
	return movies, nil
}

// WithParam returns a copy of s with key set to the JSON encoding of v.
func (s ConversationState) WithParam(key string, v any) (ConversationState, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return s, fmt.Errorf("failed to encode parameter %s: %w", key, err)
	}
	params := make(map[string]json.RawMessage, len(s.Parameters)+1)
	maps.Copy(params, s.Parameters)
	params[key] = raw
	return ConversationState{Session: s.Session, Parameters: params}, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
