package core

import (
	"errors"
	"fmt"
)

// Kind classifies a failed conversational turn.
type Kind int

const (
	KindNone Kind = iota
	KindMissingRequiredParameter
	KindInvalidYear
	KindUnrecognizedValue
	KindNotFound
	KindAmbiguous
	KindUpstreamUnavailable
	KindEnrichmentUnavailable
	KindMalformedRequest
)

var kindNames = map[Kind]string{
	KindNone:                     "none",
	KindMissingRequiredParameter: "missing_required_parameter",
	KindInvalidYear:              "invalid_year",
	KindUnrecognizedValue:        "unrecognized_value",
	KindNotFound:                 "not_found",
	KindAmbiguous:                "ambiguous",
	KindUpstreamUnavailable:      "upstream_unavailable",
	KindEnrichmentUnavailable:    "enrichment_unavailable",
	KindMalformedRequest:         "malformed_request",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsValidation reports kinds that are detected before any catalog call.
func (k Kind) IsValidation() bool {
	switch k {
	case KindMissingRequiredParameter, KindInvalidYear, KindUnrecognizedValue, KindMalformedRequest:
		return true
	}
	return false
}

// Error is the typed failure returned across the core boundary.
type Error struct {
	Kind  Kind
	Field string // parameter or endpoint the failure relates to
	Value string // offending user value, if any
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Field != "" {
		msg += " " + e.Field
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so callers can compare against bare kinds:
//
//	errors.Is(err, &core.Error{Kind: core.KindNotFound})
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func NewError(kind Kind, field, value string) *Error {
	return &Error{Kind: kind, Field: field, Value: value}
}

// Upstream wraps a catalog transport failure.
func Upstream(endpoint string, err error) *Error {
	return &Error{Kind: KindUpstreamUnavailable, Field: endpoint, Err: err}
}

// KindOf extracts the Kind from err; unknown errors count as upstream failures.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstreamUnavailable
}

// AsError returns the *Error inside err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
