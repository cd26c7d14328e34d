// Package normalize turns loosely typed conversational parameters into a
// core.CanonicalFilter.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/cinebot/internal/core"
)

const MinYear = 1900

// Policy decides what happens to provider/genre names that are not recognized.
type Policy int

const (
	// PolicyLenient drops unknown values and proceeds unfiltered.
	PolicyLenient Policy = iota
	// PolicyStrict fails with core.KindUnrecognizedValue.
	PolicyStrict
)

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return PolicyLenient, nil
	case "strict":
		return PolicyStrict, nil
	}
	return PolicyLenient, fmt.Errorf("unknown policy: %s", s)
}

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "lenient"
}

// Params are the raw values pulled from the session bag.
type Params struct {
	Provider string
	Genre    string
	Year     string
}

// FromState extracts Params from a conversation state.
func FromState(s core.ConversationState) Params {
	return Params{
		Provider: s.StringParam(core.ParamProvider),
		Genre:    s.StringParam(core.ParamGenre),
		Year:     s.DatePeriodYear(),
	}
}

type Normalizer struct {
	policy Policy
	now    func() time.Time
}

type Option func(*Normalizer)

// WithClock overrides the clock used for the upper year bound.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

func New(policy Policy, opts ...Option) *Normalizer {
	n := &Normalizer{policy: policy, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Normalizer) Policy() Policy {
	return n.policy
}

// WithPolicy returns a copy of n using policy p.
func (n *Normalizer) WithPolicy(p Policy) *Normalizer {
	c := *n
	c.policy = p
	return &c
}

// Normalize validates p. The year is checked first so an invalid year is
// reported even when other fields are also wrong.
func (n *Normalizer) Normalize(p Params) (core.CanonicalFilter, error) {
	var f core.CanonicalFilter

	year, err := n.Year(p.Year)
	if err != nil {
		return core.CanonicalFilter{}, err
	}
	f.Year = year

	if name := strings.TrimSpace(p.Provider); name != "" {
		provider, ok := core.ParseProvider(name)
		if !ok && n.policy == PolicyStrict {
			return core.CanonicalFilter{}, core.NewError(core.KindUnrecognizedValue, core.ParamProvider, name)
		}
		f.Provider = provider
	}

	if name := strings.TrimSpace(p.Genre); name != "" {
		genre, ok := core.ParseGenre(name)
		if !ok && n.policy == PolicyStrict {
			return core.CanonicalFilter{}, core.NewError(core.KindUnrecognizedValue, core.ParamGenre, name)
		}
		f.Genre = genre
	}

	return f, nil
}

// Year validates an optional raw year. Empty input yields 0 and no error.
func (n *Normalizer) Year(raw string) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return ValidateYear(raw, n.now())
}

// ValidateYear parses raw as a calendar year in [MinYear, now.Year()+1].
// Integral floats such as "2020.0" are accepted.
func ValidateYear(raw string, now time.Time) (int, error) {
	raw = strings.TrimSpace(raw)
	year, err := strconv.Atoi(raw)
	if err != nil {
		fv, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || fv != math.Trunc(fv) || math.IsInf(fv, 0) {
			return 0, core.NewError(core.KindInvalidYear, core.ParamDatePeriod, raw)
		}
		year = int(fv)
	}
	if year < MinYear || year > now.Year()+1 {
		return 0, core.NewError(core.KindInvalidYear, core.ParamDatePeriod, raw)
	}
	return year, nil
}
