package normalize

import (
	"strconv"
	"testing"
	"time"

	"github.com/sandevgo/cinebot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time {
	return time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		params   Params
		want     core.CanonicalFilter
		wantKind core.Kind
	}{
		{
			name:   "all fields",
			policy: PolicyStrict,
			params: Params{Provider: "Netflix", Genre: "ACTION", Year: "2020"},
			want:   core.CanonicalFilter{Provider: core.ProviderNetflix, Genre: core.GenreAction, Year: 2020},
		},
		{
			name:   "empty params",
			policy: PolicyStrict,
			params: Params{},
			want:   core.CanonicalFilter{},
		},
		{
			name:   "multi word genre",
			policy: PolicyStrict,
			params: Params{Genre: "science fiction"},
			want:   core.CanonicalFilter{Genre: core.GenreScienceFiction},
		},
		{
			name:   "provider alias",
			policy: PolicyStrict,
			params: Params{Provider: "Amazon Prime Video"},
			want:   core.CanonicalFilter{Provider: core.ProviderPrime},
		},
		{
			name:   "hbo max alias",
			policy: PolicyStrict,
			params: Params{Provider: "max"},
			want:   core.CanonicalFilter{Provider: core.ProviderHBO},
		},
		{
			name:   "lenient drops unknown provider",
			policy: PolicyLenient,
			params: Params{Provider: "peacock", Genre: "drama"},
			want:   core.CanonicalFilter{Genre: core.GenreDrama},
		},
		{
			name:   "lenient drops unknown genre",
			policy: PolicyLenient,
			params: Params{Provider: "hulu", Genre: "telenovela"},
			want:   core.CanonicalFilter{Provider: core.ProviderHulu},
		},
		{
			name:     "strict rejects unknown provider",
			policy:   PolicyStrict,
			params:   Params{Provider: "peacock"},
			wantKind: core.KindUnrecognizedValue,
		},
		{
			name:     "strict rejects unknown genre",
			policy:   PolicyStrict,
			params:   Params{Genre: "telenovela"},
			wantKind: core.KindUnrecognizedValue,
		},
		{
			name:     "year before 1900",
			policy:   PolicyLenient,
			params:   Params{Year: "1899"},
			wantKind: core.KindInvalidYear,
		},
		{
			name:     "year too far ahead",
			policy:   PolicyLenient,
			params:   Params{Year: "2028"},
			wantKind: core.KindInvalidYear,
		},
		{
			name:   "next year allowed",
			policy: PolicyLenient,
			params: Params{Year: "2027"},
			want:   core.CanonicalFilter{Year: 2027},
		},
		{
			name:   "integral float year",
			policy: PolicyLenient,
			params: Params{Year: "2010.0"},
			want:   core.CanonicalFilter{Year: 2010},
		},
		{
			name:     "non numeric year",
			policy:   PolicyLenient,
			params:   Params{Year: "last year"},
			wantKind: core.KindInvalidYear,
		},
		{
			name:     "invalid year wins over unknown provider",
			policy:   PolicyStrict,
			params:   Params{Provider: "peacock", Year: "1800"},
			wantKind: core.KindInvalidYear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := New(tt.policy, WithClock(fixedNow))
			got, err := n.Normalize(tt.params)
			if tt.wantKind != core.KindNone {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, core.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateYear_Bounds(t *testing.T) {
	now := fixedNow()
	for year := 1850; year <= 2040; year++ {
		_, err := ValidateYear(strconv.Itoa(year), now)
		valid := year >= MinYear && year <= now.Year()+1
		if valid {
			assert.NoError(t, err, "year %d", year)
		} else {
			assert.Equal(t, core.KindInvalidYear, core.KindOf(err), "year %d", year)
		}
	}
}

func TestFromState(t *testing.T) {
	state, err := core.NewState("s1", map[string]any{
		"provider": "Netflix",
		"genre":    "Action",
		"date-period": map[string]any{
			"startDate": map[string]any{"year": 2020, "month": 1, "day": 1},
			"endDate":   map[string]any{"year": 2020, "month": 12, "day": 31},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, Params{Provider: "Netflix", Genre: "Action", Year: "2020"}, FromState(state))
}

func TestWithPolicy_DoesNotMutate(t *testing.T) {
	lenient := New(PolicyLenient)
	strict := lenient.WithPolicy(PolicyStrict)

	assert.Equal(t, PolicyLenient, lenient.Policy())
	assert.Equal(t, PolicyStrict, strict.Policy())
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("STRICT")
	require.NoError(t, err)
	assert.Equal(t, PolicyStrict, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyLenient, p)

	_, err = ParsePolicy("paranoid")
	assert.Error(t, err)
}
