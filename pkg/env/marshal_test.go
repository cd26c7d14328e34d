package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalEnv(t *testing.T) {
	type cfg struct {
		Key      string  `env:"TMDB_API_KEY,required,notEmpty"`
		Addr     string  `env:"CINE_LISTEN_ADDR"`
		Items    int     `env:"CINE_MAX_ITEMS"`
		Ratio    float64 `env:"CINE_RATIO"`
		Enabled  bool    `env:"CINE_ENABLE_TELEGRAM"`
		Untagged string
		skipped  string `env:"CINE_SKIPPED"`
	}

	out, err := MarshalEnv(&cfg{Key: "k", Items: 5, Ratio: 0.5, Untagged: "x", skipped: "y"})
	require.NoError(t, err)
	assert.Equal(t, "TMDB_API_KEY=k\nCINE_MAX_ITEMS=5\nCINE_RATIO=0.5\n", out)
}

func TestMarshalEnv_Empty(t *testing.T) {
	type cfg struct {
		Addr string `env:"CINE_LISTEN_ADDR"`
	}

	out, err := MarshalEnv(&cfg{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMarshalEnv_Slices(t *testing.T) {
	type cfg struct {
		Chats []int64  `env:"CINE_TELEGRAM_ALLOWED_CHATS" envSeparator:","`
		Tags  []string `env:"CINE_TAGS" envSeparator:";"`
		None  []string `env:"CINE_NONE"`
	}

	out, err := MarshalEnv(&cfg{Chats: []int64{1, -100200}, Tags: []string{"a", "b"}, None: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "CINE_TELEGRAM_ALLOWED_CHATS=1,-100200\nCINE_TAGS=a;b\n", out)
}
