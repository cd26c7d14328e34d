package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitHTML(t *testing.T) {
	t.Run("short text is one chunk", func(t *testing.T) {
		assert.Equal(t, []string{"hello"}, splitHTML("hello", 10))
	})

	t.Run("splits on newline", func(t *testing.T) {
		text := "aaaaaa\nbbbbbb\ncccccc"
		chunks := splitHTML(text, 14)
		assert.Equal(t, []string{"aaaaaa\nbbbbbb", "cccccc"}, chunks)
	})

	t.Run("hard cut without newline", func(t *testing.T) {
		text := strings.Repeat("x", 25)
		chunks := splitHTML(text, 10)
		assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}, chunks)
	})

	t.Run("chunks respect limit", func(t *testing.T) {
		text := strings.Repeat("line of movie text\n", 500)
		for _, c := range splitHTML(text, maxTelegramMsgLen) {
			assert.LessOrEqual(t, len(c), maxTelegramMsgLen)
		}
	})
}

func TestSessionID(t *testing.T) {
	assert.Equal(t, "telegram--100123", SessionID(-100123))
}

func TestPlainChunk(t *testing.T) {
	assert.Equal(t, "Inception", plainChunk("<u>Inception</u>"))
	assert.Equal(t, "<u></u>", plainChunk("<u></u>"))
}
