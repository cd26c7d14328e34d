package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const card = "**Inception (2010)**\nA thief who steals corporate secrets.\n\n[More info](https://www.themoviedb.org/movie/27205)"

func TestMarkdownToTelegramHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty input", "", ""},
		{"plain text", "Session cleared", "Session cleared\n"},
		{"bold title", "**Inception**", "<strong>Inception</strong>\n"},
		{"italic", "*Directed by Christopher Nolan*", "<em>Directed by Christopher Nolan</em>\n"},
		{"usage line", "`/movie <title> [year]`", "<code>/movie &lt;title&gt; [year]</code>\n"},
		{"link loses target", "[More info](https://www.themoviedb.org/movie/27205)", "<a href=\"https://www.themoviedb.org/movie/27205\">More info</a>\n"},
		{"headers stripped", "# Trending", "Trending\n"},
		{"script sanitized", "<script>alert('xss')</script>", "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MarkdownToTelegramHTML([]byte(tt.input)))
		})
	}
}

func TestMarkdownToTelegramHTML_Card(t *testing.T) {
	got := MarkdownToTelegramHTML([]byte(card))

	assert.Contains(t, got, "<strong>Inception (2010)</strong>")
	assert.Contains(t, got, "A thief who steals corporate secrets.")
	assert.Contains(t, got, `<a href="https://www.themoviedb.org/movie/27205">More info</a>`)
	assert.NotContains(t, got, "<p>")
}

func TestMarkdownToPlainText(t *testing.T) {
	got, err := MarkdownToPlainText([]byte(card))
	require.NoError(t, err)

	assert.Contains(t, got, "Inception (2010)")
	assert.Contains(t, got, "A thief who steals corporate secrets.")
	assert.Contains(t, got, "https://www.themoviedb.org/movie/27205")
	assert.NotContains(t, got, "<")
}

func TestHTMLToPlainText(t *testing.T) {
	got, err := HTMLToPlainText("<u>Inception</u>")
	require.NoError(t, err)
	assert.Equal(t, "Inception", got)
}
