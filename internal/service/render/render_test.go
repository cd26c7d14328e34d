package render

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/cinebot/internal/core"
	"github.com/sandevgo/cinebot/test"
)

func TestRender_InceptionCard(t *testing.T) {
	payload := New(Options{}).Render([]core.Movie{test.Inception})

	require.Len(t, payload.RichContent, 1)
	require.Len(t, payload.RichContent[0], 1)
	card := payload.RichContent[0][0]

	assert.Equal(t, core.ElementInfo, card.Type)
	assert.Equal(t, "Inception (2010) (Rating: 8.4)", card.Title)
	assert.Equal(t, string([]rune(test.Inception.Overview)[:85])+"...", card.Subtitle)
	assert.Equal(t, ImageBaseURL+test.Inception.PosterPath, card.Image.RawURL)
	assert.Equal(t, "https://www.themoviedb.org/movie/27205", card.ActionLink)
}

func TestRender_MissingFields(t *testing.T) {
	card := New(Options{}).Card(core.Movie{ID: 7, Title: "Untitled"})

	assert.Equal(t, "Untitled (N/A) (Rating: N/A)", card.Title)
	assert.Equal(t, NoOverview, card.Subtitle)
	assert.Equal(t, PlaceholderURL, card.Image.RawURL)
}

func TestRender_UnparsableDate(t *testing.T) {
	card := New(Options{}).Card(core.Movie{ID: 7, Title: "X", ReleaseDate: "soon"})
	assert.Equal(t, "X (N/A) (Rating: N/A)", card.Title)
}

func TestRender_CapsItems(t *testing.T) {
	movies := make([]core.Movie, 8)
	for i := range movies {
		movies[i] = core.Movie{ID: int64(i + 1), Title: "M"}
	}

	assert.Len(t, New(Options{}).Render(movies).RichContent, DefaultMaxItems)
	assert.Len(t, New(Options{MaxItems: 3}).Render(movies).RichContent, 3)
	assert.Len(t, New(Options{}).Render(movies[:2]).RichContent, 2)
	assert.Empty(t, New(Options{}).Render(nil).RichContent)
}

func TestRender_GenresStyle(t *testing.T) {
	r := New(Options{}).WithStyle(StyleGenres)
	card := r.Card(test.Inception)

	assert.Equal(t, "Inception (Jul 2010) | Action, Science Fiction, Adventure | Rating: 8.4", card.Title)
	assert.Equal(t, test.Inception.Overview, card.Subtitle)
	assert.True(t, strings.HasSuffix(card.Description, "..."))

	card = r.Card(core.Movie{ID: 1, Title: "Odd", GenreIDs: []int{424242}})
	assert.Equal(t, "Odd (N/A) | Unknown Genre | Rating: N/A", card.Title)
}

func TestRender_GenresYearStyle(t *testing.T) {
	r := New(Options{}).WithStyle(StyleGenresYear)
	card := r.Card(test.Inception)

	assert.Equal(t, "Inception (2010) | Action, Science Fiction, Adventure | Rating: 8.4", card.Title)
	assert.Equal(t, test.Inception.Overview, card.Subtitle)

	card = r.Card(core.Movie{ID: 1, Title: "Odd"})
	assert.Equal(t, "Odd (N/A) | Unknown Genre | Rating: N/A", card.Title)
}

func TestDetail(t *testing.T) {
	d := core.MovieDetail{
		Movie:  test.Inception,
		Genres: []core.GenreInfo{{ID: 28, Name: "Action"}, {ID: 878, Name: "Science Fiction"}},
		Cast:   []core.CastMember{{Name: "Leonardo DiCaprio"}, {Name: "Tom Hardy"}, {Name: "Elliot Page"}},
	}

	payload := New(Options{}).Detail(d)
	require.Len(t, payload.RichContent, 2)

	info := payload.RichContent[0][0]
	assert.Equal(t, "Inception (2010) | Action, Science Fiction | Rating: 8.4", info.Title)
	assert.Equal(t, "**Cast**: Leonardo DiCaprio, Tom Hardy, Elliot Page | **Overview**: "+test.Inception.Overview, info.Subtitle)
	assert.Equal(t, test.Inception.Overview, info.Description)

	chips := payload.RichContent[1][0]
	assert.Equal(t, core.ElementChips, chips.Type)
	require.Len(t, chips.Options, 2)
	assert.Equal(t, "Watch Trailer", chips.Options[0].Text)
	assert.Equal(t, "https://www.youtube.com/results?search_query=Inception+trailer", chips.Options[0].Link)
	assert.Equal(t, "https://www.themoviedb.org/movie/27205", chips.Options[1].Link)
}

func TestDetail_NoEnrichment(t *testing.T) {
	payload := New(Options{}).Detail(core.MovieDetail{Movie: core.Movie{ID: 1, Title: "Bare"}})
	info := payload.RichContent[0][0]

	assert.Equal(t, "Bare (N/A) |  | Rating: N/A", info.Title)
	assert.Equal(t, NoSynopsis, info.Description)
	assert.Equal(t, PlaceholderURL, info.Image.RawURL)
}

func TestCandidates(t *testing.T) {
	text := Candidates("Dune", []core.Movie{
		{Title: "Dune", ReleaseDate: "2021-09-15"},
		{Title: "Dune", ReleaseDate: "1984-12-14"},
		{Title: "Dune"},
	})

	assert.True(t, strings.HasPrefix(text, `I found multiple movies titled "Dune".`))
	assert.True(t, strings.HasSuffix(text, "\n1. Dune (2021)\n2. Dune (1984)\n3. Dune (N/A)"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 85, "short"},
		{"exactly", 7, "exactly"},
		{"abcdef", 3, "abc..."},
		{"héllo wörld", 5, "héllo..."},
		{"", 5, ""},
	}
	for _, tt := range tests {
		got := Truncate(tt.in, tt.n)
		assert.Equal(t, tt.want, got)
		assert.True(t, utf8.ValidString(got))
	}
}

func TestRating(t *testing.T) {
	assert.Equal(t, "8.4", Rating(8.4))
	assert.Equal(t, "7", Rating(7))
	assert.Equal(t, "N/A", Rating(0))
}

func TestMarkdown(t *testing.T) {
	r := New(Options{})
	msgs := []core.Message{
		core.TextMsg("Here you go"),
		core.PayloadMsg(r.Detail(core.MovieDetail{Movie: core.Movie{ID: 5, Title: "Heat", ReleaseDate: "1995-12-15"}})),
	}

	md := Markdown(msgs)

	assert.Contains(t, md, "Here you go\n\n**Heat (1995) |  | Rating: N/A**")
	assert.Contains(t, md, "[More info](https://www.themoviedb.org/movie/5)")
	assert.Contains(t, md, "[Watch Trailer](https://www.youtube.com/results?search_query=Heat+trailer)")
}
