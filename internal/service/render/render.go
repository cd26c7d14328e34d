// Package render shapes catalog records into fulfillment messages.
package render

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sandevgo/cinebot/internal/core"
)

const (
	DefaultMaxItems       = 5
	DefaultOverviewBudget = 85

	ImageBaseURL   = "https://image.tmdb.org/t/p/w500"
	PlaceholderURL = "https://via.placeholder.com/500x750?text=No+Image"
	MovieURL       = "https://www.themoviedb.org/movie/"
	TrailerURL     = "https://www.youtube.com/results?search_query="

	NotAvailable = "N/A"
	NoOverview   = "No overview available."
	NoSynopsis   = "No synopsis available."
	UnknownGenre = "Unknown Genre"
)

// Style selects the card title layout.
type Style int

const (
	// StyleYear renders "Title (2010) (Rating: 8.4)".
	StyleYear Style = iota
	// StyleGenres renders "Title (Jul 2010) | Action, Drama | Rating: 8.4"
	// with the full overview as subtitle and the truncated one as description.
	StyleGenres
	// StyleGenresYear is StyleGenres with only the release year.
	StyleGenresYear
)

type Options struct {
	MaxItems       int
	OverviewBudget int
	Style          Style
}

type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	if opts.MaxItems <= 0 {
		opts.MaxItems = DefaultMaxItems
	}
	if opts.OverviewBudget <= 0 {
		opts.OverviewBudget = DefaultOverviewBudget
	}
	return &Renderer{opts: opts}
}

func (r *Renderer) MaxItems() int {
	return r.opts.MaxItems
}

// WithStyle returns a copy of r using style s.
func (r *Renderer) WithStyle(s Style) *Renderer {
	c := *r
	c.opts.Style = s
	return &c
}

// Render builds one card row per movie, at most MaxItems of them.
// Callers handle the empty case with their own text message.
func (r *Renderer) Render(movies []core.Movie) core.RichPayload {
	n := min(len(movies), r.opts.MaxItems)
	rows := make([][]core.RichElement, 0, n)
	for _, m := range movies[:n] {
		rows = append(rows, []core.RichElement{r.Card(m)})
	}
	return core.RichPayload{RichContent: rows}
}

func (r *Renderer) Card(m core.Movie) core.RichElement {
	el := core.RichElement{
		Type:       core.ElementInfo,
		Image:      &core.Image{RawURL: PosterURL(m.PosterPath)},
		ActionLink: DetailURL(m.ID),
	}

	switch r.opts.Style {
	case StyleGenres, StyleGenresYear:
		released := MonthYear(m.ReleaseDate)
		if r.opts.Style == StyleGenresYear {
			released = Year(m)
		}
		el.Title = fmt.Sprintf("%s (%s) | %s | Rating: %s", m.Title, released, genres(m.GenreIDs), Rating(m.VoteAverage))
		el.Subtitle = m.Overview
		el.Description = r.overview(m.Overview)
	default:
		el.Title = fmt.Sprintf("%s (%s) (Rating: %s)", m.Title, Year(m), Rating(m.VoteAverage))
		el.Subtitle = r.overview(m.Overview)
	}
	return el
}

// Detail renders the synopsis card followed by a chips row.
func (r *Renderer) Detail(d core.MovieDetail) core.RichPayload {
	genreNames := make([]string, 0, len(d.Genres))
	for _, g := range d.Genres {
		genreNames = append(genreNames, g.Name)
	}
	castNames := make([]string, 0, len(d.Cast))
	for _, c := range d.Cast {
		castNames = append(castNames, c.Name)
	}

	description := d.Overview
	if description == "" {
		description = NoSynopsis
	}

	info := core.RichElement{
		Type:        core.ElementInfo,
		Title:       fmt.Sprintf("%s (%s) | %s | Rating: %s", d.Title, Year(d.Movie), strings.Join(genreNames, ", "), Rating(d.VoteAverage)),
		Subtitle:    fmt.Sprintf("**Cast**: %s | **Overview**: %s", strings.Join(castNames, ", "), d.Overview),
		Image:       &core.Image{RawURL: PosterURL(d.PosterPath)},
		ActionLink:  DetailURL(d.ID),
		Description: description,
	}
	chips := core.RichElement{
		Type: core.ElementChips,
		Options: []core.ChipOption{
			{Text: "Watch Trailer", Link: TrailerURL + url.QueryEscape(d.Title+" trailer")},
			{Text: "More Info", Link: DetailURL(d.ID)},
		},
	}
	return core.RichPayload{RichContent: [][]core.RichElement{{info}, {chips}}}
}

// Candidates lists ambiguous matches as numbered "Title (Year)" lines.
func Candidates(title string, movies []core.Movie) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "I found multiple movies titled %q. Please type the movie name and year corresponding to the movie you're interested in:", title)
	for i, m := range movies {
		fmt.Fprintf(&sb, "\n%d. %s (%s)", i+1, m.Title, Year(m))
	}
	return sb.String()
}

func (r *Renderer) overview(s string) string {
	if s == "" {
		return NoOverview
	}
	return Truncate(s, r.opts.OverviewBudget)
}

// Truncate cuts s to n runes and appends "..." when anything was cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "..."
}

func Year(m core.Movie) string {
	if y, ok := m.Year(); ok {
		return strconv.Itoa(y)
	}
	return NotAvailable
}

// MonthYear formats a release date as "Jul 2010".
func MonthYear(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return NotAvailable
	}
	return t.Format("Jan 2006")
}

// Rating prints the vote average as the catalog reports it; zero is N/A.
func Rating(v float64) string {
	if v == 0 {
		return NotAvailable
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func PosterURL(path string) string {
	if path == "" {
		return PlaceholderURL
	}
	return ImageBaseURL + path
}

func DetailURL(id int64) string {
	return MovieURL + strconv.FormatInt(id, 10)
}

func genres(ids []int) string {
	names := core.GenreNames(ids)
	if len(names) == 0 {
		return UnknownGenre
	}
	return strings.Join(names, ", ")
}
