package core

import (
	"strconv"
	"strings"
	"time"
)

const (
	CineName      = "CineBot"
	CineUserAgent = "CineBot-Webhook/0.1"
	CineVersion   = "0.1.0"

	// MaxSearchedMovies caps the per-session movie history.
	MaxSearchedMovies = 50
)

// Movie is a catalog record as returned by list endpoints. Treated as a value.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date,omitempty"`
	VoteAverage float64 `json:"vote_average,omitempty"`
	Overview    string  `json:"overview,omitempty"`
	PosterPath  string  `json:"poster_path,omitempty"`
	GenreIDs    []int   `json:"genre_ids,omitempty"`
	Popularity  float64 `json:"popularity,omitempty"`
}

// Year returns the release year, or false when the date is absent or unparsable.
func (m Movie) Year() (int, bool) {
	if m.ReleaseDate == "" {
		return 0, false
	}
	if t, err := time.Parse(time.DateOnly, m.ReleaseDate); err == nil {
		return t.Year(), true
	}
	if len(m.ReleaseDate) >= 4 {
		if y, err := strconv.Atoi(m.ReleaseDate[:4]); err == nil && y > 0 {
			return y, true
		}
	}
	return 0, false
}

// GenreInfo is a named genre as returned by the details endpoint.
type GenreInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	Name       string  `json:"name"`
	Character  string  `json:"character,omitempty"`
	Popularity float64 `json:"popularity,omitempty"`
}

// MovieDetail is a resolved movie together with its optional enrichment.
// Genres and Cast are empty when the secondary lookups were unavailable.
type MovieDetail struct {
	Movie
	Genres []GenreInfo  `json:"genres,omitempty"`
	Cast   []CastMember `json:"cast,omitempty"`
}

// SessionHistory is the ordered, id-unique list of movies already shown in a conversation.
type SessionHistory []Movie

// FindTitle does a case-insensitive exact title lookup.
func (h SessionHistory) FindTitle(title string) (Movie, bool) {
	for _, m := range h {
		if strings.EqualFold(m.Title, title) {
			return m, true
		}
	}
	return Movie{}, false
}

func (h SessionHistory) Contains(id int64) bool {
	for _, m := range h {
		if m.ID == id {
			return true
		}
	}
	return false
}
