package core

import (
	"strconv"
	"strings"
)

// Provider is a streaming service known to the catalog's watch-provider filter.
type Provider int

const (
	ProviderNone Provider = iota
	ProviderNetflix
	ProviderHulu
	ProviderPrime
	ProviderDisney
	ProviderHBO
	ProviderApple

	providerCount
)

var providerTable = [providerCount]struct {
	name string
	id   int
}{
	ProviderNone:    {"", 0},
	ProviderNetflix: {"netflix", 8},
	ProviderHulu:    {"hulu", 15},
	ProviderPrime:   {"prime", 9},
	ProviderDisney:  {"disney", 337},
	ProviderHBO:     {"hbo", 1899},
	ProviderApple:   {"apple", 350},
}

// providerAliases folds the spoken variants users give for a service.
// Checked in order; the first substring hit wins.
var providerAliases = []struct {
	substr   string
	provider Provider
}{
	{"prime", ProviderPrime},
	{"amazon", ProviderPrime},
	{"apple", ProviderApple},
	{"disney", ProviderDisney},
	{"hbo", ProviderHBO},
	{"max", ProviderHBO},
}

// ParseProvider maps a free-form provider name onto a Provider.
func ParseProvider(name string) (Provider, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return ProviderNone, false
	}
	for p := ProviderNetflix; p < providerCount; p++ {
		if providerTable[p].name == key {
			return p, true
		}
	}
	for _, a := range providerAliases {
		if strings.Contains(key, a.substr) {
			return a.provider, true
		}
	}
	return ProviderNone, false
}

// ProviderByID is the inverse of Provider.ID.
func ProviderByID(id int) (Provider, bool) {
	for p := ProviderNetflix; p < providerCount; p++ {
		if providerTable[p].id == id {
			return p, true
		}
	}
	return ProviderNone, false
}

func (p Provider) ID() int {
	if p < 0 || p >= providerCount {
		return 0
	}
	return providerTable[p].id
}

func (p Provider) String() string {
	if p < 0 || p >= providerCount {
		return "provider(" + strconv.Itoa(int(p)) + ")"
	}
	return providerTable[p].name
}

// Genre is a catalog movie genre.
type Genre int

const (
	GenreNone Genre = iota
	GenreAction
	GenreAdventure
	GenreAnimation
	GenreComedy
	GenreCrime
	GenreDocumentary
	GenreDrama
	GenreFamily
	GenreFantasy
	GenreHistory
	GenreHorror
	GenreMusic
	GenreMystery
	GenreRomance
	GenreScienceFiction
	GenreTVMovie
	GenreThriller
	GenreWar
	GenreWestern

	genreCount
)

var genreTable = [genreCount]struct {
	name string
	id   int
}{
	GenreNone:           {"", 0},
	GenreAction:         {"Action", 28},
	GenreAdventure:      {"Adventure", 12},
	GenreAnimation:      {"Animation", 16},
	GenreComedy:         {"Comedy", 35},
	GenreCrime:          {"Crime", 80},
	GenreDocumentary:    {"Documentary", 99},
	GenreDrama:          {"Drama", 18},
	GenreFamily:         {"Family", 10751},
	GenreFantasy:        {"Fantasy", 14},
	GenreHistory:        {"History", 36},
	GenreHorror:         {"Horror", 27},
	GenreMusic:          {"Music", 10402},
	GenreMystery:        {"Mystery", 9648},
	GenreRomance:        {"Romance", 10749},
	GenreScienceFiction: {"Science Fiction", 878},
	GenreTVMovie:        {"TV Movie", 10770},
	GenreThriller:       {"Thriller", 53},
	GenreWar:            {"War", 10752},
	GenreWestern:        {"Western", 37},
}

// ParseGenre matches a genre name case-insensitively.
func ParseGenre(name string) (Genre, bool) {
	key := strings.TrimSpace(name)
	if key == "" {
		return GenreNone, false
	}
	for g := GenreAction; g < genreCount; g++ {
		if strings.EqualFold(genreTable[g].name, key) {
			return g, true
		}
	}
	return GenreNone, false
}

// GenreByID is the inverse of Genre.ID.
func GenreByID(id int) (Genre, bool) {
	for g := GenreAction; g < genreCount; g++ {
		if genreTable[g].id == id {
			return g, true
		}
	}
	return GenreNone, false
}

func (g Genre) ID() int {
	if g < 0 || g >= genreCount {
		return 0
	}
	return genreTable[g].id
}

// String returns the display name, e.g. "Science Fiction".
func (g Genre) String() string {
	if g < 0 || g >= genreCount {
		return "genre(" + strconv.Itoa(int(g)) + ")"
	}
	return genreTable[g].name
}

// GenreNames maps catalog genre ids to display names, skipping unknown ids.
func GenreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if g, ok := GenreByID(id); ok {
			names = append(names, g.String())
		}
	}
	return names
}

// CanonicalFilter is the validated, per-request discover filter.
// Zero values mean the dimension is absent.
type CanonicalFilter struct {
	Provider Provider
	Genre    Genre
	Year     int
}

func (f CanonicalFilter) IsEmpty() bool {
	return f.Provider == ProviderNone && f.Genre == GenreNone && f.Year == 0
}
