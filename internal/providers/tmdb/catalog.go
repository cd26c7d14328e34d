package tmdb

import (
	"context"
	"fmt"

	"github.com/sandevgo/cinebot/internal/core"
)

const (
	endpointDiscover = "discover"
	endpointSearch   = "search"
	endpointDetails  = "details"
	endpointCredits  = "credits"
	endpointSimilar  = "similar"
)

type pageResponse struct {
	Page    int          `json:"page"`
	Results []core.Movie `json:"results"`
}

type detailsResponse struct {
	core.Movie
	Genres []core.GenreInfo `json:"genres"`
}

type creditsResponse struct {
	Cast []core.CastMember `json:"cast"`
}

var _ core.Catalog = (*Client)(nil)

func (c *Client) Discover(ctx context.Context, f core.CanonicalFilter) ([]core.Movie, error) {
	var page pageResponse
	if err := c.get(ctx, endpointDiscover, "/discover/movie", c.defaults.Discover(f), &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

func (c *Client) Search(ctx context.Context, title string, year int) ([]core.Movie, error) {
	var page pageResponse
	if err := c.get(ctx, endpointSearch, "/search/movie", SearchQuery(title, year), &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// Details returns the movie with its named genres. Cast is left empty.
func (c *Client) Details(ctx context.Context, id int64) (core.MovieDetail, error) {
	var resp detailsResponse
	key := fmt.Sprintf("details:%d", id)
	if err := c.getCached(ctx, key, endpointDetails, fmt.Sprintf("/movie/%d", id), &resp); err != nil {
		return core.MovieDetail{}, err
	}

	movie := resp.Movie
	if len(movie.GenreIDs) == 0 {
		for _, g := range resp.Genres {
			movie.GenreIDs = append(movie.GenreIDs, g.ID)
		}
	}
	return core.MovieDetail{Movie: movie, Genres: resp.Genres}, nil
}

func (c *Client) Credits(ctx context.Context, id int64) ([]core.CastMember, error) {
	var resp creditsResponse
	key := fmt.Sprintf("credits:%d", id)
	if err := c.getCached(ctx, key, endpointCredits, fmt.Sprintf("/movie/%d/credits", id), &resp); err != nil {
		return nil, err
	}
	return resp.Cast, nil
}

func (c *Client) Similar(ctx context.Context, id int64) ([]core.Movie, error) {
	var page pageResponse
	if err := c.get(ctx, endpointSimilar, fmt.Sprintf("/movie/%d/similar", id), nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}
