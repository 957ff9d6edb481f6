// ABOUTME: Thin wrapper for the movie catalog endpoints
// ABOUTME: Mechanical request/response pass-throughs over the pipeline

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/starcinema/starticket/internal/pipeline"
)

// Movie is the catalog entry returned by the platform.
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Genre       string  `json:"genre"`
	Director    string  `json:"director"`
	Duration    int     `json:"duration"`
	Rating      float64 `json:"rating"`
	ReleaseDate string  `json:"releaseDate"`
	Status      string  `json:"status"`
	Description string  `json:"description,omitempty"`
	Poster      string  `json:"poster,omitempty"`
}

// Page is the platform's paged collection shape.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// MovieQuery narrows a catalog listing.
type MovieQuery struct {
	Page    int
	Size    int
	Keyword string
	Genre   string
}

// Movies exposes the movie catalog.
type Movies struct {
	pipe *pipeline.Pipeline
}

// NewMovies creates the movie catalog wrapper.
func NewMovies(pipe *pipeline.Pipeline) *Movies {
	return &Movies{pipe: pipe}
}

// List returns a page of movies matching the query.
func (m *Movies) List(ctx context.Context, query MovieQuery) (*Page[Movie], error) {
	q := url.Values{}
	if query.Page > 0 {
		q.Set("page", strconv.Itoa(query.Page))
	}
	if query.Size > 0 {
		q.Set("size", strconv.Itoa(query.Size))
	}
	if query.Keyword != "" {
		q.Set("keyword", query.Keyword)
	}
	if query.Genre != "" {
		q.Set("genre", query.Genre)
	}

	var page Page[Movie]
	if err := m.pipe.Do(ctx, pipeline.Request{Method: http.MethodGet, Path: "/api/movies", Query: q}, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get returns one movie by ID.
func (m *Movies) Get(ctx context.Context, id int64) (*Movie, error) {
	var movie Movie
	path := fmt.Sprintf("/api/movies/%d", id)
	if err := m.pipe.Do(ctx, pipeline.Request{Method: http.MethodGet, Path: path}, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}
