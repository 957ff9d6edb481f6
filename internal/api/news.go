// ABOUTME: Thin wrapper for the news endpoints
// ABOUTME: Mechanical request/response pass-throughs over the pipeline

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/starcinema/starticket/internal/pipeline"
)

// News is one published news item.
type News struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Content     string `json:"content,omitempty"`
	PublishedAt string `json:"publishedAt"`
}

// NewsClient exposes the platform's news feed.
type NewsClient struct {
	pipe *pipeline.Pipeline
}

// NewNews creates the news wrapper.
func NewNews(pipe *pipeline.Pipeline) *NewsClient {
	return &NewsClient{pipe: pipe}
}

// List returns published news, newest first.
func (n *NewsClient) List(ctx context.Context) ([]News, error) {
	var items []News
	if err := n.pipe.Do(ctx, pipeline.Request{Method: http.MethodGet, Path: "/api/news"}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns one news item with full content.
func (n *NewsClient) Get(ctx context.Context, id int64) (*News, error) {
	var item News
	path := fmt.Sprintf("/api/news/%d", id)
	if err := n.pipe.Do(ctx, pipeline.Request{Method: http.MethodGet, Path: path}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
