// ABOUTME: Thin wrapper for the order endpoints
// ABOUTME: Mechanical request/response pass-throughs over the pipeline

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/starcinema/starticket/internal/pipeline"
)

// Order is one ticket order belonging to the authenticated user.
type Order struct {
	ID         int64    `json:"id"`
	OrderNo    string   `json:"orderNo"`
	MovieTitle string   `json:"movieTitle"`
	Hall       string   `json:"hall"`
	ShowTime   string   `json:"showTime"`
	Seats      []string `json:"seats"`
	Amount     float64  `json:"amount"`
	Status     string   `json:"status"`
	CreatedAt  string   `json:"createdAt"`
}

// OrderCreate is the input to placing an order.
type OrderCreate struct {
	SessionID int64    `json:"sessionId"`
	Seats     []string `json:"seats"`
}

// Orders exposes the authenticated user's orders.
type Orders struct {
	pipe *pipeline.Pipeline
}

// NewOrders creates the orders wrapper.
func NewOrders(pipe *pipeline.Pipeline) *Orders {
	return &Orders{pipe: pipe}
}

// List returns the user's orders, newest first.
func (o *Orders) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := o.pipe.Do(ctx, pipeline.Request{Method: http.MethodGet, Path: "/api/orders"}, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Create places an order for the given session and seats.
func (o *Orders) Create(ctx context.Context, create OrderCreate) (*Order, error) {
	var order Order
	if err := o.pipe.Do(ctx, pipeline.Request{Method: http.MethodPost, Path: "/api/orders", Body: create}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Cancel cancels an order by ID.
func (o *Orders) Cancel(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/orders/%d/cancel", id)
	return o.pipe.Do(ctx, pipeline.Request{Method: http.MethodPost, Path: path}, nil)
}
