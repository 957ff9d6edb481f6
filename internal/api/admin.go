// ABOUTME: Thin wrapper for the admin dashboard endpoints
// ABOUTME: Server enforces the admin role; the client only routes the call

package api

import (
	"context"
	"net/http"

	"github.com/starcinema/starticket/internal/pipeline"
)

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalMovies   int64   `json:"totalMovies"`
	TotalOrders   int64   `json:"totalOrders"`
	TodayOrders   int64   `json:"todayOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TodayRevenue  float64 `json:"todayRevenue"`
	ActiveMovies  int64   `json:"activeMovies"`
	PendingOrders int64   `json:"pendingOrders"`
}

// Admin exposes the admin-only endpoints.
type Admin struct {
	pipe *pipeline.Pipeline
}

// NewAdmin creates the admin wrapper.
func NewAdmin(pipe *pipeline.Pipeline) *Admin {
	return &Admin{pipe: pipe}
}

// DashboardStats returns the platform summary shown on the admin dashboard.
func (a *Admin) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := a.pipe.Do(ctx, pipeline.Request{Method: http.MethodGet, Path: "/api/admin/dashboard/stats"}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
