// ABOUTME: Tests for the entity API wrappers against an httptest backend
// ABOUTME: Verifies paths, payload decoding, and bearer attachment end to end

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starcinema/starticket/internal/apperr"
	"github.com/starcinema/starticket/internal/pipeline"
)

type staticCreds struct{ token string }

func (s staticCreds) Credential() (string, bool) { return s.token, s.token != "" }

func respond(w http.ResponseWriter, data any) {
	raw, _ := json.Marshal(data)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pipeline.Envelope{Success: true, Data: raw})
}

func newTestPipeline(t *testing.T, handler http.Handler) *pipeline.Pipeline {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	pipe, err := pipeline.New(srv.URL, 5*time.Second, nil)
	require.NoError(t, err)
	pipe.BindSession(staticCreds{token: "tok-user"}, nil)
	return pipe
}

func TestMovies_ListWithQuery(t *testing.T) {
	pipe := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/movies", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "scifi", r.URL.Query().Get("genre"))
		require.Equal(t, "Bearer tok-user", r.Header.Get("Authorization"))

		respond(w, Page[Movie]{
			Content:       []Movie{{ID: 1, Title: "Arrival"}, {ID: 2, Title: "Dune"}},
			TotalElements: 2,
			TotalPages:    1,
		})
	}))

	page, err := NewMovies(pipe).List(context.Background(), MovieQuery{Page: 2, Genre: "scifi"})
	require.NoError(t, err)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Dune", page.Content[1].Title)
}

func TestMovies_GetByID(t *testing.T) {
	pipe := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/movies/42", r.URL.Path)
		respond(w, Movie{ID: 42, Title: "Blade Runner", Rating: 8.9})
	}))

	movie, err := NewMovies(pipe).Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Blade Runner", movie.Title)
	assert.InDelta(t, 8.9, movie.Rating, 0.001)
}

func TestOrders_CreateAndCancel(t *testing.T) {
	pipe := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/orders":
			var create OrderCreate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&create))
			require.Equal(t, []string{"A1", "A2"}, create.Seats)
			respond(w, Order{ID: 7, OrderNo: "SO-20260831-001", Status: "PENDING"})
		case r.Method == http.MethodPost && r.URL.Path == "/api/orders/7/cancel":
			respond(w, nil)
		default:
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	orders := NewOrders(pipe)
	order, err := orders.Create(context.Background(), OrderCreate{SessionID: 3, Seats: []string{"A1", "A2"}})
	require.NoError(t, err)
	assert.Equal(t, "SO-20260831-001", order.OrderNo)

	require.NoError(t, orders.Cancel(context.Background(), 7))
}

func TestOrders_ListFailurePropagates(t *testing.T) {
	pipe := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(pipeline.Envelope{Success: false, Message: "forbidden"})
	}))

	_, err := NewOrders(pipe).List(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))
}

func TestNews_List(t *testing.T) {
	pipe := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/news", r.URL.Path)
		respond(w, []News{{ID: 1, Title: "Midnight premieres return"}})
	}))

	items, err := NewNews(pipe).List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Midnight premieres return", items[0].Title)
}

func TestProfile_UpdateReturnsIdentity(t *testing.T) {
	pipe := newTestPipeline(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/users/profile", r.URL.Path)
		respond(w, map[string]any{"id": 1, "username": "alice", "avatar": "new.png", "role": "USER"})
	}))

	identity, err := NewProfile(pipe).Update(context.Background(), ProfileUpdate{Avatar: "new.png"})
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, "new.png", identity.Avatar)
}
