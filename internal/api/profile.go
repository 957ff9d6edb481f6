// ABOUTME: Thin wrapper for the user profile endpoints
// ABOUTME: Profile updates flow back into the session via the manager

package api

import (
	"context"
	"net/http"

	"github.com/starcinema/starticket/internal/pipeline"
	"github.com/starcinema/starticket/internal/session"
)

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// Profile exposes the authenticated user's profile.
type Profile struct {
	pipe *pipeline.Pipeline
}

// NewProfile creates the profile wrapper.
func NewProfile(pipe *pipeline.Pipeline) *Profile {
	return &Profile{pipe: pipe}
}

// Get fetches the current profile from the server.
func (p *Profile) Get(ctx context.Context) (*session.Identity, error) {
	var identity session.Identity
	if err := p.pipe.Do(ctx, pipeline.Request{Method: http.MethodGet, Path: "/api/users/profile"}, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

// Update saves profile changes and returns the updated identity. The
// caller feeds the result into session.Manager.UpdateIdentity so the live
// session and its persisted shadow stay in step.
func (p *Profile) Update(ctx context.Context, update ProfileUpdate) (*session.Identity, error) {
	var identity session.Identity
	if err := p.pipe.Do(ctx, pipeline.Request{Method: http.MethodPut, Path: "/api/users/profile", Body: update}, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}
