// ABOUTME: Session entity, identity types, and the remote auth gateway contract
// ABOUTME: A session is authenticated iff it carries a bearer credential

package session

import "context"

// Role is the platform-level role carried by an identity.
type Role string

// Platform roles
const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Identity describes the user behind an authenticated session, as returned
// by the auth gateway.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Role     Role   `json:"role"`
}

// Snapshot is an immutable view of the session at one instant. Credential
// and Identity are set and cleared together; the session is authenticated
// iff Credential is non-empty.
type Snapshot struct {
	Credential string
	Identity   Identity
}

// Authenticated reports whether the snapshot carries a credential.
func (s Snapshot) Authenticated() bool {
	return s.Credential != ""
}

// IsAdmin reports whether the snapshot belongs to an admin. Role is the
// sole admin predicate.
func (s Snapshot) IsAdmin() bool {
	return s.Authenticated() && s.Identity.Role == RoleAdmin
}

// Credentials are the inputs to a login attempt.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration are the inputs to a register attempt.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// AuthResult is a successful auth gateway response: a fresh credential plus
// the identity it belongs to.
type AuthResult struct {
	Token    string
	Identity Identity
}

// Gateway is the remote auth service the manager talks to. Implementations
// return normalized errors from the request pipeline; the manager never
// inspects transport details.
type Gateway interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
	Refresh(ctx context.Context) (*AuthResult, error)
	Logout(ctx context.Context) error
	CheckUsername(ctx context.Context, username string) (bool, error)
	CheckEmail(ctx context.Context, email string) (bool, error)
}
