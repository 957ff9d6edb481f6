// ABOUTME: Render-time capability predicates over the current session snapshot
// ABOUTME: Pure functions re-evaluated on every render; no one-shot removal

package perm

import (
	"fmt"

	"github.com/starcinema/starticket/internal/session"
)

// Capability is a named permission class a UI fragment can require.
type Capability string

// Recognized capabilities.
const (
	CapAdmin Capability = "admin" // admin role
	CapUser  Capability = "user"  // any authenticated session
	CapGuest Capability = "guest" // anonymous session
)

// ParseCapabilities validates a capability binding. An empty binding or an
// unrecognized name is a developer-time contract violation, reported as an
// error at parse time — distinct from an access-denial outcome at render
// time.
func ParseCapabilities(names []string) ([]Capability, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf(`permission binding requires capabilities, e.g. ["admin"]`)
	}

	caps := make([]Capability, 0, len(names))
	for _, name := range names {
		c := Capability(name)
		switch c {
		case CapAdmin, CapUser, CapGuest:
			caps = append(caps, c)
		default:
			return nil, fmt.Errorf("unknown capability %q (known: admin, user, guest)", name)
		}
	}
	return caps, nil
}

// CanRender reports whether a fragment requiring any of the given
// capabilities may exist for the session snapshot. The view layer calls
// this on every re-render, so capability changes take effect on the next
// render rather than leaving stale one-shot decisions around.
func CanRender(caps []Capability, snap session.Snapshot) bool {
	for _, c := range caps {
		switch c {
		case CapAdmin:
			if snap.IsAdmin() {
				return true
			}
		case CapUser:
			if snap.Authenticated() {
				return true
			}
		case CapGuest:
			if !snap.Authenticated() {
				return true
			}
		}
	}
	return false
}

// HasRole is the exact-role variant of the binding: the fragment exists
// only when the identity's role matches the literal.
func HasRole(role session.Role, snap session.Snapshot) bool {
	return snap.Authenticated() && snap.Identity.Role == role
}

// RequiresAuth gates a fragment on the bare authenticated/anonymous axis:
// required=true shows it only to authenticated sessions, required=false
// only to anonymous ones.
func RequiresAuth(required bool, snap session.Snapshot) bool {
	return snap.Authenticated() == required
}
