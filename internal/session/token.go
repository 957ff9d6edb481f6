// ABOUTME: Unverified expiry peek at the bearer credential for refresh-ahead
// ABOUTME: Claims are never trusted for authorization; the credential stays opaque

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry returns the expiration time embedded in the current
// credential, when one can be read. The claim is parsed without signature
// verification — it only schedules refreshes, it never grants access.
// Returns false for anonymous sessions and for credentials that are not
// parsable JWTs or carry no exp claim.
func (m *Manager) TokenExpiry() (time.Time, bool) {
	token, ok := m.Credential()
	if !ok {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// ExpiringSoon reports whether the credential expires within the given
// window. Credentials without a readable expiry are never "expiring soon" —
// the server remains the authority and will answer 401 when it disagrees.
func (m *Manager) ExpiringSoon(window time.Duration) bool {
	exp, ok := m.TokenExpiry()
	if !ok {
		return false
	}
	return time.Until(exp) < window
}
