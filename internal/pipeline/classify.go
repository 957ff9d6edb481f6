// ABOUTME: Inbound response classification with fixed status precedence
// ABOUTME: One classification action per failed call, normalized error out

package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/starcinema/starticket/internal/apperr"
)

// Envelope is the uniform wire wrapper every platform response uses.
// Callers never see it; the pipeline strips it before payloads propagate.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Code      string          `json:"code,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
}

// User-facing notice text for each classification outcome.
const (
	msgSessionExpired = "session expired, please log in again"
	msgPermission     = "permission denied for this resource"
	msgNotFound       = "requested resource does not exist"
	msgServer         = "server error, please try again later"
	msgTimeout        = "request timed out, please try again"
	msgNetwork        = "network error, please check your connection"
	msgFallback       = "request failed, please try again later"
)

// classifyTransport handles calls that produced no HTTP response at all.
func (p *Pipeline) classifyTransport(err error) error {
	message := msgNetwork
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		message = msgTimeout
	}
	p.notify(apperr.KindNetwork, message)
	return apperr.Network(message)
}

// classifyResponse applies the fixed precedence table to a completed HTTP
// exchange. Exactly one classification action fires per failed call.
func (p *Pipeline) classifyResponse(req Request, status int, body []byte, out any) error {
	var env Envelope
	decoded := len(body) > 0 && json.Unmarshal(body, &env) == nil

	switch {
	case status == http.StatusUnauthorized:
		return p.handleUnauthorized()

	case status == http.StatusForbidden:
		p.notify(apperr.KindPermission, msgPermission)
		return apperr.Permission(msgPermission)

	case status == http.StatusNotFound:
		p.notify(apperr.KindNotFound, msgNotFound)
		return apperr.NotFound(msgNotFound)

	case status >= 500:
		p.notify(apperr.KindServer, msgServer)
		return apperr.Server(msgServer)

	case status >= 400:
		// Remaining 4xx carry the server's own message. The login call
		// renders its failure inline, so no global notice there.
		message := env.Message
		if !decoded || message == "" {
			message = msgFallback
		}
		if !req.Login {
			p.notify(apperr.KindValidation, message)
		}
		return apperr.Validation(message)
	}

	// Transport-level success. A missing or unreadable envelope on a 2xx is
	// a broken contract, classified as a server failure.
	if !decoded {
		if len(body) == 0 && out == nil {
			return nil
		}
		p.notify(apperr.KindServer, msgServer)
		return apperr.Server(msgServer)
	}

	// Envelope-level failure is a handled failure even though the call
	// "succeeded".
	if !env.Success {
		message := env.Message
		if message == "" {
			message = msgFallback
		}
		if !req.Login {
			p.notify(apperr.KindValidation, message)
		}
		return apperr.Validation(message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			p.notify(apperr.KindServer, msgServer)
			return apperr.Server(msgServer)
		}
	}
	return nil
}

// handleUnauthorized is the single 401 action: clear the session, redirect
// to login unless already there (the navigator dedupes), surface the
// session-expired notice.
func (p *Pipeline) handleUnauthorized() error {
	if p.invalidator != nil {
		p.invalidator.Invalidate()
	}
	if p.navigator != nil {
		p.navigator.RedirectToLogin()
	}
	p.notify(apperr.KindAuth, msgSessionExpired)
	return apperr.Auth(msgSessionExpired)
}
