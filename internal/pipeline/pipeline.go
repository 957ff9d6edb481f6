// ABOUTME: Uniform request dispatch wrapping every outbound API call
// ABOUTME: Attaches the bearer credential, strips the envelope, classifies failures

package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/starcinema/starticket/internal/apperr"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 10 << 20

// DefaultTimeout is the per-call ceiling when the config does not set one.
const DefaultTimeout = 10 * time.Second

// CredentialSource yields the bearer credential attached to outbound calls.
type CredentialSource interface {
	Credential() (string, bool)
}

// SessionInvalidator clears the session after an unauthorized response.
type SessionInvalidator interface {
	Invalidate()
}

// Navigator redirects the client to the login destination. Implementations
// must dedupe concurrent redirects.
type Navigator interface {
	RedirectToLogin()
}

// Notifier surfaces a global, user-visible notice for a classified failure.
type Notifier interface {
	Notify(kind apperr.Kind, message string)
}

// Request describes one outbound call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any

	// Login marks the login call itself. Its validation failures are
	// rendered inline by the caller, so the classifier suppresses the
	// global notice.
	Login bool
}

// Pipeline performs HTTP calls against the platform API. Construct once,
// bind the session and navigator, then share freely: Do is safe for
// concurrent use.
type Pipeline struct {
	base     *url.URL
	client   *http.Client
	logger   *slog.Logger
	notifier Notifier

	creds       CredentialSource
	invalidator SessionInvalidator
	navigator   Navigator
}

// New creates a pipeline for the given API base URL. A zero timeout falls
// back to DefaultTimeout.
func New(baseURL string, timeout time.Duration, notifier Notifier) (*Pipeline, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Pipeline{
		base:     base,
		client:   &http.Client{Timeout: timeout},
		logger:   slog.Default().With("component", "pipeline"),
		notifier: notifier,
	}, nil
}

// BindSession attaches the session manager as both credential source and
// invalidation target. Called once during wiring; the pipeline and session
// reference each other, so this cannot happen at construction.
func (p *Pipeline) BindSession(creds CredentialSource, invalidator SessionInvalidator) {
	p.creds = creds
	p.invalidator = invalidator
}

// BindNavigator attaches the navigator used for 401 redirects.
func (p *Pipeline) BindNavigator(nav Navigator) {
	p.navigator = nav
}

// Do performs the call and decodes the envelope's data payload into out
// (when out is non-nil). Every failure returns a normalized *apperr.Error
// after exactly one classification action has fired.
func (p *Pipeline) Do(ctx context.Context, req Request, out any) error {
	httpReq, err := p.buildRequest(ctx, req)
	if err != nil {
		return err
	}

	requestID := httpReq.Header.Get("X-Request-ID")
	start := time.Now()

	resp, err := p.client.Do(httpReq)
	if err != nil {
		p.logger.Debug("request failed", "method", req.Method, "path", req.Path, "request_id", requestID, "error", err)
		return p.classifyTransport(err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	p.logger.Debug("request completed",
		"method", req.Method,
		"path", req.Path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))
	if readErr != nil {
		return p.classifyTransport(readErr)
	}

	return p.classifyResponse(req, resp.StatusCode, body, out)
}

// buildRequest assembles the outbound HTTP request. The caller's payload is
// marshaled as-is; augmentation adds headers only.
func (p *Pipeline) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := *p.base
	target.Path = strings.TrimSuffix(target.Path, "/") + req.Path
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("X-Request-ID", uuid.New().String())

	if p.creds != nil {
		if token, ok := p.creds.Credential(); ok {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return httpReq, nil
}

// notify surfaces a global notice when a notifier is bound.
func (p *Pipeline) notify(kind apperr.Kind, message string) {
	if p.notifier != nil {
		p.notifier.Notify(kind, message)
	}
}
