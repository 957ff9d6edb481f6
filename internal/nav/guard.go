// ABOUTME: Navigation guard enforcing route access policies before transitions commit
// ABOUTME: Fixed evaluation order; deduped redirect-to-login for unauthorized responses

package nav

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/starcinema/starticket/internal/session"
)

// Session is the slice of the session manager the guard consumes.
type Session interface {
	InitAuth() error
	Snapshot() session.Snapshot
}

// Reasons a transition was redirected.
const (
	ReasonAuthRequired  = "auth_required"
	ReasonGuestOnly     = "guest_only"
	ReasonAdminRequired = "admin_required"
)

// Decision is the outcome of resolving a transition. Target is where the
// client actually goes; Redirected and Reason explain why when it differs
// from the requested destination.
type Decision struct {
	Target     *Route
	Redirected bool
	Reason     string
}

// Guard gates every view transition. It owns the notion of a "current"
// route for the running client and is safe for concurrent use.
type Guard struct {
	table  *Table
	sess   Session
	logger *slog.Logger

	hydrate sync.Once

	mu      sync.Mutex
	current *Route

	// redirecting dedupes racing redirect-to-login requests from
	// concurrent unauthorized responses.
	redirecting atomic.Bool
}

// NewGuard creates a guard over the route table. The client starts at home.
func NewGuard(table *Table, sess Session) *Guard {
	home, _ := table.Lookup(RouteHome)
	return &Guard{
		table:   table,
		sess:    sess,
		logger:  slog.Default().With("component", "nav"),
		current: home,
	}
}

// Resolve evaluates the destination's access policy against the current
// session. The evaluation order is a contract: an unauthenticated user
// asking for an admin page is sent to login so they can authenticate and
// retry, not bounced home as merely under-privileged.
func (g *Guard) Resolve(name string) (Decision, error) {
	dest, ok := g.table.Lookup(name)
	if !ok {
		return Decision{}, fmt.Errorf("unknown route %q", name)
	}

	// Rehydrate once per process lifetime before the first policy check
	g.hydrate.Do(func() {
		if err := g.sess.InitAuth(); err != nil {
			g.logger.Warn("session rehydration failed", "error", err)
		}
	})

	snap := g.sess.Snapshot()

	if dest.Policy.RequiresAuth && !snap.Authenticated() {
		login, _ := g.table.Lookup(RouteLogin)
		return Decision{Target: login, Redirected: true, Reason: ReasonAuthRequired}, nil
	}

	if dest.Policy.GuestOnly && snap.Authenticated() {
		home, _ := g.table.Lookup(RouteHome)
		return Decision{Target: home, Redirected: true, Reason: ReasonGuestOnly}, nil
	}

	if dest.Policy.RequiresAdmin && !snap.IsAdmin() {
		home, _ := g.table.Lookup(RouteHome)
		return Decision{Target: home, Redirected: true, Reason: ReasonAdminRequired}, nil
	}

	return Decision{Target: dest}, nil
}

// Navigate resolves the destination and commits the resulting route as
// current. The returned decision says where the client ended up.
func (g *Guard) Navigate(name string) (Decision, error) {
	decision, err := g.Resolve(name)
	if err != nil {
		return Decision{}, err
	}

	g.mu.Lock()
	g.current = decision.Target
	g.mu.Unlock()

	if decision.Redirected {
		g.logger.Info("transition redirected", "requested", name, "target", decision.Target.Name, "reason", decision.Reason)
	}
	return decision, nil
}

// Current returns the route the client is on.
func (g *Guard) Current() *Route {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// RedirectToLogin sends the client to the login destination after an
// unauthorized response. At most one redirect is issued even when several
// 401s race: an in-flight flag dedupes concurrent calls, and a client
// already on the login view stays put.
func (g *Guard) RedirectToLogin() {
	if g.Current().Name == RouteLogin {
		return
	}
	if !g.redirecting.CompareAndSwap(false, true) {
		return
	}
	defer g.redirecting.Store(false)

	if _, err := g.Navigate(RouteLogin); err != nil {
		g.logger.Warn("redirect to login failed", "error", err)
	}
}
