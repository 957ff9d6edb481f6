// ABOUTME: Manager owns the live session: login, logout, refresh, rehydration
// ABOUTME: Mutex-guarded state with synchronous observer notification after each mutation

package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/starcinema/starticket/internal/persist"
)

// Persisted store keys for the session shadow.
const (
	KeyCredential = "auth.token"
	KeyIdentity   = "auth.identity"
)

// Observer receives the session snapshot after each state change.
type Observer func(Snapshot)

// Manager is the single authority on the client's authentication state.
// It is constructed once per running client and injected into every
// component that needs session state. All methods are safe for concurrent
// use; Logout and Invalidate are idempotent.
type Manager struct {
	gateway Gateway
	store   persist.Store
	logger  *slog.Logger

	mu        sync.Mutex
	cur       Snapshot
	hydrated  bool
	observers map[int]Observer
	nextObs   int
}

// NewManager creates a session manager backed by the given gateway and
// persisted store.
func NewManager(gateway Gateway, store persist.Store) *Manager {
	return &Manager{
		gateway:   gateway,
		store:     store,
		logger:    slog.Default().With("component", "session"),
		observers: make(map[int]Observer),
	}
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur
}

// Credential returns the current bearer credential, with presence flag.
// This is what the request pipeline reads on every outbound call.
func (m *Manager) Credential() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cur.Credential, m.cur.Credential != ""
}

// Subscribe registers an observer that is invoked synchronously after every
// session mutation. The returned function removes the observer.
func (m *Manager) Subscribe(obs Observer) func() {
	m.mu.Lock()
	id := m.nextObs
	m.nextObs++
	m.observers[id] = obs
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.observers, id)
		m.mu.Unlock()
	}
}

// Login authenticates against the gateway. On success the credential and
// identity are set together, persisted, and observers notified. On failure
// the session is left unchanged.
func (m *Manager) Login(ctx context.Context, creds Credentials) (Snapshot, error) {
	res, err := m.gateway.Login(ctx, creds)
	if err != nil {
		return m.Snapshot(), fmt.Errorf("login: %w", err)
	}
	return m.adopt(res), nil
}

// Register creates a new account and adopts the resulting session, with the
// same contract as Login.
func (m *Manager) Register(ctx context.Context, reg Registration) (Snapshot, error) {
	res, err := m.gateway.Register(ctx, reg)
	if err != nil {
		return m.Snapshot(), fmt.Errorf("register: %w", err)
	}
	return m.adopt(res), nil
}

// RefreshToken exchanges the current credential for a fresh one. On failure
// the session is fully invalidated before the error propagates: a stale,
// unrenewable session must never remain observable.
func (m *Manager) RefreshToken(ctx context.Context) (Snapshot, error) {
	res, err := m.gateway.Refresh(ctx)
	if err != nil {
		m.Invalidate()
		return m.Snapshot(), fmt.Errorf("refresh: %w", err)
	}
	return m.adopt(res), nil
}

// Logout tells the gateway best-effort, then clears the session locally.
// Calling it when already logged out is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	if _, ok := m.Credential(); ok {
		if err := m.gateway.Logout(ctx); err != nil {
			m.logger.Warn("remote logout failed", "error", err)
		}
	}
	m.Invalidate()
}

// Invalidate clears the credential and identity in memory and in the
// persisted store. Idempotent: invalidating an anonymous session does
// nothing and notifies nobody.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	if !m.cur.Authenticated() {
		m.mu.Unlock()
		return
	}
	m.cur = Snapshot{}
	m.persistClearLocked()
	obs := m.observerListLocked()
	snap := m.cur
	m.mu.Unlock()

	m.logger.Info("session cleared")
	notify(obs, snap)
}

// InitAuth rehydrates the session from the persisted store. It runs once
// per process lifetime and never overwrites an already-populated session.
// A malformed persisted identity degrades to a credential-only session
// rather than failing.
func (m *Manager) InitAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hydrated || m.cur.Authenticated() {
		return nil
	}
	m.hydrated = true

	token, ok, err := m.store.Get(KeyCredential)
	if err != nil {
		return fmt.Errorf("reading persisted credential: %w", err)
	}
	if !ok || token == "" {
		return nil
	}

	raw, ok, err := m.store.Get(KeyIdentity)
	if err != nil {
		return fmt.Errorf("reading persisted identity: %w", err)
	}
	if !ok {
		return nil
	}

	var identity Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		m.logger.Warn("persisted identity malformed, degrading", "error", err)
		identity = Identity{}
	}

	m.cur = Snapshot{Credential: token, Identity: identity}
	m.logger.Info("session rehydrated", "username", identity.Username)
	return nil
}

// UpdateIdentity replaces the identity of an authenticated session and
// re-persists it. The credential is untouched. Updating an anonymous
// session is rejected.
func (m *Manager) UpdateIdentity(identity Identity) error {
	m.mu.Lock()
	if !m.cur.Authenticated() {
		m.mu.Unlock()
		return fmt.Errorf("update identity: not authenticated")
	}
	m.cur.Identity = identity
	m.persistLocked()
	obs := m.observerListLocked()
	snap := m.cur
	m.mu.Unlock()

	notify(obs, snap)
	return nil
}

// CheckUsername reports whether the username is already taken. Pure lookup,
// no state mutation.
func (m *Manager) CheckUsername(ctx context.Context, username string) (bool, error) {
	return m.gateway.CheckUsername(ctx, username)
}

// CheckEmail reports whether the email is already registered. Pure lookup,
// no state mutation.
func (m *Manager) CheckEmail(ctx context.Context, email string) (bool, error) {
	return m.gateway.CheckEmail(ctx, email)
}

// adopt installs a fresh auth result as the current session, persists it,
// and notifies observers.
func (m *Manager) adopt(res *AuthResult) Snapshot {
	m.mu.Lock()
	m.cur = Snapshot{Credential: res.Token, Identity: res.Identity}
	m.hydrated = true
	m.persistLocked()
	obs := m.observerListLocked()
	snap := m.cur
	m.mu.Unlock()

	m.logger.Info("session established", "username", snap.Identity.Username, "role", string(snap.Identity.Role))
	notify(obs, snap)
	return snap
}

// persistLocked writes the session shadow. Persistence is best-effort:
// failures are logged, the in-memory session still mutates.
func (m *Manager) persistLocked() {
	if err := m.store.Set(KeyCredential, m.cur.Credential); err != nil {
		m.logger.Warn("persisting credential failed", "error", err)
	}
	raw, err := json.Marshal(m.cur.Identity)
	if err == nil {
		err = m.store.Set(KeyIdentity, string(raw))
	}
	if err != nil {
		m.logger.Warn("persisting identity failed", "error", err)
	}
}

// persistClearLocked removes both shadow keys.
func (m *Manager) persistClearLocked() {
	if err := m.store.Delete(KeyCredential); err != nil {
		m.logger.Warn("clearing persisted credential failed", "error", err)
	}
	if err := m.store.Delete(KeyIdentity); err != nil {
		m.logger.Warn("clearing persisted identity failed", "error", err)
	}
}

// observerListLocked snapshots the observer set so notification happens
// outside the lock (an observer may call back into the manager).
func (m *Manager) observerListLocked() []Observer {
	obs := make([]Observer, 0, len(m.observers))
	for _, o := range m.observers {
		obs = append(obs, o)
	}
	return obs
}

func notify(obs []Observer, snap Snapshot) {
	for _, o := range obs {
		o(snap)
	}
}
