// ABOUTME: Tests for the session Manager lifecycle and invariants
// ABOUTME: Covers login/logout roundtrips, refresh cascade, rehydration, observers

package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starcinema/starticket/internal/apperr"
	"github.com/starcinema/starticket/internal/persist"
)

// fakeGateway is a scriptable Gateway for manager tests.
type fakeGateway struct {
	mu          sync.Mutex
	loginRes    *AuthResult
	loginErr    error
	registerRes *AuthResult
	registerErr error
	refreshRes  *AuthResult
	refreshErr  error
	logoutErr   error
	logoutCalls int
	taken       map[string]bool
}

func (f *fakeGateway) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	return f.loginRes, f.loginErr
}

func (f *fakeGateway) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	return f.registerRes, f.registerErr
}

func (f *fakeGateway) Refresh(ctx context.Context) (*AuthResult, error) {
	return f.refreshRes, f.refreshErr
}

func (f *fakeGateway) Logout(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return f.logoutErr
}

func (f *fakeGateway) CheckUsername(ctx context.Context, username string) (bool, error) {
	return f.taken[username], nil
}

func (f *fakeGateway) CheckEmail(ctx context.Context, email string) (bool, error) {
	return f.taken[email], nil
}

func aliceResult() *AuthResult {
	return &AuthResult{
		Token: "tok-alice",
		Identity: Identity{
			ID:       1,
			Username: "alice",
			Email:    "alice@example.com",
			Role:     RoleUser,
		},
	}
}

func TestLogin_SetsAndPersistsBoth(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{loginRes: aliceResult()}
	mgr := NewManager(gw, store)

	snap, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	assert.True(t, snap.Authenticated())
	assert.Equal(t, "tok-alice", snap.Credential)
	assert.Equal(t, "alice", snap.Identity.Username)

	// Both shadow keys written
	tok, ok, err := store.Get(KeyCredential)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-alice", tok)

	raw, ok, err := store.Get(KeyIdentity)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, raw, `"username":"alice"`)
}

func TestLogin_FailureLeavesStateUnchanged(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{loginErr: apperr.Validation("bad credentials")}
	mgr := NewManager(gw, store)

	snap, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	assert.False(t, snap.Authenticated())
	assert.Equal(t, 0, store.Len())
}

func TestLoginThenLogout_EndsAnonymousWithKeysAbsent(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{loginRes: aliceResult()}
	mgr := NewManager(gw, store)

	_, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	mgr.Logout(context.Background())

	assert.False(t, mgr.Snapshot().Authenticated())
	_, ok, _ := store.Get(KeyCredential)
	assert.False(t, ok)
	_, ok, _ = store.Get(KeyIdentity)
	assert.False(t, ok)
	assert.Equal(t, 1, gw.logoutCalls)
}

func TestLogout_Idempotent(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{loginRes: aliceResult()}
	mgr := NewManager(gw, store)

	_, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	mgr.Logout(context.Background())
	first := mgr.Snapshot()

	// Second logout: no error, identical end state, no second remote call
	mgr.Logout(context.Background())
	assert.Equal(t, first, mgr.Snapshot())
	assert.Equal(t, 1, gw.logoutCalls)
}

func TestLogout_RemoteFailureStillClearsLocally(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{loginRes: aliceResult(), logoutErr: errors.New("gateway down")}
	mgr := NewManager(gw, store)

	_, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	mgr.Logout(context.Background())
	assert.False(t, mgr.Snapshot().Authenticated())
	assert.Equal(t, 0, store.Len())
}

func TestRegister_SameContractAsLogin(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{registerRes: aliceResult()}
	mgr := NewManager(gw, store)

	snap, err := mgr.Register(context.Background(), Registration{Username: "alice", Password: "pw", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.True(t, snap.Authenticated())
	assert.Equal(t, "alice", snap.Identity.Username)
}

func TestRefreshToken_ReplacesCredentialInPlace(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{loginRes: aliceResult()}
	mgr := NewManager(gw, store)

	_, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	gw.refreshRes = &AuthResult{Token: "tok-alice-2", Identity: aliceResult().Identity}
	snap, err := mgr.RefreshToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "tok-alice-2", snap.Credential)
	assert.Equal(t, "alice", snap.Identity.Username)

	tok, ok, _ := store.Get(KeyCredential)
	require.True(t, ok)
	assert.Equal(t, "tok-alice-2", tok)
}

func TestRefreshToken_FailureCascadesToLogout(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{loginRes: aliceResult(), refreshErr: apperr.Auth("token rejected")}
	mgr := NewManager(gw, store)

	_, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	_, err = mgr.RefreshToken(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.KindAuth, apperr.KindOf(err))

	// Stale session must not remain observable
	assert.False(t, mgr.Snapshot().Authenticated())
	assert.Equal(t, 0, store.Len())
}

func TestInitAuth_RehydratesWithoutGateway(t *testing.T) {
	store := persist.NewMemoryStore()
	require.NoError(t, store.Set(KeyCredential, "tok-restored"))
	require.NoError(t, store.Set(KeyIdentity, `{"id":7,"username":"bob","role":"ADMIN"}`))

	mgr := NewManager(&fakeGateway{}, store)
	require.NoError(t, mgr.InitAuth())

	snap := mgr.Snapshot()
	assert.True(t, snap.Authenticated())
	assert.Equal(t, "tok-restored", snap.Credential)
	assert.Equal(t, "bob", snap.Identity.Username)
	assert.True(t, snap.IsAdmin())
}

func TestInitAuth_EmptyStoreStaysAnonymous(t *testing.T) {
	mgr := NewManager(&fakeGateway{}, persist.NewMemoryStore())
	require.NoError(t, mgr.InitAuth())
	assert.False(t, mgr.Snapshot().Authenticated())
}

func TestInitAuth_CorruptedIdentityDegrades(t *testing.T) {
	store := persist.NewMemoryStore()
	require.NoError(t, store.Set(KeyCredential, "tok-survives"))
	require.NoError(t, store.Set(KeyIdentity, `{not json`))

	mgr := NewManager(&fakeGateway{}, store)
	require.NoError(t, mgr.InitAuth())

	// Credential kept, identity zeroed: degraded but never a crash
	snap := mgr.Snapshot()
	assert.True(t, snap.Authenticated())
	assert.Empty(t, snap.Identity.Username)
	assert.False(t, snap.IsAdmin())
}

func TestInitAuth_NeverOverwritesLiveSession(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{loginRes: aliceResult()}
	mgr := NewManager(gw, store)

	_, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	// Stale shadow from an earlier lifetime must not clobber the live session
	require.NoError(t, store.Set(KeyCredential, "tok-stale"))
	require.NoError(t, mgr.InitAuth())

	assert.Equal(t, "tok-alice", mgr.Snapshot().Credential)
}

func TestInitAuth_RunsOnce(t *testing.T) {
	store := persist.NewMemoryStore()
	mgr := NewManager(&fakeGateway{}, store)
	require.NoError(t, mgr.InitAuth())

	// A credential persisted after the first InitAuth is ignored for this
	// page lifetime
	require.NoError(t, store.Set(KeyCredential, "tok-late"))
	require.NoError(t, store.Set(KeyIdentity, `{"username":"late"}`))
	require.NoError(t, mgr.InitAuth())

	assert.False(t, mgr.Snapshot().Authenticated())
}

func TestInvalidate_Idempotent(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{loginRes: aliceResult()}
	mgr := NewManager(gw, store)

	_, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	var notified int
	mgr.Subscribe(func(Snapshot) { notified++ })

	// Two racing 401 handlers both invalidate; only the first clears
	mgr.Invalidate()
	mgr.Invalidate()

	assert.False(t, mgr.Snapshot().Authenticated())
	assert.Equal(t, 1, notified)
}

func TestObservers_NotifiedSynchronouslyAfterMutation(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{loginRes: aliceResult()}
	mgr := NewManager(gw, store)

	var seen []string
	unsubscribe := mgr.Subscribe(func(s Snapshot) {
		seen = append(seen, s.Identity.Username)
	})

	_, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	mgr.Logout(context.Background())

	require.Equal(t, []string{"alice", ""}, seen)

	// Unsubscribed observers stop receiving updates
	unsubscribe()
	_, err = mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Len(t, seen, 2)
}

func TestObserver_MayCallBackIntoManager(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{loginRes: aliceResult()}
	mgr := NewManager(gw, store)

	var observed Snapshot
	mgr.Subscribe(func(Snapshot) {
		observed = mgr.Snapshot() // must not deadlock
	})

	_, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, observed.Authenticated())
}

func TestUpdateIdentity_RepersistsWithoutTouchingCredential(t *testing.T) {
	store := persist.NewMemoryStore()
	gw := &fakeGateway{loginRes: aliceResult()}
	mgr := NewManager(gw, store)

	_, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	updated := aliceResult().Identity
	updated.Avatar = "https://cdn.example.com/alice.png"
	require.NoError(t, mgr.UpdateIdentity(updated))

	snap := mgr.Snapshot()
	assert.Equal(t, "tok-alice", snap.Credential)
	assert.Equal(t, "https://cdn.example.com/alice.png", snap.Identity.Avatar)

	raw, ok, _ := store.Get(KeyIdentity)
	require.True(t, ok)
	assert.Contains(t, raw, "alice.png")
}

func TestUpdateIdentity_RejectedWhenAnonymous(t *testing.T) {
	mgr := NewManager(&fakeGateway{}, persist.NewMemoryStore())
	err := mgr.UpdateIdentity(Identity{Username: "ghost"})
	require.Error(t, err)
}

func TestCheckUsername_PureLookup(t *testing.T) {
	gw := &fakeGateway{taken: map[string]bool{"alice": true}}
	mgr := NewManager(gw, persist.NewMemoryStore())

	taken, err := mgr.CheckUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = mgr.CheckUsername(context.Background(), "carol")
	require.NoError(t, err)
	assert.False(t, taken)

	assert.False(t, mgr.Snapshot().Authenticated())
}

func TestPersistFailure_SessionStillMutates(t *testing.T) {
	store := persist.NewMemoryStore()
	store.FailWrites = errors.New("disk full")
	gw := &fakeGateway{loginRes: aliceResult()}
	mgr := NewManager(gw, store)

	snap, err := mgr.Login(context.Background(), Credentials{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.True(t, snap.Authenticated())
}
