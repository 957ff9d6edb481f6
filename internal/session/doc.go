// Package session owns the client's authentication state.
//
// # Session Lifecycle
//
// Exactly one Manager exists per running client. It is constructed
// explicitly and injected into the request pipeline, the navigation guard,
// and the permission predicates — there is no package-level singleton.
//
// The session moves between two states:
//
//   - Anonymous: no credential. Initial state, and the terminal state after
//     logout, a failed refresh, or an unauthorized response.
//   - Authenticated: credential and identity present, set and cleared
//     together.
//
// Transitions:
//
//	Anonymous     --Login/Register success--> Authenticated
//	Authenticated --Logout--------------------> Anonymous
//	Authenticated --RefreshToken failure------> Anonymous
//	Authenticated --401 (pipeline Invalidate)-> Anonymous
//	Authenticated --RefreshToken success------> Authenticated (credential replaced)
//
// # Persistence
//
// The session is shadowed into a persist.Store under two keys (credential
// and serialized identity). Writes are synchronous at mutation time and
// best-effort; the one read happens in InitAuth at startup. A malformed
// persisted identity degrades to a credential-only session instead of
// failing rehydration.
//
// # Observers
//
// Mutators notify subscribed observers synchronously after each atomic
// update, outside the manager's lock, so observers may call back into the
// manager.
package session
