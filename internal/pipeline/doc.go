// Package pipeline dispatches every outbound API call.
//
// # Stages
//
// Outbound: the caller's request is augmented — never rewritten — with the
// bearer credential from the session (when one exists), a Content-Type, and
// a generated X-Request-ID.
//
// Inbound: every response body follows the platform's uniform envelope
// {success, data, message}. The pipeline strips the envelope before payloads
// reach callers; callers never see it. An envelope with success=false is a
// handled failure even when the transport call succeeded.
//
// # Classification
//
// Every failed call resolves to exactly one classification action and one
// normalized apperr.Error:
//
//	401                  invalidate session, redirect to login (deduped), auth notice
//	403                  permission notice
//	404                  not-found notice
//	5xx                  server notice
//	timeout/no response  network notice
//	other 4xx            server message verbatim; suppressed for the login call
//
// The classifier never panics past its own boundary; callers handle one
// error shape regardless of failure source.
//
// # Wiring
//
// The pipeline and the session manager depend on each other at runtime
// (requests read the credential; 401 responses clear it), so the session
// and navigator collaborators are late-bound via BindSession and
// BindNavigator after construction. Unbound collaborators are no-ops.
package pipeline
