// ABOUTME: Store interface for the durable key/value mirror of session state
// ABOUTME: Keys are plain strings; values are opaque strings written at mutation time

package persist

import "errors"

// Store errors
var (
	ErrClosed = errors.New("persist: store closed")
)

// Store is a durable key -> string mapping that survives process restarts.
// It is the client-side shadow of the live session: writes happen
// synchronously at mutation time, reads once at startup.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key is absent; absence is not an error.
	Get(key string) (string, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(key, value string) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error

	// Close releases underlying resources.
	Close() error
}
