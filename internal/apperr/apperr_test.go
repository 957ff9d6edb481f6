// ABOUTME: Tests for the normalized error taxonomy
// ABOUTME: Covers kind extraction, wrapping, and constructor behavior

package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := Validation("username already taken")
	assert.Equal(t, "validation: username already taken", err.Error())
	assert.Equal(t, KindValidation, err.Kind)
	assert.Equal(t, "username already taken", err.Message)
}

func TestKindOf_Constructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{"validation", Validation("bad input"), KindValidation},
		{"auth", Auth("session expired"), KindAuth},
		{"permission", Permission("denied"), KindPermission},
		{"not found", NotFound("missing"), KindNotFound},
		{"server", Server("boom"), KindServer},
		{"network", Network("timeout"), KindNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.True(t, IsKind(tt.err, tt.kind))
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	inner := Auth("token rejected")
	wrapped := fmt.Errorf("refreshing session: %w", inner)

	require.Equal(t, KindAuth, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindAuth))
}

func TestKindOf_ForeignError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.False(t, IsKind(errors.New("plain"), KindAuth))
	assert.Equal(t, Kind(""), KindOf(nil))
}
