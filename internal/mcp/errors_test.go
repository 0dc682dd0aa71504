package mcp

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aman-CERP/thesisdash/internal/errors"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"missing index", errors.New(errors.ErrCodeIndexNotFound, "no index", nil), ErrCodeIndexNotFound},
		{"corrupt index", errors.New(errors.ErrCodeIndexCorrupt, "bad json", nil), ErrCodeIndexNotFound},
		{"empty query", errors.New(errors.ErrCodeQueryEmpty, "no terms", nil), ErrCodeInvalidParams},
		{"wrapped dash error", fmt.Errorf("ask: %w", errors.New(errors.ErrCodeQueryEmpty, "no terms", nil)), ErrCodeInvalidParams},
		{"unreadable file", errors.New(errors.ErrCodeFileUnreadable, "denied", nil), ErrCodeInternalError},
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout},
		{"canceled", context.Canceled, ErrCodeTimeout},
		{"plain error", fmt.Errorf("boom"), ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, MapError(tt.err).Code)
		})
	}
}

func TestMapError_NilAndSuggestion(t *testing.T) {
	assert.Nil(t, MapError(nil))

	err := errors.New(errors.ErrCodeIndexNotFound, "no index", nil).WithSuggestion("Run 'thesisdash index'")
	assert.Equal(t, "no index. Run 'thesisdash index'", MapError(err).Message)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 5, clampLimit(0, 5, 1, 50))
	assert.Equal(t, 50, clampLimit(500, 5, 1, 50))
	assert.Equal(t, 7, clampLimit(7, 5, 1, 50))
}
