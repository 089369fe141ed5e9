package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorFormatting(t *testing.T) {
	err := NewNotFoundError("member m-1 has no submission")
	assert.Equal(t, "NOT_FOUND: member m-1 has no submission", err.Error())

	cause := errors.New("connection reset")
	wrapped := NewInternalError("failed to list products", cause)
	assert.Equal(t, "INTERNAL: failed to list products: connection reset", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"not found", NewNotFoundError("x"), ErrorTypeNotFound},
		{"validation", NewValidationError("x"), ErrorTypeValidation},
		{"unprocessable", NewUnprocessableError("x", nil), ErrorTypeUnprocessable},
		{"wrapped", fmt.Errorf("analyze: %w", NewNotFoundError("x")), ErrorTypeNotFound},
		{"plain error", errors.New("boom"), ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.err))
		})
	}
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("x")))
	assert.False(t, IsNotFound(NewValidationError("x")))
	assert.False(t, IsNotFound(nil))
}
