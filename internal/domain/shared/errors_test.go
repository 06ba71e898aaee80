package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainErrorMessage(t *testing.T) {
	t.Run("recovery appended", func(t *testing.T) {
		err := NewValidationError("X", "Something is wrong", "Try again.")
		assert.Equal(t, "Something is wrong. Try again.", err.Error())
	})

	t.Run("no recovery", func(t *testing.T) {
		assert.Equal(t, "Resource not found", ErrNotFound.Error())
	})
}

func TestKindClassification(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(ErrFileTooLarge))
	assert.Equal(t, KindConversion, KindOf(ErrConversionFailed))
	assert.Equal(t, KindPersistence, KindOf(ErrPersistenceFailed))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))

	assert.True(t, IsValidation(ErrSessionFull))
	assert.False(t, IsValidation(ErrConversionFailed))
	assert.True(t, IsConversion(ErrConversionFailed))
	assert.True(t, IsPersistence(ErrNotFound))
}

func TestKindOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("intake: %w", ErrUnsupportedFormat)
	assert.Equal(t, KindValidation, KindOf(wrapped))
	assert.True(t, IsValidation(wrapped))
}
