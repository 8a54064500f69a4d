package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeCapacityExceeded, "waiting list full")
	wrapped := fmt.Errorf("create registration: %w", err)

	assert.ErrorIs(t, wrapped, ErrCapacityExceeded)
	assert.NotErrorIs(t, wrapped, ErrInvalidPosition)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeWindowClosed, CodeOf(fmt.Errorf("x: %w", ErrWindowClosed)))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Equal(t, CodeInternal, CodeOf(Internal(errors.New("conn reset"))))
}

func TestMessageOf(t *testing.T) {
	assert.Equal(t, "missing answer for required question", MessageOf(ErrMissingRequiredAnswer))
	assert.Equal(t, "internal error", MessageOf(errors.New("pq: password=secret")))
}
