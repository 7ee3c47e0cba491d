package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneMatchesSentinel(t *testing.T) {
	err := Clone(ErrValidation, "enrollment id required")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "enrollment id required", err.Message)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("pq: connection reset")
	err := Wrap(cause, ErrInternal.Code, "load transcript")

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "load transcript: pq: connection reset", err.Error())
}

func TestFromErrorNormalisesForeignErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.Equal(t, ErrInternal.Code, FromError(plain).Code)

	wrapped := fmt.Errorf("context: %w", ErrCapacityExceeded)
	assert.Equal(t, ErrCapacityExceeded.Code, FromError(wrapped).Code)

	assert.Nil(t, FromError(nil))
}
