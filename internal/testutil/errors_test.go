package testutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	cerrors "github.com/mrz1836/cadence/internal/errors"
)

func TestMockErrorsAreUnclassified(t *testing.T) {
	t.Parallel()

	for _, err := range []error{ErrMockUpdate, ErrMockDisk} {
		assert.False(t, cerrors.IsUserError(err), err.Error())
		assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), err)
	}
	assert.False(t, errors.Is(ErrMockUpdate, ErrMockDisk))
}
