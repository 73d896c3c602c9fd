package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatching(t *testing.T) {
	cause := errors.New("db down")
	err := fmt.Errorf("loading keys: %w", Wrap(cause, CodeUnavailable, "keys unavailable"))

	assert.True(t, errors.Is(err, New(CodeUnavailable, "keys unavailable")))
	assert.False(t, errors.Is(err, New(CodeUnavailable, "other")))
	assert.True(t, errors.Is(err, cause))
	assert.True(t, HasCode(err, CodeUnavailable))
	assert.Equal(t, CodeUnavailable, CodeOf(err))
	assert.Equal(t, CodeInternal, CodeOf(cause))
	assert.Contains(t, err.Error(), "db down")
}
