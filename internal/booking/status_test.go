package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkHeld(t *testing.T) {
	next, err := MarkHeld(StatusPending)
	require.NoError(t, err)
	assert.Equal(t, StatusHeld, next)

	for _, from := range []SelectionStatus{StatusHeld, StatusTicketed, StatusCancelled} {
		_, err := MarkHeld(from)
		assert.Error(t, err, "markHeld should be rejected from %s", from)
		assert.IsType(t, ErrInvalidTransition{}, err)
	}
}

func TestMarkTicketed(t *testing.T) {
	for _, from := range []SelectionStatus{StatusPending, StatusHeld} {
		next, err := MarkTicketed(from)
		require.NoError(t, err, "ticketing should succeed from %s", from)
		assert.Equal(t, StatusTicketed, next)
	}

	for _, from := range []SelectionStatus{StatusTicketed, StatusCancelled} {
		_, err := MarkTicketed(from)
		assert.Error(t, err, "ticketing should be rejected from %s", from)
	}
}

func TestRevertToPending(t *testing.T) {
	for _, from := range []SelectionStatus{StatusHeld, StatusTicketed} {
		next, err := RevertToPending(from)
		require.NoError(t, err, "revert should succeed from %s", from)
		assert.Equal(t, StatusPending, next)
	}

	for _, from := range []SelectionStatus{StatusPending, StatusCancelled} {
		_, err := RevertToPending(from)
		assert.Error(t, err, "revert should be rejected from %s", from)
		assert.IsType(t, ErrInvalidTransition{}, err)
	}
}

func TestCancel(t *testing.T) {
	for _, from := range []SelectionStatus{StatusPending, StatusHeld} {
		next, err := Cancel(from)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, next)
	}

	_, err := Cancel(StatusTicketed)
	assert.Error(t, err, "a ticketed selection must be reverted before cancellation")
	_, err = Cancel(StatusCancelled)
	assert.Error(t, err)
}

func TestStatusActive(t *testing.T) {
	assert.True(t, StatusPending.Active())
	assert.True(t, StatusHeld.Active())
	assert.False(t, StatusTicketed.Active())
	assert.False(t, StatusCancelled.Active())
}
