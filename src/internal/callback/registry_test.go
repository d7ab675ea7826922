package callback

import (
	"context"
	"docbridge-svc/src/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRegistrar struct {
	status models.CallbackStatus
	marker *string
	value  string
}

func (s *stubRegistrar) Status() models.CallbackStatus { return s.status }

func (s *stubRegistrar) Handler() HandlerFunc {
	return func(ctx context.Context, teamID, userID string, cb *models.Callback) error {
		*s.marker = s.value
		return nil
	}
}

func TestRegistryFirstRegistrationWins(t *testing.T) {
	registry := NewRegistry()

	var invoked string
	registry.Register(&stubRegistrar{status: models.StatusSave, marker: &invoked, value: "first"})
	registry.Register(&stubRegistrar{status: models.StatusSave, marker: &invoked, value: "second"})

	handler, ok := registry.Find(models.StatusSave)
	require.True(t, ok)

	require.NoError(t, handler(context.Background(), "T1", "U1", &models.Callback{}))
	assert.Equal(t, "first", invoked)

	// The winner is permanent; looking up again yields the same handler.
	handler, ok = registry.Find(models.StatusSave)
	require.True(t, ok)
	invoked = ""
	require.NoError(t, handler(context.Background(), "T1", "U1", &models.Callback{}))
	assert.Equal(t, "first", invoked)
}

func TestRegistryFindUnknownStatus(t *testing.T) {
	registry := NewRegistry()

	_, ok := registry.Find(models.StatusClosed)
	assert.False(t, ok)
}
