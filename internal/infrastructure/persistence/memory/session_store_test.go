package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/v1/internal/ports/outbound"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	token, err := store.Create(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := store.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestSessionStore_TokensAreUnique(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ctx := context.Background()
	userID := uuid.New()

	a, err := store.Create(ctx, userID)
	require.NoError(t, err)
	b, err := store.Create(ctx, userID)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSessionStore_UnknownToken(t *testing.T) {
	store := NewSessionStore(time.Hour)

	_, err := store.Get(context.Background(), "never-issued")
	assert.ErrorIs(t, err, outbound.ErrSessionNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, uuid.New())
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, token))
	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, outbound.ErrSessionNotFound)

	// Deleting again stays a no-op
	assert.NoError(t, store.Delete(ctx, token))
}

func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	token, err := store.Create(ctx, uuid.New())
	require.NoError(t, err)

	// Just inside the TTL
	current = current.Add(time.Hour - time.Second)
	_, err = store.Get(ctx, token)
	require.NoError(t, err)

	// Past the TTL the session is gone for good
	current = current.Add(2 * time.Second)
	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, outbound.ErrSessionNotFound)

	current = time.Now()
	_, err = store.Get(ctx, token)
	assert.ErrorIs(t, err, outbound.ErrSessionNotFound, "expired session stays deleted")
}
