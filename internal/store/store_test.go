package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLocation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	href, err := s.GetLocation(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, href)

	require.NoError(t, s.SetLocation(ctx, "s1", "campaignmanager.php?action=list", time.Hour))
	href, err = s.GetLocation(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "campaignmanager.php?action=list", href)

	href, err = s.GetLocation(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, href)
}

func TestMemoryStoreUnloadFlag(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	ok, err := s.UnloadInitialized(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetUnloadInitialized(ctx, "s1", true, time.Hour))
	ok, err = s.UnloadInitialized(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.SetUnloadInitialized(ctx, "s1", false, time.Hour))
	ok, err = s.UnloadInitialized(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreExpiryAndForget(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.SetLocation(ctx, "s1", "a.php", time.Minute))
	require.NoError(t, s.SetUnloadInitialized(ctx, "s1", true, time.Minute))

	now = now.Add(2 * time.Minute)
	href, _ := s.GetLocation(ctx, "s1")
	assert.Empty(t, href)
	ok, _ := s.UnloadInitialized(ctx, "s1")
	assert.False(t, ok)

	require.NoError(t, s.SetLocation(ctx, "s1", "b.php", time.Minute))
	require.NoError(t, s.Forget(ctx, "s1"))
	href, _ = s.GetLocation(ctx, "s1")
	assert.Empty(t, href)
}
