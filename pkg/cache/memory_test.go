package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(4, time.Minute)

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
	val, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), val)

	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(4, 20*time.Millisecond)
	require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))

	assert.Eventually(t, func() bool {
		_, ok, _ := s.Get(ctx, "k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
