package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
)

func TestStore(t *testing.T) {
	report := &domain.Report{BasicStats: domain.BasicStats{TotalMessages: 3}}

	t.Run("put and get", func(t *testing.T) {
		store := NewStore()
		store.Put("key", report, time.Minute)

		got, ok := store.Get("key")
		require.True(t, ok)
		assert.Equal(t, report, got)
	})

	t.Run("missing key", func(t *testing.T) {
		store := NewStore()
		_, ok := store.Get("absent")
		assert.False(t, ok)
	})

	t.Run("expired entries are invisible", func(t *testing.T) {
		store := NewStore()
		store.Put("key", report, -time.Second)

		_, ok := store.Get("key")
		assert.False(t, ok)
	})

	t.Run("cleanup removes expired entries", func(t *testing.T) {
		store := NewStore()
		store.Put("stale", report, -time.Second)
		store.Put("fresh", report, time.Minute)

		store.CleanupExpired()

		assert.Len(t, store.items, 1)
		_, ok := store.Get("fresh")
		assert.True(t, ok)
	})
}

func TestContentHash(t *testing.T) {
	first := ContentHash([]byte("chat export"))
	second := ContentHash([]byte("chat export"))
	other := ContentHash([]byte("different export"))

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
	assert.Len(t, first, 64)
}
