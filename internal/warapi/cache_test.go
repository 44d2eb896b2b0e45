package warapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreExpiry(t *testing.T) {
	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return clock }

	store.Put("DeadLandsHex", Entry{
		Summary:   Summary{Threatened: true, WardenCount: 2},
		ETag:      `"abc"`,
		ExpiresAt: clock.Add(time.Minute),
	})

	entry, ok := store.Get("DeadLandsHex")
	require.True(t, ok)
	assert.Equal(t, 2, entry.Summary.WardenCount)

	// Still live at the boundary; expired one tick past it.
	clock = clock.Add(time.Minute)
	_, ok = store.Get("DeadLandsHex")
	assert.True(t, ok)

	clock = clock.Add(time.Nanosecond)
	_, ok = store.Get("DeadLandsHex")
	assert.False(t, ok)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore()
	_, ok := store.Get("TheFingersHex")
	assert.False(t, ok)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	later := time.Now().Add(time.Hour)

	store.Put("DeadLandsHex", Entry{Summary: Summary{WardenCount: 1}, ExpiresAt: later})
	store.Put("DeadLandsHex", Entry{Summary: Summary{WardenCount: 5}, ExpiresAt: later})

	entry, ok := store.Get("DeadLandsHex")
	require.True(t, ok)
	assert.Equal(t, 5, entry.Summary.WardenCount)
}
