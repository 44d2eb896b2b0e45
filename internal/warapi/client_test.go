package warapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siege-works/garrison/internal/shared"
)

const deadLandsPayload = `{"mapItems":[{"teamId":"WARDENS"},{"teamId":"COLONIALS"},{"teamId":"WARDENS"}]}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *MemoryStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := NewMemoryStore()
	return NewClient(server.URL, 5*time.Second, store, nil), store
}

func TestRegionSummaryFetchAndCache(t *testing.T) {
	var requests int
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "/maps/DeadLandsHex/dynamic/public", r.URL.Path)
		w.Header().Set("ETag", `"v1"`)
		w.Header().Set("Cache-Control", "public, max-age=120")
		_, _ = w.Write([]byte(deadLandsPayload))
	})

	start := time.Now()
	summary, err := client.RegionSummary(context.Background(), "DeadLandsHex")
	require.NoError(t, err)
	assert.True(t, summary.Threatened)
	assert.Equal(t, 2, summary.WardenCount)
	assert.Equal(t, 1, requests)

	entry, ok := store.Get("DeadLandsHex")
	require.True(t, ok)
	assert.Equal(t, `"v1"`, entry.ETag)
	assert.WithinDuration(t, start.Add(120*time.Second), entry.ExpiresAt, 2*time.Second)
}

func TestRegionSummaryConditionalRevalidation(t *testing.T) {
	var sawIfNoneMatch string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if inm := r.Header.Get("If-None-Match"); inm != "" {
			sawIfNoneMatch = inm
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(deadLandsPayload))
	})

	first, err := client.RegionSummary(context.Background(), "DeadLandsHex")
	require.NoError(t, err)

	// Second call revalidates with the stored ETag and gets an identical
	// summary without a fresh payload.
	second, err := client.RegionSummary(context.Background(), "DeadLandsHex")
	require.NoError(t, err)
	assert.Equal(t, `"v1"`, sawIfNoneMatch)
	assert.Equal(t, first, second)
}

func TestRegionSummaryDefaultLifetime(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(deadLandsPayload))
	})

	start := time.Now()
	_, err := client.RegionSummary(context.Background(), "DeadLandsHex")
	require.NoError(t, err)

	entry, ok := store.Get("DeadLandsHex")
	require.True(t, ok)
	assert.WithinDuration(t, start.Add(60*time.Second), entry.ExpiresAt, 2*time.Second)
}

func TestRegionSummaryNotFound(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	summary, err := client.RegionSummary(context.Background(), "NoSuchHex")
	require.NoError(t, err)
	assert.False(t, summary.Threatened)
	assert.Equal(t, []string{`Map "NoSuchHex" not found in Foxhole API.`}, summary.Alerts)

	// A missing hex is never cached.
	_, ok := store.Get("NoSuchHex")
	assert.False(t, ok)
}

func TestRegionSummaryUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.RegionSummary(context.Background(), "DeadLandsHex")
	assert.ErrorIs(t, err, shared.ErrExternalService)
}

func TestRegionSummaryEmptyHex(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no upstream call expected for an empty hex name")
	})

	summary, err := client.RegionSummary(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"No map region set for this base."}, summary.Alerts)
}

func TestRegionSummaryMalformedPayload(t *testing.T) {
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"v1"`)
		_, _ = w.Write([]byte(`{"mapItems": [{"teamId"`))
	})

	summary, err := client.RegionSummary(context.Background(), "DeadLandsHex")
	require.NoError(t, err)
	assert.Equal(t, []string{"No map data available."}, summary.Alerts)

	// The fallback summary is still cached under the response ETag.
	entry, ok := store.Get("DeadLandsHex")
	require.True(t, ok)
	assert.Equal(t, `"v1"`, entry.ETag)
}

func TestRegionSummaryExpiredEntryRefetches(t *testing.T) {
	var requests int
	client, store := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		// The expired entry's ETag must not be replayed.
		assert.Empty(t, r.Header.Get("If-None-Match"))
		_, _ = w.Write([]byte(deadLandsPayload))
	})

	clock := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	client.now = func() time.Time { return clock }

	_, err := client.RegionSummary(context.Background(), "DeadLandsHex")
	require.NoError(t, err)

	clock = clock.Add(2 * time.Minute)
	_, err = client.RegionSummary(context.Background(), "DeadLandsHex")
	require.NoError(t, err)
	assert.Equal(t, 2, requests)
}
