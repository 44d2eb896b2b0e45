// Package warapi fetches and caches Warden threat summaries from the public
// Foxhole war API, using conditional requests to avoid re-downloading
// unchanged map data.
package warapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/siege-works/garrison/internal/shared"
)

// DefaultBaseURL is the public world-conquest endpoint.
const DefaultBaseURL = "https://war-service-live.foxholeservices.com/api/worldconquest"

const (
	defaultLifetime = 60 * time.Second
	maxLifetime     = 24 * time.Hour
)

// Client fetches dynamic map data per hex and caches the parsed summary.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      EntryStore
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient constructs a Client. The timeout bounds every upstream fetch; a
// timed-out fetch surfaces as an external service error.
func NewClient(baseURL string, timeout time.Duration, store EntryStore, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		logger:     logger,
		now:        time.Now,
	}
}

// RegionSummary returns the threat summary for a hex name, revalidating the
// cached entry when possible. An empty hex name short-circuits without an
// upstream call.
func (c *Client) RegionSummary(ctx context.Context, hexName string) (Summary, error) {
	if hexName == "" {
		return Summary{Alerts: []string{"No map region set for this base."}}, nil
	}

	cached, haveCached := c.store.Get(hexName)

	endpoint := fmt.Sprintf("%s/maps/%s/dynamic/public", c.baseURL, url.PathEscape(hexName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: build request: %v", shared.ErrExternalService, err)
	}
	req.Header.Set("Accept", "application/json")
	if haveCached && cached.ETag != "" {
		req.Header.Set("If-None-Match", cached.ETag)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Summary{}, fmt.Errorf("%w: %v", shared.ErrExternalService, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotModified:
		if !haveCached {
			return Summary{}, fmt.Errorf("%w: 304 without a cached entry", shared.ErrExternalService)
		}
		// Cached summary returned unchanged, no re-parse and no cache write.
		return cached.Summary, nil
	case resp.StatusCode == http.StatusNotFound:
		// Not persisted: a missing hex should be re-checked on every call.
		return Summary{Alerts: []string{fmt.Sprintf("Map %q not found in Foxhole API.", hexName)}}, nil
	case resp.StatusCode != http.StatusOK:
		return Summary{}, fmt.Errorf("%w: war API returned %d", shared.ErrExternalService, resp.StatusCode)
	}

	lifetime := parseMaxAge(resp.Header.Get("Cache-Control"))
	etag := resp.Header.Get("ETag")

	var data dynamicMapData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		if c.logger != nil {
			c.logger.Warn("war API payload decode", slog.String("hex", hexName), slog.Any("error", err))
		}
		data.MapItems = nil
	}
	summary := parseThreats(&data, hexName)

	c.store.Put(hexName, Entry{
		Summary:   summary,
		ETag:      etag,
		ExpiresAt: c.now().Add(lifetime),
	})
	return summary, nil
}

// parseMaxAge extracts max-age seconds from a Cache-Control header. Missing,
// malformed, or out-of-bounds values fall back to the 60 second default.
func parseMaxAge(header string) time.Duration {
	for _, directive := range strings.Split(header, ",") {
		directive = strings.TrimSpace(directive)
		value, ok := strings.CutPrefix(directive, "max-age=")
		if !ok {
			continue
		}
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 0 {
			return defaultLifetime
		}
		if lifetime := time.Duration(seconds) * time.Second; lifetime <= maxLifetime {
			return lifetime
		}
		return maxLifetime
	}
	return defaultLifetime
}
