// Package geocode provides place geocoding via the Nominatim API with a
// local file cache.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/petro-intel/leadgen-cli/internal/model"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org/search"

// Client geocodes place names via Nominatim. Failures are logged and reported
// as misses; a lookup never returns an error to the caller.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *Cache
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the Nominatim endpoint, e.g. for a self-hosted
// instance.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit. Nominatim's public
// instance requires at most 1 req/s.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithCache attaches a persistent lookup cache.
func WithCache(cache *Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// NewClient creates a Nominatim client. The user agent is mandatory per the
// Nominatim usage policy.
func NewClient(userAgent string, opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Lookup resolves "place, state, India" to coordinates. It satisfies the
// resolver's external geocoder interface.
func (c *Client) Lookup(place, state string) (model.Coord, bool) {
	key := place + ", " + state
	if c.cache != nil {
		if coord, ok := c.cache.Get(key); ok {
			return coord, true
		}
	}

	coord, ok := c.query(place, state)
	if ok && c.cache != nil {
		if err := c.cache.Put(key, coord); err != nil {
			zap.L().Warn("geocode: cache write failed", zap.Error(err))
		}
	}
	return coord, ok
}

func (c *Client) query(place, state string) (model.Coord, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		zap.L().Debug("geocode: rate limit wait cancelled", zap.Error(err))
		return model.Coord{}, false
	}

	params := url.Values{
		"q":      {place + ", " + state + ", India"},
		"format": {"json"},
		"limit":  {"1"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		zap.L().Debug("geocode: build request", zap.Error(err))
		return model.Coord{}, false
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		zap.L().Debug("geocode: request failed", zap.String("place", place), zap.Error(err))
		return model.Coord{}, false
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		zap.L().Debug("geocode: non-200 response",
			zap.String("place", place), zap.Int("status", resp.StatusCode))
		return model.Coord{}, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Coord{}, false
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil || len(results) == 0 {
		return model.Coord{}, false
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return model.Coord{}, false
	}
	return model.Coord{Lat: lat, Lon: lon}, true
}
