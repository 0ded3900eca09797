package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the YouTube Data API v3 base URL.
	BaseURL = "https://www.googleapis.com/youtube/v3"

	// musicCategoryID is the YouTube category for music videos.
	musicCategoryID = "10"

	// cacheTTL is how long API responses are reused.
	cacheTTL = time.Hour
)

// Client is a YouTube Data API client with request rate limiting and an
// in-memory response cache.
type Client struct {
	httpClient *http.Client
	apiKey     string
	region     string
	baseURL    string
	limiter    *rate.Limiter
	log        *log.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	data    []byte
	fetched time.Time
}

// New creates a new YouTube client.
func New(apiKey, region string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.Default()
	}
	if region == "" {
		region = "US"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		region:     region,
		baseURL:    BaseURL,
		limiter:    rate.NewLimiter(rate.Limit(5), 1),
		log:        logger.With("component", "youtube"),
		cache:      make(map[string]cacheEntry),
	}
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// get performs a rate-limited GET against the API and decodes into out,
// consulting the response cache first.
func (c *Client) get(ctx context.Context, resource string, params url.Values, out any) error {
	params.Set("key", c.apiKey)
	endpoint := c.baseURL + "/" + resource + "?" + params.Encode()

	c.mu.Lock()
	if entry, ok := c.cache[endpoint]; ok && time.Since(entry.fetched) < cacheTTL {
		c.mu.Unlock()
		return json.Unmarshal(entry.data, out)
	}
	c.mu.Unlock()

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api returned %d: %s", resp.StatusCode, truncate(body, 200))
	}

	c.mu.Lock()
	c.cache[endpoint] = cacheEntry{data: body, fetched: time.Now()}
	c.mu.Unlock()

	return json.Unmarshal(body, out)
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
