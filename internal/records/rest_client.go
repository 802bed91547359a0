package records

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type restClient struct {
	cfg        Config
	httpClient *http.Client

	throttleMu  sync.Mutex
	lastRequest time.Time

	cache   map[string]*cacheEntry
	cacheMu sync.Mutex
}

type cacheEntry struct {
	body        []byte
	expiration  time.Time
	accessCount int
	originalTTL time.Duration
}

func newRESTClient(cfg Config) *restClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &restClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache: make(map[string]*cacheEntry),
	}
}

func (c *restClient) getFromCache(key string) ([]byte, bool) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	entry, ok := c.cache[key]
	if !ok {
		log.Debug().Str("key", key).Msg("Cache miss")
		return nil, false
	}
	log.Debug().Str("key", key).Msg("Cache hit")

	if time.Now().After(entry.expiration) {
		delete(c.cache, key)
		return nil, false
	}

	// Sliding window extension
	if entry.accessCount < 6 {
		entry.expiration = time.Now().Add(entry.originalTTL)
		entry.accessCount++
		log.Trace().Str("key", key).Int("count", entry.accessCount).Msg("Extended cache TTL")
	}

	return entry.body, true
}

func (c *restClient) addToCache(key string, body []byte) {
	if c.cfg.CacheTTL <= 0 {
		return
	}
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()

	c.cache[key] = &cacheEntry{
		body:        body,
		expiration:  time.Now().Add(c.cfg.CacheTTL),
		originalTTL: c.cfg.CacheTTL,
		accessCount: 1,
	}
	log.Debug().Str("key", key).Dur("ttl", c.cfg.CacheTTL).Msg("Added to cache")
}

// throttle spaces requests out so a snapshot load does not hammer the store.
// The four collection reads arrive concurrently; the lock serializes their
// dispatch.
func (c *restClient) throttle() {
	if c.cfg.RequestDelay <= 0 {
		return
	}
	c.throttleMu.Lock()
	defer c.throttleMu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestDelay {
		wait := c.cfg.RequestDelay - elapsed
		log.Debug().Dur("wait", wait).Msg("Throttling record store request")
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

func (c *restClient) authenticateRequest(req *http.Request) {
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.cfg.APIKey))
		req.Header.Set("apikey", c.cfg.APIKey)
	}
	req.Header.Set("Accept", "application/json")
}

// list performs a GET against one collection endpoint and decodes the JSON
// array body into out. orderBy is passed through to the store so large
// collections arrive pre-sorted.
func (c *restClient) list(ctx context.Context, collection string, orderBy string, out interface{}) error {
	params := url.Values{}
	params.Set("select", "*")
	if orderBy != "" {
		params.Set("order", orderBy)
	}

	cacheKey := collection + "?" + params.Encode()
	if body, ok := c.getFromCache(cacheKey); ok {
		return json.Unmarshal(body, out)
	}

	c.throttle()

	endpoint := fmt.Sprintf("%s/rest/v1/%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), collection, params.Encode())
	log.Debug().Str("collection", collection).Str("url", endpoint).Msg("Requesting records from store")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	c.authenticateRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("record store request for %s failed: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var storeErr storeError
		if json.Unmarshal(body, &storeErr) == nil && storeErr.Message != "" {
			// The store contract requires its message to reach the user verbatim.
			return fmt.Errorf("record store error for %s: %s", collection, storeErr.Message)
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("record store authentication failed (%d) for %s", resp.StatusCode, collection)
		default:
			return fmt.Errorf("record store returned status %d for %s", resp.StatusCode, collection)
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", collection, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", collection, err)
	}
	c.addToCache(cacheKey, body)
	return nil
}

func (c *restClient) ListSubmissions(ctx context.Context) ([]Submission, error) {
	var dtos []submissionDTO
	if err := c.list(ctx, "submissions", "submitted_at.asc", &dtos); err != nil {
		return nil, err
	}
	log.Info().Int("count", len(dtos)).Msg("Fetched submissions")
	return mapSubmissions(dtos), nil
}

func (c *restClient) ListStageHistory(ctx context.Context) ([]StageHistoryEntry, error) {
	var dtos []stageHistoryDTO
	if err := c.list(ctx, "stage_history", "created_at.asc", &dtos); err != nil {
		return nil, err
	}
	log.Info().Int("count", len(dtos)).Msg("Fetched stage history")
	return mapStageHistory(dtos), nil
}

func (c *restClient) ListComments(ctx context.Context) ([]Comment, error) {
	var dtos []commentDTO
	if err := c.list(ctx, "submission_comments", "created_at.asc", &dtos); err != nil {
		return nil, err
	}
	log.Info().Int("count", len(dtos)).Msg("Fetched comments")
	return mapComments(dtos), nil
}

func (c *restClient) ListStaff(ctx context.Context) ([]StaffProfile, error) {
	var dtos []staffDTO
	if err := c.list(ctx, "staff_profiles", "full_name.asc", &dtos); err != nil {
		return nil, err
	}
	log.Info().Int("count", len(dtos)).Msg("Fetched staff profiles")
	return mapStaff(dtos), nil
}
