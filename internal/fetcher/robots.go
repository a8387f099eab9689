package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

type RobotsCache struct {
	cache map[string]*robotsEntry
	ttl   time.Duration
	agent string
	mu    sync.RWMutex
}

type robotsEntry struct {
	data      *robotstxt.RobotsData
	expiresAt time.Time
}

func NewRobotsCache(ttl time.Duration, agent string) *RobotsCache {
	return &RobotsCache{
		cache: make(map[string]*robotsEntry),
		ttl:   ttl,
		agent: agent,
	}
}

// IsAllowed evaluates the host's robots.txt for the page. An unreachable
// robots.txt allows everything and is not cached.
func (rc *RobotsCache) IsAllowed(ctx context.Context, page *url.URL, client *http.Client) bool {
	key := page.Scheme + "://" + page.Host

	rc.mu.RLock()
	cached, exists := rc.cache[key]
	rc.mu.RUnlock()

	if !exists || time.Now().After(cached.expiresAt) {
		data, err := fetchRobots(ctx, key+"/robots.txt", rc.agent, client)
		if err != nil {
			return true
		}
		cached = &robotsEntry{data: data, expiresAt: time.Now().Add(rc.ttl)}

		rc.mu.Lock()
		rc.cache[key] = cached
		rc.mu.Unlock()
	}

	path := page.EscapedPath()
	if path == "" {
		path = "/"
	}
	if page.RawQuery != "" {
		path += "?" + page.RawQuery
	}
	return cached.data.TestAgent(path, rc.agent)
}

func fetchRobots(ctx context.Context, robotsURL, agent string, client *http.Client) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", agent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512<<10))
	if err != nil {
		return nil, err
	}
	// 4xx allows all, 5xx disallows all.
	return robotstxt.FromStatusAndBytes(resp.StatusCode, body)
}

// checkRobots is a no-op for a nil cache.
func checkRobots(ctx context.Context, rc *RobotsCache, page *url.URL, client *http.Client) error {
	if rc == nil {
		return nil
	}
	if !rc.IsAllowed(ctx, page, client) {
		return fmt.Errorf("%w: %s", ErrDisallowed, page)
	}
	return nil
}
