package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"hltv-parser/internal/config"
	"hltv-parser/internal/observability"
)

// BrowserSource renders pages in headless Chrome. Use it when the site
// answers plain HTTP clients with a challenge page.
type BrowserSource struct {
	cfg         *config.Config
	logger      *observability.Logger
	rateLimiter *RateLimiter
	robotsCache *RobotsCache
	robotsHTTP  *http.Client

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func NewBrowserSource(cfg *config.Config, logger *observability.Logger) *BrowserSource {
	if logger == nil {
		logger = observability.Nop()
	}
	var robots *RobotsCache
	if cfg.Robots.Enabled {
		robots = NewRobotsCache(cfg.GetRobotsCacheTTL(), cfg.HTTP.UserAgent)
	}
	return &BrowserSource{
		cfg:         cfg,
		logger:      logger,
		rateLimiter: NewRateLimiter(cfg.RateLimit.MaxConcurrentPerHost, cfg.RateLimit.RPM),
		robotsCache: robots,
		robotsHTTP:  &http.Client{Timeout: cfg.GetTotalTimeout()},
	}
}

// connect starts the browser on first use.
func (b *BrowserSource) connect() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser != nil {
		return b.browser, nil
	}

	l := launcher.New().Headless(true).Set("disable-dev-shm-usage")
	if b.cfg.Rod.ChromePath != "" {
		l = l.Bin(b.cfg.Rod.ChromePath)
	}
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	b.logger.Info("browser started", "chrome_path", b.cfg.Rod.ChromePath)
	b.browser = browser
	b.launcher = l
	return browser, nil
}

func (b *BrowserSource) Fetch(ctx context.Context, urlStr string) (*FetchResponse, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if err := checkRobots(ctx, b.robotsCache, parsedURL, b.robotsHTTP); err != nil {
		return nil, err
	}

	release, err := b.rateLimiter.Acquire(ctx, parsedURL.Host)
	if err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}
	defer release()

	browser, err := b.connect()
	if err != nil {
		return nil, err
	}

	page, err := browser.Context(ctx).Timeout(b.cfg.GetRodPageTimeout()).Page(proto.TargetCreateTarget{URL: urlStr})
	if err != nil {
		return nil, fmt.Errorf("open page %s: %w", urlStr, err)
	}
	defer page.Close()

	if err := page.Timeout(b.cfg.GetRodWaitLoadTimeout()).WaitLoad(); err != nil {
		return nil, fmt.Errorf("wait load %s: %w", urlStr, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("read page %s: %w", urlStr, err)
	}

	finalURL := urlStr
	if info, err := page.Info(); err == nil {
		finalURL = info.URL
	}

	b.logger.Debug("rendered", "url", finalURL, "bytes", len(html))
	return &FetchResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(html),
		URL:        finalURL,
	}, nil
}

// Close stops the browser if it was started.
func (b *BrowserSource) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browser == nil {
		return nil
	}
	err := b.browser.Close()
	b.launcher.Kill()
	b.browser, b.launcher = nil, nil
	return err
}

// New picks the Source the configuration asks for.
func New(cfg *config.Config, logger *observability.Logger) Source {
	if cfg.Rod.Enabled {
		return NewBrowserSource(cfg, logger)
	}
	return NewFetcher(cfg, logger)
}
