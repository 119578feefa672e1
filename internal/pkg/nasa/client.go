package nasa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cosmoconnect/internal/config"
	"cosmoconnect/internal/model"
	"cosmoconnect/internal/pkg/cache"
	"cosmoconnect/internal/pkg/logger"
)

const (
	DefaultBaseURL = "https://api.nasa.gov"
	DemoKey        = "DEMO_KEY"

	dateLayout = "2006-01-02"
	cmeWindow  = 7 * 24 * time.Hour
)

// APODFirstDay 第一张每日天文图的日期
var APODFirstDay = time.Date(1995, time.June, 16, 0, 0, 0, 0, time.UTC)

// ErrRateLimited NASA 接口返回 429
var ErrRateLimited = errors.New("nasa api rate limit reached")

// Cache APOD 缓存
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Client NASA 开放数据接口客户端
// 所有方法都不会向调用方返回错误：失败时记录日志并返回兜底数据
type Client struct {
	baseURL    string
	apiKey     string
	cacheTTL   time.Duration
	httpClient *http.Client
	cache      Cache
	logger     zerolog.Logger

	now    func() time.Time
	int64N func(n int64) int64
}

// Option 客户端选项
type Option func(*Client)

// WithCache 设置 APOD 缓存
func WithCache(c Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithHTTPClient 替换 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(cl *Client) { cl.httpClient = hc }
}

// WithClock 替换当前时间，测试用
func WithClock(now func() time.Time) Option {
	return func(cl *Client) { cl.now = now }
}

// WithRand 替换随机数来源，测试用
func WithRand(int64N func(n int64) int64) Option {
	return func(cl *Client) { cl.int64N = int64N }
}

// NewClient 创建 NASA 客户端
func NewClient(cfg *config.NASAConfig, opts ...Option) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = DemoKey
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		cacheTTL:   cfg.APODCacheTTL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Component("nasa"),
		now:        time.Now,
		int64N:     rand.Int64N,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APOD 获取每日天文图；random 为 true 时随机选择 1995-06-16 至今的某一天
func (c *Client) APOD(ctx context.Context, random bool) model.APOD {
	query := url.Values{}
	date := ""
	if random {
		date = c.randomDate()
		query.Set("date", date)
	}

	if date != "" && c.cache != nil && c.cacheTTL > 0 {
		var cached model.APOD
		if err := c.cache.Get(ctx, cache.APODKey(date), &cached); err == nil {
			return cached
		}
	}

	var apod model.APOD
	if err := c.getJSON(ctx, "/planetary/apod", query, &apod); err != nil {
		c.logFailure(err, "could not fetch APOD, using fallback")
		return c.fallbackAPOD()
	}

	if c.cache != nil && c.cacheTTL > 0 && apod.Date != "" {
		if err := c.cache.Set(ctx, cache.APODKey(apod.Date), apod, c.cacheTTL); err != nil {
			c.logger.Warn().Err(err).Str("date", apod.Date).Msg("failed to cache APOD")
		}
	}
	return apod
}

// RecentCMEs 最近 7 天的日冕物质抛射；失败时返回空列表
func (c *Client) RecentCMEs(ctx context.Context) []model.CME {
	today := c.now().UTC()
	query := url.Values{}
	query.Set("startDate", today.Add(-cmeWindow).Format(dateLayout))
	query.Set("endDate", today.Format(dateLayout))

	var cmes []model.CME
	if err := c.getJSON(ctx, "/DONKI/CME", query, &cmes); err != nil {
		c.logFailure(err, "could not fetch space weather data, using empty feed")
		return []model.CME{}
	}
	if cmes == nil {
		cmes = []model.CME{}
	}
	return cmes
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, dest any) error {
	query.Set("api_key", c.apiKey)
	endpoint := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("request %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// randomDate 在 [APODFirstDay, today] 中均匀选择一天
func (c *Client) randomDate() string {
	today := c.now().UTC().Truncate(24 * time.Hour)
	days := int64(today.Sub(APODFirstDay)/(24*time.Hour)) + 1
	if days < 1 {
		days = 1
	}
	offset := c.int64N(days)
	return APODFirstDay.AddDate(0, 0, int(offset)).Format(dateLayout)
}

func (c *Client) fallbackAPOD() model.APOD {
	apod := FallbackAPOD
	apod.Date = c.now().UTC().Format(dateLayout)
	return apod
}

// logFailure 限流记 warn，其它失败记 error
func (c *Client) logFailure(err error, msg string) {
	if errors.Is(err, ErrRateLimited) {
		c.logger.Warn().Err(err).Msg(msg)
		return
	}
	c.logger.Error().Err(err).Msg(msg)
}

// FallbackAPOD 接口不可用时展示的内容，Date 在返回时填充
var FallbackAPOD = model.APOD{
	Title:          "Oops! A Cosmic Hiccup",
	Explanation:    "We couldn't fetch today's picture from NASA's cosmic gallery due to heavy traffic. It might be lost in a nebula! Please check back later.",
	URL:            "https://images.unsplash.com/photo-1534796636912-3b95b3ab5986?q=80&w=2071&auto=format&fit=crop&ixlib-rb-4.0.3&ixid=M3wxMjA3fDB8MHxwaG9toby1wYWdlfHx8fGVufDB8fHx8fA%3D%3D",
	MediaType:      "image",
	ServiceVersion: "v1",
	Fallback:       true,
}
