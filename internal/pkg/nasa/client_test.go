package nasa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cosmoconnect/internal/config"
	"cosmoconnect/internal/model"
	"cosmoconnect/internal/pkg/cache"
)

var fixedNow = time.Date(2024, time.May, 11, 15, 30, 0, 0, time.UTC)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return NewClient(&config.NASAConfig{
		BaseURL:      srv.URL,
		APIKey:       "test-key",
		APODCacheTTL: 6 * time.Hour,
	}, opts...)
}

// memCache 内存缓存
type memCache struct {
	items map[string]model.APOD
	gets  atomic.Int32
}

func newMemCache() *memCache {
	return &memCache{items: map[string]model.APOD{}}
}

func (m *memCache) Get(ctx context.Context, key string, dest any) error {
	m.gets.Add(1)
	apod, ok := m.items[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	*(dest.(*model.APOD)) = apod
	return nil
}

func (m *memCache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	m.items[key] = value.(model.APOD)
	return nil
}

func TestClient_APOD(t *testing.T) {
	t.Run("today", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/planetary/apod", r.URL.Path)
			assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
			assert.Empty(t, r.URL.Query().Get("date"))
			_, _ = w.Write([]byte(`{"date":"2024-05-11","title":"Pillars of Creation","explanation":"Stars are born here.","media_type":"image","service_version":"v1","url":"https://apod.nasa.gov/pillars.jpg"}`))
		})

		apod := c.APOD(context.Background(), false)
		assert.Equal(t, "Pillars of Creation", apod.Title)
		assert.Equal(t, "2024-05-11", apod.Date)
		assert.False(t, apod.Fallback)
	})

	t.Run("random date within range", func(t *testing.T) {
		var gotDate string
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			gotDate = r.URL.Query().Get("date")
			_, _ = w.Write([]byte(`{"date":"` + gotDate + `","title":"Random"}`))
		}, WithRand(func(n int64) int64 { return 0 }))

		apod := c.APOD(context.Background(), true)
		assert.Equal(t, "1995-06-16", gotDate)
		assert.Equal(t, "1995-06-16", apod.Date)
	})

	t.Run("random date can be today", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, WithRand(func(n int64) int64 { return n - 1 }))
		assert.Equal(t, "2024-05-11", c.randomDate())
	})

	t.Run("rate limited returns fallback", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		apod := c.APOD(context.Background(), false)
		assert.True(t, apod.Fallback)
		assert.Equal(t, "Oops! A Cosmic Hiccup", apod.Title)
		assert.Equal(t, "2024-05-11", apod.Date)
		assert.Equal(t, "image", apod.MediaType)
	})

	t.Run("server error returns fallback", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
		assert.True(t, c.APOD(context.Background(), true).Fallback)
	})

	t.Run("malformed body returns fallback", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		})
		assert.True(t, c.APOD(context.Background(), false).Fallback)
	})

	t.Run("network failure returns fallback", func(t *testing.T) {
		c := NewClient(&config.NASAConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
		assert.True(t, c.APOD(context.Background(), false).Fallback)
	})

	t.Run("random APOD served from cache", func(t *testing.T) {
		var hits atomic.Int32
		mc := newMemCache()
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			_, _ = w.Write([]byte(`{"date":"` + r.URL.Query().Get("date") + `","title":"Horsehead"}`))
		}, WithCache(mc), WithRand(func(n int64) int64 { return 100 }))

		first := c.APOD(context.Background(), true)
		second := c.APOD(context.Background(), true)

		require.Equal(t, int32(1), hits.Load())
		assert.Equal(t, first, second)
		assert.Contains(t, mc.items, cache.APODKey(first.Date))
	})

	t.Run("fallback is never cached", func(t *testing.T) {
		mc := newMemCache()
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}, WithCache(mc))

		c.APOD(context.Background(), false)
		assert.Empty(t, mc.items)
	})
}

func TestClient_RecentCMEs(t *testing.T) {
	t.Run("last seven days", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/DONKI/CME", r.URL.Path)
			assert.Equal(t, "2024-05-04", r.URL.Query().Get("startDate"))
			assert.Equal(t, "2024-05-11", r.URL.Query().Get("endDate"))
			_, _ = w.Write([]byte(`[{"activityID":"2024-05-10T06:36:00-CME-001","startTime":"2024-05-10T06:36Z","note":"fast","instruments":[{"displayName":"SOHO: LASCO/C2"}],"cmeAnalyses":[{"time21_5":"2024-05-10T09:00Z","speed":1200.5,"type":"O","isMostAccurate":true,"levelOfData":0}]}]`))
		})

		cmes := c.RecentCMEs(context.Background())
		require.Len(t, cmes, 1)
		assert.Equal(t, "2024-05-10T06:36:00-CME-001", cmes[0].ActivityID)
		assert.Equal(t, "SOHO: LASCO/C2", cmes[0].Instruments[0].DisplayName)
		assert.InDelta(t, 1200.5, cmes[0].Analyses[0].Speed, 0.001)
	})

	t.Run("empty body yields empty feed", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`null`))
		})
		cmes := c.RecentCMEs(context.Background())
		assert.NotNil(t, cmes)
		assert.Empty(t, cmes)
	})

	t.Run("rate limited yields empty feed", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
		cmes := c.RecentCMEs(context.Background())
		assert.NotNil(t, cmes)
		assert.Empty(t, cmes)
	})
}
