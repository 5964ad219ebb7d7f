package service

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/moviebox/internal/config"
)

func newTestCatalog(t *testing.T, upstream *httptest.Server, retries int) *CatalogService {
	t.Helper()
	cfg := &config.Config{
		MovieListURL:     upstream.URL,
		MovieAPIUsername: "apiuser",
		MovieAPIPassword: "apipass",
		CatalogTimeout:   2 * time.Second,
		CatalogRetries:   retries,
		CatalogCacheTTL:  time.Minute,
	}
	svc := NewCatalogService(cfg)
	// 测试里不等真实退避
	svc.backoffBase = time.Millisecond
	return svc
}

func TestCatalogFetchMovies(t *testing.T) {
	t.Run("成功时原样透传响应体并带基本认证", func(t *testing.T) {
		var gotUser, gotPass string
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUser, gotPass, _ = r.BasicAuth()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"movies":[{"title":"T"}]}`))
		}))
		defer upstream.Close()

		svc := newTestCatalog(t, upstream, 3)
		body, err := svc.FetchMovies()
		require.NoError(t, err)
		assert.JSONEq(t, `{"movies":[{"title":"T"}]}`, string(body))
		assert.Equal(t, "apiuser", gotUser)
		assert.Equal(t, "apipass", gotPass)
	})

	t.Run("瞬时故障重试后成功", func(t *testing.T) {
		var calls int32
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) <= 2 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{"ok":true}`))
		}))
		defer upstream.Close()

		svc := newTestCatalog(t, upstream, 3)
		body, err := svc.FetchMovies()
		require.NoError(t, err)
		assert.JSONEq(t, `{"ok":true}`, string(body))
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("重试额度耗尽返回错误", func(t *testing.T) {
		var calls int32
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer upstream.Close()

		svc := newTestCatalog(t, upstream, 3)
		_, err := svc.FetchMovies()
		require.Error(t, err)
		// 1 次原始请求 + 3 次重试
		assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	})

	t.Run("不可重试的状态码立即失败", func(t *testing.T) {
		var calls int32
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer upstream.Close()

		svc := newTestCatalog(t, upstream, 3)
		_, err := svc.FetchMovies()
		require.ErrorIs(t, err, ErrUpstreamFailed)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("缓存期内不再请求上游", func(t *testing.T) {
		var calls int32
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.Write([]byte(`[]`))
		}))
		defer upstream.Close()

		svc := newTestCatalog(t, upstream, 0)
		_, err := svc.FetchMovies()
		require.NoError(t, err)
		_, err = svc.FetchMovies()
		require.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})
}
