package service

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/user/moviebox/internal/config"
	"golang.org/x/sync/singleflight"
)

// ErrUpstreamFailed 上游返回非 200 且不可重试，或重试额度耗尽
var ErrUpstreamFailed = errors.New("Failed to fetch movies")

// 可重试的上游状态码
var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

const catalogCacheKey = "catalog:movies"

// CatalogService 第三方影片目录客户端
type CatalogService struct {
	cfg        *config.Config
	httpClient *http.Client
	cache      *cache.Cache
	group      singleflight.Group

	// 退避基数，测试时可调小
	backoffBase time.Duration
}

// NewCatalogService 创建目录客户端
func NewCatalogService(cfg *config.Config) *CatalogService {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.CatalogInsecureTLS {
		// 兼容旧部署：显式配置后才跳过上游证书校验
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		log.Println("【警告】已关闭影片目录接口的 TLS 证书校验")
	}

	return &CatalogService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.CatalogTimeout,
			Transport: transport,
		},
		cache:       cache.New(cfg.CatalogCacheTTL, 10*time.Minute),
		backoffBase: time.Second,
	}
}

// FetchMovies 拉取上游影片列表，原样返回响应体
// 命中缓存直接返回；并发未命中用 singleflight 合并为一次上游请求
func (s *CatalogService) FetchMovies() ([]byte, error) {
	if body, ok := s.cache.Get(catalogCacheKey); ok {
		return body.([]byte), nil
	}

	val, err, _ := s.group.Do(catalogCacheKey, func() (interface{}, error) {
		body, err := s.fetchWithRetry()
		if err != nil {
			return nil, err
		}
		s.cache.Set(catalogCacheKey, body, s.cfg.CatalogCacheTTL)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return val.([]byte), nil
}

// fetchWithRetry 带重试地请求上游
// 仅对 {429,500,502,503,504} 和传输层错误重试，最多 CatalogRetries 次，
// 指数退避（1s、2s、4s）
func (s *CatalogService) fetchWithRetry() ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= s.cfg.CatalogRetries; attempt++ {
		if attempt > 0 {
			sleep := s.backoffBase * (1 << (attempt - 1))
			log.Printf("[目录] 第 %d 次重试，等待 %v: %v", attempt, sleep, lastErr)
			time.Sleep(sleep)
		}

		body, retryable, err := s.fetchOnce()
		if err == nil {
			return body, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}

	return nil, lastErr
}

// fetchOnce 单次上游请求，返回响应体与该错误是否可重试
func (s *CatalogService) fetchOnce() ([]byte, bool, error) {
	req, err := http.NewRequest(http.MethodGet, s.cfg.MovieListURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("创建请求失败: %w", err)
	}
	req.SetBasicAuth(s.cfg.MovieAPIUsername, s.cfg.MovieAPIPassword)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		// 传输层错误视为瞬时故障
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, retryableStatus[resp.StatusCode], ErrUpstreamFailed
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("读取响应失败: %w", err)
	}

	return body, false, nil
}
