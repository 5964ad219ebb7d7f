package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Env         string
	AppSecret   string
	DatabaseURL string
	JWTExpiry   time.Duration
	Port        string

	// 第三方影片目录接口
	MovieListURL       string
	MovieAPIUsername   string
	MovieAPIPassword   string
	CatalogTimeout     time.Duration
	CatalogRetries     int
	CatalogCacheTTL    time.Duration
	CatalogInsecureTLS bool

	// 全局限流（每秒请求数，0 表示关闭）
	RateLimit int
	RateBurst int
}

// Load 加载配置
func Load() *Config {
	expiryHours, _ := strconv.Atoi(getEnv("JWT_EXPIRY_HOURS", "72"))

	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbName := getEnv("DB_NAME", "moviebox")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, dbName, dbSSL)

	appSecret := getEnv("APP_SECRET", getEnv("JWT_SECRET", "your-secret-key-change-in-production"))

	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	timeoutSec, _ := strconv.Atoi(getEnv("CATALOG_TIMEOUT_SECONDS", "10"))
	retries, _ := strconv.Atoi(getEnv("CATALOG_RETRIES", "3"))
	cacheSec, _ := strconv.Atoi(getEnv("CATALOG_CACHE_SECONDS", "30"))
	rateLimit, _ := strconv.Atoi(getEnv("RATE_LIMIT", "0"))
	rateBurst, _ := strconv.Atoi(getEnv("RATE_BURST", "10"))

	return &Config{
		Env:         getEnv("APP_ENV", "development"),
		AppSecret:   appSecret,
		DatabaseURL: dbURL,
		JWTExpiry:   time.Duration(expiryHours) * time.Hour,
		Port:        getEnv("PORT", "5005"),

		MovieListURL:     getEnv("MOVIE_LIST_URL", ""),
		MovieAPIUsername: getEnv("MOVIE_API_USERNAME", ""),
		MovieAPIPassword: getEnv("MOVIE_API_PASSWORD", ""),
		CatalogTimeout:   time.Duration(timeoutSec) * time.Second,
		CatalogRetries:   retries,
		CatalogCacheTTL:  time.Duration(cacheSec) * time.Second,
		// 历史部署关闭了上游证书校验，这里默认开启校验，需要兼容时显式置为 true
		CatalogInsecureTLS: getEnv("CATALOG_INSECURE_TLS", "false") == "true",

		RateLimit: rateLimit,
		RateBurst: rateBurst,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
