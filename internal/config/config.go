package config

import (
	"os"
	"strconv"
	"time"

	"taskhub/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	// Rate limiting
	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment, with .env support for
// local development. Missing DATABASE_URL or JWT_SECRET is fatal.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	accessTTL := 15 * time.Minute
	if v := os.Getenv("ACCESS_TOKEN_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			accessTTL = time.Duration(n) * time.Minute
		}
	}

	refreshTTL := 7 * 24 * time.Hour
	if v := os.Getenv("REFRESH_TOKEN_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			refreshTTL = time.Duration(n) * time.Hour
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 10
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			authRateLimit = n
		}
	}
	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			redisDB = n
		}
	}

	return &Config{
		AppPort:         port,
		DatabaseURL:     dbURL,
		JWTSecret:       jwtSecret,
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
		APIRateLimit:    apiRateLimit,
		APIRateWindow:   apiRateWindow,
		AuthRateLimit:   authRateLimit,
		AuthRateWindow:  authRateWindow,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         redisDB,
		LogLevel:        os.Getenv("LOG_LEVEL"),
		LogJSON:         os.Getenv("LOG_JSON") == "true",
	}
}
