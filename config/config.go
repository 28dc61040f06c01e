package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	Gettrx  GettrxConfig
	Store   StoreConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Payment PaymentConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// GettrxConfig configures the external payment processor client.
type GettrxConfig struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

// StoreConfig selects the repository backend. The in-memory backend is the
// default and needs no external services; postgres requires a DSN.
type StoreConfig struct {
	Backend string // "mem" or "postgres"
	DSN     string
}

type RedisConfig struct {
	Addr     string
	Password string
	Enabled  bool
}

// AuthConfig selects how the caller identity is resolved. "static" attaches
// a fixed development user id to every request; "jwt" reads it from a signed
// bearer token.
type AuthConfig struct {
	Mode      string // "static" or "jwt"
	JWTSecret string
	DevUserID string
}

type PaymentConfig struct {
	// DefaultMerchantAccount is used when a user submits a payment before
	// linking a merchant account. Payments are never blocked on merchant
	// setup; the fallback is logged instead.
	DefaultMerchantAccount string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "3001"),
			Env:            getEnv("ENVIRONMENT", "development"),
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		},
		Gettrx: GettrxConfig{
			BaseURL:   getEnv("GETTRX_API_URL", "https://api-dev.gettrx.com"),
			SecretKey: getEnv("GETTRX_SECRET_KEY", ""),
			Timeout:   time.Duration(getEnvInt("GETTRX_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", "mem"),
			DSN:     getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Auth: AuthConfig{
			Mode:      getEnv("AUTH_MODE", "static"),
			JWTSecret: getEnv("AUTH_JWT_SECRET", ""),
			DevUserID: getEnv("AUTH_DEV_USER_ID", "user_123"),
		},
		Payment: PaymentConfig{
			DefaultMerchantAccount: getEnv("DEFAULT_MERCHANT_ACCOUNT", "acm_67c1039bd94d3f0001ee9801"),
		},
	}

	cfg.Redis.Enabled = cfg.Redis.Addr != ""

	switch cfg.Store.Backend {
	case "mem":
	case "postgres":
		if cfg.Store.DSN == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_BACKEND: %s", cfg.Store.Backend)
	}

	switch cfg.Auth.Mode {
	case "static":
	case "jwt":
		if cfg.Auth.JWTSecret == "" {
			return nil, fmt.Errorf("AUTH_JWT_SECRET is required for jwt auth mode")
		}
	default:
		return nil, fmt.Errorf("unsupported AUTH_MODE: %s", cfg.Auth.Mode)
	}

	return cfg, nil
}

// IsDevelopment gates error detail in 500 responses.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
