package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=gudang port=5432 sslmode=disable"

type Config struct {
	HTTPPort      string
	DatabaseDSN   string
	JWTSecret     string
	JWTTTLMinutes int
	AppEnv        string
	CORSOrigins   string
	CookieName    string
	AdminUsername string
	AdminPassword string
	OTLPEndpoint  string
	ServiceName   string
}

// Load membaca konfigurasi dari environment (dan .env bila ada). Konfigurasi
// yang tidak valid menghentikan proses.
func Load() *Config {
	// .env opsional, di production variabel datang dari environment
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN memakai nilai default, set koneksi Postgres sendiri untuk production.")
	}
	if !cfg.SecureCookies() {
		log.Printf("[WARN] APP_ENV=%s, cookie token dikirim tanpa flag Secure.", cfg.AppEnv)
	}

	return cfg
}

func FromEnv() (*Config, error) {
	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:   getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AppEnv:        strings.ToLower(getEnv("APP_ENV", "local")),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		CookieName:    getEnv("AUTH_COOKIE_NAME", "access_token"),
		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		OTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:   getEnv("SERVICE_NAME", "gudang-backend"),
	}

	ttl, err := strconv.Atoi(getEnv("JWT_TTL", "60"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("JWT_TTL harus bilangan bulat positif (menit)")
	}
	cfg.JWTTTLMinutes = ttl

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET belum di-set")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET minimal 32 karakter")
	}
	if (cfg.AdminUsername == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("ADMIN_USERNAME dan ADMIN_PASSWORD harus di-set bersamaan")
	}

	return cfg, nil
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}

// SecureCookies bernilai true di luar environment lokal/dev.
func (c *Config) SecureCookies() bool {
	switch c.AppEnv {
	case "local", "dev", "development", "test", "testing":
		return false
	}
	return true
}

func (c *Config) IsLocal() bool {
	return !c.SecureCookies()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
