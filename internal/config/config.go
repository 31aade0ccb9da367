package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting of the API server.
// Values come from the environment (optionally primed from a .env file in main).
type Config struct {
	HTTP struct {
		Addr          string
		BaseURL       string
		AllowedOrigin string
	}
	Database struct {
		Driver       string // sqlite, mysql or postgres
		DSN          string
		MaxOpenConns int
		MaxIdleConns int
	}
	Upload struct {
		Dir           string
		MaxImageBytes int64
		MaxVideoBytes int64
	}
	Auth struct {
		Secret string
		TTL    time.Duration
	}
	Admin struct {
		Name     string
		Email    string
		Password string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Cache struct {
		TTL time.Duration
	}
	Log struct {
		Level  string
		Format string
	}
	AI struct {
		APIKey string
		Model  string
	}
}

// DevSecret is used when SESSION_SECRET is unset. main warns about it.
const DevSecret = "travelsite-dev-secret-change-me"

func Load() *Config {
	cfg := &Config{}

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.HTTP.BaseURL = getEnv("BASE_URL", "http://localhost:8080")
	cfg.HTTP.AllowedOrigin = getEnv("CORS_ORIGIN", "http://localhost:3000")

	cfg.Database.Driver = getEnv("DB_DRIVER", "sqlite")
	cfg.Database.DSN = getEnv("DB_DSN", "data/travelsite.db")
	cfg.Database.MaxOpenConns = parseInt(getEnv("DB_MAX_OPEN_CONNS", "25"), 25)
	cfg.Database.MaxIdleConns = parseInt(getEnv("DB_MAX_IDLE_CONNS", "25"), 25)

	cfg.Upload.Dir = getEnv("UPLOAD_DIR", "./uploads")
	cfg.Upload.MaxImageBytes = parseInt64(getEnv("UPLOAD_MAX_IMAGE_BYTES", ""), 5<<20)
	cfg.Upload.MaxVideoBytes = parseInt64(getEnv("UPLOAD_MAX_VIDEO_BYTES", ""), 50<<20)

	cfg.Auth.Secret = getEnv("SESSION_SECRET", DevSecret)
	cfg.Auth.TTL = parseDuration(getEnv("SESSION_TTL", "72h"), 72*time.Hour)

	cfg.Admin.Name = getEnv("ADMIN_NAME", "Administrator")
	cfg.Admin.Email = getEnv("ADMIN_EMAIL", "")
	cfg.Admin.Password = getEnv("ADMIN_PASSWORD", "")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)
	cfg.Cache.TTL = parseDuration(getEnv("CACHE_TTL", "5m"), 5*time.Minute)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.AI.APIKey = getEnv("GEMINI_API_KEY", "")
	cfg.AI.Model = getEnv("GEMINI_MODEL", "gemini-1.5-flash")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func parseInt64(s string, def int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
