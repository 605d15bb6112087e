package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string        `env:"DATABASE_URI"`
	DBDriver    string        `env:"DB_DRIVER"` // postgres | sqlite
	AuthSecret  string        `env:"AUTH_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL"`
	LogLevel    string        `env:"LOG_LEVEL"` // dev | prod

	// Картинки объявлений: локальный каталог или S3 (MinIO), если задан S3Endpoint
	ImageDir     string `env:"IMAGE_DIR"`
	ImageBaseURL string `env:"IMAGE_BASE_URL"`
	MaxUploadMB  int    `env:"MAX_UPLOAD_MB"`
	S3Endpoint   string `env:"S3_ENDPOINT"`
	S3AccessKey  string `env:"S3_ACCESS_KEY"`
	S3SecretKey  string `env:"S3_SECRET_KEY"`
	S3Bucket     string `env:"S3_BUCKET"`
	S3UseSSL     bool   `env:"S3_USE_SSL"`

	// Необязательные внешние сервисы: пустой адрес отключает интеграцию
	RedisAddr    string        `env:"REDIS_ADDR"`
	ItemCacheTTL time.Duration `env:"ITEM_CACHE_TTL"`
	NatsURL      string        `env:"NATS_URL"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL string `env:"-"`
	TokenFile string `env:"TOKEN_FILE"`
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "драйвер БД: postgres или sqlite")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.ImageDir, "image-dir", cfg.ImageDir, "каталог для картинок объявлений")
	flag.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "адрес Redis для кеша объявлений")
	flag.StringVar(&cfg.NatsURL, "nats", cfg.NatsURL, "URL NATS для доменных событий")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "base URL of the market server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = "dev-secret-key"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.DBDriver != "sqlite" {
		cfg.DBDriver = "postgres"
	}
	if cfg.DatabaseDSN == "" && cfg.DBDriver == "sqlite" {
		cfg.DatabaseDSN = "file:market.db?_pragma=foreign_keys(1)"
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 10
	}
	if cfg.ImageDir == "" {
		cfg.ImageDir = "media"
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = "/static"
	}
	if cfg.ItemCacheTTL <= 0 {
		cfg.ItemCacheTTL = 5 * time.Minute
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "dev"
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]*:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8080"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	if cfg.TokenFile == "" {
		home, _ := os.UserHomeDir()
		cfg.TokenFile = filepath.Join(home, ".market_token")
	}
}
