package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	S3       S3Config
	Worker   WorkerConfig
	Edamam   EdamamConfig
	Search   SearchConfig
	Session  SessionConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host            string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST" envDefault:"localhost"`
	Port            int           `env:"DB_PORT" envDefault:"5432"`
	User            string        `env:"DB_USER" envDefault:"recipefinder"`
	Password        string        `env:"DB_PASSWORD" envDefault:"secret"`
	Name            string        `env:"DB_NAME" envDefault:"recipefinder"`
	SSLMode         string        `env:"DB_SSLMODE" envDefault:"disable"`
	MaxConns        int           `env:"DB_MAX_CONNS" envDefault:"10"`
	MinConns        int           `env:"DB_MIN_CONNS" envDefault:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type S3Config struct {
	Endpoint  string        `env:"S3_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string        `env:"S3_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey string        `env:"S3_SECRET_KEY" envDefault:"minioadmin"`
	Bucket    string        `env:"S3_BUCKET" envDefault:"receipts"`
	UseSSL    bool          `env:"S3_USE_SSL" envDefault:"false"`
	URLExpiry time.Duration `env:"S3_URL_EXPIRY" envDefault:"1h"` // Время жизни presigned URL квитанции
}

type WorkerConfig struct {
	Concurrency int `env:"WORKER_CONCURRENCY" envDefault:"2"`
}

// EdamamConfig доступ к API поиска рецептов
type EdamamConfig struct {
	BaseURL        string        `env:"EDAMAM_BASE_URL" envDefault:"https://api.edamam.com"`
	AppID          string        `env:"EDAMAM_APP_ID"`
	AppKey         string        `env:"EDAMAM_APP_KEY"`
	RequestTimeout time.Duration `env:"EDAMAM_REQUEST_TIMEOUT" envDefault:"15s"`
}

// SearchConfig параметры постраничного поиска
type SearchConfig struct {
	PageSize    int           `env:"SEARCH_PAGE_SIZE" envDefault:"10"`
	SearchLimit int           `env:"SEARCH_LIMIT" envDefault:"100"` // Потолок результатов, из него считается число страниц
	SessionTTL  time.Duration `env:"SEARCH_SESSION_TTL" envDefault:"30m"`
}

// SessionConfig хранение клиентских сессий
type SessionConfig struct {
	TTL time.Duration `env:"CLIENT_SESSION_TTL" envDefault:"24h"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"` // json или console
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Search.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}

	return cfg, nil
}

// Validate проверяет параметры поиска
func (s SearchConfig) Validate() error {
	if s.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", s.PageSize)
	}
	if s.SearchLimit < 0 {
		return fmt.Errorf("search limit cannot be negative, got %d", s.SearchLimit)
	}
	return nil
}

// TotalPages возвращает фиксированное число страниц для любого запроса
func (s SearchConfig) TotalPages() int {
	return s.SearchLimit / s.PageSize
}
