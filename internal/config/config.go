package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Board     BoardConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	URL            string
	MaxConns       int
	MinConns       int
	MigrationsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// BoardConfig tunes the board core: soft row-count ceilings, pagination
// bounds, and the word lists the username generator draws from.
type BoardConfig struct {
	MaxPrompts  int
	MaxComments int
	PageSize    int
	MaxPageSize int
	Adjectives  []string
	Nouns       []string
}

// RateLimitConfig tunes the per-IP token bucket applied to write requests.
type RateLimitConfig struct {
	WriteRPS   float64
	WriteBurst int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	maxConns, err := getEnvInt("DB_MAX_CONNS", 20)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}

	minConns, err := getEnvInt("DB_MIN_CONNS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxPrompts, err := getEnvInt("BOARD_MAX_PROMPTS", 500)
	if err != nil {
		return nil, fmt.Errorf("invalid BOARD_MAX_PROMPTS: %w", err)
	}

	maxComments, err := getEnvInt("BOARD_MAX_COMMENTS", 500)
	if err != nil {
		return nil, fmt.Errorf("invalid BOARD_MAX_COMMENTS: %w", err)
	}

	pageSize, err := getEnvInt("BOARD_PAGE_SIZE", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid BOARD_PAGE_SIZE: %w", err)
	}

	maxPageSize, err := getEnvInt("BOARD_MAX_PAGE_SIZE", 100)
	if err != nil {
		return nil, fmt.Errorf("invalid BOARD_MAX_PAGE_SIZE: %w", err)
	}

	writeRPS, err := getEnvFloat("RATE_LIMIT_WRITE_RPS", 1)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WRITE_RPS: %w", err)
	}

	writeBurst, err := getEnvInt("RATE_LIMIT_WRITE_BURST", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_WRITE_BURST: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConns:       maxConns,
			MinConns:       minConns,
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Board: BoardConfig{
			MaxPrompts:  maxPrompts,
			MaxComments: maxComments,
			PageSize:    pageSize,
			MaxPageSize: maxPageSize,
			Adjectives:  getEnvList("BOARD_USERNAME_ADJECTIVES"),
			Nouns:       getEnvList("BOARD_USERNAME_NOUNS"),
		},
		RateLimit: RateLimitConfig{
			WriteRPS:   writeRPS,
			WriteBurst: writeBurst,
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "*"), ","),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations that cannot serve requests. Every knob has
// a usable default, so this only catches values that were set and set wrong.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Database.MinConns < 0 || c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("connection pool bounds invalid: min %d, max %d", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.Board.PageSize <= 0 {
		return fmt.Errorf("page size must be positive: %d", c.Board.PageSize)
	}
	if c.Board.MaxPageSize < c.Board.PageSize {
		return fmt.Errorf("max page size %d below page size %d", c.Board.MaxPageSize, c.Board.PageSize)
	}
	if c.RateLimit.WriteRPS <= 0 {
		return fmt.Errorf("write rate must be positive: %v", c.RateLimit.WriteRPS)
	}
	if c.RateLimit.WriteBurst <= 0 {
		return fmt.Errorf("write burst must be positive: %d", c.RateLimit.WriteBurst)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

// getEnvList splits a comma-separated env var, dropping empty segments. An
// unset var yields nil so downstream defaults apply.
func getEnvList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
