// Package config loads application configuration from environment variables
// and the festival file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// ErrMissingEnv is wrapped by Load when a required variable is unset.
var ErrMissingEnv = errors.New("missing required env var")

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
	Env  string // application environment (dev, prod)
	Port string // HTTP port to listen on

	FilmsPath    string // catalog JSON file
	SchedulePath string // schedule JSON file
	AliasesPath  string // optional schedule title -> catalog title table
	FestivalPath string // festival.yaml

	DB DBConfig // MySQL, used only when DB.Host is set

	JWTSecret         string // secret used to sign admin tokens
	AdminUsername     string // admin login name
	AdminPasswordHash string // bcrypt hash of the admin password
	AccessTTLMin      int    // access token lifetime in minutes

	WatchlistTTL time.Duration // lifetime of a watchlist after its last write
	AMQPURL      string        // RabbitMQ url; empty disables events

	LogLevel  string
	LogFormat string
}

// DBConfig carries MySQL connection parameters.
type DBConfig struct {
	User string
	Pass string
	Host string
	Port string
	Name string
}

// Enabled reports whether a MySQL host was configured.
func (d DBConfig) Enabled() bool { return d.Host != "" }

// Load reads configuration values from environment variables.  Only
// JWT_SECRET is required; everything else has a default.
func Load() (Config, error) {
	cfg := Config{
		Env:  envStr("APP_ENV", "dev"),
		Port: envStr("APP_PORT", "8080"),

		FilmsPath:    envStr("DATA_FILMS_PATH", "data/films.json"),
		SchedulePath: envStr("DATA_SCHEDULE_PATH", "data/schedule_data.json"),
		AliasesPath:  envStr("DATA_ALIASES_PATH", "data/aliases.json"),
		FestivalPath: envStr("FESTIVAL_CONFIG_PATH", "festival.yaml"),

		DB: DBConfig{
			User: envStr("DB_USER", "root"),
			Pass: os.Getenv("DB_PASS"),
			Host: os.Getenv("DB_HOST"),
			Port: envStr("DB_PORT", "3306"),
			Name: envStr("DB_NAME", "festival"),
		},

		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminUsername:     envStr("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AccessTTLMin:      envInt("ACCESS_TOKEN_TTL_MIN", 60),

		WatchlistTTL: envDur("WATCHLIST_TTL", 90*24*time.Hour),
		AMQPURL:      firstEnv("AMQP_URL", "RABBITMQ_URL"),

		LogLevel:  envStr("LOG_LEVEL", "info"),
		LogFormat: envStr("LOG_FORMAT", "json"),
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("%w: JWT_SECRET", ErrMissingEnv)
	}
	if cfg.AccessTTLMin < 1 {
		cfg.AccessTTLMin = 60
	}
	if cfg.WatchlistTTL <= 0 {
		cfg.WatchlistTTL = 90 * 24 * time.Hour
	}
	return cfg, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
