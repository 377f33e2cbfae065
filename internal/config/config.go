package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrMissingDatabaseURL is returned when no connection string is configured.
var ErrMissingDatabaseURL = errors.New("DATABASE_URL must be set")

// Config holds application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Addr            string
	StaticDir       string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL      string
	MaxConns int
}

type LogConfig struct {
	Level  string
	Format string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// env maps config keys to the environment variables that set them.
var env = map[string]string{
	"server.addr":             "TODO_ADDR",
	"server.static_dir":       "TODO_STATIC_DIR",
	"server.shutdown_timeout": "TODO_SHUTDOWN_TIMEOUT",
	"database.url":            "DATABASE_URL",
	"database.max_conns":      "DATABASE_MAX_CONNS",
	"log.level":               "LOG_LEVEL",
	"log.format":              "LOG_FORMAT",
	"rate_limit.rps":          "TODO_RATE_LIMIT_RPS",
	"rate_limit.burst":        "TODO_RATE_LIMIT_BURST",
}

// Load reads configuration from command-line args, the environment and an
// optional .env file in the working directory, in that order of precedence.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	fs := pflag.NewFlagSet("todo", pflag.ContinueOnError)
	fs.String("addr", "0.0.0.0:3000", "HTTP listen address")
	fs.String("static", "", "Directory overriding the embedded stylesheet")
	fs.String("database-url", "", "Database connection URL (postgres://... or sqlite://path)")
	fs.Int("database-max-conns", 5, "Maximum open connections to the database")
	fs.String("log-level", "info", "Log level: debug, info, warn or error")
	fs.String("log-format", "text", "Log format: text or json")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	flags := map[string]string{
		"server.addr":        "addr",
		"server.static_dir":  "static",
		"database.url":       "database-url",
		"database.max_conns": "database-max-conns",
		"log.level":          "log-level",
		"log.format":         "log-format",
	}
	for key, name := range flags {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	for key, name := range env {
		if err := v.BindEnv(key, name); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", name, err)
		}
	}

	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("rate_limit.rps", 0)
	v.SetDefault("rate_limit.burst", 20)

	cfg := &Config{
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			StaticDir:       v.GetString("server.static_dir"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("database.url"),
			MaxConns: v.GetInt("database.max_conns"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("rate_limit.rps"),
			Burst: v.GetInt("rate_limit.burst"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, ErrMissingDatabaseURL
	}
	return cfg, nil
}
