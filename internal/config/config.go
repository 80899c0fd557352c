// Package config loads the service settings from the environment.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrMissingSecret is returned when no token signing secret is configured outside development.
var ErrMissingSecret = errors.New("JWT_SECRET (or ACCESS_TOKEN_SECRET) must be set")

const devSecret = "development-secret"

// Config holds the runtime settings of the notes service.
type Config struct {
	Env         string
	Port        string
	DBDriver    string
	DatabaseDSN string
	JWTSecret   string
	RabbitMQURL string
	LogLevel    string

	// ConnectAttempts and ConnectDelay govern the startup retries against
	// the database and the broker.
	ConnectAttempts uint
	ConnectDelay    time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env file is fine, real deployments use the environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("APP_PORT", ":8000")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=notes port=5432 sslmode=disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CONNECT_ATTEMPTS", 5)
	v.SetDefault("CONNECT_DELAY", "1s")
	v.AutomaticEnv()

	// Names used by earlier deployments of the service.
	_ = v.BindEnv("APP_PORT", "APP_PORT", "PORT")
	_ = v.BindEnv("DATABASE_DSN", "DATABASE_DSN", "CONNECTION_STRING", "connectionString")
	_ = v.BindEnv("JWT_SECRET", "JWT_SECRET", "ACCESS_TOKEN_SECRET")

	cfg := &Config{
		Env:         v.GetString("APP_ENV"),
		Port:        normalizePort(v.GetString("APP_PORT")),
		DBDriver:    strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		ConnectAttempts: v.GetUint("CONNECT_ATTEMPTS"),
		ConnectDelay:    v.GetDuration("CONNECT_DELAY"),
	}

	if cfg.JWTSecret == "" {
		if cfg.Env != "development" {
			return nil, ErrMissingSecret
		}
		cfg.JWTSecret = devSecret
	}
	return cfg, nil
}

// normalizePort accepts both "8000" and ":8000".
func normalizePort(port string) string {
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}
