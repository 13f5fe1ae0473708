package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	REQUEST_TIMEOUT=10s
//	RATE_LIMIT_PER_MINUTE=60
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=postgres
//	POSTGRES_PASSWORD=postgres
//	POSTGRES_DB=orderpulse
//	POSTGRES_SSLMODE=disable
//	CACHE_TTL=60s
//	CACHE_SIZE=1024
//	KAFKA_BROKERS=localhost:9092
//	KAFKA_TOPIC=orders
//	KAFKA_GROUP_ID=orderpulse
//	SEED_DIR=./data/mock
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Cache    CacheConfig    // Analytics result cache
	Kafka    KafkaConfig    // Order import stream
	Seed     SeedConfig     // Mock data seeding
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        // The TCP port the HTTP server will listen on (e.g., "8080")
	RequestTimeout     time.Duration // Per-request context deadline applied by the router
	RateLimitPerMinute int           // Requests allowed per client IP per minute
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// CacheConfig controls the analytics result cache.
type CacheConfig struct {
	TTL  time.Duration // Lifetime of a computed result
	Size int           // Maximum number of cached results
}

// KafkaConfig configures the order import consumer (--mode=consume).
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// SeedConfig configures the mock data seeder (--mode=seed).
type SeedConfig struct {
	Dir string // Directory holding restaurants.json and orders.json
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "orderpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("CACHE_TTL", "60s")
	viper.SetDefault("CACHE_SIZE", 1024)

	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("KAFKA_TOPIC", "orders")
	viper.SetDefault("KAFKA_GROUP_ID", "orderpulse")

	viper.SetDefault("SEED_DIR", "./data/mock")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RequestTimeout:     viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Cache: CacheConfig{
			TTL:  viper.GetDuration("CACHE_TTL"),
			Size: viper.GetInt("CACHE_SIZE"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(viper.GetString("KAFKA_BROKERS")),
			Topic:   viper.GetString("KAFKA_TOPIC"),
			GroupID: viper.GetString("KAFKA_GROUP_ID"),
		},
		Seed: SeedConfig{
			Dir: viper.GetString("SEED_DIR"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the PostgreSQL connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// splitList turns "a:1, b:2" into ["a:1", "b:2"], dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if AppConfig.Cache.TTL <= 0 {
		missing = append(missing, "CACHE_TTL")
	}
	if AppConfig.Cache.Size <= 0 {
		missing = append(missing, "CACHE_SIZE")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid required environment variables: %v\n", missing)
	}
}
