package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DatabaseConfig holds connection settings for one PostgreSQL database
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Config holds the service configuration
type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	HTTPPort       string
	JaegerEndpoint string

	Database  DatabaseConfig
	Reporting DatabaseConfig

	KafkaBrokers    []string
	RedisAddr       string
	CatalogCacheTTL time.Duration
	SaleMaxAttempts int
}

// IsDevelopment reports whether the service runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads .env (if present) and the process environment
func Load() *Config {
	_ = godotenv.Load()

	db := DatabaseConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnv("DB_PORT", "5432"),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "posdb"),
		SSLMode:         getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Duration(getEnvInt("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second,
	}

	// Reporting reads from a replica when one is configured
	reporting := db
	reporting.Host = getEnv("REPORTING_DB_HOST", db.Host)
	reporting.Port = getEnv("REPORTING_DB_PORT", db.Port)
	reporting.User = getEnv("REPORTING_DB_USER", db.User)
	reporting.Password = getEnv("REPORTING_DB_PASSWORD", db.Password)
	reporting.DBName = getEnv("REPORTING_DB_NAME", db.DBName)
	reporting.MaxOpenConns = getEnvInt("REPORTING_DB_MAX_OPEN_CONNS", 5)

	return &Config{
		ServiceName:     getEnv("OTEL_SERVICE_NAME", "pos-service"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		JaegerEndpoint:  getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		Database:        db,
		Reporting:       reporting,
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "")),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		CatalogCacheTTL: getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		SaleMaxAttempts: getEnvInt("SALE_MAX_ATTEMPTS", 3),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
