package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Typesense TypesenseConfig
	Analysis  AnalysisConfig
	OTEL      OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int    `validate:"min=1,max=65535"`
	Env  string `validate:"required"`
	// AllowedOrigins is a comma separated CORS origin list, empty for any
	AllowedOrigins string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `validate:"required"`
	Port     int    `validate:"min=1,max=65535"`
	User     string `validate:"required"`
	Password string
	Database string `validate:"required"`
	SSLMode  string `validate:"oneof=disable require verify-ca verify-full prefer allow"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int `validate:"min=1,max=65535"`
	Password string
	DB       int `validate:"min=0"`
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string `validate:"omitempty,url"`
	APIKey string
}

// AnalysisConfig tunes the survey analysis engine
type AnalysisConfig struct {
	// MaxRecommendations caps the recommended ingredient list
	MaxRecommendations int `validate:"min=1,max=20"`
	// RulesPath points at a YAML rule set replacing the embedded one when set
	RulesPath string
	// CatalogCacheTTLSeconds is how long the product catalog stays in Redis
	CatalogCacheTTLSeconds int `validate:"min=0"`
	// CatalogWarmIntervalSeconds reloads the cached catalog periodically, 0 disables
	CatalogWarmIntervalSeconds int `validate:"min=0"`
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string `validate:"required"`
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
			Env:  getEnv("ENV", "production"),

			AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "health_survey"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
		},
		Analysis: AnalysisConfig{
			MaxRecommendations:     getEnvAsInt("ANALYSIS_MAX_RECOMMENDATIONS", 5),
			RulesPath:              getEnv("ANALYSIS_RULES_PATH", ""),
			CatalogCacheTTLSeconds: getEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 600),

			CatalogWarmIntervalSeconds: getEnvAsInt("CATALOG_WARM_INTERVAL_SECONDS", 300),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "health-survey-recommendation"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints declared in the struct tags
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
