package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Database    DatabaseConfig
	Redis       RedisConfig
	API         APIConfig
	AdminAPI    AdminAPIConfig
	Orders      OrdersConfig
	LogLevel    string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr           string
	Password       string
	DB             int
	RegionCacheTTL time.Duration
}

// Enabled reports whether a Redis address was configured
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// APIConfig configures the admin HTTP API served by this process
type APIConfig struct {
	KeyHash string
}

// AdminAPIConfig configures clients of the admin HTTP API
type AdminAPIConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type OrdersConfig struct {
	// SequentialOption is the option holding the sequential-numbering toggle
	SequentialOption string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REGION_CACHE_TTL", "24h")
	viper.SetDefault("ADMIN_API_TIMEOUT", "30s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	redisDB, err := strconv.Atoi(getEnvOrViper("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnvOrViper("REGION_CACHE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REGION_CACHE_TTL: %w", err)
	}
	apiTimeout, err := time.ParseDuration(getEnvOrViper("ADMIN_API_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_API_TIMEOUT: %w", err)
	}
	autoMigrate, err := strconv.ParseBool(getEnvOrViper("DB_AUTO_MIGRATE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:        getEnvOrViper("DB_HOST", "localhost"),
			Port:        getEnvOrViper("DB_PORT", "5432"),
			User:        getEnvOrViper("DB_USER", "postgres"),
			Password:    getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:      getEnvOrViper("DB_NAME", "storeadmin"),
			SSLMode:     getEnvOrViper("DB_SSLMODE", "disable"),
			AutoMigrate: autoMigrate,
		},
		Redis: RedisConfig{
			Addr:           getEnvOrViper("REDIS_ADDR", ""),
			Password:       getEnvOrViper("REDIS_PASSWORD", ""),
			DB:             redisDB,
			RegionCacheTTL: cacheTTL,
		},
		API: APIConfig{
			KeyHash: getEnvOrViper("API_KEY_HASH", ""),
		},
		AdminAPI: AdminAPIConfig{
			BaseURL: getEnvOrViper("ADMIN_API_URL", "http://localhost:8080"),
			APIKey:  getEnvOrViper("ADMIN_API_KEY", ""),
			Timeout: apiTimeout,
		},
		Orders: OrdersConfig{
			SequentialOption: getEnvOrViper("SEQUENTIAL_ORDER_OPTION", "enable_sequential"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// ValidateServer checks the settings the API server needs
func (c *Config) ValidateServer() error {
	if c.API.KeyHash == "" {
		return fmt.Errorf("API_KEY_HASH is required")
	}
	return nil
}

// ValidateClient checks the settings admin API clients need
func (c *Config) ValidateClient() error {
	if c.AdminAPI.BaseURL == "" {
		return fmt.Errorf("ADMIN_API_URL is required")
	}
	if c.AdminAPI.APIKey == "" {
		return fmt.Errorf("ADMIN_API_KEY is required")
	}
	return nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
