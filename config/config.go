package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	Retailers  RetailersConfig
	Scraper    ScraperConfig
	Validation ValidationConfig
	Cache      CacheConfig
	RateLimit  RateLimitConfig
	Logging    LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RetailerConfig holds the settings for one retail source
type RetailerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
}

// RetailersConfig holds per-source settings. Field order here mirrors the
// fixed adapter priority used when merging results.
type RetailersConfig struct {
	Ferguson  RetailerConfig `mapstructure:"ferguson"`
	HomeDepot RetailerConfig `mapstructure:"homedepot"`
	Lowes     RetailerConfig `mapstructure:"lowes"`
	SupplyCom RetailerConfig `mapstructure:"supplycom"`
	BuildCom  RetailerConfig `mapstructure:"buildcom"`
}

// ScraperConfig holds the HTTP fetching settings shared by all adapters
type ScraperConfig struct {
	UserAgent         string        `mapstructure:"user_agent"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	FanOutLimit       int           `mapstructure:"fan_out_limit"`
}

// ValidationConfig holds the brand identifier patterns used to gate searches
type ValidationConfig struct {
	BrandPatterns map[string]string `mapstructure:"brand_patterns"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricescout/")

	// Environment variable settings
	v.SetEnvPrefix("PRICESCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory when one exists.
// Variables already set in the environment are never overridden.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Retailer defaults
	v.SetDefault("retailers.ferguson.enabled", true)
	v.SetDefault("retailers.ferguson.base_url", "https://www.ferguson.com")
	v.SetDefault("retailers.homedepot.enabled", true)
	v.SetDefault("retailers.homedepot.base_url", "https://www.homedepot.com")
	v.SetDefault("retailers.lowes.enabled", true)
	v.SetDefault("retailers.lowes.base_url", "https://www.lowes.com")
	v.SetDefault("retailers.supplycom.enabled", true)
	v.SetDefault("retailers.supplycom.base_url", "https://www.supply.com")
	v.SetDefault("retailers.buildcom.enabled", true)
	v.SetDefault("retailers.buildcom.base_url", "https://www.build.com")

	// Scraper defaults
	v.SetDefault("scraper.user_agent", "")
	v.SetDefault("scraper.requests_per_second", 1.0)
	v.SetDefault("scraper.timeout", "30s")
	v.SetDefault("scraper.max_retries", 3)
	v.SetDefault("scraper.fan_out_limit", 0)

	// Validation defaults: identifier patterns for the supported brands
	v.SetDefault("validation.brand_patterns", map[string]string{
		"kohler":            `^(?i)K-\d{3,6}(?:-[A-Z0-9]+)*$`,
		"moen":              `^(?i)[A-Z]{1,2}\d{3,5}(?:[A-Z]{0,4})$`,
		"delta":             `^(?i)[A-Z]?\d{3,5}(?:[-.][A-Z0-9]+)*(?:-DST)?$`,
		"american-standard": `^(?i)\d{4}\.\d{3}(?:\.\d{3})?$`,
	})

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis'")
	}

	if len(config.Validation.BrandPatterns) == 0 {
		return fmt.Errorf("at least one brand pattern is required")
	}

	enabled := []RetailerConfig{
		config.Retailers.Ferguson,
		config.Retailers.HomeDepot,
		config.Retailers.Lowes,
		config.Retailers.SupplyCom,
		config.Retailers.BuildCom,
	}
	anyEnabled := false
	for _, r := range enabled {
		if !r.Enabled {
			continue
		}
		anyEnabled = true
		if r.BaseURL == "" {
			return fmt.Errorf("enabled retailers need a base URL")
		}
	}
	if !anyEnabled {
		return fmt.Errorf("at least one retailer must be enabled")
	}

	return nil
}
