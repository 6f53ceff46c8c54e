package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the catalog importer
type Config struct {
	// Catalog API
	ShopDomain  string
	AccessToken string
	APIVersion  string

	// Import pacing
	DefaultDelay time.Duration
	MaxRetries   int
	RateLimit    int // requests per second against the catalog API

	// Variant defaults
	DefaultWeight          float64
	DefaultWeightUnit      string
	DefaultInventoryPolicy string
	DefaultQuantity        int
	DefaultStatus          string

	Environment string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		ShopDomain:  getEnv("SHOPIFY_SHOP_DOMAIN", ""),
		AccessToken: getEnv("SHOPIFY_ACCESS_TOKEN", ""),
		APIVersion:  getEnv("SHOPIFY_API_VERSION", "2024-01"),

		DefaultDelay: getEnvAsDuration("DEFAULT_DELAY", 1*time.Second),
		MaxRetries:   getEnvAsInt("MAX_RETRIES", 3),
		RateLimit:    getEnvAsInt("RATE_LIMIT", 2),

		DefaultWeight:          getEnvAsFloat("DEFAULT_WEIGHT", 0.5),
		DefaultWeightUnit:      getEnv("DEFAULT_WEIGHT_UNIT", "kg"),
		DefaultInventoryPolicy: getEnv("DEFAULT_INVENTORY_POLICY", "deny"),
		DefaultQuantity:        getEnvAsInt("DEFAULT_QUANTITY", 1),
		DefaultStatus:          getEnv("DEFAULT_STATUS", "draft"),

		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

// Validate checks that the settings required for API access are present.
// Dry runs never touch the API and skip this check.
func (c *Config) Validate() error {
	var missing []string
	if c.ShopDomain == "" {
		missing = append(missing, "SHOPIFY_SHOP_DOMAIN")
	}
	if c.AccessToken == "" {
		missing = append(missing, "SHOPIFY_ACCESS_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ParseFileList parses a space-separated file list (the CHANGED_FILES format)
func ParseFileList(fileString string) []string {
	return strings.Fields(fileString)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
