package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds client configuration
type Config struct {
	APIBaseURL      string
	RequestTimeout  time.Duration
	CredentialsFile string
	RateLimitRPS    float64
	Environment     string // development, staging, production
}

// Load loads configuration from environment variables. Callers are expected
// to run Validate so they can report failures through their own error path.
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:3001"),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 10*time.Second),
		CredentialsFile: getEnv("CREDENTIALS_FILE", defaultCredentialsFile()),
		RateLimitRPS:    getFloat("RATE_LIMIT_RPS", 0),
		Environment:     getEnv("ENVIRONMENT", "development"),
	}
}

// Validate checks configuration for security and correctness
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL must not be empty")
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")

	if c.IsProduction() && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("API_BASE_URL must use HTTPS in production (got %s)", c.APIBaseURL)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive (got %s)", c.RequestTimeout)
	}

	if c.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must not be negative (got %v)", c.RateLimitRPS)
	}

	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev" || c.Environment == ""
}

// defaultCredentialsFile places the token file under the user config
// directory, falling back to the working directory when it is unknown
func defaultCredentialsFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".shopfront-credentials.json"
	}
	return filepath.Join(dir, "shopfront", "credentials.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s value %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func getFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Invalid %s value %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return f
}
