package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestConfig_IsProduction(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"production", "production", true},
		{"prod", "prod", true},
		{"development", "development", false},
		{"dev", "dev", false},
		{"staging", "staging", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			if got := cfg.IsProduction(); got != tt.expected {
				t.Errorf("IsProduction() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		expected    bool
	}{
		{"development", "development", true},
		{"dev", "dev", true},
		{"empty", "", true},
		{"production", "production", false},
		{"prod", "prod", false},
		{"staging", "staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Environment: tt.environment}
			if got := cfg.IsDevelopment(); got != tt.expected {
				t.Errorf("IsDevelopment() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name          string
		cfg           Config
		wantError     bool
		errorContains string
	}{
		{
			name: "valid_development",
			cfg: Config{
				APIBaseURL:     "http://localhost:3001",
				RequestTimeout: 10 * time.Second,
				Environment:    "development",
			},
		},
		{
			name: "valid_production_https",
			cfg: Config{
				APIBaseURL:     "https://api.shop.example.com",
				RequestTimeout: 10 * time.Second,
				Environment:    "production",
			},
		},
		{
			name: "production_requires_https",
			cfg: Config{
				APIBaseURL:     "http://api.shop.example.com",
				RequestTimeout: 10 * time.Second,
				Environment:    "production",
			},
			wantError:     true,
			errorContains: "must use HTTPS",
		},
		{
			name: "empty_base_url",
			cfg: Config{
				RequestTimeout: 10 * time.Second,
			},
			wantError:     true,
			errorContains: "API_BASE_URL",
		},
		{
			name: "zero_timeout",
			cfg: Config{
				APIBaseURL: "http://localhost:3001",
			},
			wantError:     true,
			errorContains: "REQUEST_TIMEOUT",
		},
		{
			name: "negative_rate_limit",
			cfg: Config{
				APIBaseURL:     "http://localhost:3001",
				RequestTimeout: 10 * time.Second,
				RateLimitRPS:   -1,
			},
			wantError:     true,
			errorContains: "RATE_LIMIT_RPS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()

			if tt.wantError {
				if err == nil {
					t.Error("Expected error, got nil")
				} else if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("Expected error containing %q, got %q", tt.errorContains, err.Error())
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
			}
		})
	}
}

func TestConfig_Validate_TrimsTrailingSlash(t *testing.T) {
	cfg := &Config{
		APIBaseURL:     "http://localhost:3001/",
		RequestTimeout: 10 * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.APIBaseURL != "http://localhost:3001" {
		t.Errorf("Expected trailing slash trimmed, got %q", cfg.APIBaseURL)
	}
}

func TestLoad_LeavesValidationToCaller(t *testing.T) {
	// Load must hand back an invalid config instead of terminating, so the
	// CLI can report the failure through its own error path.
	os.Setenv("API_BASE_URL", "http://api.shop.example.com")
	os.Setenv("ENVIRONMENT", "production")
	defer os.Unsetenv("API_BASE_URL")
	defer os.Unsetenv("ENVIRONMENT")

	cfg := Load()
	if cfg == nil {
		t.Fatal("Expected a config, got nil")
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error, got nil")
	}
	if !strings.Contains(err.Error(), "must use HTTPS") {
		t.Errorf("Expected HTTPS validation error, got %q", err.Error())
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{"env_set", "TEST_KEY", "default", "custom", "custom"},
		{"env_not_set", "TEST_KEY_NOT_SET", "default", "", "default"},
		{"empty_default", "TEST_KEY_EMPTY", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Set environment variable if provided
			if tt.envValue != "" {
				os.Setenv(tt.key, tt.envValue)
				defer os.Unsetenv(tt.key)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.expected {
				t.Errorf("getEnv() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"not_set", "", 10 * time.Second},
		{"valid", "30s", 30 * time.Second},
		{"invalid_falls_back", "not-a-duration", 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv("TEST_TIMEOUT", tt.envValue)
				defer os.Unsetenv("TEST_TIMEOUT")
			}

			got := getDuration("TEST_TIMEOUT", 10*time.Second)
			if got != tt.expected {
				t.Errorf("getDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetFloat(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected float64
	}{
		{"not_set", "", 5},
		{"valid", "2.5", 2.5},
		{"invalid_falls_back", "abc", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				os.Setenv("TEST_RPS", tt.envValue)
				defer os.Unsetenv("TEST_RPS")
			}

			got := getFloat("TEST_RPS", 5)
			if got != tt.expected {
				t.Errorf("getFloat() = %v, want %v", got, tt.expected)
			}
		})
	}
}
