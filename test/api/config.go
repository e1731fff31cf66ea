/*
Copyright 2026 the ServeRest API Test Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type TestConfig struct {
	// BaseURL is the remote API root. When empty the suites run against
	// the in-process fake.
	BaseURL           string
	RequestTimeout    time.Duration
	TestTimeout       time.Duration
	RequestsPerSecond float64
	Seed              uint64
	ValidateResponses bool
	SkipCleanup       bool
	DebugLogging      bool
	LogRequests       bool
	LogResponses      bool
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if a configured value is unusable.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		BaseURL:           os.Getenv("API_BASE_URL"),
		RequestTimeout:    getDurationWithDefault("REQUEST_TIMEOUT", 0),
		TestTimeout:       getDurationWithDefault("TEST_TIMEOUT", 30*time.Second),
		RequestsPerSecond: getFloatWithDefault("REQUESTS_PER_SECOND", 0),
		Seed:              getUintWithDefault("FAKER_SEED", 0),
		ValidateResponses: getBoolWithDefault("VALIDATE_RESPONSES", true),
		SkipCleanup:       getBoolWithDefault("SKIP_CLEANUP", false),
		DebugLogging:      getBoolWithDefault("DEBUG_LOGGING", false),
		LogRequests:       getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:      getBoolWithDefault("LOG_RESPONSES", false),
	}

	if err := validateBaseURL(config.BaseURL); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultTestConfig returns the configuration used when nothing is set in the
// environment, pointed at baseURL.
func DefaultTestConfig(baseURL string) *TestConfig {
	return &TestConfig{
		BaseURL:           baseURL,
		TestTimeout:       30 * time.Second,
		ValidateResponses: true,
	}
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getFloatWithDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil || floatValue < 0 {
		return defaultValue
	}

	return floatValue
}

func getUintWithDefault(key string, defaultValue uint64) uint64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	uintValue, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return uintValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../../test/.env", // From test/api/suites directory
		"../../test/.env",    // From test/api directory
		"test/.env",          // From the repository root
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Load never overrides variables already present in the environment.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}

// validateBaseURL checks that a configured base URL is absolute http(s).
func validateBaseURL(baseURL string) error {
	if baseURL == "" {
		return nil
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("%w: API_BASE_URL: %w", ErrInvalidConfig, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: API_BASE_URL must be an absolute http(s) URL, got %q", ErrInvalidConfig, baseURL)
	}

	return nil
}
