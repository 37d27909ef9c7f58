// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package profiles

import (
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the profile API client
type Config struct {
	// BaseURL is the profile API base URL
	BaseURL string

	// TokenURL is the OAuth2 token endpoint
	TokenURL string

	// ClientID is the OAuth2 client credentials identifier
	ClientID string

	// ClientSecret is the OAuth2 client credentials secret
	ClientSecret string

	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration

	// MaxAttempts is the total request attempts before retries are exhausted
	MaxAttempts int

	// RetryDelay is the base delay between retry attempts
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://cap.stanford.edu",
		TokenURL:    "https://authz.stanford.edu/oauth/token",
		Timeout:     30 * time.Second,
		MaxAttempts: 4,
		RetryDelay:  1 * time.Second,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()

	if baseURL := os.Getenv("PROFILE_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	if tokenURL := os.Getenv("PROFILE_TOKEN_URL"); tokenURL != "" {
		config.TokenURL = tokenURL
	}

	if clientID := os.Getenv("PROFILE_CLIENT_ID"); clientID != "" {
		config.ClientID = clientID
	}

	if clientSecret := os.Getenv("PROFILE_CLIENT_SECRET"); clientSecret != "" {
		config.ClientSecret = clientSecret
	}

	if timeoutStr := os.Getenv("PROFILE_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.Timeout = timeout
		}
	}

	if attemptsStr := os.Getenv("PROFILE_MAX_ATTEMPTS"); attemptsStr != "" {
		if attempts, err := strconv.Atoi(attemptsStr); err == nil {
			config.MaxAttempts = attempts
		}
	}

	return config
}
