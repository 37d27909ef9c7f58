// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package qualtrics

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the Qualtrics client
type Config struct {
	// DataCenter is the Qualtrics data center identifier (e.g. "iad1")
	DataCenter string

	// BaseURL overrides the data-center derived URL, mainly for tests
	BaseURL string

	// APIToken authenticates with the X-API-TOKEN header when set
	APIToken string

	// ClientID is the OAuth2 client credentials identifier
	ClientID string

	// ClientSecret is the OAuth2 client credentials secret
	ClientSecret string

	// DirectoryID is the XM Directory holding the mailing lists (e.g. "POOL_...")
	DirectoryID string

	// PageSize is the page size requested when collecting paginated listings
	PageSize int

	// Timeout is the HTTP client timeout for requests
	Timeout time.Duration

	// MaxAttempts is the total request attempts before retries are exhausted
	MaxAttempts int

	// RetryDelay is the base delay between retry attempts
	RetryDelay time.Duration

	// ExportMaxPolls bounds the response export status poll loop.
	// Zero means poll until the export resolves.
	ExportMaxPolls int

	// ExportPollDelay is the base delay of the export poll backoff
	ExportPollDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		PageSize:        100,
		Timeout:         30 * time.Second,
		MaxAttempts:     4,
		RetryDelay:      1 * time.Second,
		ExportMaxPolls:  10,
		ExportPollDelay: 1 * time.Second,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()

	if dc := os.Getenv("QUALTRICS_DATA_CENTER"); dc != "" {
		config.DataCenter = dc
	}

	if baseURL := os.Getenv("QUALTRICS_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	if token := os.Getenv("QUALTRICS_API_TOKEN"); token != "" {
		config.APIToken = token
	}

	if clientID := os.Getenv("QUALTRICS_CLIENT_ID"); clientID != "" {
		config.ClientID = clientID
	}

	if clientSecret := os.Getenv("QUALTRICS_CLIENT_SECRET"); clientSecret != "" {
		config.ClientSecret = clientSecret
	}

	if directoryID := os.Getenv("QUALTRICS_DIRECTORY_ID"); directoryID != "" {
		config.DirectoryID = directoryID
	}

	if pageSizeStr := os.Getenv("QUALTRICS_PAGE_SIZE"); pageSizeStr != "" {
		if pageSize, err := strconv.Atoi(pageSizeStr); err == nil {
			config.PageSize = pageSize
		}
	}

	if timeoutStr := os.Getenv("QUALTRICS_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.Timeout = timeout
		}
	}

	if attemptsStr := os.Getenv("QUALTRICS_MAX_ATTEMPTS"); attemptsStr != "" {
		if attempts, err := strconv.Atoi(attemptsStr); err == nil {
			config.MaxAttempts = attempts
		}
	}

	if pollsStr := os.Getenv("QUALTRICS_EXPORT_MAX_POLLS"); pollsStr != "" {
		if polls, err := strconv.Atoi(pollsStr); err == nil {
			config.ExportMaxPolls = polls
		}
	}

	return config
}

// APIBaseURL returns the root URL of the Qualtrics API for this data center
func (c Config) APIBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("https://%s.qualtrics.com", c.DataCenter)
}
