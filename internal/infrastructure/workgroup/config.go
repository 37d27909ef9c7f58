// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package workgroup

import (
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the workgroup service client
type Config struct {
	// BaseURL is the workgroup API base URL
	BaseURL string

	// CertFile is the path to the client certificate for mutual TLS
	CertFile string

	// KeyFile is the path to the client certificate key
	KeyFile string

	// Stem is the workgroup namespace this deployment manages (e.g. "research-computing")
	Stem string

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
		BaseURL:     "https://workgroupsvc.stanford.edu/workgroups/2.0",
		Timeout:     30 * time.Second,
		MaxAttempts: 4,
		RetryDelay:  1 * time.Second,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()

	if baseURL := os.Getenv("WORKGROUP_BASE_URL"); baseURL != "" {
		config.BaseURL = baseURL
	}

	if certFile := os.Getenv("WORKGROUP_CERT_FILE"); certFile != "" {
		config.CertFile = certFile
	}

	if keyFile := os.Getenv("WORKGROUP_KEY_FILE"); keyFile != "" {
		config.KeyFile = keyFile
	}

	if stem := os.Getenv("WORKGROUP_STEM"); stem != "" {
		config.Stem = stem
	}

	if timeoutStr := os.Getenv("WORKGROUP_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.Timeout = timeout
		}
	}

	if attemptsStr := os.Getenv("WORKGROUP_MAX_ATTEMPTS"); attemptsStr != "" {
		if attempts, err := strconv.Atoi(attemptsStr); err == nil {
			config.MaxAttempts = attempts
		}
	}

	return config
}
