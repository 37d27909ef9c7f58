// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

// Package nats provides the NATS messaging client used to publish sync
// reports and membership snapshots.
package nats

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/stanford-rc/identity-sync-service/pkg/constants"
	"github.com/stanford-rc/identity-sync-service/pkg/errors"
)

// Config holds the configuration for the NATS client
type Config struct {
	// URL is the NATS server URL
	URL string

	// Timeout is the connection timeout
	Timeout time.Duration

	// MaxReconnect is the maximum number of reconnect attempts
	MaxReconnect int

	// ReconnectWait is the wait time between reconnect attempts
	ReconnectWait time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		URL:           nats.DefaultURL,
		Timeout:       10 * time.Second,
		MaxReconnect:  3,
		ReconnectWait: 2 * time.Second,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()

	if url := os.Getenv("NATS_URL"); url != "" {
		config.URL = url
	}

	if timeoutStr := os.Getenv("NATS_TIMEOUT"); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.Timeout = timeout
		}
	}

	return config
}

// NATSClient wraps the NATS connection
type NATSClient struct {
	conn   *nats.Conn
	config Config
}

// Close gracefully closes the NATS connection
func (c *NATSClient) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}

// IsReady checks if the NATS client is ready
func (c *NATSClient) IsReady(ctx context.Context) error {
	if c.conn == nil {
		slog.ErrorContext(ctx, "NATS client is not initialized or not connected")
		return errors.NewServiceUnavailable("NATS client is not initialized or not connected")
	}
	if !c.conn.IsConnected() || c.conn.IsDraining() {
		slog.ErrorContext(ctx, "NATS client is not ready",
			"connected", c.conn.IsConnected(),
			"draining", c.conn.IsDraining(),
		)
		return errors.NewServiceUnavailable("NATS client is not ready, connection is not established or is draining")
	}
	slog.DebugContext(ctx, "NATS client is ready", "url", c.conn.ConnectedUrl())
	return nil
}

// NewClient creates a new NATS client with the given configuration
func NewClient(ctx context.Context, config Config) (*NATSClient, error) {
	slog.InfoContext(ctx, "creating NATS client",
		"url", config.URL,
		"timeout", config.Timeout,
	)

	if config.URL == "" {
		return nil, errors.NewUnexpected("NATS URL is required")
	}

	opts := []nats.Option{
		nats.Name(constants.ServiceName),
		nats.Timeout(config.Timeout),
		nats.MaxReconnects(config.MaxReconnect),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.WarnContext(ctx, "NATS disconnected",
				"error", err,
				"url", nc.ConnectedUrl(),
				"status", nc.Status(),
			)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed",
				"url", nc.ConnectedUrl(),
				"status", nc.Status(),
			)
		}),
	}

	conn, err := nats.Connect(config.URL, opts...)
	if err != nil {
		return nil, errors.NewServiceUnavailable("failed to connect to NATS", err)
	}

	slog.InfoContext(ctx, "NATS client created successfully",
		"connected_url", conn.ConnectedUrl(),
		"status", conn.Status(),
	)

	return &NATSClient{
		conn:   conn,
		config: config,
	}, nil
}
