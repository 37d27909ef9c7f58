// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/stanford-rc/identity-sync-service/internal/domain/port"
	"github.com/stanford-rc/identity-sync-service/pkg/errors"
)

// messagingPublisher implements the MessagePublisher interface using NATS
type messagingPublisher struct {
	client *NATSClient
}

// Audit publishes sync reports for the audit trail consumer
func (m *messagingPublisher) Audit(ctx context.Context, subject string, message any) error {
	return m.publish(ctx, subject, message, "audit")
}

// Index publishes membership snapshots for search and discovery consumers
func (m *messagingPublisher) Index(ctx context.Context, subject string, message any) error {
	return m.publish(ctx, subject, message, "index")
}

// publish is the common method for publishing messages to NATS
func (m *messagingPublisher) publish(ctx context.Context, subject string, message any, messageType string) error {
	if err := m.client.IsReady(ctx); err != nil {
		slog.ErrorContext(ctx, "NATS client is not ready for publishing",
			"error", err,
			"subject", subject,
			"message_type", messageType,
		)
		return errors.NewServiceUnavailable("NATS client is not ready", err)
	}

	data, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal message to JSON",
			"error", err,
			"subject", subject,
			"message_type", messageType,
		)
		return errors.NewUnexpected("failed to marshal message", err)
	}

	if err := m.client.conn.Publish(subject, data); err != nil {
		slog.ErrorContext(ctx, "failed to publish message to NATS",
			"error", err,
			"subject", subject,
			"message_type", messageType,
		)
		return errors.NewServiceUnavailable("failed to publish message", err)
	}

	slog.DebugContext(ctx, "message published successfully",
		"subject", subject,
		"message_type", messageType,
		"message_size", len(data),
	)

	return nil
}

// NewMessagePublisher creates a new MessagePublisher using NATS
func NewMessagePublisher(client *NATSClient) port.MessagePublisher {
	return &messagingPublisher{
		client: client,
	}
}
