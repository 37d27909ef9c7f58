// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package mock

import "context"

// PublishedMessage captures one published event for assertions.
type PublishedMessage struct {
	Subject string
	Message any
}

// MockPublisher records published audit and index messages.
type MockPublisher struct {
	AuditMessages []PublishedMessage
	IndexMessages []PublishedMessage

	AuditErr error
	IndexErr error
}

// NewMockPublisher creates an empty publisher recorder.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// Audit records an audit message.
func (p *MockPublisher) Audit(_ context.Context, subject string, message any) error {
	if p.AuditErr != nil {
		return p.AuditErr
	}
	p.AuditMessages = append(p.AuditMessages, PublishedMessage{Subject: subject, Message: message})
	return nil
}

// Index records an index message.
func (p *MockPublisher) Index(_ context.Context, subject string, message any) error {
	if p.IndexErr != nil {
		return p.IndexErr
	}
	p.IndexMessages = append(p.IndexMessages, PublishedMessage{Subject: subject, Message: message})
	return nil
}
