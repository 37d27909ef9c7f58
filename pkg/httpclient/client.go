// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

// Package httpclient provides a retrying HTTP client shared by the remote
// service adapters. Transient server errors are retried with exponential
// backoff up to a fixed attempt ceiling; everything else surfaces once.
package httpclient

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"time"
)

// RoundTripper interface for request middleware
type RoundTripper interface {
	RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error)
}

// Client represents a generic HTTP client with retry logic and middleware support
type Client struct {
	config        Config
	httpClient    *http.Client
	roundTrippers []RoundTripper
}

// Request represents an HTTP request configuration
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    io.Reader
}

// Response represents an HTTP response
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// RetryableError represents an HTTP error response carrying its status code
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return e.Message
}

// Do executes an HTTP request with retry logic. Attempts are numbered from 1;
// the sleep before attempt n is RetryDelay * 2^(n-1), capped at MaxDelay.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	var lastErr error

	maxAttempts := c.config.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.backoffDelay(attempt)

			slog.DebugContext(ctx, "retrying request",
				"attempt", attempt,
				"max_attempts", maxAttempts,
				"retry_delay_ms", delay.Milliseconds(),
			)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		response, err := c.doRequest(ctx, req)
		if err == nil {
			return response, nil
		}

		lastErr = err

		// Don't retry on certain errors
		if !c.shouldRetry(err) {
			break
		}
	}

	slog.ErrorContext(ctx, "request failed", "error", lastErr)

	if c.shouldRetry(lastErr) {
		// The error was transient and the attempt ceiling was reached.
		return nil, fmt.Errorf("retries exhausted after %d attempts: %w", maxAttempts, lastErr)
	}

	return nil, lastErr
}

// backoffDelay computes the sleep before the given attempt (attempt >= 2),
// with 25% random jitter to prevent thundering herd.
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.config.RetryDelay
	if c.config.RetryBackoff {
		for i := 1; i < attempt && delay < c.config.MaxDelay/2; i++ {
			delay *= 2
		}
		if delay > c.config.MaxDelay {
			delay = c.config.MaxDelay
		}

		maxJitter := int64(delay / 4)
		if maxJitter > 0 {
			jitterBig, err := rand.Int(rand.Reader, big.NewInt(maxJitter))
			if err == nil {
				delay = delay + time.Duration(jitterBig.Int64())
			}
		}
	}
	return delay
}

// doRequest performs a single HTTP request with RoundTripper middleware
func (c *Client) doRequest(ctx context.Context, reqConfig Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, reqConfig.Method, reqConfig.URL, reqConfig.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set default headers
	httpReq.Header.Set("Accept", "application/json")

	// Set custom headers
	for key, value := range reqConfig.Headers {
		if strings.EqualFold(key, "Host") {
			httpReq.Host = value
			continue
		}
		httpReq.Header.Set(key, value)
	}

	resp, err := c.executeRoundTripperChain(httpReq, 0)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	if resp.StatusCode >= http.StatusBadRequest {
		err := &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
		return response, err
	}

	return response, nil
}

// shouldRetry determines if a request should be retried based on the error
func (c *Client) shouldRetry(err error) bool {
	if err == nil {
		return false
	}

	if retryableErr, ok := err.(*RetryableError); ok {
		// Retry on server errors and rate limiting
		return retryableErr.StatusCode >= http.StatusInternalServerError || retryableErr.StatusCode == http.StatusTooManyRequests
	}

	// Retry on network-related errors
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection") ||
		strings.Contains(errStr, "network")
}

// Request performs an HTTP request with the specified verb
func (c *Client) Request(ctx context.Context, verb, url string, body io.Reader, headers map[string]string) (*Response, error) {
	req := Request{
		Method:  verb,
		URL:     url,
		Headers: headers,
		Body:    body,
	}
	return c.Do(ctx, req)
}

// executeRoundTripperChain executes the RoundTripper middleware chain
func (c *Client) executeRoundTripperChain(req *http.Request, index int) (*http.Response, error) {
	if index >= len(c.roundTrippers) {
		// Base case: execute the actual HTTP request
		return c.httpClient.Do(req)
	}

	next := func(req *http.Request) (*http.Response, error) {
		return c.executeRoundTripperChain(req, index+1)
	}

	return c.roundTrippers[index].RoundTrip(req, next)
}

// AddRoundTripper adds a middleware RoundTripper to the client.
// This method is not safe for concurrent use and should only be called
// during client initialization before making any requests.
func (c *Client) AddRoundTripper(rt RoundTripper) {
	c.roundTrippers = append(c.roundTrippers, rt)
}

// NewClient creates a new HTTP client with the given configuration
func NewClient(config Config) *Client {
	// Set sensible default for MaxDelay if not configured
	if config.MaxDelay == 0 {
		config.MaxDelay = 30 * time.Second
	}

	transport := config.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		config:        config,
		roundTrippers: make([]RoundTripper, 0),
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
	}
}
