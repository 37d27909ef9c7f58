// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"net/http"
	"time"
)

// Config holds the configuration for the retrying HTTP client
type Config struct {
	// Timeout is the per-request timeout applied by the underlying http.Client
	Timeout time.Duration

	// MaxAttempts is the total number of attempts for one request, including
	// the first. Transient failures past this ceiling abort the request.
	MaxAttempts int

	// RetryDelay is the base delay used to compute the backoff before retries
	RetryDelay time.Duration

	// RetryBackoff enables exponential growth of the delay between attempts
	RetryBackoff bool

	// MaxDelay caps the computed backoff delay
	MaxDelay time.Duration

	// Transport overrides the base transport, e.g. to supply mutual-TLS
	// credentials. Nil means http.DefaultTransport.
	Transport http.RoundTripper
}
