// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

// Package qualtrics adapts the Qualtrics XM Directory and survey APIs to the
// domain ports: mailing lists as contact rosters and survey responses as
// exported tables.
package qualtrics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
	"github.com/stanford-rc/identity-sync-service/pkg/httpclient"
)

// qualtricsAuthRoundTripper injects credentials into every outgoing request.
// A static API token takes the X-API-TOKEN header; OAuth2 client credentials
// take a bearer token minted and refreshed by the token source.
type qualtricsAuthRoundTripper struct {
	client *Client
}

// RoundTrip adds the authentication header before the request is sent
func (rt *qualtricsAuthRoundTripper) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	if rt.client.tokenSource != nil {
		token, err := rt.client.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to obtain Qualtrics OAuth token: %w", err)
		}
		token.SetAuthHeader(req)
		return next(req)
	}

	req.Header.Set("X-API-TOKEN", rt.client.config.APIToken)
	return next(req)
}

// Client handles all Qualtrics API operations
type Client struct {
	config      Config
	httpClient  *httpclient.Client
	tokenSource oauth2.TokenSource
}

// NewClient creates a new Qualtrics client with the given configuration
func NewClient(cfg Config) (*Client, error) {
	if cfg.DataCenter == "" && cfg.BaseURL == "" {
		return nil, errs.NewValidation("qualtrics data center is required")
	}
	if cfg.APIToken == "" && (cfg.ClientID == "" || cfg.ClientSecret == "") {
		return nil, errs.NewValidation("qualtrics credentials are required: an API token or an OAuth client id and secret")
	}

	httpConfig := httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxAttempts:  cfg.MaxAttempts,
		RetryDelay:   cfg.RetryDelay,
		RetryBackoff: true,
	}

	client := &Client{
		config:     cfg,
		httpClient: httpclient.NewClient(httpConfig),
	}

	if cfg.APIToken == "" {
		// Scope covers directory and survey management.
		oauthConfig := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.APIBaseURL() + "/oauth2/token",
			Scopes:       []string{"manage:all"},
		}
		client.tokenSource = oauthConfig.TokenSource(context.Background())
	}

	client.httpClient.AddRoundTripper(&qualtricsAuthRoundTripper{client: client})

	authMode := "oauth2"
	if cfg.APIToken != "" {
		authMode = "api_token"
	}
	slog.Info("Qualtrics client initialized",
		"data_center", cfg.DataCenter,
		"auth", authMode,
	)

	return client, nil
}

// makeRequest centralizes API calls: JSON bodies out, envelope payloads in
func (c *Client) makeRequest(ctx context.Context, method, url string, payload any, result any) error {
	var body io.Reader
	headers := map[string]string{}

	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return errs.NewUnexpected("failed to encode request payload", err)
		}
		body = bytes.NewReader(encoded)
		headers["Content-Type"] = "application/json"
	}

	resp, err := c.httpClient.Request(ctx, method, url, body, headers)
	if err != nil {
		return MapHTTPError(ctx, err)
	}

	if result != nil {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return errs.NewUnexpected("failed to parse Qualtrics response", err)
		}
	}

	return nil
}

// rawRequest fetches a URL and returns the raw body, for file downloads
func (c *Client) rawRequest(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.httpClient.Request(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, MapHTTPError(ctx, err)
	}
	return resp.Body, nil
}

// IsReady checks if the Qualtrics API is reachable with the configured credentials
func (c *Client) IsReady(ctx context.Context) error {
	var response envelope[json.RawMessage]
	err := c.makeRequest(ctx, http.MethodGet, c.config.APIBaseURL()+"/API/v3/whoami", nil, &response)
	if err != nil {
		return fmt.Errorf("qualtrics API unreachable: %w", err)
	}
	return nil
}

// CollectPages walks a paginated listing from its first page URL and returns
// the concatenated elements in page order. Page boundaries never reorder or
// drop elements. A failure on any page aborts the whole collection with a
// Listing error wrapping the page failure; no partial result is returned.
func CollectPages[T any](ctx context.Context, c *Client, firstPageURL string) ([]T, error) {
	var collected []T

	pageURL := firstPageURL
	for page := 1; pageURL != ""; page++ {
		var response envelope[pageObject[T]]
		if err := c.makeRequest(ctx, http.MethodGet, pageURL, nil, &response); err != nil {
			return nil, errs.NewListing(fmt.Sprintf("failed to collect page %d", page), err)
		}

		collected = append(collected, response.Result.Elements...)

		if response.Result.NextPage == nil || *response.Result.NextPage == "" {
			slog.DebugContext(ctx, "collected paginated listing",
				"pages", page,
				"elements", len(collected),
			)
			break
		}
		pageURL = *response.Result.NextPage
	}

	return collected, nil
}
