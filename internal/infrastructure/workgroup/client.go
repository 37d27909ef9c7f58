// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

// Package workgroup adapts the Stanford Workgroup API to the domain ports,
// exposing workgroups as access-group rosters keyed by institutional id.
package workgroup

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
	"github.com/stanford-rc/identity-sync-service/pkg/httpclient"
)

// Client handles all workgroup API operations. The production API
// authenticates callers with mutual TLS.
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

// NewClient creates a new workgroup client with the given configuration
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errs.NewValidation("workgroup base URL is required")
	}

	httpConfig := httpclient.Config{
		Timeout:      cfg.Timeout,
		MaxAttempts:  cfg.MaxAttempts,
		RetryDelay:   cfg.RetryDelay,
		RetryBackoff: true,
	}

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, errs.NewValidation("failed to load workgroup client certificate", err)
		}
		httpConfig.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			},
		}
	} else {
		// Plain transport only makes sense against a local test server.
		slog.Warn("workgroup client has no client certificate, mutual TLS is disabled")
	}

	return &Client{
		config:     cfg,
		httpClient: httpclient.NewClient(httpConfig),
	}, nil
}

// qualify joins a stem and a workgroup name into the fully qualified form
func qualify(stem, name string) string {
	return stem + ":" + name
}

// makeRequest centralizes API calls and error mapping
func (c *Client) makeRequest(ctx context.Context, method, path string, result any) error {
	resp, err := c.httpClient.Request(ctx, method, c.config.BaseURL+path, nil, nil)
	if err != nil {
		return MapHTTPError(ctx, err)
	}

	if result != nil {
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return errs.NewUnexpected("failed to parse workgroup response", err)
		}
	}
	return nil
}

// Fetch retrieves a workgroup document by stem and name
func (c *Client) Fetch(ctx context.Context, stem, name string) (*WorkgroupObject, error) {
	var group WorkgroupObject
	path := "/" + url.PathEscape(qualify(stem, name))
	if err := c.makeRequest(ctx, http.MethodGet, path, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// AddMember adds a user to a workgroup. The API answers 409 when the user
// is already a member.
func (c *Client) AddMember(ctx context.Context, stem, name, uid string) error {
	path := fmt.Sprintf("/%s/members/%s?type=USER", url.PathEscape(qualify(stem, name)), url.PathEscape(uid))
	return c.makeRequest(ctx, http.MethodPut, path, nil)
}

// RemoveMember removes a user from a workgroup. The API answers 404 when the
// user is not a member.
func (c *Client) RemoveMember(ctx context.Context, stem, name, uid string) error {
	path := fmt.Sprintf("/%s/members/%s?type=USER", url.PathEscape(qualify(stem, name)), url.PathEscape(uid))
	return c.makeRequest(ctx, http.MethodDelete, path, nil)
}

// Search lists the workgroup names under a stem, stripped of their stem prefix
func (c *Client) Search(ctx context.Context, stem string) ([]string, error) {
	var results SearchResultsObject
	path := "/search/" + url.PathEscape(stem+"*")
	if err := c.makeRequest(ctx, http.MethodGet, path, &results); err != nil {
		return nil, errs.NewListing(fmt.Sprintf("failed to search workgroups under %q", stem), err)
	}

	names := make([]string, 0, len(results.Results))
	for _, entry := range results.Results {
		// Entries come back fully qualified as "stem:name".
		if _, name, found := strings.Cut(entry.Name, ":"); found {
			names = append(names, name)
			continue
		}
		names = append(names, entry.Name)
	}

	slog.DebugContext(ctx, "searched workgroups",
		"stem", stem,
		"count", len(names),
	)
	return names, nil
}

// IsReady checks if the workgroup API is reachable with the configured identity
func (c *Client) IsReady(ctx context.Context) error {
	if _, err := c.Search(ctx, c.config.Stem); err != nil {
		return fmt.Errorf("workgroup API unreachable: %w", err)
	}
	return nil
}
