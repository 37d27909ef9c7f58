// Copyright Stanford University and contributors.
// SPDX-License-Identifier: MIT

// Package profiles adapts the institutional profile API to the profile
// lookup port, condensing large profile documents into the few fields the
// sync tooling reports on.
package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/stanford-rc/identity-sync-service/internal/domain/model"
	errs "github.com/stanford-rc/identity-sync-service/pkg/errors"
	"github.com/stanford-rc/identity-sync-service/pkg/httpclient"
)

// validCommunities are the visibility levels the profile API accepts
var validCommunities = []string{"public", "stanford", "hidden", "stanford_full", "stanford_full_hidden"}

// profileAuthRoundTripper injects a bearer token minted from client credentials
type profileAuthRoundTripper struct {
	tokenSource oauth2.TokenSource
}

// RoundTrip adds the bearer token before the request is sent
func (rt *profileAuthRoundTripper) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	token, err := rt.tokenSource.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain profile API token: %w", err)
	}
	token.SetAuthHeader(req)
	return next(req)
}

// Client handles profile API lookups
type Client struct {
	config     Config
	httpClient *httpclient.Client
}

// NewClient creates a new profile client with the given configuration
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errs.NewValidation("profile API base URL is required")
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

	if cfg.ClientID != "" && cfg.ClientSecret != "" {
		oauthConfig := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		client.httpClient.AddRoundTripper(&profileAuthRoundTripper{
			tokenSource: oauthConfig.TokenSource(context.Background()),
		})
	} else {
		// Anonymous access only works against a local test server.
		slog.Warn("profile client has no OAuth credentials, requests will be unauthenticated")
	}

	return client, nil
}

// makeRequest centralizes API calls and error mapping
func (c *Client) makeRequest(ctx context.Context, requestURL string, result any) error {
	resp, err := c.httpClient.Request(ctx, http.MethodGet, requestURL, nil, nil)
	if err != nil {
		return mapHTTPError(ctx, err)
	}

	if err := json.Unmarshal(resp.Body, result); err != nil {
		return errs.NewUnexpected("failed to parse profile API response", err)
	}
	return nil
}

// ProfileByUID looks up a profile by institutional identifier and condenses
// it to affiliation, position, and organization. The community parameter
// selects the API visibility level and may be empty.
func (c *Client) ProfileByUID(ctx context.Context, uid, community string) (*model.Profile, error) {
	if uid == "" {
		return nil, errs.NewValidation("uid is required")
	}
	if community != "" && !isValidCommunity(community) {
		return nil, errs.NewValidation(fmt.Sprintf("invalid community %q, valid values: %s",
			community, strings.Join(validCommunities, ", ")))
	}

	requestURL := fmt.Sprintf("%s/cap-api/api/profiles/v1?uids=%s", c.config.BaseURL, url.QueryEscape(uid))
	if community != "" {
		requestURL += "&community=" + url.QueryEscape(community)
	}

	var response profilesResponse
	if err := c.makeRequest(ctx, requestURL, &response); err != nil {
		return nil, err
	}
	if len(response.Values) == 0 {
		return nil, errs.NewNotFound(fmt.Sprintf("no profile found for uid %q", uid))
	}

	return c.condense(ctx, uid, response.Values[0]), nil
}

// OrgAlias resolves an organization code to its human-readable alias
func (c *Client) OrgAlias(ctx context.Context, orgCode string) (string, error) {
	if orgCode == "" {
		return "", errs.NewValidation("organization code is required")
	}

	var response orgResponse
	requestURL := fmt.Sprintf("%s/cap-api/api/cap/v1/orgs/%s", c.config.BaseURL, url.PathEscape(orgCode))
	if err := c.makeRequest(ctx, requestURL, &response); err != nil {
		return "", err
	}
	return response.Alias, nil
}

// condense reduces a profile document to the reported fields.
// The affiliation block maps flag names like "capFaculty" to booleans; the
// first true flag wins, with its "cap" prefix stripped and lowercased.
func (c *Client) condense(ctx context.Context, uid string, doc profileDocument) *model.Profile {
	profile := &model.Profile{UID: uid}
	if doc.UID != "" {
		profile.UID = doc.UID
	}

	for _, flag := range doc.Affiliations {
		if flag.Active {
			profile.Affiliation = strings.ToLower(strings.TrimPrefix(flag.Name, "cap"))
			break
		}
	}

	if len(doc.Contacts) > 0 {
		profile.Position = doc.Contacts[0].Position
	}

	profile.Organization = c.resolveOrganization(ctx, doc)
	return profile
}

// resolveOrganization picks the organization code off the document and
// resolves it to an alias. Profiles with advisees carry their primary
// appointment in the titles block; everyone else carries an affiliation
// entry in the organizations block.
func (c *Client) resolveOrganization(ctx context.Context, doc profileDocument) string {
	orgCode := ""
	if len(doc.Advisees) > 0 {
		for _, title := range doc.Titles {
			if title.AppointmentType == "pr" {
				orgCode = title.Organization.OrgCode
				break
			}
		}
	} else {
		for _, org := range doc.Organizations {
			if org.Type == "affiliation" && org.Organization.OrgCode != "NULL" {
				orgCode = org.Organization.OrgCode
				break
			}
		}
	}

	if orgCode == "" {
		return ""
	}

	alias, err := c.OrgAlias(ctx, orgCode)
	if err != nil || alias == "" {
		if err != nil {
			slog.WarnContext(ctx, "failed to resolve organization alias",
				"org_code", orgCode,
				"error", err,
			)
		}
		// The raw code still identifies the organization.
		return orgCode
	}
	return alias
}

// isValidCommunity reports whether the community level is accepted by the API
func isValidCommunity(community string) bool {
	for _, valid := range validCommunities {
		if community == valid {
			return true
		}
	}
	return false
}

// mapHTTPError maps httpclient errors to domain errors
func mapHTTPError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var retryableErr *httpclient.RetryableError
	if errors.As(err, &retryableErr) {
		slog.WarnContext(ctx, "profile API HTTP error occurred",
			"status_code", retryableErr.StatusCode,
		)

		switch retryableErr.StatusCode {
		case http.StatusNotFound:
			return errs.NewNotFound("profile not found", err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errs.NewUnauthorized("profile API rejected the credentials", err)
		case http.StatusBadRequest:
			return errs.NewValidation("profile API rejected the query", err)
		default:
			if retryableErr.StatusCode >= http.StatusInternalServerError || retryableErr.StatusCode == http.StatusTooManyRequests {
				return errs.NewRetriesExhausted("profile API errors persisted through retries", err)
			}
			return errs.NewUnexpected(fmt.Sprintf("profile API error (status %d)", retryableErr.StatusCode), err)
		}
	}

	return errs.NewUnexpected("profile API request failed", err)
}
