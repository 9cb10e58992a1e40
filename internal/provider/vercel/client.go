// Package vercel implements provider.Client against the Vercel
// project-domains REST API.
package vercel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/foliohq/folio/internal/provider"
)

const defaultBaseURL = "https://api.vercel.com"

// Client talks to the Vercel domains API for a single fixed project.
type Client struct {
	baseURL   string
	token     string
	projectID string
	teamID    string // optional team qualifier, appended as ?teamId=
	hc        *http.Client
}

var _ provider.Client = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// New creates a Client bound to one project. teamID may be empty for
// personal accounts. timeout bounds every provider call; a timed-out call
// surfaces as provider.ErrUnavailable.
func New(token, projectID, teamID string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		token:     token,
		projectID: projectID,
		teamID:    teamID,
		hc: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// attachmentResponse is the subset of Vercel's domain document we consume.
type attachmentResponse struct {
	Name         string `json:"name"`
	Verified     bool   `json:"verified"`
	Verification []struct {
		Reason string `json:"reason"`
	} `json:"verification"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Attach registers domain against the shared project.
func (c *Client) Attach(ctx context.Context, domain string) (*provider.Attachment, error) {
	body, err := json.Marshal(map[string]string{"name": domain})
	if err != nil {
		return nil, fmt.Errorf("vercel.Client.Attach: marshal: %w", err)
	}

	path := fmt.Sprintf("/v10/projects/%s/domains", url.PathEscape(c.projectID))
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, fmt.Errorf("vercel.Client.Attach: %w: %w", provider.ErrUnavailable, err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusConflict:
		return nil, fmt.Errorf("vercel.Client.Attach %q: %w", domain, provider.ErrDomainClaimed)
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("vercel.Client.Attach: %w", provider.ErrInvalidCredentials)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("vercel.Client.Attach: status %d: %w", resp.StatusCode, provider.ErrUnavailable)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("vercel.Client.Attach: %s", errorDetail(resp))
	}

	att, err := decodeAttachment(resp)
	if err != nil {
		return nil, fmt.Errorf("vercel.Client.Attach: %w", err)
	}
	return att, nil
}

// Detach removes domain from the shared project. A 404 is success: the
// domain is already not attached.
func (c *Client) Detach(ctx context.Context, domain string) error {
	path := fmt.Sprintf("/v9/projects/%s/domains/%s", url.PathEscape(c.projectID), url.PathEscape(domain))
	resp, err := c.do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return fmt.Errorf("vercel.Client.Detach: %w: %w", provider.ErrUnavailable, err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		// Idempotent: desired end state already holds.
		log.Debug().Str("domain", domain).Msg("vercel: detach of unknown domain, treating as success")
		return nil
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("vercel.Client.Detach: %w", provider.ErrInvalidCredentials)
	case resp.StatusCode >= 500:
		return fmt.Errorf("vercel.Client.Detach: status %d: %w", resp.StatusCode, provider.ErrUnavailable)
	case resp.StatusCode >= 400:
		return fmt.Errorf("vercel.Client.Detach: %s", errorDetail(resp))
	}

	return nil
}

// Status returns the current verification state of domain.
func (c *Client) Status(ctx context.Context, domain string) (*provider.Attachment, error) {
	path := fmt.Sprintf("/v9/projects/%s/domains/%s", url.PathEscape(c.projectID), url.PathEscape(domain))
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("vercel.Client.Status: %w: %w", provider.ErrUnavailable, err)
	}
	defer drain(resp)

	switch {
	case resp.StatusCode == http.StatusForbidden, resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("vercel.Client.Status: %w", provider.ErrInvalidCredentials)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("vercel.Client.Status: status %d: %w", resp.StatusCode, provider.ErrUnavailable)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("vercel.Client.Status: %s", errorDetail(resp))
	}

	att, err := decodeAttachment(resp)
	if err != nil {
		return nil, fmt.Errorf("vercel.Client.Status: %w", err)
	}
	return att, nil
}

// do issues a request with auth header and the team qualifier attached.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	u := c.baseURL + path
	if c.teamID != "" {
		u += "?teamId=" + url.QueryEscape(c.teamID)
	}

	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	return c.hc.Do(req)
}

func decodeAttachment(resp *http.Response) (*provider.Attachment, error) {
	var ar attachmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	att := &provider.Attachment{
		Domain:   ar.Name,
		Verified: ar.Verified,
	}
	if !ar.Verified && len(ar.Verification) > 0 {
		att.MisconfiguredReason = ar.Verification[0].Reason
	}
	return att, nil
}

// errorDetail extracts the provider's error message for log/wrap purposes.
// Body is capped to avoid buffering arbitrarily large error payloads.
func errorDetail(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))

	var ar attachmentResponse
	if err := json.Unmarshal(raw, &ar); err == nil && ar.Error != nil && ar.Error.Message != "" {
		return fmt.Sprintf("status %d: %s", resp.StatusCode, ar.Error.Message)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	_ = resp.Body.Close()
}
