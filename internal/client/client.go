// Package client is the Go client the admin console uses against the
// Axiom Admin API. It covers the ruleset and rule endpoints, parses the
// platform error contract into field-level messages, and owns the small
// pieces of submit state (in-flight gating, optimistic list removal) that
// every console screen needs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cplatt-iso/axiom-admin/internal/models"
)

const defaultTimeout = 30 * time.Second

// Client talks to the admin API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
}

// NewClient creates a client for the API at baseURL. apiKey may be empty
// when the deployment does not require one.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		apiKey:     apiKey,
	}
}

// do runs one JSON round trip. A non-2xx response is decoded into APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// CreateRuleset creates a ruleset.
func (c *Client) CreateRuleset(ctx context.Context, payload models.RulesetCreatePayload) (*models.Ruleset, error) {
	var rs models.Ruleset
	if err := c.do(ctx, http.MethodPost, "/api/v1/rulesets", payload, &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// ListRulesets retrieves all rulesets.
func (c *Client) ListRulesets(ctx context.Context) ([]models.Ruleset, error) {
	var rulesets []models.Ruleset
	if err := c.do(ctx, http.MethodGet, "/api/v1/rulesets", nil, &rulesets); err != nil {
		return nil, err
	}
	return rulesets, nil
}

// GetRuleset retrieves one ruleset with its rules.
func (c *Client) GetRuleset(ctx context.Context, id uuid.UUID) (*models.Ruleset, error) {
	var rs models.Ruleset
	if err := c.do(ctx, http.MethodGet, "/api/v1/rulesets/"+id.String(), nil, &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// UpdateRuleset updates a ruleset.
func (c *Client) UpdateRuleset(ctx context.Context, id uuid.UUID, payload models.RulesetUpdatePayload) (*models.Ruleset, error) {
	var rs models.Ruleset
	if err := c.do(ctx, http.MethodPut, "/api/v1/rulesets/"+id.String(), payload, &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// DeleteRuleset deletes a ruleset and its rules.
func (c *Client) DeleteRuleset(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/rulesets/"+id.String(), nil, nil)
}

// CreateRule creates a rule under a ruleset.
func (c *Client) CreateRule(ctx context.Context, rulesetID uuid.UUID, payload models.RuleCreatePayload) (*models.Rule, error) {
	var rule models.Rule
	path := "/api/v1/rulesets/" + rulesetID.String() + "/rules"
	if err := c.do(ctx, http.MethodPost, path, payload, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// ListRules retrieves the rules of a ruleset ordered by priority.
func (c *Client) ListRules(ctx context.Context, rulesetID uuid.UUID) ([]models.Rule, error) {
	var ruleList []models.Rule
	path := "/api/v1/rulesets/" + rulesetID.String() + "/rules"
	if err := c.do(ctx, http.MethodGet, path, nil, &ruleList); err != nil {
		return nil, err
	}
	return ruleList, nil
}

// UpdateRule updates a rule.
func (c *Client) UpdateRule(ctx context.Context, id uuid.UUID, payload models.RuleUpdatePayload) (*models.Rule, error) {
	var rule models.Rule
	if err := c.do(ctx, http.MethodPut, "/api/v1/rules/"+id.String(), payload, &rule); err != nil {
		return nil, err
	}
	return &rule, nil
}

// DeleteRule deletes a rule.
func (c *Client) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/rules/"+id.String(), nil, nil)
}
