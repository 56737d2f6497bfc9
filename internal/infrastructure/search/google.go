// Package search implements the web search adapter over the Google Custom
// Search JSON API.
package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/doeshing/trendpost/internal/domain"
	"github.com/doeshing/trendpost/internal/ports"
)

// GoogleClient queries a Programmable Search Engine identified by ContextID.
type GoogleClient struct {
	Endpoint  string
	APIKey    string
	ContextID string
	client    *http.Client
}

// NewGoogleClient constructs a client. An empty endpoint selects the public API.
func NewGoogleClient(endpoint, apiKey, contextID string, client *http.Client) *GoogleClient {
	if endpoint == "" {
		endpoint = domain.DefaultSearchEndpoint
	}
	if client == nil {
		client = &http.Client{}
	}
	return &GoogleClient{Endpoint: endpoint, APIKey: apiKey, ContextID: contextID, client: client}
}

type searchResponse struct {
	Items []domain.SearchItem `json:"items"`
}

// Search issues one GET for topic and returns the items in API order.
// The status code is not inspected: an error body simply carries no items.
func (g *GoogleClient) Search(ctx context.Context, topic string) ([]domain.SearchItem, error) {
	if strings.TrimSpace(g.APIKey) == "" || strings.TrimSpace(g.ContextID) == "" {
		return nil, errors.New("google search: API key or search context id is missing")
	}

	endpoint, err := g.buildURL(topic)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response (HTTP %d): %w", resp.StatusCode, err)
	}
	return parsed.Items, nil
}

func (g *GoogleClient) buildURL(topic string) (string, error) {
	base, err := url.Parse(g.Endpoint)
	if err != nil {
		return "", fmt.Errorf("parse search endpoint: %w", err)
	}
	query := base.Query()
	query.Set("q", topic)
	query.Set("key", g.APIKey)
	query.Set("cx", g.ContextID)
	base.RawQuery = query.Encode()
	return base.String(), nil
}

var _ ports.SearchClient = (*GoogleClient)(nil)
