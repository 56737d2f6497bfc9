// Package ai provides the generative-text adapter for the Gemini
// generateContent REST endpoint.
//
// The client is deliberately thin: it builds the request body, performs one
// POST and decodes whatever came back into domain.GenerationResponse, whose
// optional fields describe which parts of the reply were present. Only
// transport failures are reported as errors.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/doeshing/trendpost/internal/domain"
	"github.com/doeshing/trendpost/internal/pkg/logger"
	"github.com/doeshing/trendpost/internal/ports"
)

// GeminiClient calls {Endpoint}/models/{Model}:generateContent.
type GeminiClient struct {
	Endpoint   string
	Model      string
	APIKey     string
	httpClient *http.Client
	logger     ports.Logger
}

// NewGeminiClient builds a client. Empty endpoint and model fall back to the
// public API and the default model.
func NewGeminiClient(endpoint, model, apiKey string, client *http.Client, log ports.Logger) *GeminiClient {
	if client == nil {
		client = &http.Client{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &GeminiClient{
		Endpoint:   valueOrDefault(endpoint, domain.DefaultGenerationEndpoint),
		Model:      valueOrDefault(model, domain.DefaultGenerationModel),
		APIKey:     apiKey,
		httpClient: client,
		logger:     log,
	}
}

type generateRequest struct {
	Contents []domain.Content `json:"contents"`
}

// Generate posts prompt as a single user turn.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (domain.GenerationResponse, error) {
	requestBody, err := buildRequestBody(prompt)
	if err != nil {
		return domain.GenerationResponse{}, fmt.Errorf("build request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(), bytes.NewReader(requestBody))
	if err != nil {
		return domain.GenerationResponse{}, fmt.Errorf("create HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return domain.GenerationResponse{}, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return domain.GenerationResponse{}, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		c.logger.Warn("generation API returned an error status", map[string]interface{}{
			"status": resp.Status,
		})
	}

	return c.parseResponse(responseBody.Bytes()), nil
}

func buildRequestBody(prompt string) ([]byte, error) {
	text := prompt
	return json.Marshal(generateRequest{
		Contents: []domain.Content{{Parts: []domain.Part{{Text: &text}}}},
	})
}

// parseResponse never fails. A body that is not a JSON object yields an empty
// response. Otherwise each top-level field is decoded on its own, so a field
// of the wrong type is dropped without losing the others.
func (c *GeminiClient) parseResponse(body []byte) domain.GenerationResponse {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		c.logger.Warn("generation response is not valid JSON", map[string]interface{}{
			"error": err.Error(),
			"bytes": len(body),
		})
		return domain.GenerationResponse{}
	}

	var parsed domain.GenerationResponse
	decodeField(c.logger, fields, "candidates", &parsed.Candidates)
	decodeField(c.logger, fields, "modelVersion", &parsed.ModelVersion)
	decodeField(c.logger, fields, "responseId", &parsed.ResponseID)
	decodeField(c.logger, fields, "usageMetadata", &parsed.UsageMetadata)
	return parsed
}

// decodeField leaves target untouched when name is absent or malformed.
func decodeField[T any](log ports.Logger, fields map[string]json.RawMessage, name string, target *T) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Warn("generation response field ignored", map[string]interface{}{
			"field": name,
			"error": err.Error(),
		})
		return
	}
	*target = value
}

func (c *GeminiClient) url() string {
	endpoint := strings.TrimRight(c.Endpoint, "/")
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", endpoint, url.PathEscape(c.Model), url.QueryEscape(c.APIKey))
}

func valueOrDefault(value string, def string) string {
	if value == "" {
		return def
	}
	return value
}

var _ ports.GenerationClient = (*GeminiClient)(nil)
