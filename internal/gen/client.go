// Package gen wraps the Gemini generation service behind the two
// operations the wizard needs: free-text section drafting and structured
// chart-data extraction. Failures are classified into a small taxonomy so
// the controller can tell a missing credential (recoverable, prompt the
// user) from transport trouble or an empty completion (retryable).
package gen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"reportcraft/internal/logging"
	"reportcraft/internal/report"
)

// DefaultModel is used when no model override is configured.
const DefaultModel = "gemini-2.5-flash"

var (
	// ErrMissingAPIKey means no generation credential is configured. This
	// is a precondition failure the caller resolves by prompting for a
	// key, not a generation failure.
	ErrMissingAPIKey = errors.New("generation API key not configured")

	// ErrEmptyResponse means the call succeeded but yielded no text.
	ErrEmptyResponse = errors.New("empty response from generation service")
)

// Client talks to the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// New creates a generation client for the given credential. The model
// falls back to DefaultModel when empty.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// GenerateText sends a prompt with a system instruction and returns the
// completion. Sampling mirrors the section-drafting call: temperature 0.7,
// topP 0.95.
func (c *Client) GenerateText(ctx context.Context, prompt, systemInstruction string) (string, error) {
	return c.generate(ctx, prompt, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(float32(0.7)),
		TopP:              genai.Ptr(float32(0.95)),
	})
}

// GenerateSuggestions drafts bullet-point ideas for a section at a lower
// temperature than the full drafting pass.
func (c *Client) GenerateSuggestions(ctx context.Context, prompt, systemInstruction string) (string, error) {
	return c.generate(ctx, prompt, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(float32(0.6)),
	})
}

// chartSchema constrains the structured extraction to an array of
// {name, value} records and nothing else.
var chartSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name": {
				Type:        genai.TypeString,
				Description: "Label of the data column (e.g. 'Before the initiative').",
			},
			"value": {
				Type:        genai.TypeNumber,
				Description: "The corresponding numeric value.",
			},
		},
		Required: []string{"name", "value"},
	},
}

// GenerateChartSeries asks the service to convert raw user figures into a
// chart series using a JSON response schema. The boundary is untrusted:
// the returned payload is re-parsed and validated, and malformed output
// surfaces as ErrMalformedChart for the caller to degrade on.
func (c *Client) GenerateChartSeries(ctx context.Context, raw string) (report.ChartSeries, error) {
	prompt := fmt.Sprintf(
		`Convert the following data into a JSON array for a comparison chart: %q. `+
			`The JSON must have the form [{"name": "Column label", "value": number}]. `+
			`Return only the JSON, with no explanatory text and no markdown formatting.`, raw)

	text, err := c.generate(ctx, prompt, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(
			"You are a tool that converts raw data into valid JSON.", genai.RoleUser),
		ResponseMIMEType: "application/json",
		ResponseSchema:   chartSchema,
	})
	if err != nil {
		return nil, err
	}

	return ParseChartSeries(text)
}

// generate performs one synchronous completion call against the model.
func (c *Client) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	start := time.Now()
	logging.APIDebug("generate: model=%s prompt_len=%d", c.model, len(prompt))

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		logging.APIError("generate failed after %v: %v", time.Since(start), err)
		return "", fmt.Errorf("generation request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		logging.APIError("generate returned no text after %v", time.Since(start))
		return "", ErrEmptyResponse
	}

	logging.API("generate: completed in %v response_len=%d", time.Since(start), len(text))
	return text, nil
}
