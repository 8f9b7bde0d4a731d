// Package partsbox is a minimal client for the PartsBox HTTP API.
//
// Every API operation is a POST of a JSON body to
// https://api.partsbox.com/api/1/<operation> with an APIKey authorization
// header; responses wrap their payload in a "data" field.
package partsbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the production PartsBox API root.
const DefaultBaseURL = "https://api.partsbox.com/api/1"

// defaultTimeout bounds one API call when the caller's context carries no
// deadline of its own.
const defaultTimeout = 30 * time.Second

// Config configures a Client.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string
	// BaseURL overrides the API root, mainly for tests. Defaults to
	// DefaultBaseURL.
	BaseURL string
	// HTTPClient overrides the underlying HTTP client.
	HTTPClient *http.Client
}

// Client calls PartsBox API operations. It is safe for concurrent use.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// New creates a configured client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("partsbox API key is required")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		tracer:     otel.Tracer("partsbox"),
	}, nil
}

// Call posts one API operation and returns the decoded "data" payload. A nil
// payload sends an empty JSON object, which is what parameterless operations
// like part/all expect.
func (c *Client) Call(ctx context.Context, operation string, payload map[string]any) (any, error) {
	ctx, span := c.tracer.Start(ctx, "partsbox.call",
		trace.WithAttributes(attribute.String("partsbox.operation", operation)))
	defer span.End()

	data, err := c.call(ctx, operation, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return data, nil
}

// ListAll posts a list operation and normalizes the payload to a record
// slice: a null "data" becomes an empty slice.
func (c *Client) ListAll(ctx context.Context, operation string, payload map[string]any) ([]any, error) {
	data, err := c.Call(ctx, operation, payload)
	if err != nil {
		return nil, err
	}
	switch records := data.(type) {
	case nil:
		return []any{}, nil
	case []any:
		return records, nil
	default:
		return nil, fmt.Errorf("%s: expected a record list, got %T", operation, data)
	}
}

func (c *Client) call(ctx context.Context, operation string, payload map[string]any) (any, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+operation, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", operation, err)
	}
	req.Header.Set("Authorization", "APIKey "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Include a bounded slice of the body; PartsBox error payloads
		// are short JSON documents.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s: unexpected status %s: %s", operation, resp.Status, strings.TrimSpace(string(detail)))
	}

	var decoded struct {
		Data any `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return decoded.Data, nil
}
