// Package docext calls a remote OCR/markdown-conversion service to turn a
// resume document URL into plain text.
package docext

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// Client speaks the extraction service's JSON API
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
}

// NewClient creates an extraction client for the configured endpoint
func NewClient(endpoint, apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
	}
}

type extractionRequest struct {
	Model              string   `json:"model"`
	Document           document `json:"document"`
	IncludeImageBase64 bool     `json:"include_image_base64"`
}

type document struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

type extractionResponse struct {
	Pages []page `json:"pages"`
}

type page struct {
	Index    int    `json:"index"`
	Markdown string `json:"markdown"`
}

type extractionError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Extract runs OCR over the full document and concatenates each page's
// markdown, in page order, separated by a blank line. Empty text is a valid
// outcome, not an error.
func (c *Client) Extract(ctx context.Context, documentURL string) (string, error) {
	if strings.TrimSpace(documentURL) == "" {
		return "", errors.New("document url is required")
	}
	if c.apiKey == "" {
		return "", errors.New("extraction api key is not configured")
	}

	payload, err := json.Marshal(extractionRequest{
		Model: c.model,
		Document: document{
			Type:        "document_url",
			DocumentURL: documentURL,
		},
		IncludeImageBase64: true,
	})
	if err != nil {
		return "", fmt.Errorf("marshal extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read extraction response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, serviceMessage(body))
	}

	var out extractionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("decode extraction response: %w", err)
	}

	texts := make([]string, 0, len(out.Pages))
	for _, p := range out.Pages {
		texts = append(texts, p.Markdown)
	}
	return strings.Join(texts, "\n\n"), nil
}

// serviceMessage pulls the service's own error message out of a failure
// body when one is decodable
func serviceMessage(body []byte) string {
	var e extractionError
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 500 {
		msg = msg[:500]
	}
	return msg
}
