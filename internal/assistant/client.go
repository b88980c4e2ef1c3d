// Package assistant provides a client for the Gemini generateContent
// API, grounded in the loaded budget dataset through a composed system
// instruction.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"kina/internal/model"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "gemini-2.5-flash"
	requestTimeout = 30 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrMissingKey indicates no API key was configured.
	ErrMissingKey = errors.New("assistant: missing API key")
	// ErrUnavailable indicates the upstream service refused or failed
	// the request. Callers surface a retry message rather than the
	// raw error.
	ErrUnavailable = errors.New("assistant: service unavailable")
)

// Client sends chat turns to the generateContent endpoint.
type Client struct {
	baseURL     string
	model       string
	apiKey      string
	instruction string
	http        *http.Client
}

// NewClient creates a client for the given API key, grounded on the
// given record set. Returns nil if the key is empty.
func NewClient(apiKey string, records []model.BudgetRecord, opts ...Option) *Client {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	c := &Client{
		baseURL:     defaultBaseURL,
		model:       defaultModel,
		apiKey:      apiKey,
		instruction: SystemInstruction(records),
		http:        &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option adjusts client construction.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, used for proxies and tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithModel overrides the default model name.
func WithModel(m string) Option {
	return func(c *Client) {
		if m != "" {
			c.model = m
		}
	}
}

// Model returns the model name this client targets.
func (c *Client) Model() string { return c.model }

// Send posts the transcript plus the new user turn and returns the
// assistant's reply text. The full transcript is replayed on every
// call; the endpoint is stateless.
func (c *Client) Send(ctx context.Context, transcript []model.ChatMessage, userText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reqBody := generateRequest{
		SystemInstruction: &generateContent{Parts: []generatePart{{Text: c.instruction}}},
		Contents:          make([]generateContent, 0, len(transcript)+1),
	}
	for _, m := range transcript {
		reqBody.Contents = append(reqBody.Contents, generateContent{
			Role:  wireRole(m.Role),
			Parts: []generatePart{{Text: m.Text}},
		})
	}
	reqBody.Contents = append(reqBody.Contents, generateContent{
		Role:  "user",
		Parts: []generatePart{{Text: userText}},
	})

	payload, err := json.Marshal(&reqBody)
	if err != nil {
		return "", fmt.Errorf("assistant: encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("assistant: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("assistant: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var parsed generateResponse
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != nil {
			return "", fmt.Errorf("%w: %s (status %d)", ErrUnavailable, parsed.Error.Message, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("assistant: parsing response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return text, nil
}

// wireRole maps transcript roles onto the endpoint's user|model set.
func wireRole(r model.ChatRole) string {
	if r == model.RoleAssistant {
		return "model"
	}
	return "user"
}
