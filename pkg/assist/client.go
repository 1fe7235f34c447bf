package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// DefaultMaxTasks bounds the number of candidates requested per extraction.
const DefaultMaxTasks = 10

// FallbackReply is returned to the user when the chat collaborator is
// unreachable; a raw network error is never surfaced in the transcript.
const FallbackReply = "I can't reach the assistant right now. Your tasks are safe — try again in a moment, or add the task manually."

// Message is a single turn in a chat exchange.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Classification holds metadata suggestions for a single manually authored
// task. Absent fields stay zero so the caller leaves prior form values
// unchanged.
type Classification struct {
	EnergyLevel       string `json:"energy_level,omitempty"`
	FocusType         string `json:"focus_type,omitempty"`
	Complexity        int    `json:"complexity,omitempty"` // 1-10
	EstimatedDuration int    `json:"estimated_duration,omitempty"`
	Priority          int    `json:"priority,omitempty"`
}

// Client is the single call contract to the external text-understanding
// service. Every failure is converted to one of ErrTimeout, ErrQuotaExceeded
// or ErrService at this boundary; no raw transport error escapes.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a Client for the given service base URL.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// Extract asks the service to turn free text into task candidates. On any
// failure it returns no candidates, never partial ones. Candidates missing a
// title are dropped. The service's ordering is preserved.
func (c *Client) Extract(ctx context.Context, text string, maxTasks int) ([]Candidate, error) {
	if maxTasks <= 0 {
		maxTasks = DefaultMaxTasks
	}
	req := struct {
		Text     string `json:"text"`
		MaxTasks int    `json:"max_tasks"`
	}{Text: text, MaxTasks: maxTasks}

	var resp struct {
		Tasks []Candidate `json:"tasks"`
	}
	if err := c.postJSON(ctx, "/v1/extract", req, &resp); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	candidates := make([]Candidate, 0, len(resp.Tasks))
	for _, cand := range resp.Tasks {
		if cand.Title == "" {
			continue // malformed candidate, drop rather than crash
		}
		if len(candidates) == maxTasks {
			break
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

// Classify asks the service to suggest metadata for a manually authored task.
func (c *Client) Classify(ctx context.Context, title, description string) (*Classification, error) {
	req := struct {
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
	}{Title: title, Description: description}

	var resp Classification
	if err := c.postJSON(ctx, "/v1/classify", req, &resp); err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}
	return &resp, nil
}

// Chat sends a conversation to the service and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, messages []Message, temperature float64, maxTokens int) (string, error) {
	req := struct {
		Messages    []Message `json:"messages"`
		Temperature float64   `json:"temperature"`
		MaxTokens   int       `json:"max_tokens"`
	}{Messages: messages, Temperature: temperature, MaxTokens: maxTokens}

	var resp struct {
		Reply string `json:"reply"`
	}
	if err := c.postJSON(ctx, "/v1/chat", req, &resp); err != nil {
		return "", fmt.Errorf("chat: %w", err)
	}
	return resp.Reply, nil
}

func (c *Client) postJSON(ctx context.Context, path string, reqBody, respBody any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("%w: marshal request: %v", ErrService, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportErr(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrQuotaExceeded
	case resp.StatusCode == http.StatusRequestTimeout || resp.StatusCode == http.StatusGatewayTimeout:
		return ErrTimeout
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return fmt.Errorf("%w: status %d: %s", ErrService, resp.StatusCode, snippet)
	}

	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrService, err)
	}
	return nil
}

func classifyTransportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return ErrTimeout
	}
	return fmt.Errorf("%w: %v", ErrService, err)
}
