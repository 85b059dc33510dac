package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Upstream failure classes the caller can branch on.
var (
	ErrNotConfigured      = errors.New("api key not configured")
	ErrRateLimited        = errors.New("upstream rate limited")
	ErrServiceUnavailable = errors.New("upstream unavailable")
	ErrParseFailure       = errors.New("upstream response unparsable")
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// openAIClient is a minimal chat-completions client shared by the vision
// analyzer and the diet generator.
type openAIClient struct {
	apiKey string
	apiURL string
	http   *http.Client
}

func newOpenAIClient(apiKey, apiURL string) *openAIClient {
	if apiURL == "" {
		apiURL = defaultOpenAIURL
	}
	return &openAIClient{
		apiKey: apiKey,
		apiURL: apiURL,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
}

// chatMessage content is any because vision messages carry structured parts
// (text + image_url) while text messages carry a plain string.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// Chat sends one completion request and returns the first choice's content.
// HTTP and API failures are mapped onto the upstream error classes.
func (c *openAIClient) Chat(ctx context.Context, req chatRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrServiceUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		// Unknown model reads as not-found on this API.
		return "", fmt.Errorf("%w: status 404", ErrServiceUnavailable)
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		var parsed chatResponse
		if json.Unmarshal(raw, &parsed) == nil && parsed.Error != nil {
			return "", fmt.Errorf("%w: %s", ErrServiceUnavailable, parsed.Error.Message)
		}
		return "", fmt.Errorf("%w: status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrServiceUnavailable, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrParseFailure)
	}
	return parsed.Choices[0].Message.Content, nil
}
