// Package summarizer calls an OpenAI-compatible chat-completions API to
// generate note summaries.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mertc/notebook/internal/pkg/apperrors"
)

const (
	// requestTimeout bounds the worst-case latency of a summarization call.
	requestTimeout = 30 * time.Second

	// MaxInputLength caps the characters sent upstream; longer input is
	// truncated with a marker appended.
	MaxInputLength = 25000

	truncationMarker = "...[truncated]"

	// noSummaryFallback is returned when the service yields no completion.
	noSummaryFallback = "No summary generated."
)

var systemPrompt = "You are a helpful assistant that summarizes notes concise and clearly. Structure the summary with bullet points and key headings."

// Client talks to an OpenAI-compatible chat completions endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Config holds the summarization service settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewClient creates a summarizer client. An empty API key is allowed here;
// Summarize fails with a configuration error before doing any work.
func NewClient(cfg Config) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return strings.TrimSpace(c.apiKey) != ""
}

// Truncate caps text at MaxInputLength characters, appending a marker when
// content was cut off. The cut falls on a rune boundary so the result stays
// valid UTF-8.
func Truncate(text string) string {
	if len(text) <= MaxInputLength {
		return text
	}
	runes := []rune(text)
	if len(runes) <= MaxInputLength {
		return text
	}
	return string(runes[:MaxInputLength]) + truncationMarker
}

// Summarize sends the text to the chat completions endpoint and returns the
// first choice's content.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if !c.Configured() {
		return "", apperrors.ErrSummarizerNotConfigured
	}

	payload := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": "Please summarize the following notes:\n\n" + Truncate(text)},
		},
	}

	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		return "", fmt.Errorf("encode summary payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", buf)
	if err != nil {
		return "", fmt.Errorf("create summary request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewCustomError(apperrors.ErrUpstreamFailure, fmt.Sprintf("summarization request failed: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", c.decodeAPIError(resp)
	}

	var response struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("decode summary response: %w", err)
	}

	if len(response.Choices) == 0 || strings.TrimSpace(response.Choices[0].Message.Content) == "" {
		return noSummaryFallback, nil
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

func (c *Client) decodeAPIError(resp *http.Response) error {
	var apiErr struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}

	body, _ := io.ReadAll(resp.Body)

	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apperrors.NewCustomError(apperrors.ErrUpstreamFailure,
			fmt.Sprintf("summarization api error: status %d type %s message %s", resp.StatusCode, apiErr.Error.Type, apiErr.Error.Message))
	}

	return apperrors.NewCustomError(apperrors.ErrUpstreamFailure,
		fmt.Sprintf("summarization api error: status %d body %s", resp.StatusCode, string(body)))
}
