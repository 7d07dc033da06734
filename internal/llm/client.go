package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// Request is a single-turn chat request.
type Request struct {
	// Model overrides the configured default when set
	Model  string
	System string
	Prompt string
}

// Completer returns the raw text reply for a chat request.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client talks to an OpenAI-compatible chat completions API.
type Client struct {
	config *Config
	http   *http.Client
}

// NewClient creates a new LLM client.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	config.SetDefaults()

	return &Client{
		config: config,
		http: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Config returns the effective client configuration.
func (c *Client) Config() Config {
	return *c.config
}

// ChatRequest is the OpenAI-compatible request body.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

// ChatMessage represents a message in the conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the OpenAI-compatible response body.
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Code    any    `json:"code"`
	} `json:"error,omitempty"`
}

// Complete makes a single HTTP call to the chat completions endpoint.
// Failures are *LLMError values tagged with the provider name.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	content, err := c.complete(ctx, req)
	var llmErr *LLMError
	if errors.As(err, &llmErr) && llmErr.Provider == "" {
		llmErr.Provider = c.config.Provider
	}
	return content, err
}

func (c *Client) complete(ctx context.Context, req Request) (string, error) {
	model := req.Model
	if model == "" {
		model = c.config.DefaultModel
	}

	var messages []ChatMessage
	if req.System != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(ChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: c.config.Temperature,
		MaxTokens:   c.config.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	duration := time.Since(start)

	if err != nil {
		slog.Error("Chat completion request failed",
			"provider", c.config.Provider,
			"error", err.Error(),
			"duration", duration,
		)
		if isTimeout(err) {
			return "", NewTimeoutError(err)
		}
		return "", NewNetworkError(err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("Failed to close response body", "error", err)
		}
	}()

	slog.Info("Chat completion request completed",
		"provider", c.config.Provider,
		"model", model,
		"status_code", resp.StatusCode,
		"duration", duration,
	)

	if resp.StatusCode != http.StatusOK {
		var errBody bytes.Buffer
		if _, err := errBody.ReadFrom(resp.Body); err != nil {
			slog.Warn("Failed to read error response body", "error", err)
			return "", NewAPIError(resp.StatusCode, fmt.Sprintf("status %d (failed to read error body)", resp.StatusCode))
		}
		return "", NewAPIError(resp.StatusCode, errBody.String())
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", NewAPIError(resp.StatusCode, fmt.Sprintf("decode response: %v", err))
	}

	if chatResp.Error != nil {
		return "", NewAPIError(0, chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 {
		return "", NewAPIError(0, "no choices in response")
	}

	return chatResp.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// GenerateStructured asks completer for JSON, decodes it into T and runs the
// optional validate hook. Parse and validation failures are retried with the
// error fed back into the prompt, up to attempts times. Transport failures
// are returned immediately.
func GenerateStructured[T any](
	completer Completer,
	ctx context.Context,
	req Request,
	attempts int,
	validate func(*T) error,
) (*T, error) {
	if attempts < 1 {
		attempts = 1
	}

	originalPrompt := req.Prompt
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		slog.Info("LLM generation attempt",
			"attempt", attempt,
			"model", req.Model,
			"prompt_length", len(req.Prompt),
		)

		content, err := completer.Complete(ctx, req)
		if err != nil {
			var llmErr *LLMError
			if errors.As(err, &llmErr) && !llmErr.Retryable() {
				return nil, err
			}
			lastErr = err
			continue
		}

		cleaned := cleanMarkdownCodeBlocks(content)

		var result T
		if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
			lastErr = NewParseError(content, err)
			slog.Warn("LLM output is not valid JSON",
				"attempt", attempt,
				"error", err.Error(),
				"raw_prefix", truncate(content, rawReplyPrefix),
			)
			req.Prompt = fmt.Sprintf("%s\n\nPREVIOUS ATTEMPT FAILED:\nError: %v\n\nPlease return valid JSON matching the exact structure requested.", originalPrompt, err)
			continue
		}

		if validate != nil {
			if err := validate(&result); err != nil {
				lastErr = NewValidationError(err.Error(), err)
				slog.Warn("LLM output validation failed",
					"attempt", attempt,
					"error", err.Error(),
				)
				req.Prompt = fmt.Sprintf("%s\n\nPREVIOUS VALIDATION ERROR:\n%v\n\nPlease fix the output to pass validation.", originalPrompt, err)
				continue
			}
		}

		slog.Info("LLM generation succeeded",
			"attempt", attempt,
			"model", req.Model,
		)
		return &result, nil
	}

	return nil, fmt.Errorf("structured output failed after %d attempts: %w", attempts, lastErr)
}

// cleanMarkdownCodeBlocks removes markdown code block wrappers from JSON.
// Several models wrap JSON in ```json...``` even when told not to.
func cleanMarkdownCodeBlocks(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSpace(content)
	}

	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}

	return content
}
