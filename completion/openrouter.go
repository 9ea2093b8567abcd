package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

const (
	DefaultURL     = "https://openrouter.ai/api/v1/chat/completions"
	DefaultModel   = "meta-llama/llama-3.1-8b-instruct"
	DefaultReferer = "http://localhost"
	DefaultTitle   = "Tamil-English Keyword Extractor"
)

var ErrMissingAPIKey = errors.New("completion: OpenRouter API key is required")

type Config struct {
	URL    string
	APIKey string
	Model  string
	// Referer and Title are sent as the HTTP-Referer and X-Title headers,
	// which OpenRouter uses to identify the calling application.
	Referer string
	Title   string
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.URL == "" {
		return errors.New("completion: OpenRouter URL is required")
	}
	if c.Model == "" {
		return errors.New("completion: model is required")
	}
	return nil
}

func NewOpenRouter(log *slog.Logger, cfg Config) (*OpenRouter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &OpenRouter{
		log: log,
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   Timeout,
			Transport: newLoggingTransport(log, http.DefaultTransport),
		},
	}, nil
}

type OpenRouter struct {
	log        *slog.Logger
	cfg        Config
	httpClient *http.Client
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenRouter) Complete(ctx context.Context, system, user string) (content string, err error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", c.cfg.Referer)
	req.Header.Set("X-Title", c.cfg.Title)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to perform HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read error response body: %w", err)
		}
		c.log.Warn("completion API returned an error", slog.Int("status", resp.StatusCode), slog.String("model", c.cfg.Model))
		return "", &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	var cr chatResponse
	if err = json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == nil {
		return "", ErrNoContent
	}
	return *cr.Choices[0].Message.Content, nil
}
