package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/jsonapi"
	"github.com/a-h/kwextract/models"
)

func New(baseURL, apiKey string) Client {
	return Client{
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type Client struct {
	baseURL string
	apiKey  string
}

// APIError is returned when the server responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Response   models.ErrorResponse
	Body       string
}

func (e *APIError) Error() string {
	if e.Response.Error == "" {
		return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Body)
	}
	msg := fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Response.Error)
	if e.Response.Details != "" {
		msg += ": " + e.Response.Details
	}
	return msg
}

// Unwrap exposes the status and body as a jsonapi.InvalidStatusError.
func (e *APIError) Unwrap() error {
	return jsonapi.InvalidStatusError{
		Status: e.StatusCode,
		Body:   e.Body,
	}
}

func (c Client) ExtractPost(ctx context.Context, req models.ExtractRequest) (resp models.ExtractResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("extract_keywords").String()
	if err != nil {
		return resp, err
	}
	buf, err := json.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("failed to marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return resp, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	err = c.do(httpReq, &resp)
	return resp, err
}

func (c Client) Health(ctx context.Context) (resp models.HealthResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("health").String()
	if err != nil {
		return resp, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return resp, fmt.Errorf("failed to create request: %w", err)
	}
	err = c.do(httpReq, &resp)
	return resp, err
}

func (c Client) do(httpReq *http.Request, v any) (err error) {
	res, err := jsonapi.Raw(httpReq, jsonapi.WithRequestHeader("Authorization", c.apiKey))
	if err != nil {
		return fmt.Errorf("failed to perform HTTP request: %w", err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: res.StatusCode,
			Body:       string(body),
		}
		// Bodies that aren't error responses, such as proxy errors, leave
		// Response empty and are reported through Body.
		if err = json.Unmarshal(body, &apiErr.Response); err != nil {
			apiErr.Response = models.ErrorResponse{}
		}
		return apiErr
	}
	if err = json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
