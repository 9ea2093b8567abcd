// Package completion sends a system prompt and a user message to a
// chat-completion API and returns the text of the first choice.
//
// A single attempt is made per call. There are no retries.
package completion

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	Temperature = 0.2
	MaxTokens   = 500
	Timeout     = 30 * time.Second
)

type Completer interface {
	Complete(ctx context.Context, system, user string) (content string, err error)
}

// UpstreamError is returned when the completion API responds with a status
// other than 200. Body is the response body, unmodified.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion: upstream returned status %d: %s", e.StatusCode, e.Body)
}

var ErrNoContent = errors.New("completion: response contains no message content")
