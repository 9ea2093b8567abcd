package completion

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
)

// NewLLM adapts a langchaingo model, such as a local Ollama model, to the
// Completer interface.
func NewLLM(model llms.Model) LLM {
	return LLM{
		model: model,
	}
}

type LLM struct {
	model llms.Model
}

func (l LLM) Complete(ctx context.Context, system, user string) (content string, err error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()
	resp, err := l.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}, llms.WithTemperature(Temperature), llms.WithMaxTokens(MaxTokens))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrNoContent
	}
	return resp.Choices[0].Content, nil
}
