// Package extract runs the keyword extraction pipeline for a single
// paragraph: classify the script, pick a prompt, ask the completion API, and
// sanitize the reply.
package extract

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/a-h/kwextract/completion"
	"github.com/a-h/kwextract/language"
	"github.com/a-h/kwextract/models"
	"github.com/a-h/kwextract/prompt"
	"github.com/a-h/kwextract/sanitize"
)

func New(log *slog.Logger, completer completion.Completer, templates prompt.Templates) Service {
	return Service{
		log:       log,
		completer: completer,
		templates: templates,
	}
}

// Service holds no per-request state and is safe for concurrent use.
type Service struct {
	log       *slog.Logger
	completer completion.Completer
	templates prompt.Templates
}

// Extract returns the keywords of text. Errors from the completion API and
// from sanitization are wrapped, so callers can match them with errors.As
// against *completion.UpstreamError, *sanitize.NoJSONError and
// *sanitize.MalformedJSONError.
func (s Service) Extract(ctx context.Context, text string) (result models.ExtractResponse, err error) {
	lang := language.Detect(text)
	s.log.Debug("selected prompt", slog.String("language", string(lang)), slog.Int("runes", len([]rune(text))))

	content, err := s.completer.Complete(ctx, s.templates.For(lang == language.Tamil), text)
	if err != nil {
		return result, fmt.Errorf("failed to get completion: %w", err)
	}

	result, err = sanitize.Sanitize(content)
	if err != nil {
		return result, fmt.Errorf("failed to sanitize completion: %w", err)
	}
	s.log.Debug("extracted keywords", slog.String("language", string(lang)), slog.Int("groups", len(result.Keywords)))
	return result, nil
}
