package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/a-h/kwextract/completion"
	"github.com/a-h/kwextract/models"
	"github.com/a-h/kwextract/prompt"
	"github.com/a-h/kwextract/sanitize"
	"github.com/google/go-cmp/cmp"
)

var discard = slog.New(slog.NewJSONHandler(io.Discard, nil))

type fakeCompleter struct {
	system  string
	user    string
	content string
	err     error
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	f.system = system
	f.user = user
	return f.content, f.err
}

var templates = prompt.Templates{
	Tamil:   "tamil prompt",
	English: "english prompt",
}

func TestExtractSelectsPrompt(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		expectedSystem string
	}{
		{
			name:           "English text uses the English prompt",
			text:           "Hello world",
			expectedSystem: "english prompt",
		},
		{
			name:           "Tamil text uses the Tamil prompt",
			text:           "தமிழ் உலகம்",
			expectedSystem: "tamil prompt",
		},
		{
			name:           "mixed text uses the Tamil prompt",
			text:           "Chennai சென்னை",
			expectedSystem: "tamil prompt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeCompleter{content: `{"title": "t", "keywords": []}`}
			if _, err := New(discard, c, templates).Extract(context.Background(), tt.text); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.system != tt.expectedSystem {
				t.Errorf("expected system prompt %q, got %q", tt.expectedSystem, c.system)
			}
			if c.user != tt.text {
				t.Errorf("expected the text to be sent unchanged, got %q", c.user)
			}
		})
	}
}

func TestExtract(t *testing.T) {
	c := &fakeCompleter{content: "```json\n{\"title\": \"Greeting\", \"keywords\": [{\"level1\": \"world\", \"level2\": [\"Hello\", 3]}]}\n```"}
	actual, err := New(discard, c, templates).Extract(context.Background(), "Hello world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := models.ExtractResponse{
		Title: "Greeting",
		Keywords: []models.KeywordGroup{
			{Level1: "world", Level2: []string{"Hello"}},
		},
	}
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Error(diff)
	}
}

func TestExtractErrors(t *testing.T) {
	t.Run("upstream errors can be matched", func(t *testing.T) {
		c := &fakeCompleter{err: &completion.UpstreamError{StatusCode: 503, Body: "rate limited"}}
		_, err := New(discard, c, templates).Extract(context.Background(), "Hello world")
		var ue *completion.UpstreamError
		if !errors.As(err, &ue) {
			t.Fatalf("expected UpstreamError, got %v", err)
		}
		if ue.Body != "rate limited" {
			t.Errorf("expected body %q, got %q", "rate limited", ue.Body)
		}
	})
	t.Run("missing JSON can be matched", func(t *testing.T) {
		c := &fakeCompleter{content: "no json"}
		_, err := New(discard, c, templates).Extract(context.Background(), "Hello world")
		var nje *sanitize.NoJSONError
		if !errors.As(err, &nje) {
			t.Fatalf("expected NoJSONError, got %v", err)
		}
	})
	t.Run("malformed JSON can be matched", func(t *testing.T) {
		c := &fakeCompleter{content: "{not json}"}
		_, err := New(discard, c, templates).Extract(context.Background(), "Hello world")
		var mje *sanitize.MalformedJSONError
		if !errors.As(err, &mje) {
			t.Fatalf("expected MalformedJSONError, got %v", err)
		}
	})
	t.Run("transport errors are returned", func(t *testing.T) {
		transportErr := errors.New("connection refused")
		c := &fakeCompleter{err: transportErr}
		_, err := New(discard, c, templates).Extract(context.Background(), "Hello world")
		if !errors.Is(err, transportErr) {
			t.Fatalf("expected %v, got %v", transportErr, err)
		}
	})
}
