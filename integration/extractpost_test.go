package integration

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"

	"github.com/a-h/kwextract/client"
	extractpost "github.com/a-h/kwextract/handlers/extract/post"
	"github.com/a-h/kwextract/models"
)

// These tests expect `kwextract serve` to be running.
func newClient() client.Client {
	url := os.Getenv("KWEXTRACT_SERVER_URL")
	if url == "" {
		url = "http://127.0.0.1:5000"
	}
	return client.New(url, os.Getenv("KWEXTRACT_API_KEY"))
}

func TestHealth(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	resp, err := newClient().Health(context.Background())
	if err != nil {
		t.Fatalf("failed to get health: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status %q, got %q", "ok", resp.Status)
	}
}

func TestExtractPostMissingText(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	_, err := newClient().ExtractPost(context.Background(), models.ExtractRequest{})
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected an API error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, apiErr.StatusCode)
	}
	if apiErr.Response.Error != extractpost.MsgMissingText {
		t.Errorf("expected error %q, got %q", extractpost.MsgMissingText, apiErr.Response.Error)
	}
}

func TestExtractPost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	if os.Getenv("KWEXTRACT_INTEGRATION_LLM") == "" {
		t.Skip("set KWEXTRACT_INTEGRATION_LLM to call the configured LLM backend")
	}
	tests := []string{
		"Go is a statically typed, compiled programming language designed at Google. It is syntactically similar to C, but also has memory safety and garbage collection.",
		"தமிழ் ஒரு திராவிட மொழியாகும். இது இந்தியாவின் தமிழ்நாடு மாநிலத்திலும் இலங்கையிலும் அதிகாரப்பூர்வ மொழியாக உள்ளது.",
	}
	for _, text := range tests {
		resp, err := newClient().ExtractPost(context.Background(), models.ExtractRequest{Paragraph: text})
		if err != nil {
			t.Fatalf("failed to extract keywords: %v", err)
		}
		if resp.Title == "" {
			t.Error("expected a title")
		}
		if resp.Keywords == nil {
			t.Error("expected keywords to be an empty list rather than null")
		}
	}
}
