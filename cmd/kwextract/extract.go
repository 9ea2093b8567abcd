package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/a-h/kwextract/client"
	"github.com/a-h/kwextract/models"
)

type ExtractCommand struct {
	ServerURL    string `help:"The URL of the keyword extraction server." env:"KWEXTRACT_SERVER_URL" default:"http://127.0.0.1:5000"`
	ServerAPIKey string `help:"The API key for the keyword extraction server." env:"KWEXTRACT_API_KEY" default:""`
	Text         string `help:"The paragraph to extract keywords from. Read from stdin if neither text nor file is set." xor:"input"`
	File         string `help:"A text, HTML or PDF file containing the paragraph." type:"existingfile" xor:"input"`
	Tree         bool   `help:"Print the keywords as a tree instead of JSON." default:"false"`
	Pretty       bool   `help:"Pretty print the JSON output." default:"true"`
}

func (c ExtractCommand) Run(ctx context.Context) (err error) {
	text, err := c.input(ctx, os.Stdin)
	if err != nil {
		return err
	}
	rsc := client.New(c.ServerURL, c.ServerAPIKey)
	resp, err := rsc.ExtractPost(ctx, models.ExtractRequest{
		Text: text,
	})
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Response.RawOutput != "" {
			fmt.Fprintln(os.Stderr, apiErr.Response.RawOutput)
		}
		return err
	}

	if c.Tree {
		fmt.Print(renderResult(text, resp))
		return nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	if c.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(resp)
}

func (c ExtractCommand) input(ctx context.Context, stdin io.Reader) (text string, err error) {
	switch {
	case c.Text != "":
		return c.Text, nil
	case c.File != "":
		return loadFile(ctx, c.File)
	default:
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
}
