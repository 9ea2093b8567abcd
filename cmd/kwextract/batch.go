package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/a-h/kwextract/client"
	"github.com/a-h/kwextract/language"
	"github.com/a-h/kwextract/models"
	"gopkg.in/yaml.v3"
)

type BatchCommand struct {
	ServerURL    string `help:"The URL of the keyword extraction server." env:"KWEXTRACT_SERVER_URL" default:"http://127.0.0.1:5000"`
	ServerAPIKey string `help:"The API key for the keyword extraction server." env:"KWEXTRACT_API_KEY" default:""`
	Input        string `arg:"" help:"A YAML file with a list of paragraphs." type:"existingfile"`
	Output       string `help:"The file to write the YAML report to. Defaults to stdout." short:"o" default:""`
	LogLevel     string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

// BatchInput is the format of the input file:
//
//	paragraphs:
//	  - id: dhoni
//	    text: MS Dhoni captained India to the 2011 World Cup.
type BatchInput struct {
	Paragraphs []BatchParagraph `yaml:"paragraphs"`
}

type BatchParagraph struct {
	ID   string `yaml:"id"`
	Text string `yaml:"text"`
}

type BatchReport struct {
	Results []BatchResult `yaml:"results"`
}

type BatchResult struct {
	ID       string                `yaml:"id"`
	Language language.Language     `yaml:"language"`
	Title    string                `yaml:"title,omitempty"`
	Keywords []models.KeywordGroup `yaml:"keywords,omitempty"`
	Error    string                `yaml:"error,omitempty"`
}

type extractPoster interface {
	ExtractPost(ctx context.Context, req models.ExtractRequest) (models.ExtractResponse, error)
}

func (c BatchCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)
	in, err := os.Open(c.Input)
	if err != nil {
		return fmt.Errorf("failed to open input: %w", err)
	}
	defer in.Close()

	out := io.Writer(os.Stdout)
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	return runBatch(ctx, log, client.New(c.ServerURL, c.ServerAPIKey), in, out)
}

// runBatch extracts each paragraph in turn. A failed paragraph is recorded in
// the report and doesn't stop the batch.
func runBatch(ctx context.Context, log *slog.Logger, ep extractPoster, in io.Reader, out io.Writer) (err error) {
	var input BatchInput
	if err = yaml.NewDecoder(in).Decode(&input); err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}

	var report BatchReport
	var failed int
	for i, p := range input.Paragraphs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		id := p.ID
		if id == "" {
			id = fmt.Sprintf("%d", i+1)
		}
		result := BatchResult{
			ID:       id,
			Language: language.Detect(p.Text),
		}
		log.Info("extracting keywords", slog.String("id", id), slog.String("language", string(result.Language)))
		resp, err := ep.ExtractPost(ctx, models.ExtractRequest{Text: p.Text})
		if err != nil {
			log.Error("failed to extract keywords", slog.String("id", id), slog.Any("error", err))
			result.Error = err.Error()
			failed++
		} else {
			result.Title = resp.Title
			result.Keywords = resp.Keywords
		}
		report.Results = append(report.Results, result)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err = enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err = enc.Close(); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d paragraphs failed", failed, len(input.Paragraphs))
	}
	return nil
}
