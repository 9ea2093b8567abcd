package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/a-h/kwextract/auth"
	"github.com/a-h/kwextract/completion"
	"github.com/a-h/kwextract/extract"
	"github.com/a-h/kwextract/prompt"
	"github.com/tmc/langchaingo/llms/ollama"
)

type ServeCommand struct {
	ListenAddr        string `help:"The address to listen on." env:"LISTEN_ADDR" default:"127.0.0.1:5000"`
	Backend           string `help:"The completion backend to use." env:"BACKEND" enum:"openrouter,ollama" default:"openrouter"`
	OpenRouterAPIKey  string `help:"The OpenRouter API key. Required for the openrouter backend." env:"OPENROUTER_API_KEY" default:""`
	OpenRouterURL     string `help:"The OpenRouter chat completions URL." env:"OPENROUTER_URL" default:"https://openrouter.ai/api/v1/chat/completions"`
	OpenRouterModel   string `help:"The OpenRouter model." env:"OPENROUTER_MODEL" default:"meta-llama/llama-3.1-8b-instruct"`
	OpenRouterReferer string `help:"The HTTP-Referer header sent to OpenRouter." env:"OPENROUTER_REFERER" default:"http://localhost"`
	OpenRouterTitle   string `help:"The X-Title header sent to OpenRouter." env:"OPENROUTER_TITLE" default:"Tamil-English Keyword Extractor"`
	OllamaURL         string `help:"The URL of the Ollama server, used by the ollama backend." env:"OLLAMA_URL" default:"http://127.0.0.1:11434/"`
	OllamaModel       string `help:"The Ollama model, used by the ollama backend." env:"OLLAMA_MODEL" default:"llama3.1"`
	TamilPromptFile   string `help:"A file that replaces the built-in Tamil system prompt." env:"TAMIL_PROMPT_FILE" default:""`
	EnglishPromptFile string `help:"A file that replaces the built-in English system prompt." env:"ENGLISH_PROMPT_FILE" default:""`
	APIKeysFile       string `help:"A file containing a JSON map of API keys to usernames. Authentication is disabled if not set." env:"API_KEYS_FILE" default:""`
	TLSCertFile       string `help:"The TLS certificate file." env:"TLS_CERT_FILE" default:""`
	TLSKeyFile        string `help:"The TLS key file." env:"TLS_KEY_FILE" default:""`
	LogLevel          string `help:"The log level to use." env:"LOG_LEVEL" default:"info"`
}

func (c ServeCommand) newCompleter(log *slog.Logger) (completion.Completer, error) {
	if c.Backend == "ollama" {
		log.Info("creating Ollama client", slog.String("url", c.OllamaURL), slog.String("model", c.OllamaModel))
		llmc, err := ollama.New(
			ollama.WithModel(c.OllamaModel),
			ollama.WithHTTPClient(&http.Client{}),
			ollama.WithServerURL(c.OllamaURL))
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM: %w", err)
		}
		return completion.NewLLM(llmc), nil
	}
	log.Info("creating OpenRouter client", slog.String("url", c.OpenRouterURL), slog.String("model", c.OpenRouterModel))
	orc, err := completion.NewOpenRouter(log, completion.Config{
		URL:     c.OpenRouterURL,
		APIKey:  c.OpenRouterAPIKey,
		Model:   c.OpenRouterModel,
		Referer: c.OpenRouterReferer,
		Title:   c.OpenRouterTitle,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenRouter client: %w", err)
	}
	return orc, nil
}

func (c ServeCommand) newHandler(log *slog.Logger) (h http.Handler, err error) {
	templates, err := prompt.Load(c.TamilPromptFile, c.EnglishPromptFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}
	completer, err := c.newCompleter(log)
	if err != nil {
		return nil, err
	}
	apiKeyToUserName, err := auth.LoadFromFile(c.APIKeysFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load API keys: %w", err)
	}
	if apiKeyToUserName == nil {
		log.Warn("API keys file not set, authentication is disabled")
	}
	return newRouter(log, extract.New(log, completer, templates), apiKeyToUserName), nil
}

func (c ServeCommand) Run(ctx context.Context) (err error) {
	log := getLogger(c.LogLevel)

	// Configuration errors, such as a missing API key, stop the server before it listens.
	h, err := c.newHandler(log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &http.Server{
		Addr:              c.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		log.Info("Listening", slog.String("addr", c.ListenAddr), slog.String("backend", c.Backend))
		errs <- c.listen(log, s)
	}()

	select {
	case err = <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), completion.Timeout)
	defer cancel()
	if err = s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err = <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (c ServeCommand) listen(log *slog.Logger, s *http.Server) error {
	if c.TLSCertFile != "" && c.TLSKeyFile != "" {
		log.Info("Enabling TLS mode")
		cert, err := tls.LoadX509KeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("failed to load cert: %w", err)
		}
		s.TLSConfig = &tls.Config{
			MinVersion:   tls.VersionTLS12,
			Certificates: []tls.Certificate{cert},
		}
		return s.ListenAndServeTLS(c.TLSCertFile, c.TLSKeyFile)
	}
	return s.ListenAndServe()
}
