package main

import (
	"log/slog"
	"net/http"

	"github.com/a-h/kwextract/auth"
	extractpost "github.com/a-h/kwextract/handlers/extract/post"
	healthget "github.com/a-h/kwextract/handlers/health/get"
	"github.com/a-h/kwextract/reqlog"
	"github.com/rs/cors"
)

// newRouter wires the routes. The health check is never authenticated.
func newRouter(log *slog.Logger, extractor extractpost.Extractor, apiKeyToUserName map[string]string) http.Handler {
	api := http.NewServeMux()
	api.Handle("POST /extract_keywords", extractpost.New(log, extractor))

	mux := http.NewServeMux()
	mux.Handle("GET /health", healthget.New())
	mux.Handle("/", auth.Wrap(apiKeyToUserName, api))

	return reqlog.New(log, cors.AllowAll().Handler(mux))
}
