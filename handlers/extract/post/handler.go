package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/a-h/kwextract/auth"
	"github.com/a-h/kwextract/completion"
	"github.com/a-h/kwextract/models"
	"github.com/a-h/kwextract/reqlog"
	"github.com/a-h/kwextract/sanitize"
	"github.com/a-h/respond"
)

const maxBodyBytes = 1 << 20

// Messages returned in the error field of a response.
const (
	MsgInvalidJSON = "Invalid JSON request"
	MsgMissingText = "Missing text or paragraph field"
	MsgUpstream    = "OpenRouter API error"
	MsgNoValidJSON = "No valid JSON found"
	MsgBackend     = "Backend error"
)

type Extractor interface {
	Extract(ctx context.Context, text string) (models.ExtractResponse, error)
}

func New(log *slog.Logger, extractor Extractor) Handler {
	return Handler{
		log:       log,
		extractor: extractor,
	}
}

type Handler struct {
	log       *slog.Logger
	extractor Extractor
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := h.log
	if id, ok := reqlog.GetRequestID(r); ok {
		log = log.With(slog.String("requestID", id))
	}
	if user, ok := auth.GetUser(r); ok {
		log = log.With(slog.String("user", user))
	}

	defer func() {
		if p := recover(); p != nil {
			log.Error("panic while extracting keywords", slog.Any("panic", p))
			respond.WithJSON(w, models.ErrorResponse{Error: MsgBackend, Details: fmt.Sprint(p)}, http.StatusInternalServerError)
		}
	}()

	text, err := decodeInput(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		log.Warn("failed to decode body", slog.Any("error", err))
		respond.WithJSON(w, models.ErrorResponse{Error: MsgInvalidJSON}, http.StatusBadRequest)
		return
	}
	if text == "" {
		respond.WithJSON(w, models.ErrorResponse{Error: MsgMissingText}, http.StatusBadRequest)
		return
	}

	result, err := h.extractor.Extract(r.Context(), text)
	if err != nil {
		log.Error("failed to extract keywords", slog.Any("error", err))
		resp, status := errorResponse(err)
		respond.WithJSON(w, resp, status)
		return
	}
	respond.WithJSON(w, result, http.StatusOK)
}

// decodeInput reads a single JSON object and returns the "text" field, or the
// "paragraph" field if text is absent, null or empty. Keys match exactly, and
// only the field that is used must be a string.
func decodeInput(r io.Reader) (text string, err error) {
	dec := json.NewDecoder(r)
	var fields map[string]json.RawMessage
	if err = dec.Decode(&fields); err != nil {
		return "", err
	}
	if fields == nil {
		return "", errors.New("request body is not a JSON object")
	}
	if err = dec.Decode(&struct{}{}); err != io.EOF {
		return "", errors.New("unexpected data after JSON object")
	}
	for _, key := range []string{"text", "paragraph"} {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var v *string
		if err = json.Unmarshal(raw, &v); err != nil {
			return "", fmt.Errorf("invalid %s field: %w", key, err)
		}
		if v != nil && *v != "" {
			return *v, nil
		}
	}
	return "", nil
}

// errorResponse maps pipeline errors to the response body. Every failure after
// the request has been validated is a 500; only the body differs.
func errorResponse(err error) (resp models.ErrorResponse, status int) {
	var ue *completion.UpstreamError
	if errors.As(err, &ue) {
		return models.ErrorResponse{Error: MsgUpstream, Details: ue.Body}, http.StatusInternalServerError
	}
	var nje *sanitize.NoJSONError
	if errors.As(err, &nje) {
		return models.ErrorResponse{Error: MsgNoValidJSON, RawOutput: nje.Raw}, http.StatusInternalServerError
	}
	return models.ErrorResponse{Error: MsgBackend, Details: err.Error()}, http.StatusInternalServerError
}
