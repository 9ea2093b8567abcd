// Package auth optionally restricts the API to callers holding a known key.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/a-h/kwextract/models"
	"github.com/a-h/respond"
)

func New(apiKeyToUserName map[string]string, next http.Handler) *Auth {
	return &Auth{
		Next:             next,
		APIKeyToUserName: apiKeyToUserName,
	}
}

type Auth struct {
	Next             http.Handler
	APIKeyToUserName map[string]string
}

// LoadFromFile reads a JSON object of API keys to user names. An empty file
// name returns a nil map, which disables authentication.
func LoadFromFile(name string) (apiKeyToUserName map[string]string, err error) {
	if name == "" {
		return nil, nil
	}
	f, err := os.OpenFile(name, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m := make(map[string]string)
	if err = json.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode API keys file %s: %w", name, err)
	}
	return m, nil
}

// Wrap returns next unchanged if there are no API keys.
func Wrap(apiKeyToUserName map[string]string, next http.Handler) http.Handler {
	if len(apiKeyToUserName) == 0 {
		return next
	}
	return New(apiKeyToUserName, next)
}

type userContextKey int

const userKey userContextKey = 0

func GetUser(r *http.Request) (user string, ok bool) {
	user, ok = r.Context().Value(userKey).(string)
	return
}

func (a *Auth) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := a.APIKeyToUserName[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
	if !ok {
		respond.WithJSON(w, models.ErrorResponse{Error: "Unauthorized"}, http.StatusUnauthorized)
		return
	}
	r = r.WithContext(context.WithValue(r.Context(), userKey, user))
	a.Next.ServeHTTP(w, r)
}
