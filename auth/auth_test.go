package auth

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAuth(t *testing.T) {
	apiKeyToUserName := map[string]string{
		"test-api-key-1": "user-1",
		"test-api-key-2": "user-2",
	}
	tests := []struct {
		name           string
		req            func() *http.Request
		expectedStatus int
		expectedUser   string
	}{
		{
			name:           "no auth header returns 401",
			req:            func() *http.Request { return httptest.NewRequest("POST", "/extract_keywords", nil) },
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "auth header not in map returns 401",
			req: func() *http.Request {
				req := httptest.NewRequest("POST", "/extract_keywords", nil)
				req.Header.Set("Authorization", "Bearer not-in-map")
				return req
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "auth header in map returns 200",
			req: func() *http.Request {
				req := httptest.NewRequest("POST", "/extract_keywords", nil)
				req.Header.Set("Authorization", "Bearer test-api-key-1")
				return req
			},
			expectedStatus: http.StatusOK,
			expectedUser:   "user-1",
		},
		{
			name: "auth header doesn't need Bearer prefix",
			req: func() *http.Request {
				req := httptest.NewRequest("POST", "/extract_keywords", nil)
				req.Header.Set("Authorization", "test-api-key-2")
				return req
			},
			expectedStatus: http.StatusOK,
			expectedUser:   "user-2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var user string
			var ok bool
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user, ok = GetUser(r)
				if !ok {
					t.Error("expected user to be set")
				}
				w.WriteHeader(http.StatusOK)
			})

			auth := New(apiKeyToUserName, h)
			w := httptest.NewRecorder()
			auth.ServeHTTP(w, tt.req())
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if user != tt.expectedUser {
				t.Errorf("expected user to be %s, got %s", tt.expectedUser, user)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	t.Run("no keys disables authentication", func(t *testing.T) {
		w := httptest.NewRecorder()
		Wrap(nil, next).ServeHTTP(w, httptest.NewRequest("POST", "/extract_keywords", nil))
		if w.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
		}
	})
	t.Run("keys enable authentication", func(t *testing.T) {
		w := httptest.NewRecorder()
		Wrap(map[string]string{"key": "user"}, next).ServeHTTP(w, httptest.NewRequest("POST", "/extract_keywords", nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "apikeys.json")
	if err := os.WriteFile(valid, []byte(`{"key-1": "user-1", "key-2": "user-2"}`), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`["key-1"]`), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	t.Run("an empty file name disables authentication", func(t *testing.T) {
		m, err := LoadFromFile("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m != nil {
			t.Errorf("expected nil map, got %v", m)
		}
	})
	t.Run("keys are loaded", func(t *testing.T) {
		m, err := LoadFromFile(valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		expected := map[string]string{"key-1": "user-1", "key-2": "user-2"}
		if diff := cmp.Diff(expected, m); diff != "" {
			t.Error(diff)
		}
	})
	t.Run("a missing file is an error", func(t *testing.T) {
		if _, err := LoadFromFile(filepath.Join(dir, "missing.json")); err == nil {
			t.Error("expected error, got nil")
		}
	})
	t.Run("a file that is not an object is an error", func(t *testing.T) {
		if _, err := LoadFromFile(invalid); err == nil {
			t.Error("expected error, got nil")
		}
	})
}
