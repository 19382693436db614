package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticValidator accepts the tokens in its map
type staticValidator map[string]uuid.UUID

type staticClaims uuid.UUID

func (c staticClaims) GetUserID() uuid.UUID { return uuid.UUID(c) }

func (v staticValidator) ValidateToken(token string) (UserIDGetter, error) {
	id, ok := v[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return staticClaims(id), nil
}

// captureUser records the user ID the wrapped handler sees
func captureUser(called *bool, got *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if id, err := GetUserID(r); err == nil {
			*got = id
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	userID := uuid.New()
	validator := staticValidator{"good-token": userID}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   uuid.UUID
	}{
		{"valid token", "Bearer good-token", http.StatusNoContent, userID},
		{"lowercase scheme", "bearer good-token", http.StatusNoContent, userID},
		{"extra whitespace", "Bearer   good-token ", http.StatusNoContent, userID},
		{"missing header", "", http.StatusUnauthorized, uuid.Nil},
		{"missing scheme", "good-token", http.StatusUnauthorized, uuid.Nil},
		{"basic scheme", "Basic good-token", http.StatusUnauthorized, uuid.Nil},
		{"scheme only", "Bearer", http.StatusUnauthorized, uuid.Nil},
		{"too many parts", "Bearer good-token extra", http.StatusUnauthorized, uuid.Nil},
		{"unknown token", "Bearer forged", http.StatusUnauthorized, uuid.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var got uuid.UUID
			handler := AuthMiddleware(validator)(captureUser(&called, &got))

			req := httptest.NewRequest(http.MethodGet, "/api/resumes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantUser, got)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.False(t, called, "handler should not be called")
				assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	userID := uuid.New()
	validator := staticValidator{"good-token": userID}

	tests := []struct {
		name     string
		header   string
		wantUser uuid.UUID
	}{
		{"anonymous", "", uuid.Nil},
		{"valid token", "Bearer good-token", userID},
		{"invalid token is anonymous", "Bearer forged", uuid.Nil},
		{"malformed header is anonymous", "Token good-token", uuid.Nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			var got uuid.UUID
			handler := OptionalAuth(validator)(captureUser(&called, &got))

			req := httptest.NewRequest(http.MethodGet, "/api/resumes/1/pdf", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.True(t, called)
			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Equal(t, tt.wantUser, got)
		})
	}
}

func TestGetUserID(t *testing.T) {
	t.Run("set by WithUserID", func(t *testing.T) {
		userID := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithUserID(req.Context(), userID))

		got, err := GetUserID(req)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("missing", func(t *testing.T) {
		got, err := GetUserID(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Error(t, err)
		assert.Equal(t, uuid.Nil, got)
	})

	t.Run("wrong type under key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), userIDKey, "not-a-uuid"))

		_, err := GetUserID(req)
		assert.Error(t, err)
	})

	t.Run("plain string key does not collide", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		//nolint:staticcheck // deliberately uses an untyped key
		req = req.WithContext(context.WithValue(req.Context(), "userID", uuid.New()))

		_, err := GetUserID(req)
		assert.Error(t, err)
	})
}
