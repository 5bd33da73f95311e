package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtlib "github.com/cod-analytics/backend/internal/lib/jwt"
)

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwtlib.NewJWTMaker("test-secret-key")
	token, err := maker.GenerateToken("a@x.com", "Test User", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name           string
		header         string
		wantStatus     int
		wantNextCalled bool
	}{
		{
			name:           "valid token",
			header:         "Bearer " + token,
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:       "missing header",
			header:     "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no bearer prefix",
			header:     token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, "a@x.com", r.Context().Value(UserEmail))
				assert.Equal(t, "Test User", r.Context().Value(UserName))
			})

			req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			JWTMiddleware(maker, noopLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantNextCalled, nextCalled)
		})
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	maker := jwtlib.NewJWTMaker("test-secret-key")
	token, err := maker.GenerateToken("a@x.com", "Test User", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called")
	})
	JWTMiddleware(maker, noopLogger())(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminOnly(t *testing.T) {
	isAdmin := func(email string) bool { return email == "admin@x.com" }

	cases := []struct {
		name           string
		email          string
		wantStatus     int
		wantNextCalled bool
	}{
		{
			name:           "admin passes",
			email:          "admin@x.com",
			wantStatus:     http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:       "non admin forbidden",
			email:      "user@x.com",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing identity",
			email:      "",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
			if tc.email != "" {
				req = req.WithContext(context.WithValue(req.Context(), UserEmail, tc.email))
			}
			rr := httptest.NewRecorder()

			AdminOnly(isAdmin, noopLogger())(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantNextCalled, nextCalled)
		})
	}
}
