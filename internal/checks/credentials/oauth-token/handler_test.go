// internal/checks/credentials/oauth-token/handler_test.go
package oauthtoken

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "jobsearch-ops/internal/common/errors"
	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/models"
)

func writeToken(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func tokenJSON(refreshToken, expiry string) string {
	return fmt.Sprintf(`{
  "token": "ya29.access",
  "refresh_token": %q,
  "token_uri": "https://oauth2.googleapis.com/token",
  "client_id": "1234567890-abc.apps.googleusercontent.com",
  "client_secret": "GOCSPX-secret",
  "scopes": ["https://www.googleapis.com/auth/spreadsheets", "https://www.googleapis.com/auth/drive"],
  "expiry": %q
}`, refreshToken, expiry)
}

func createHandler(t *testing.T, path string, now time.Time) *Handler {
	t.Helper()
	handler := NewHandler(&Config{Path: path, ExpiryGrace: 5 * time.Minute}, logger.NewTestLogger(t))
	handler.now = func() time.Time { return now }
	return handler
}

func TestRun(t *testing.T) {
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		content        string
		expectedStatus models.Status
		expectedCode   apperrors.ErrorCode
	}{
		{
			name:           "valid token with headroom",
			content:        tokenJSON("1//refresh", now.Add(time.Hour).Format(time.RFC3339)),
			expectedStatus: models.StatusPass,
		},
		{
			name:           "naive expiry layout from the consent flow",
			content:        tokenJSON("1//refresh", now.Add(time.Hour).Format("2006-01-02T15:04:05.999999")),
			expectedStatus: models.StatusPass,
		},
		{
			name:           "expired access token",
			content:        tokenJSON("1//refresh", now.Add(-time.Hour).Format(time.RFC3339)),
			expectedStatus: models.StatusWarn,
			expectedCode:   apperrors.ErrCodeTokenExpired,
		},
		{
			name:           "expiring within grace window",
			content:        tokenJSON("1//refresh", now.Add(2*time.Minute).Format(time.RFC3339)),
			expectedStatus: models.StatusWarn,
			expectedCode:   apperrors.ErrCodeTokenExpired,
		},
		{
			name:           "no refresh token",
			content:        tokenJSON("", now.Add(time.Hour).Format(time.RFC3339)),
			expectedStatus: models.StatusWarn,
		},
		{
			name:           "unparseable file",
			content:        "{broken",
			expectedStatus: models.StatusWarn,
			expectedCode:   apperrors.ErrCodeCredentialsFileMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := createHandler(t, writeToken(t, tt.content), now)

			result := handler.Run(context.Background())

			assert.Equal(t, CheckID, result.ID)
			assert.Equal(t, tt.expectedStatus, result.Status)
			assert.Equal(t, tt.expectedCode, result.Code)
		})
	}
}

func TestRun_MissingConfiguration(t *testing.T) {
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)

	t.Run("path not set", func(t *testing.T) {
		handler := createHandler(t, "", now)

		result := handler.Run(context.Background())
		assert.Equal(t, models.StatusWarn, result.Status)
		assert.Contains(t, result.Detail, "GOOGLE_OAUTH_TOKEN_FILE")
	})

	t.Run("file absent", func(t *testing.T) {
		handler := createHandler(t, filepath.Join(t.TempDir(), "token.json"), now)

		result := handler.Run(context.Background())
		assert.Equal(t, models.StatusWarn, result.Status)
		assert.Equal(t, apperrors.ErrCodeCredentialsFileMissing, result.Code)
		assert.NotEmpty(t, result.Error)
	})
}

func TestRun_ObservedScopes(t *testing.T) {
	now := time.Date(2026, 8, 14, 10, 0, 0, 0, time.UTC)
	handler := createHandler(t, writeToken(t, tokenJSON("1//refresh", now.Add(time.Hour).Format(time.RFC3339))), now)

	result := handler.Run(context.Background())
	require.NotNil(t, result.Observed)

	assert.Equal(t, true, result.Observed["hasRefreshToken"])
	assert.Contains(t, result.Detail, "2 scope(s)")
}
