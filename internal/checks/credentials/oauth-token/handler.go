// internal/checks/credentials/oauth-token/handler.go
package oauthtoken

import (
	"context"
	"fmt"
	"time"

	"jobsearch-ops/internal/common/auth"
	apperrors "jobsearch-ops/internal/common/errors"
	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/models"
)

const (
	CheckID  = "oauth-token"
	Category = "credentials"
)

// Handler inspects the token.json written by the one-time consent flow.
// Problems here are warnings, not failures: a refresh token can still mint
// a fresh access token, and a missing file just means the consent flow has
// not been run on this machine yet.
type Handler struct {
	config *Config
	logger logger.Logger
	now    func() time.Time
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"checkId": CheckID}),
		now:    time.Now,
	}
}

func (h *Handler) ID() string { return CheckID }

func (h *Handler) Run(ctx context.Context) *models.CheckResult {
	start := time.Now()
	result := &models.CheckResult{
		ID:       CheckID,
		Category: Category,
	}
	defer func() { result.Duration = time.Since(start) }()

	if h.config.Path == "" {
		result.Status = models.StatusWarn
		result.Detail = "GOOGLE_OAUTH_TOKEN_FILE is not set; run the consent flow to create one"
		return result
	}

	tok, err := auth.LoadToken(h.config.Path)
	if err != nil {
		stdErr := apperrors.NewCredentialsFileMissingError(h.config.Path)
		result.Status = models.StatusWarn
		result.Code = stdErr.Code
		result.Detail = fmt.Sprintf("token file %s missing or unreadable; re-run the consent flow", h.config.Path)
		result.Error = err.Error()
		return result
	}

	result.Observed = map[string]interface{}{
		"scopes":          tok.Scopes,
		"hasRefreshToken": tok.HasRefreshToken(),
	}

	if !tok.HasRefreshToken() {
		result.Status = models.StatusWarn
		result.Detail = "token has no refresh token; consent flow must be re-run once the access token lapses"
		return result
	}

	if exp, ok := tok.ExpiryTime(); ok {
		result.Observed["expiry"] = exp.Format(time.RFC3339)
		if h.now().Add(h.config.ExpiryGrace).After(exp) {
			stdErr := apperrors.NewTokenExpiredError(exp)
			result.Status = models.StatusWarn
			result.Code = stdErr.Code
			result.Detail = fmt.Sprintf("access token expired or expiring (%s); refresh will be attempted on next use", exp.Format(time.RFC3339))
			return result
		}
	}

	result.Status = models.StatusPass
	result.Detail = fmt.Sprintf("token valid with %d scope(s)", len(tok.Scopes))
	return result
}
