// internal/checks/credentials/oauth-client/handler.go
package oauthclient

import (
	"context"
	"fmt"
	"os"
	"time"

	"jobsearch-ops/internal/common/auth"
	apperrors "jobsearch-ops/internal/common/errors"
	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/common/validation"
	"jobsearch-ops/internal/models"
)

// Handler verifies the OAuth client-secrets file: present, valid JSON, and
// shaped like an installed/web client. No OAuth flow is performed.
type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"checkId": CheckID}),
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
		result.Status = models.StatusFail
		result.Detail = "GOOGLE_OAUTH_CLIENT_FILE is not set"
		return result
	}

	data, err := os.ReadFile(h.config.Path)
	if err != nil {
		stdErr := apperrors.NewCredentialsFileMissingError(h.config.Path)
		result.Status = models.StatusFail
		result.Code = stdErr.Code
		result.Detail = fmt.Sprintf("client secrets file %s not readable", h.config.Path)
		result.Error = err.Error()
		return result
	}

	vres, err := validation.ValidateJSON(data, clientSecretsSchema)
	if err != nil {
		stdErr := apperrors.NewCredentialsInvalidError(err.Error())
		result.Status = models.StatusFail
		result.Code = stdErr.Code
		result.Detail = "client secrets validation could not run"
		result.Error = stdErr.Details
		return result
	}
	if !vres.Valid {
		stdErr := apperrors.NewCredentialsInvalidError(vres.Summary())
		result.Status = models.StatusFail
		result.Code = stdErr.Code
		result.Detail = "client secrets file failed schema validation"
		result.Error = stdErr.Details
		return result
	}

	secrets, err := auth.LoadClientSecrets(h.config.Path)
	if err != nil {
		stdErr := apperrors.NewCredentialsInvalidError(err.Error())
		result.Status = models.StatusFail
		result.Code = stdErr.Code
		result.Detail = "client secrets file could not be parsed"
		result.Error = stdErr.Details
		return result
	}

	block := secrets.Block()
	result.Status = models.StatusPass
	result.Detail = fmt.Sprintf("%s OAuth client configured", secrets.Kind())
	result.Observed = map[string]interface{}{
		"kind":      secrets.Kind(),
		"projectId": block.ProjectID,
	}
	return result
}
