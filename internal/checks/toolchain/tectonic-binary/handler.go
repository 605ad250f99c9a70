// internal/checks/toolchain/tectonic-binary/handler.go
package tectonicbinary

import (
	"context"
	"fmt"
	"time"

	apperrors "jobsearch-ops/internal/common/errors"
	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/models"
)

// Handler verifies that the Tectonic LaTeX engine is on PATH. Resume
// rendering cannot work without it, so a miss is a fatal failure.
type Handler struct {
	config  *Config
	locator Locator
	logger  logger.Logger
}

func NewHandler(config *Config, locator Locator, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		locator: locator,
		logger:  log.WithFields(map[string]interface{}{"checkId": CheckID}),
	}
}

func (h *Handler) ID() string { return CheckID }

func (h *Handler) Run(ctx context.Context) *models.CheckResult {
	start := time.Now()
	result := &models.CheckResult{
		ID:       CheckID,
		Category: Category,
	}

	path, err := h.locator.LookPath(h.config.Binary)
	if err != nil {
		stdErr := apperrors.NewTectonicNotFoundError(h.config.Binary)
		result.Status = models.StatusFail
		result.Code = stdErr.Code
		result.Detail = fmt.Sprintf("%s not found on PATH; run the tectonic-installer tool", h.config.Binary)
		result.Error = err.Error()
		result.Duration = time.Since(start)
		return result
	}

	result.Status = models.StatusPass
	result.Detail = fmt.Sprintf("%s available at %s", h.config.Binary, path)
	result.Observed = map[string]interface{}{"path": path}

	version, err := h.locator.Output(ctx, h.config.Binary, "--version")
	if err != nil {
		// Present but not runnable is still worth surfacing.
		result.Status = models.StatusWarn
		result.Detail = fmt.Sprintf("%s found at %s but --version failed", h.config.Binary, path)
		result.Error = err.Error()
	} else {
		result.Observed["version"] = version
	}

	result.Duration = time.Since(start)
	return result
}
