// internal/checks/services/api-keys/handler.go
package apikeys

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "jobsearch-ops/internal/common/errors"
	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/models"
)

// Handler verifies the external-service API keys are present and, when
// probing is enabled, that each service's base URL answers. Keys are never
// sent anywhere; the probe is an unauthenticated HEAD. Probes do not retry.
type Handler struct {
	config *Config
	prober Prober
	logger logger.Logger
}

func NewHandler(config *Config, prober Prober, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		prober: prober,
		logger: log.WithFields(map[string]interface{}{"checkId": CheckID}),
	}
}

func (h *Handler) ID() string { return CheckID }

func (h *Handler) Run(ctx context.Context) *models.CheckResult {
	start := time.Now()
	result := &models.CheckResult{
		ID:       CheckID,
		Category: Category,
		Observed: map[string]interface{}{},
	}
	defer func() { result.Duration = time.Since(start) }()

	var missing []string
	var unreachable []string

	for _, svc := range h.config.Services {
		if svc.APIKey == "" {
			missing = append(missing, svc.EnvKey)
			result.Observed[svc.Name] = "key missing"
			continue
		}
		result.Observed[svc.Name] = "key set"

		if !h.config.ProbeEnabled || svc.BaseURL == "" {
			continue
		}

		probeCtx, cancel := context.WithTimeout(ctx, h.config.ProbeTimeout)
		status, err := h.prober.Head(probeCtx, svc.BaseURL)
		cancel()

		if err != nil {
			stdErr := apperrors.NewProbeFailedError(svc.Name, err)
			if errors.Is(err, context.DeadlineExceeded) {
				stdErr = apperrors.NewProbeTimeoutError(svc.Name)
			}
			if result.Code == "" {
				result.Code = stdErr.Code
			}
			unreachable = append(unreachable, svc.Name)
			result.Observed[svc.Name] = fmt.Sprintf("key set, probe failed: %v", err)
			continue
		}
		// 4xx still proves the host answers; only 5xx counts as down.
		if status >= 500 {
			unreachable = append(unreachable, svc.Name)
			result.Observed[svc.Name] = fmt.Sprintf("key set, probe returned %d", status)
			continue
		}
		result.Observed[svc.Name] = fmt.Sprintf("key set, reachable (%d)", status)
	}

	switch {
	case len(missing) > 0:
		result.Status = models.StatusFail
		result.Detail = fmt.Sprintf("missing API keys: %s", strings.Join(missing, ", "))
	case len(unreachable) > 0:
		result.Status = models.StatusWarn
		result.Detail = fmt.Sprintf("services unreachable: %s", strings.Join(unreachable, ", "))
	default:
		result.Status = models.StatusPass
		result.Detail = fmt.Sprintf("%d service key(s) configured", len(h.config.Services))
	}

	return result
}
