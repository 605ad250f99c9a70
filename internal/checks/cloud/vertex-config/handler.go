// internal/checks/cloud/vertex-config/handler.go
package vertexconfig

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/models"
)

const (
	CheckID  = "vertex-config"
	Category = "cloud"
)

var (
	// Project IDs: 6-30 chars, lowercase letters, digits, hyphens, starting
	// with a letter.
	projectIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{4,28}[a-z0-9]$`)
	// Regions look like us-central1, europe-west4.
	locationPattern = regexp.MustCompile(`^[a-z]+-[a-z]+\d$`)
)

type Config struct {
	Project  string
	Location string
}

func LoadConfig(project, location string) *Config {
	return &Config{
		Project:  project,
		Location: location,
	}
}

// Handler verifies the Vertex AI project/location pair is set and shaped
// like real identifiers. No cloud API call is made.
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

	if h.config.Project == "" {
		result.Status = models.StatusFail
		result.Detail = "GOOGLE_CLOUD_PROJECT is not set"
		return result
	}
	if h.config.Location == "" {
		result.Status = models.StatusFail
		result.Detail = "GOOGLE_CLOUD_LOCATION is not set"
		return result
	}

	result.Observed = map[string]interface{}{
		"project":  h.config.Project,
		"location": h.config.Location,
	}

	// A malformed identifier is as fatal as a missing one: every Vertex AI
	// call the assistant makes would be rejected.
	if !projectIDPattern.MatchString(h.config.Project) {
		result.Status = models.StatusFail
		result.Detail = fmt.Sprintf("project %q does not look like a project ID", h.config.Project)
		return result
	}
	if !locationPattern.MatchString(h.config.Location) {
		result.Status = models.StatusFail
		result.Detail = fmt.Sprintf("location %q does not look like a region", h.config.Location)
		return result
	}

	result.Status = models.StatusPass
	result.Detail = fmt.Sprintf("project %s in %s", h.config.Project, h.config.Location)
	return result
}
