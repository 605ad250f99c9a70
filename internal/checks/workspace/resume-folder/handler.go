// internal/checks/workspace/resume-folder/handler.go
package resumefolder

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/models"
)

const (
	CheckID  = "resume-folder"
	Category = "workspace"
)

var driveIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,80}$`)

type Config struct {
	DriveFolderID string
}

func LoadConfig(driveFolderID string) *Config {
	return &Config{DriveFolderID: driveFolderID}
}

// Handler verifies the Drive resume-folder ID is configured. Registered as
// a warning-severity check: resume rendering still works locally without it.
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

	if h.config.DriveFolderID == "" {
		result.Status = models.StatusWarn
		result.Detail = "DRIVE_FOLDER_ID is not set; resumes will not sync to Drive"
		return result
	}

	result.Observed = map[string]interface{}{"driveFolderId": h.config.DriveFolderID}

	if !driveIDPattern.MatchString(h.config.DriveFolderID) {
		result.Status = models.StatusFail
		result.Detail = fmt.Sprintf("DRIVE_FOLDER_ID %q does not look like a Drive folder ID", h.config.DriveFolderID)
		return result
	}

	result.Status = models.StatusPass
	result.Detail = "resume folder configured"
	return result
}
