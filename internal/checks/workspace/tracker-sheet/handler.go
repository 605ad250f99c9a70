// internal/checks/workspace/tracker-sheet/handler.go
package trackersheet

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/models"
)

const (
	CheckID  = "tracker-sheet"
	Category = "workspace"
)

// Drive file IDs are URL-safe base64-ish strings, typically 33-44 chars.
var driveIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,80}$`)

type Config struct {
	SpreadsheetID string
}

func LoadConfig(spreadsheetID string) *Config {
	return &Config{SpreadsheetID: spreadsheetID}
}

// Handler verifies the job-listings tracker spreadsheet ID is configured.
// The ID's existence on Drive is not verified; that would need an API call.
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

	if h.config.SpreadsheetID == "" {
		result.Status = models.StatusFail
		result.Detail = "SPREADSHEET_ID is not set; the tracker sheet cannot be located"
		return result
	}

	result.Observed = map[string]interface{}{"spreadsheetId": h.config.SpreadsheetID}

	if !driveIDPattern.MatchString(h.config.SpreadsheetID) {
		result.Status = models.StatusFail
		result.Detail = fmt.Sprintf("SPREADSHEET_ID %q does not look like a Drive file ID", h.config.SpreadsheetID)
		return result
	}

	result.Status = models.StatusPass
	result.Detail = "tracker sheet configured"
	return result
}
