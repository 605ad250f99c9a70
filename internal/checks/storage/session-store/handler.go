// internal/checks/storage/session-store/handler.go
package sessionstore

import (
	"context"
	"fmt"
	"time"

	"jobsearch-ops/internal/common/config"
	"jobsearch-ops/internal/common/database"
	apperrors "jobsearch-ops/internal/common/errors"
	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/models"
)

const (
	CheckID  = "session-store"
	Category = "storage"
)

type Config struct {
	URI string
}

func LoadConfig(uri string) *Config {
	return &Config{URI: uri}
}

// OpenFunc opens the session-store database at a filesystem path. Tests
// substitute it to inject sqlmock-backed clients.
type OpenFunc func(path string) (*database.SQLiteClient, error)

// Handler verifies the SQLite session store is openable and writable by
// round-tripping a sentinel row. On Cloud Run the store lives under /tmp,
// the only writable path.
type Handler struct {
	config *Config
	open   OpenFunc
	logger logger.Logger
}

func NewHandler(cfg *Config, log logger.Logger) *Handler {
	return NewHandlerWithOpener(cfg, database.NewSQLite, log)
}

func NewHandlerWithOpener(cfg *Config, open OpenFunc, log logger.Logger) *Handler {
	return &Handler{
		config: cfg,
		open:   open,
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

	path, err := config.SessionsConfig{URI: h.config.URI}.Path()
	if err != nil {
		stdErr := apperrors.NewConfigInvalidError(err.Error())
		result.Status = models.StatusFail
		result.Code = stdErr.Code
		result.Detail = "session store URI is invalid"
		result.Error = err.Error()
		return result
	}

	result.Observed = map[string]interface{}{"path": path}

	client, err := h.open(path)
	if err != nil {
		stdErr := apperrors.NewSessionStoreUnavailableError(err)
		result.Status = models.StatusFail
		result.Code = stdErr.Code
		result.Detail = fmt.Sprintf("session store %s could not be opened", path)
		result.Error = err.Error()
		return result
	}
	defer client.Close()

	if err := h.roundTrip(ctx, client); err != nil {
		stdErr := apperrors.NewSessionStoreUnavailableError(err)
		result.Status = models.StatusFail
		result.Code = stdErr.Code
		result.Detail = fmt.Sprintf("session store %s is not writable", path)
		result.Error = err.Error()
		return result
	}

	result.Status = models.StatusPass
	result.Detail = fmt.Sprintf("session store writable at %s", path)
	return result
}

// roundTrip writes and removes a sentinel row in a scratch table so the
// check exercises real writes without touching the runtime's session tables.
func (h *Handler) roundTrip(ctx context.Context, client *database.SQLiteClient) error {
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}

	if _, err := client.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS ops_doctor_probe (id TEXT PRIMARY KEY, checked_at TEXT NOT NULL)`,
	); err != nil {
		return fmt.Errorf("create probe table: %w", err)
	}

	stamp := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := client.Exec(ctx,
		`INSERT OR REPLACE INTO ops_doctor_probe (id, checked_at) VALUES ('sentinel', ?)`, stamp,
	); err != nil {
		return fmt.Errorf("write sentinel: %w", err)
	}

	var got string
	if err := client.QueryRow(ctx,
		`SELECT checked_at FROM ops_doctor_probe WHERE id = 'sentinel'`,
	).Scan(&got); err != nil {
		return fmt.Errorf("read sentinel: %w", err)
	}
	if got != stamp {
		return fmt.Errorf("sentinel mismatch: wrote %s, read %s", stamp, got)
	}

	return nil
}
