// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	apperrors "jobsearch-ops/internal/common/errors"
	"jobsearch-ops/internal/common/validation"
)

// LoadRegistry reads, validates, and parses a check-registry file.
func LoadRegistry(path string) (*CheckRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	result, err := validation.ValidateJSON(data, Schema)
	if err != nil {
		return nil, apperrors.NewRegistryInvalidError(err.Error())
	}
	if !result.Valid {
		return nil, apperrors.NewRegistryInvalidError(
			fmt.Sprintf("registry %s failed validation: %s", path, result.Summary()))
	}

	var reg CheckRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, apperrors.NewRegistryInvalidError(err.Error())
	}
	return &reg, nil
}

// SaveRegistry writes the registry back with a refreshed lastUpdated stamp.
func SaveRegistry(path string, reg *CheckRegistry) error {
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Find returns the definition with the given id, or nil.
func (r *CheckRegistry) Find(id string) *CheckDefinition {
	for i := range r.Checks {
		if r.Checks[i].ID == id {
			return &r.Checks[i]
		}
	}
	return nil
}

// Enabled returns the enabled definitions in registry order.
func (r *CheckRegistry) Enabled() []CheckDefinition {
	out := make([]CheckDefinition, 0, len(r.Checks))
	for _, c := range r.Checks {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}

// TimeoutOrDefault parses the definition timeout, falling back to def.
func (c *CheckDefinition) TimeoutOrDefault(def time.Duration) time.Duration {
	if c.Timeout == "" {
		return def
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
