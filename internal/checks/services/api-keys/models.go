// internal/checks/services/api-keys/models.go
package apikeys

import "context"

const (
	CheckID  = "api-keys"
	Category = "services"
)

// ServiceSpec describes one external service the assistant integrates with.
type ServiceSpec struct {
	Name   string
	EnvKey string
	APIKey string
	// BaseURL is probed for reachability when probing is enabled.
	BaseURL string
}

// Prober issues a reachability probe and returns the HTTP status code.
type Prober interface {
	Head(ctx context.Context, url string) (int, error)
}
