// internal/checks/services/api-keys/config.go
package apikeys

import (
	"time"

	"jobsearch-ops/internal/common/config"
)

type Config struct {
	Services     []ServiceSpec
	ProbeEnabled bool
	ProbeTimeout time.Duration
}

// LoadConfig builds the service list from the assistant's integrations:
// Apollo for contact enrichment and ElevenLabs for voice.
func LoadConfig(services config.ServicesConfig) *Config {
	return &Config{
		Services: []ServiceSpec{
			{Name: "apollo", EnvKey: "APOLLO_API_KEY", APIKey: services.Apollo.APIKey, BaseURL: services.Apollo.BaseURL},
			{Name: "elevenlabs", EnvKey: "ELEVENLABS_API_KEY", APIKey: services.ElevenLabs.APIKey, BaseURL: services.ElevenLabs.BaseURL},
		},
		ProbeEnabled: services.ProbeEnabled,
		ProbeTimeout: 5 * time.Second,
	}
}
