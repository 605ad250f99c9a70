// internal/checks/credentials/oauth-token/config.go
package oauthtoken

import "time"

type Config struct {
	Path string
	// ExpiryGrace widens the expiry comparison so a token about to lapse is
	// reported before it actually does.
	ExpiryGrace time.Duration
}

func LoadConfig(path string) *Config {
	return &Config{
		Path:        path,
		ExpiryGrace: 5 * time.Minute,
	}
}
