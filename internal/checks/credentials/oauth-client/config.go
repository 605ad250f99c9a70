// internal/checks/credentials/oauth-client/config.go
package oauthclient

type Config struct {
	Path string
}

func LoadConfig(path string) *Config {
	return &Config{Path: path}
}
