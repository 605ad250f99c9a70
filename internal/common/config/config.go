// internal/common/config/config.go
package config

import (
	"fmt"
	"strings"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Cloud     CloudConfig     `mapstructure:"cloud"`
	OAuth     OAuthConfig     `mapstructure:"oauth"`
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	Services  ServicesConfig  `mapstructure:"services"`
	Sessions  SessionsConfig  `mapstructure:"sessions"`
	Toolchain ToolchainConfig `mapstructure:"toolchain"`
	Doctor    DoctorConfig    `mapstructure:"doctor"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds settings for the HTTP surface exposed by ops-manager.
// Cloud Run injects PORT; 8080 is the local default.
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// Addr returns the host:port the server binds to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CloudConfig identifies the Vertex AI project the assistant runs against.
type CloudConfig struct {
	Project  string `mapstructure:"project"`
	Location string `mapstructure:"location"`
}

// OAuthConfig holds the file paths for the Google OAuth client and token.
type OAuthConfig struct {
	ClientFile string `mapstructure:"client_file"`
	TokenFile  string `mapstructure:"token_file"`
}

// WorkspaceConfig identifies the Drive/Sheets artifacts the assistant uses:
// the job-listings tracker spreadsheet and the resume folder.
type WorkspaceConfig struct {
	SpreadsheetID string `mapstructure:"spreadsheet_id"`
	DriveFolderID string `mapstructure:"drive_folder_id"`
}

// ServiceConfig holds settings for a single external API integration.
type ServiceConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// ServicesConfig holds settings for external API integrations.
type ServicesConfig struct {
	Apollo       ServiceConfig `mapstructure:"apollo"`
	ElevenLabs   ServiceConfig `mapstructure:"elevenlabs"`
	ProbeEnabled bool          `mapstructure:"probe_enabled"`
}

// SessionsConfig holds the session-store location. The URI follows the
// sqlite:///path/to/file.db form used by the agent runtime.
type SessionsConfig struct {
	URI string `mapstructure:"uri"`
}

// Path extracts the filesystem path from a sqlite:// URI. Any other scheme
// is an error.
func (s SessionsConfig) Path() (string, error) {
	const scheme = "sqlite://"
	if !strings.HasPrefix(s.URI, scheme) {
		return "", fmt.Errorf("unsupported session store URI %q: only sqlite:// is supported", s.URI)
	}
	path := strings.TrimPrefix(s.URI, scheme)
	if path == "" {
		return "", fmt.Errorf("session store URI %q has empty path", s.URI)
	}
	return path, nil
}

// ToolchainConfig holds settings for the Tectonic installer.
type ToolchainConfig struct {
	Binary  string `mapstructure:"binary"`
	Package string `mapstructure:"package"`
	Timeout int    `mapstructure:"timeout"` // milliseconds
}

// DoctorConfig holds settings for the check suite.
type DoctorConfig struct {
	RegistryPath string `mapstructure:"registry_path"`
	Interval     int    `mapstructure:"interval"`      // milliseconds between suite runs
	CheckTimeout int    `mapstructure:"check_timeout"` // milliseconds, default per check
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
