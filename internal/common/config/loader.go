// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "jobsearch-ops/internal/common/errors"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SERVER_PORT, SERVICES_APOLLO_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay (config.development.yaml etc.)
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Env overrides run before defaults so an injected PORT beats 8080.
	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory, its parents, or the
// module root, so the binaries behave the same from any directory.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string config values. A
// placeholder whose variable is unset collapses to the empty string rather
// than surviving as a literal "${VAR}": downstream checks treat empty as
// "not set", and a literal placeholder would read as a set-but-malformed
// value instead.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				if expanded := os.ExpandEnv(strVal); expanded != strVal {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills fields that are still empty from the flat env
// names the assistant's README declares.
func overrideEmptyConfig(cfg *Config) {
	envOverrides := []struct {
		target *string
		key    string
	}{
		{&cfg.Cloud.Project, "GOOGLE_CLOUD_PROJECT"},
		{&cfg.Cloud.Location, "GOOGLE_CLOUD_LOCATION"},
		{&cfg.OAuth.ClientFile, "GOOGLE_OAUTH_CLIENT_FILE"},
		{&cfg.OAuth.TokenFile, "GOOGLE_OAUTH_TOKEN_FILE"},
		{&cfg.Workspace.SpreadsheetID, "SPREADSHEET_ID"},
		{&cfg.Workspace.DriveFolderID, "DRIVE_FOLDER_ID"},
		{&cfg.Services.Apollo.APIKey, "APOLLO_API_KEY"},
		{&cfg.Services.ElevenLabs.APIKey, "ELEVENLABS_API_KEY"},
		{&cfg.Sessions.URI, "SESSION_SERVICE_URI"},
		{&cfg.App.Name, "APP_NAME"},
	}

	for _, o := range envOverrides {
		if *o.target == "" {
			if val := os.Getenv(o.key); val != "" {
				*o.target = val
			}
		}
	}

	if cfg.Server.Port == 0 {
		if val := os.Getenv("PORT"); val != "" {
			var port int
			if _, err := fmt.Sscanf(val, "%d", &port); err == nil && port > 0 {
				cfg.Server.Port = port
			}
		}
	}
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "jobsearch-assistant"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	// Server defaults: Cloud Run contract is 0.0.0.0:$PORT, default 8080
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15000
	}

	// Session store defaults to the same /tmp path the agent runtime uses
	if cfg.Sessions.URI == "" {
		cfg.Sessions.URI = "sqlite:///tmp/sessions.db"
	}

	// Toolchain defaults
	if cfg.Toolchain.Binary == "" {
		cfg.Toolchain.Binary = "tectonic"
	}
	if cfg.Toolchain.Package == "" {
		cfg.Toolchain.Package = "tectonic"
	}
	if cfg.Toolchain.Timeout == 0 {
		cfg.Toolchain.Timeout = 600000
	}

	// Doctor defaults
	if cfg.Doctor.RegistryPath == "" {
		cfg.Doctor.RegistryPath = "configs/check-registry.json"
	}
	if cfg.Doctor.Interval == 0 {
		cfg.Doctor.Interval = 300000
	}
	if cfg.Doctor.CheckTimeout == 0 {
		cfg.Doctor.CheckTimeout = 10000
	}

	// Service defaults
	if cfg.Services.Apollo.BaseURL == "" {
		cfg.Services.Apollo.BaseURL = "https://api.apollo.io"
	}
	if cfg.Services.Apollo.Timeout == 0 {
		cfg.Services.Apollo.Timeout = 5000
	}
	if cfg.Services.ElevenLabs.BaseURL == "" {
		cfg.Services.ElevenLabs.BaseURL = "https://api.elevenlabs.io"
	}
	if cfg.Services.ElevenLabs.Timeout == 0 {
		cfg.Services.ElevenLabs.Timeout = 5000
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return apperrors.NewConfigInvalidError(fmt.Sprintf("server.port %d is out of range", cfg.Server.Port))
	}

	if _, err := cfg.Sessions.Path(); err != nil {
		return apperrors.NewConfigInvalidError(fmt.Sprintf("sessions.uri is invalid: %s", err))
	}

	if cfg.Toolchain.Binary == "" {
		return apperrors.NewConfigInvalidError("toolchain.binary is required")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
