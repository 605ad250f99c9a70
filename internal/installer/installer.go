// internal/installer/installer.go
package installer

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	apperrors "jobsearch-ops/internal/common/errors"
	"jobsearch-ops/internal/common/logger"
)

// Status is the outcome of an install attempt.
type Status string

const (
	StatusAlreadyInstalled Status = "already-installed"
	StatusInstalled        Status = "installed"
	StatusDryRun           Status = "dry-run"
)

// Config holds the installer settings. GOOS and AsRoot default from the
// running process and exist so tests can pin them.
type Config struct {
	Binary  string
	Package string
	GOOS    string
	DryRun  bool
	AsRoot  bool
}

// Result describes what the installer did (or would do, for a dry run).
type Result struct {
	Status   Status     `json:"status"`
	Path     string     `json:"path,omitempty"`
	Version  string     `json:"version,omitempty"`
	Commands [][]string `json:"commands,omitempty"`
}

// Installer provisions the Tectonic LaTeX engine through the platform
// package manager.
type Installer struct {
	config *Config
	runner Runner
	logger logger.Logger
}

func New(config *Config, runner Runner, log logger.Logger) *Installer {
	if config.Binary == "" {
		config.Binary = "tectonic"
	}
	if config.Package == "" {
		config.Package = config.Binary
	}
	if config.GOOS == "" {
		config.GOOS = runtime.GOOS
	}
	return &Installer{
		config: config,
		runner: runner,
		logger: log.WithFields(map[string]interface{}{"component": "installer"}),
	}
}

// DetectRoot reports whether the process runs as root, which decides whether
// apt-get needs a sudo prefix.
func DetectRoot() bool {
	return os.Geteuid() == 0
}

// Install provisions the binary. When it is already on PATH no package
// manager is invoked; the result carries the resolved path and version.
func (i *Installer) Install(ctx context.Context) (*Result, error) {
	if path, err := i.runner.LookPath(i.config.Binary); err == nil {
		version, _ := i.runner.Output(ctx, i.config.Binary, "--version")
		i.logger.Info("binary already installed", map[string]interface{}{
			"binary":  i.config.Binary,
			"path":    path,
			"version": version,
		})
		return &Result{Status: StatusAlreadyInstalled, Path: path, Version: version}, nil
	}

	commands, err := i.planCommands()
	if err != nil {
		return nil, err
	}

	if i.config.DryRun {
		return &Result{Status: StatusDryRun, Commands: commands}, nil
	}

	for _, cmd := range commands {
		i.logger.Info("running install command", map[string]interface{}{
			"command": strings.Join(cmd, " "),
		})
		if err := i.runner.Run(ctx, cmd[0], cmd[1:]...); err != nil {
			return nil, apperrors.NewInstallCommandFailedError(strings.Join(cmd, " "), err)
		}
	}

	result := &Result{Status: StatusInstalled, Commands: commands}
	if path, err := i.runner.LookPath(i.config.Binary); err == nil {
		result.Path = path
		if version, err := i.runner.Output(ctx, i.config.Binary, "--version"); err == nil {
			result.Version = version
		}
	}
	return result, nil
}

// planCommands resolves the per-platform package manager dispatch.
func (i *Installer) planCommands() ([][]string, error) {
	switch i.config.GOOS {
	case "darwin":
		if _, err := i.runner.LookPath("brew"); err != nil {
			return nil, apperrors.NewPackageManagerMissingError("brew")
		}
		return [][]string{
			{"brew", "install", i.config.Package},
		}, nil

	case "linux":
		if _, err := i.runner.LookPath("apt-get"); err != nil {
			return nil, apperrors.NewPackageManagerMissingError("apt-get")
		}
		update := []string{"apt-get", "update"}
		install := []string{"apt-get", "install", "-y", i.config.Package}
		if !i.config.AsRoot {
			update = append([]string{"sudo"}, update...)
			install = append([]string{"sudo"}, install...)
		}
		return [][]string{update, install}, nil

	default:
		return nil, apperrors.NewUnsupportedPlatformError(i.config.GOOS)
	}
}

// ManualInstructions returns the fallback text printed when no automated
// install path exists for the platform.
func ManualInstructions(binary, goos string) string {
	return fmt.Sprintf(`No automated install path for %s on %s.

Install it manually:
  - Download a release from https://tectonic-typesetting.github.io/
  - Or use cargo: cargo install %s
  - Make sure the %s binary ends up on your PATH
`, binary, goos, binary, binary)
}
