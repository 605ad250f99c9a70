// internal/installer/installer_test.go
package installer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "jobsearch-ops/internal/common/errors"
	"jobsearch-ops/internal/common/logger"
)

// ==========================
// Test Helper Functions
// ==========================

// fakeRunner records every invocation and answers LookPath from a fixed map.
type fakeRunner struct {
	paths    map[string]string // binary -> resolved path
	versions map[string]string // binary -> --version output
	runErr   map[string]error  // command name -> error
	ran      [][]string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		paths:    map[string]string{},
		versions: map[string]string{},
		runErr:   map[string]error{},
	}
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	if p, ok := f.paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.ran = append(f.ran, append([]string{name}, args...))
	if err, ok := f.runErr[name]; ok {
		return err
	}
	return nil
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	if v, ok := f.versions[name]; ok {
		return v, nil
	}
	return "", fmt.Errorf("no version for %s", name)
}

func createInstaller(t *testing.T, cfg *Config, runner Runner) *Installer {
	t.Helper()
	return New(cfg, runner, logger.NewTestLogger(t))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestInstall_AlreadyInstalled(t *testing.T) {
	runner := newFakeRunner()
	runner.paths["tectonic"] = "/usr/local/bin/tectonic"
	runner.versions["tectonic"] = "Tectonic 0.15.0"

	inst := createInstaller(t, &Config{Binary: "tectonic", GOOS: "linux"}, runner)

	result, err := inst.Install(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusAlreadyInstalled, result.Status)
	assert.Equal(t, "/usr/local/bin/tectonic", result.Path)
	assert.Equal(t, "Tectonic 0.15.0", result.Version)

	// The contract: a present binary means no package manager runs at all.
	assert.Empty(t, runner.ran)
}

func TestInstall_DarwinBrew(t *testing.T) {
	runner := newFakeRunner()
	runner.paths["brew"] = "/opt/homebrew/bin/brew"

	inst := createInstaller(t, &Config{Binary: "tectonic", GOOS: "darwin"}, runner)

	result, err := inst.Install(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusInstalled, result.Status)
	require.Len(t, runner.ran, 1)
	assert.Equal(t, []string{"brew", "install", "tectonic"}, runner.ran[0])
}

func TestInstall_LinuxAptGet(t *testing.T) {
	tests := []struct {
		name     string
		asRoot   bool
		expected [][]string
	}{
		{
			name:   "non-root uses sudo",
			asRoot: false,
			expected: [][]string{
				{"sudo", "apt-get", "update"},
				{"sudo", "apt-get", "install", "-y", "tectonic"},
			},
		},
		{
			name:   "root skips sudo",
			asRoot: true,
			expected: [][]string{
				{"apt-get", "update"},
				{"apt-get", "install", "-y", "tectonic"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newFakeRunner()
			runner.paths["apt-get"] = "/usr/bin/apt-get"
			runner.paths["sudo"] = "/usr/bin/sudo"

			inst := createInstaller(t, &Config{Binary: "tectonic", GOOS: "linux", AsRoot: tt.asRoot}, runner)

			result, err := inst.Install(context.Background())
			require.NoError(t, err)

			assert.Equal(t, StatusInstalled, result.Status)
			assert.Equal(t, tt.expected, runner.ran)
		})
	}
}

func TestInstall_DryRun(t *testing.T) {
	runner := newFakeRunner()
	runner.paths["apt-get"] = "/usr/bin/apt-get"

	inst := createInstaller(t, &Config{Binary: "tectonic", GOOS: "linux", AsRoot: true, DryRun: true}, runner)

	result, err := inst.Install(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StatusDryRun, result.Status)
	assert.Len(t, result.Commands, 2)
	assert.Empty(t, runner.ran, "dry run must not execute anything")
}

// ==========================
// Error Handling Tests
// ==========================

func TestInstall_Errors(t *testing.T) {
	tests := []struct {
		name         string
		goos         string
		paths        map[string]string
		runErr       map[string]error
		expectedCode apperrors.ErrorCode
	}{
		{
			name:         "darwin without brew",
			goos:         "darwin",
			expectedCode: apperrors.ErrCodePackageManagerMissing,
		},
		{
			name:         "linux without apt-get",
			goos:         "linux",
			expectedCode: apperrors.ErrCodePackageManagerMissing,
		},
		{
			name:         "unsupported platform",
			goos:         "windows",
			expectedCode: apperrors.ErrCodeUnsupportedPlatform,
		},
		{
			name:         "install command fails",
			goos:         "darwin",
			paths:        map[string]string{"brew": "/opt/homebrew/bin/brew"},
			runErr:       map[string]error{"brew": errors.New("exit status 1")},
			expectedCode: apperrors.ErrCodeInstallCommandFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := newFakeRunner()
			for k, v := range tt.paths {
				runner.paths[k] = v
			}
			for k, v := range tt.runErr {
				runner.runErr[k] = v
			}

			inst := createInstaller(t, &Config{Binary: "tectonic", GOOS: tt.goos, AsRoot: true}, runner)

			result, err := inst.Install(context.Background())
			require.Error(t, err)
			assert.Nil(t, result)

			var stdErr *apperrors.StandardError
			require.ErrorAs(t, err, &stdErr)
			assert.Equal(t, tt.expectedCode, stdErr.Code)
		})
	}
}

func TestManualInstructions(t *testing.T) {
	text := ManualInstructions("tectonic", "windows")
	assert.True(t, strings.Contains(text, "windows"))
	assert.True(t, strings.Contains(text, "cargo install tectonic"))
}

func TestNew_Defaults(t *testing.T) {
	inst := createInstaller(t, &Config{}, newFakeRunner())
	assert.Equal(t, "tectonic", inst.config.Binary)
	assert.Equal(t, "tectonic", inst.config.Package)
	assert.NotEmpty(t, inst.config.GOOS)
}
