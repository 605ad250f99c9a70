// cmd/tools/tectonic-installer/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	apperrors "jobsearch-ops/internal/common/errors"
	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/installer"
)

func main() {
	binary := flag.String("binary", "tectonic", "Binary to look for on PATH")
	pkg := flag.String("package", "", "Package name to install (defaults to binary)")
	dryRun := flag.Bool("dry-run", false, "Print the install commands without running them")
	timeout := flag.Duration("timeout", 10*time.Minute, "Overall install timeout")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := "info"
	if *verbose {
		level = "debug"
	}
	log := logger.NewStructured(level, "console")

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	inst := installer.New(&installer.Config{
		Binary:  *binary,
		Package: *pkg,
		DryRun:  *dryRun,
		AsRoot:  installer.DetectRoot(),
	}, installer.NewExecRunner(), log)

	result, err := inst.Install(ctx)
	if err != nil {
		os.Exit(fail(log, *binary, err))
	}

	switch result.Status {
	case installer.StatusAlreadyInstalled:
		if result.Version != "" {
			fmt.Printf("%s already installed at %s (%s)\n", *binary, result.Path, result.Version)
		} else {
			fmt.Printf("%s already installed at %s\n", *binary, result.Path)
		}
	case installer.StatusDryRun:
		fmt.Println("Would run:")
		for _, cmd := range result.Commands {
			fmt.Printf("  %s\n", strings.Join(cmd, " "))
		}
	case installer.StatusInstalled:
		fmt.Printf("%s installed successfully", *binary)
		if result.Path != "" {
			fmt.Printf(" at %s", result.Path)
		}
		fmt.Println()
	}
}

// fail prints the diagnostic for the error and returns the exit code.
// Unsupported platforms additionally get the manual install instructions.
func fail(log logger.Logger, binary string, err error) int {
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) && stdErr.Code == apperrors.ErrCodeUnsupportedPlatform {
		fmt.Fprintln(os.Stderr, installer.ManualInstructions(binary, runtime.GOOS))
		return 1
	}

	handler := apperrors.NewErrorHandler(log)
	return handler.Handle(err)
}
