// cmd/tools/env-doctor/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"jobsearch-ops/internal/common/config"
	"jobsearch-ops/internal/common/logger"
	"jobsearch-ops/internal/doctor"
	"jobsearch-ops/internal/models"
	"jobsearch-ops/pkg/registry"
)

func main() {
	configPath := flag.String("config", "", "Path to a config file (defaults to the configs/ search path)")
	registryPath := flag.String("registry", "", "Path to the check registry (defaults to doctor.registry_path)")
	jsonOut := flag.Bool("json", false, "Print the report as JSON")
	probe := flag.Bool("probe", false, "Enable HTTP reachability probes of external services")
	timeout := flag.Duration("timeout", 2*time.Minute, "Overall suite timeout")
	flag.Parse()

	zapLog := logger.New("warn", "console")
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	if *probe {
		cfg.Services.ProbeEnabled = true
	}
	if *registryPath != "" {
		cfg.Doctor.RegistryPath = *registryPath
	}

	reg, err := registry.LoadRegistry(cfg.Doctor.RegistryPath)
	if err != nil {
		zapLog.Fatal("check registry load failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	doc := doctor.BuildFromRegistry(cfg, reg, nil, log)
	report := doc.Run(ctx)

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printReport(report)
	}

	if !report.Healthy() {
		os.Exit(1)
	}
}

func printReport(report *models.Report) {
	fmt.Printf("Environment check %s (%d pass, %d warn, %d fail)\n\n",
		report.Status, report.Passed, report.Warned, report.Failed)

	for _, res := range report.Results {
		marker := "ok  "
		switch res.Status {
		case models.StatusWarn:
			marker = "warn"
		case models.StatusFail:
			marker = "FAIL"
		}
		fmt.Printf("[%s] %-16s %s\n", marker, res.ID, res.Detail)
		if res.Error != "" {
			fmt.Printf("       %s\n", res.Error)
		}
	}

	fmt.Println()
	if report.Healthy() {
		fmt.Println("Environment looks good.")
	} else {
		fmt.Println("Fatal problems found; fix the failures above before running the assistant.")
	}
}
