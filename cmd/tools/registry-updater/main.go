// cmd/tools/registry-updater/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"jobsearch-ops/pkg/registry"
)

var registryPath string

func main() {
	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	// Add command flags
	idAdd := addCmd.String("id", "", "Check ID (e.g., tectonic-binary)")
	displayName := addCmd.String("displayName", "", "Display Name (e.g., Tectonic Binary)")
	description := addCmd.String("description", "", "Description")
	category := addCmd.String("category", "", "Category (e.g., toolchain)")
	severity := addCmd.String("severity", "warning", "Severity (fatal, warning)")
	enabled := addCmd.Bool("enabled", true, "Whether the check runs")
	timeout := addCmd.String("timeout", "10s", "Per-check timeout")
	probeURL := addCmd.String("probeUrl", "", "Optional probe URL")
	addCmd.StringVar(&registryPath, "path", "configs/check-registry.json", "Path to registry file")

	// Update command flags
	idUpdate := updateCmd.String("id", "", "Check ID to update")
	field := updateCmd.String("field", "", "Field to update (severity, enabled, timeout, description)")
	value := updateCmd.String("value", "", "New value for the field")
	updateCmd.StringVar(&registryPath, "path", "configs/check-registry.json", "Path to registry file")

	validateCmd.StringVar(&registryPath, "path", "configs/check-registry.json", "Path to registry file")
	listCmd.StringVar(&registryPath, "path", "configs/check-registry.json", "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add":
		addCmd.Parse(os.Args[2:])
		if *idAdd == "" || *displayName == "" || *category == "" {
			fmt.Println("Error: id, displayName, and category are required for add.")
			addCmd.Usage()
			os.Exit(1)
		}
		reg := loadOrExit()
		if reg.Find(*idAdd) != nil {
			fmt.Printf("Error: check %q already exists.\n", *idAdd)
			os.Exit(1)
		}
		reg.Checks = append(reg.Checks, registry.CheckDefinition{
			ID:          *idAdd,
			DisplayName: *displayName,
			Description: *description,
			Category:    *category,
			Severity:    *severity,
			Enabled:     *enabled,
			Timeout:     *timeout,
			ProbeURL:    *probeURL,
		})
		saveOrExit(reg)
		fmt.Printf("Added check %q.\n", *idAdd)

	case "update":
		updateCmd.Parse(os.Args[2:])
		if *idUpdate == "" || *field == "" {
			fmt.Println("Error: id and field are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		reg := loadOrExit()
		def := reg.Find(*idUpdate)
		if def == nil {
			fmt.Printf("Error: check %q not found.\n", *idUpdate)
			os.Exit(1)
		}
		switch *field {
		case "severity":
			def.Severity = *value
		case "enabled":
			b, err := strconv.ParseBool(*value)
			if err != nil {
				fmt.Printf("Error: enabled must be a bool, got %q.\n", *value)
				os.Exit(1)
			}
			def.Enabled = b
		case "timeout":
			def.Timeout = *value
		case "description":
			def.Description = *value
		default:
			fmt.Printf("Error: unknown field %q.\n", *field)
			os.Exit(1)
		}
		saveOrExit(reg)
		fmt.Printf("Updated %s.%s.\n", *idUpdate, *field)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if _, err := registry.LoadRegistry(registryPath); err != nil {
			fmt.Printf("Registry invalid: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry is valid.")

	case "list":
		listCmd.Parse(os.Args[2:])
		reg := loadOrExit()
		for _, c := range reg.Checks {
			state := "enabled"
			if !c.Enabled {
				state = "disabled"
			}
			fmt.Printf("%-16s %-12s %-8s %s\n", c.ID, c.Category, c.Severity, state)
		}

	default:
		help()
		os.Exit(1)
	}
}

func loadOrExit() *registry.CheckRegistry {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		fmt.Printf("Error loading registry: %v\n", err)
		os.Exit(1)
	}
	return reg
}

func saveOrExit(reg *registry.CheckRegistry) {
	if err := registry.SaveRegistry(registryPath, reg); err != nil {
		fmt.Printf("Error saving registry: %v\n", err)
		os.Exit(1)
	}
}

func help() {
	fmt.Println(`Usage: registry-updater <command> [flags]

Commands:
  add       Add a check definition to the registry
  update    Update a field of an existing check
  validate  Validate the registry against its schema
  list      List registered checks`)
}
