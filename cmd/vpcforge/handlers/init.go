package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/vpcforge/vpcforge/internal/config"
	"github.com/vpcforge/vpcforge/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive configuration wizard.
	runWizard = wizard.Run

	// writeConfig writes the config to a file.
	writeConfig = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg, err := result.ToConfig()
	if err != nil {
		return fmt.Errorf("failed to build config: %w", err)
	}

	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("vpcforge - declarative AWS network deployments")
	fmt.Println("==============================================")
	fmt.Println()
	fmt.Println("This wizard creates a network configuration with sensible defaults.")
	fmt.Println("Subnet CIDRs are carved from the VPC CIDR automatically.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Network Summary")
	fmt.Println("---------------")
	fmt.Printf("  Name:    %s\n", cfg.VPCName)
	fmt.Printf("  Region:  %s\n", cfg.Region)
	fmt.Printf("  CIDR:    %s\n", cfg.CIDR)
	fmt.Printf("  Subnets: %d\n", len(cfg.Subnets))
	fmt.Printf("  NAT:     %t\n", cfg.NATGateway.Enabled)
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Println("  1. Set your AWS credentials:")
	fmt.Println("     export AWS_ACCESS_KEY_ID=<key> AWS_SECRET_ACCESS_KEY=<secret>")
	fmt.Println()
	fmt.Printf("  2. Review %s if needed\n", outputPath)
	fmt.Println()
	fmt.Println("  3. Validate, then deploy:")
	fmt.Printf("     vpcforge deploy -c %s --dry-run\n", outputPath)
	fmt.Printf("     vpcforge deploy -c %s\n", outputPath)
	fmt.Println()
}
