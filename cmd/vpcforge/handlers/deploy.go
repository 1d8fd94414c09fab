// Package handlers implements the business logic for CLI commands.
//
// Handler functions are called by the command definitions in the commands
// package. They are framework-agnostic and can be tested independently of
// the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/vpcforge/vpcforge/internal/config"
	"github.com/vpcforge/vpcforge/internal/platform/aws"
	"github.com/vpcforge/vpcforge/internal/provisioning"
	"github.com/vpcforge/vpcforge/internal/provisioning/deploy"
	"github.com/vpcforge/vpcforge/internal/state"
)

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads configuration from a file.
	loadConfigFile = config.LoadFile

	// newCloudClient creates the provider client for a region.
	newCloudClient = func(ctx context.Context, region string) (aws.ResourceManager, error) {
		return aws.NewRealClient(ctx, region)
	}

	// newFileStore creates the local state store.
	newFileStore = func() state.Store {
		return state.NewFileStore("")
	}

	// newMirrorStore creates the optional S3 state mirror.
	newMirrorStore = func(ctx context.Context, backend *config.StateBackendConfig) (state.Store, error) {
		return state.NewS3Store(ctx, backend)
	}
)

// Deploy provisions the network described by the configuration file.
//
// In dry-run mode the configuration CIDRs are validated and no provider
// client is created. Otherwise the full pipeline runs and, on success, the
// state file location and a resource summary are printed.
func Deploy(ctx context.Context, configPath string, dryRun, verbose bool) error {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log.Printf("Loaded configuration for VPC: %s (region %s)", cfg.VPCName, cfg.Region)

	provisioner := deploy.NewProvisioner()
	provisioner.DryRun = dryRun

	var cloud aws.ResourceManager
	if !dryRun {
		cloud, err = newCloudClient(ctx, cfg.Region)
		if err != nil {
			return err
		}

		if cfg.StateBackend != nil {
			mirror, err := newMirrorStore(ctx, cfg.StateBackend)
			if err != nil {
				return fmt.Errorf("failed to initialize state backend: %w", err)
			}
			provisioner.Mirror = mirror
		}
	}

	pCtx := provisioning.NewContext(ctx, cfg, cloud, newFileStore())
	pCtx.Observer = provisioning.NewConsoleObserver(verbose)

	location, err := provisioner.Deploy(pCtx)
	if err != nil {
		return fmt.Errorf("deployment failed: %w", err)
	}

	if !dryRun {
		printDeploySummary(pCtx.State, location)
	}
	return nil
}
