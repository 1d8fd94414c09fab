package commands

import (
	"github.com/spf13/cobra"

	"github.com/vpcforge/vpcforge/cmd/vpcforge/handlers"
)

// Deploy returns the deploy command.
//
// The deploy command provisions the VPC described by the configuration
// file: the VPC itself, an internet gateway, public/private route tables,
// subnets, an optional NAT gateway, and security groups. On success the
// resulting resource identifiers are written to a state file, which is the
// input for teardown.
func Deploy() *cobra.Command {
	var (
		configPath string
		dryRun     bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the VPC network described by a configuration file",
		Long: `Deploy provisions the network infrastructure described by a YAML
configuration file, in fixed order:

  1. VPC (with DNS options and tags)
  2. Internet gateway (created and attached)
  3. Public and private route tables
  4. Subnets, associated with the route table matching their tier
  5. NAT gateway (if enabled and a public subnet exists)
  6. Security groups and their rules

The resulting resource identifiers are written to output/<vpc_name>-state.json,
which is the sole input required for teardown.

A step failure aborts the remaining steps. Nothing is rolled back and no
state file is written; already-created resources must be cleaned up manually.

Example:
  vpcforge deploy -c network.yaml
  vpcforge deploy -c network.yaml --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), configPath, dryRun, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to deployment configuration file (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate configuration without creating resources")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
