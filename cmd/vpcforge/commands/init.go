package commands

import (
	"github.com/spf13/cobra"

	"github.com/vpcforge/vpcforge/cmd/vpcforge/handlers"
)

// Init returns the command for interactively creating a deployment
// configuration.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a deployment configuration",
		Long: `Interactively create a deployment configuration file.

This command guides you through configuring a VPC deployment step by step:

  - Network identity (name, region, CIDR)
  - Subnet layout (public and private subnet counts)
  - NAT gateway for private subnets
  - Optional web security group

Subnet CIDRs and availability zones are derived from the VPC CIDR and
region automatically. Edit the generated file to adjust them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "network.yaml", "Output file path")

	return cmd
}
