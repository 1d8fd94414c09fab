// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the vpcforge CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vpcforge",
		Short: "Provision and tear down multi-tier VPC networks on AWS",
	}

	cmd.AddCommand(Init())
	cmd.AddCommand(Deploy())
	cmd.AddCommand(Teardown())
	cmd.AddCommand(Version())

	return cmd
}
