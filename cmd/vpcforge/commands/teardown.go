package commands

import (
	"github.com/spf13/cobra"

	"github.com/vpcforge/vpcforge/cmd/vpcforge/handlers"
)

// Teardown returns the teardown command.
//
// The teardown command deletes all resources recorded in a state file, in
// reverse dependency order: NAT gateway, internet gateway, subnets, route
// tables, security groups, and finally the VPC.
func Teardown() *cobra.Command {
	var (
		stateRef string
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "teardown",
		Short: "Delete all resources recorded in a state file",
		Long: `Teardown removes every resource recorded in a deployment state file.

Resources are deleted in reverse dependency order:
  NAT gateway (and its elastic IP) -> internet gateway -> subnets ->
  route tables -> security groups -> VPC

The state reference is a local file path or an s3://bucket/key URI when the
deployment used an S3 state backend.

A failure in any step halts the remaining deletions; the state file is not
rewritten, so re-running teardown re-attempts already-deleted resources.

Example:
  vpcforge teardown -s output/prod-secure-network-state.json

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Teardown(cmd.Context(), stateRef, verbose)
		},
	}

	cmd.Flags().StringVarP(&stateRef, "state-file", "s", "", "Path or s3:// URI of the deployment state file (required)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	_ = cmd.MarkFlagRequired("state-file")

	return cmd
}
