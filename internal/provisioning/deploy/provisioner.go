// Package deploy sequences the deployment pipeline: network, gateways,
// route tables, subnets, security groups, and the final state export.
//
// A step failure aborts the remaining steps. Partial state accumulated so
// far is not rolled back and not persisted; state is exported only after
// every step succeeded. Recovery from a partial failure is a manual
// operation.
package deploy

import (
	"fmt"

	"github.com/vpcforge/vpcforge/internal/provisioning"
	"github.com/vpcforge/vpcforge/internal/state"
)

// Provisioner runs a deployment to completion or to the first fatal error.
type Provisioner struct {
	// DryRun validates CIDR syntax and returns without contacting the
	// provider.
	DryRun bool

	// Mirror, when set, additionally uploads the state document after a
	// successful deployment (e.g. to S3). A mirror failure is a warning,
	// not a deployment failure: the local state file is authoritative.
	Mirror state.Store
}

// NewProvisioner creates a deploy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Deploy executes the pipeline and returns the location the state document
// was written to. In dry-run mode it returns an empty location.
func (p *Provisioner) Deploy(ctx *provisioning.Context) (string, error) {
	if p.DryRun {
		ctx.Observer.Printf("Running in dry-run mode - no resources will be created")
		if err := provisioning.ValidateCIDRs(ctx.Config); err != nil {
			return "", err
		}
		ctx.Observer.Printf("Configuration is valid")
		return "", nil
	}

	phases := []provisioning.Phase{
		networkPhase{},
		internetGatewayPhase{},
		routeTablesPhase{},
		subnetsPhase{},
		natGatewayPhase{},
		securityGroupsPhase{},
	}

	if err := provisioning.RunPhases(ctx, phases); err != nil {
		return "", err
	}

	location, err := ctx.Store.Save(ctx, ctx.State, ctx.Config.VPCName)
	if err != nil {
		return "", fmt.Errorf("failed to persist state: %w", err)
	}
	ctx.Observer.Printf("State exported to: %s", location)

	if p.Mirror != nil {
		mirrorLoc, err := p.Mirror.Save(ctx, ctx.State, ctx.Config.VPCName)
		if err != nil {
			provisioning.LogWarning(ctx.Observer, "export", fmt.Sprintf("state mirror failed: %v", err))
		} else {
			ctx.Observer.Printf("State mirrored to: %s", mirrorLoc)
		}
	}

	return location, nil
}
