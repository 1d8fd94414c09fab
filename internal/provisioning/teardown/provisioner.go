// Package teardown deletes deployed resources in reverse dependency order:
// NAT gateway, internet gateway, subnets, route tables, security groups,
// and finally the VPC.
package teardown

import (
	"fmt"
	"sort"
	"time"

	"github.com/vpcforge/vpcforge/internal/provisioning"
	"github.com/vpcforge/vpcforge/internal/provisioning/gateway"
	"github.com/vpcforge/vpcforge/internal/provisioning/security"
	"github.com/vpcforge/vpcforge/internal/provisioning/topology"
)

// Provisioner drives teardown of a loaded deployment state. A failure in
// any step halts the remaining deletions; the state file is not rewritten,
// so a retried teardown re-attempts already-deleted resources.
type Provisioner struct {
	// NATDeletionGrace is forwarded to the gateway provisioner; tests
	// set it to zero.
	NATDeletionGrace time.Duration
}

// NewProvisioner creates a teardown provisioner with the default NAT
// deletion grace period.
func NewProvisioner() *Provisioner {
	return &Provisioner{NATDeletionGrace: gateway.DefaultDeletionGrace}
}

// Teardown deletes every resource recorded in ctx.State.
func (p *Provisioner) Teardown(ctx *provisioning.Context) error {
	st := ctx.State
	builder := topology.NewBuilder(ctx.Cloud, ctx.Observer)
	gateways := gateway.NewProvisioner(ctx.Cloud, ctx.Observer)
	gateways.DeletionGrace = p.NATDeletionGrace
	applier := security.NewApplier(ctx.Cloud, ctx.Observer)

	if nat := st.Gateways.NATGateway; nat != nil {
		ctx.Observer.Printf("Deleting NAT gateway: %s", nat.ID)
		res, err := gateways.DeleteNATGateway(ctx, nat.ID)
		res.LogTo(ctx.Observer, "teardown")
		if err != nil {
			return fmt.Errorf("failed to delete NAT gateway %s: %w", nat.ID, err)
		}
	}

	if igw := st.Gateways.InternetGateway; igw != "" {
		ctx.Observer.Printf("Deleting internet gateway: %s", igw)
		if err := gateways.DeleteInternetGateway(ctx, igw, st.VPCID); err != nil {
			return fmt.Errorf("failed to delete internet gateway %s: %w", igw, err)
		}
	}

	for _, name := range st.SubnetNames() {
		rec := st.Subnets[name]
		ctx.Observer.Printf("Deleting subnet: %s", name)
		if err := builder.DeleteSubnet(ctx, rec.ID); err != nil {
			return fmt.Errorf("failed to delete subnet %s: %w", name, err)
		}
	}

	for _, tier := range sortedKeys(st.RouteTables) {
		ctx.Observer.Printf("Deleting route table: %s", tier)
		if err := builder.DeleteRouteTable(ctx, st.RouteTables[tier]); err != nil {
			return fmt.Errorf("failed to delete route table %s: %w", tier, err)
		}
	}

	for _, name := range sortedKeys(st.SecurityGroups) {
		ctx.Observer.Printf("Deleting security group: %s", name)
		if err := applier.DeleteSecurityGroup(ctx, st.SecurityGroups[name]); err != nil {
			return fmt.Errorf("failed to delete security group %s: %w", name, err)
		}
	}

	if st.VPCID != "" {
		ctx.Observer.Printf("Deleting VPC: %s", st.VPCID)
		if err := builder.DeleteNetwork(ctx, st.VPCID); err != nil {
			return fmt.Errorf("failed to delete VPC %s: %w", st.VPCID, err)
		}
	}

	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
