package deploy

import (
	"fmt"
	"sort"

	"github.com/vpcforge/vpcforge/internal/config"
	"github.com/vpcforge/vpcforge/internal/provisioning"
	"github.com/vpcforge/vpcforge/internal/provisioning/gateway"
	"github.com/vpcforge/vpcforge/internal/provisioning/security"
	"github.com/vpcforge/vpcforge/internal/provisioning/topology"
	"github.com/vpcforge/vpcforge/internal/state"
)

// defaultRouteCIDR matches all addresses; default routes direct unmatched
// traffic to a gateway.
const defaultRouteCIDR = "0.0.0.0/0"

// networkPhase creates the VPC.
type networkPhase struct{}

func (networkPhase) Name() string { return "network" }

func (networkPhase) Run(ctx *provisioning.Context) error {
	builder := topology.NewBuilder(ctx.Cloud, ctx.Observer)
	cfg := ctx.Config

	vpcID, err := builder.CreateNetwork(ctx, cfg.CIDR, cfg.VPCName,
		cfg.DNSHostnamesEnabled(), cfg.DNSSupportEnabled(), cfg.Tags)
	if err != nil {
		return err
	}

	ctx.State.VPCID = vpcID
	return nil
}

// internetGatewayPhase creates and attaches the internet gateway.
type internetGatewayPhase struct{}

func (internetGatewayPhase) Name() string { return "internet-gateway" }

func (internetGatewayPhase) Run(ctx *provisioning.Context) error {
	gateways := gateway.NewProvisioner(ctx.Cloud, ctx.Observer)

	gatewayID, err := gateways.CreateInternetGateway(ctx, ctx.State.VPCID, ctx.Config.VPCName+"-igw")
	if err != nil {
		return err
	}

	ctx.State.Gateways.InternetGateway = gatewayID
	return nil
}

// routeTablesPhase creates the public route table with its default route to
// the internet gateway, and the private route table. The private default
// route is added later, once the NAT gateway exists.
type routeTablesPhase struct{}

func (routeTablesPhase) Name() string { return "route-tables" }

func (routeTablesPhase) Run(ctx *provisioning.Context) error {
	builder := topology.NewBuilder(ctx.Cloud, ctx.Observer)
	cfg := ctx.Config

	publicRT, err := builder.CreateRouteTable(ctx, ctx.State.VPCID, cfg.VPCName+"-public-rt")
	if err != nil {
		return err
	}
	if err := builder.AddRoute(ctx, publicRT, defaultRouteCIDR, ctx.State.Gateways.InternetGateway, ""); err != nil {
		return err
	}
	ctx.State.RouteTables[config.TierPublic] = publicRT

	privateRT, err := builder.CreateRouteTable(ctx, ctx.State.VPCID, cfg.VPCName+"-private-rt")
	if err != nil {
		return err
	}
	ctx.State.RouteTables[config.TierPrivate] = privateRT

	return nil
}

// subnetsPhase creates every configured subnet in declaration order and
// associates each with the route table matching its tier.
type subnetsPhase struct{}

func (subnetsPhase) Name() string { return "subnets" }

func (subnetsPhase) Run(ctx *provisioning.Context) error {
	builder := topology.NewBuilder(ctx.Cloud, ctx.Observer)

	for _, spec := range ctx.Config.Subnets {
		subnetID, err := builder.CreateSubnet(ctx, ctx.State.VPCID, spec.CIDR, spec.AZ, spec.Name, spec.Type)
		if err != nil {
			return err
		}

		routeTableID := ctx.State.RouteTables[spec.Type]
		if err := builder.AssociateRouteTable(ctx, subnetID, routeTableID); err != nil {
			return err
		}

		ctx.State.AddSubnet(spec.Name, state.SubnetRecord{
			ID:   subnetID,
			CIDR: spec.CIDR,
			AZ:   spec.AZ,
			Type: spec.Type,
		})
	}

	return nil
}

// natGatewayPhase conditionally creates the NAT gateway in the first public
// subnet (in creation order) and routes private traffic through it.
type natGatewayPhase struct{}

func (natGatewayPhase) Name() string { return "nat-gateway" }

func (natGatewayPhase) Run(ctx *provisioning.Context) error {
	if !ctx.Config.NATGateway.Enabled {
		provisioning.LogStepSkipped(ctx.Observer, "nat-gateway", "NAT gateway disabled in configuration")
		return nil
	}

	subnetID, ok := ctx.State.FirstPublicSubnet()
	if !ok {
		// The private route table is left without a default route.
		provisioning.LogWarning(ctx.Observer, "nat-gateway", "no public subnet found for NAT gateway, skipping")
		return nil
	}

	gateways := gateway.NewProvisioner(ctx.Cloud, ctx.Observer)
	natGatewayID, elasticIP, err := gateways.CreateNATGateway(ctx, subnetID, ctx.Config.VPCName+"-nat")
	if err != nil {
		return err
	}

	ctx.State.Gateways.NATGateway = &state.NATGatewayRecord{ID: natGatewayID, ElasticIP: elasticIP}

	builder := topology.NewBuilder(ctx.Cloud, ctx.Observer)
	return builder.AddRoute(ctx, ctx.State.RouteTables[config.TierPrivate], defaultRouteCIDR, "", natGatewayID)
}

// securityGroupsPhase creates configured security groups and their rules.
// Groups are processed in sorted name order for deterministic provider
// calls; rules keep their declared order.
type securityGroupsPhase struct{}

func (securityGroupsPhase) Name() string { return "security-groups" }

func (securityGroupsPhase) Run(ctx *provisioning.Context) error {
	cfg := ctx.Config
	if len(cfg.SecurityGroups) == 0 {
		provisioning.LogStepSkipped(ctx.Observer, "security-groups", "no security groups defined in configuration")
		return nil
	}

	applier := security.NewApplier(ctx.Cloud, ctx.Observer)

	names := make([]string, 0, len(cfg.SecurityGroups))
	for name := range cfg.SecurityGroups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		groupID, err := applier.CreateSecurityGroup(ctx, ctx.State.VPCID, name,
			fmt.Sprintf("Security group for %s", name))
		if err != nil {
			return err
		}

		for _, rule := range cfg.SecurityGroups[name] {
			res, err := applier.ApplyRule(ctx, groupID, rule)
			if err != nil {
				return err
			}
			res.LogTo(ctx.Observer, "security-groups")
		}

		ctx.State.SecurityGroups[name] = groupID
	}

	return nil
}
