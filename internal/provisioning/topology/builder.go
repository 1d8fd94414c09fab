// Package topology creates the virtual network layer: the VPC itself,
// subnets, route tables, routes, and subnet associations. Which subnets to
// create is configuration-driven; this package only knows how.
package topology

import (
	"context"
	"fmt"

	"github.com/vpcforge/vpcforge/internal/config"
	"github.com/vpcforge/vpcforge/internal/platform/aws"
	"github.com/vpcforge/vpcforge/internal/provisioning"
)

const phase = "topology"

// Builder provisions and deletes network topology resources.
type Builder struct {
	cloud    aws.ResourceManager
	observer provisioning.Observer
}

// NewBuilder creates a topology builder.
func NewBuilder(cloud aws.ResourceManager, observer provisioning.Observer) *Builder {
	return &Builder{cloud: cloud, observer: observer}
}

// CreateNetwork creates the VPC, waits for it to become available, applies
// the DNS option flags, and tags it. The tag set always includes Name in
// addition to the user-supplied tags.
func (b *Builder) CreateNetwork(ctx context.Context, cidr, name string, dnsHostnames, dnsSupport bool, tags map[string]string) (string, error) {
	vpcID, err := b.cloud.CreateVPC(ctx, cidr)
	if err != nil {
		return "", fmt.Errorf("failed to create VPC: %w", err)
	}

	if err := b.cloud.WaitVPCAvailable(ctx, vpcID); err != nil {
		return "", fmt.Errorf("VPC %s did not become available: %w", vpcID, err)
	}

	if dnsHostnames {
		if err := b.cloud.EnableDNSHostnames(ctx, vpcID); err != nil {
			return "", err
		}
	}
	if dnsSupport {
		if err := b.cloud.EnableDNSSupport(ctx, vpcID); err != nil {
			return "", err
		}
	}

	vpcTags := make(map[string]string, len(tags)+1)
	for k, v := range tags {
		vpcTags[k] = v
	}
	vpcTags[aws.TagName] = name

	if err := b.cloud.CreateTags(ctx, vpcID, vpcTags); err != nil {
		return "", err
	}

	provisioning.LogResourceCreated(b.observer, phase, "vpc", name, vpcID)
	return vpcID, nil
}

// CreateSubnet creates a subnet tagged with its name and tier. Public-tier
// subnets additionally get automatic public IP assignment on launch.
func (b *Builder) CreateSubnet(ctx context.Context, vpcID, cidr, az, name, tier string) (string, error) {
	subnetID, err := b.cloud.CreateSubnet(ctx, vpcID, cidr, az)
	if err != nil {
		return "", fmt.Errorf("failed to create subnet %s: %w", name, err)
	}

	if tier == config.TierPublic {
		if err := b.cloud.EnablePublicIPOnLaunch(ctx, subnetID); err != nil {
			return "", err
		}
	}

	if err := b.cloud.CreateTags(ctx, subnetID, map[string]string{
		aws.TagName: name,
		aws.TagType: tier,
	}); err != nil {
		return "", err
	}

	provisioning.LogResourceCreated(b.observer, phase, "subnet", name, subnetID)
	return subnetID, nil
}

// CreateRouteTable creates a route table tagged with its name.
func (b *Builder) CreateRouteTable(ctx context.Context, vpcID, name string) (string, error) {
	routeTableID, err := b.cloud.CreateRouteTable(ctx, vpcID)
	if err != nil {
		return "", fmt.Errorf("failed to create route table %s: %w", name, err)
	}

	if err := b.cloud.CreateTags(ctx, routeTableID, map[string]string{aws.TagName: name}); err != nil {
		return "", err
	}

	provisioning.LogResourceCreated(b.observer, phase, "route table", name, routeTableID)
	return routeTableID, nil
}

// AddRoute adds a route to a route table. Exactly one of gatewayID and
// natGatewayID should be supplied; passing both is undefined and left to
// the provider call to resolve.
func (b *Builder) AddRoute(ctx context.Context, routeTableID, destinationCIDR, gatewayID, natGatewayID string) error {
	return b.cloud.CreateRoute(ctx, aws.RouteSpec{
		RouteTableID:    routeTableID,
		DestinationCIDR: destinationCIDR,
		GatewayID:       gatewayID,
		NATGatewayID:    natGatewayID,
	})
}

// AssociateRouteTable associates a subnet with a route table.
func (b *Builder) AssociateRouteTable(ctx context.Context, subnetID, routeTableID string) error {
	return b.cloud.AssociateRouteTable(ctx, subnetID, routeTableID)
}

// DeleteSubnet deletes a subnet.
func (b *Builder) DeleteSubnet(ctx context.Context, subnetID string) error {
	if err := b.cloud.DeleteSubnet(ctx, subnetID); err != nil {
		return err
	}
	provisioning.LogResourceDeleted(b.observer, phase, "subnet", subnetID)
	return nil
}

// DeleteRouteTable deletes a route table.
func (b *Builder) DeleteRouteTable(ctx context.Context, routeTableID string) error {
	if err := b.cloud.DeleteRouteTable(ctx, routeTableID); err != nil {
		return err
	}
	provisioning.LogResourceDeleted(b.observer, phase, "route table", routeTableID)
	return nil
}

// DeleteNetwork deletes the VPC.
func (b *Builder) DeleteNetwork(ctx context.Context, vpcID string) error {
	if err := b.cloud.DeleteVPC(ctx, vpcID); err != nil {
		return err
	}
	provisioning.LogResourceDeleted(b.observer, phase, "vpc", vpcID)
	return nil
}
