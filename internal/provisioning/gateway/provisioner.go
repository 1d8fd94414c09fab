// Package gateway manages internet and NAT gateway lifecycles, including
// elastic IP allocation and release.
package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/vpcforge/vpcforge/internal/platform/aws"
	"github.com/vpcforge/vpcforge/internal/provisioning"
)

const phase = "gateway"

// DefaultDeletionGrace is how long to wait after initiating NAT gateway
// deletion before attempting to release its elastic IP. Deletion is
// asynchronous on the provider side and releasing too early fails.
const DefaultDeletionGrace = 10 * time.Second

// Provisioner manages internet and NAT gateways.
type Provisioner struct {
	cloud    aws.ResourceManager
	observer provisioning.Observer

	// DeletionGrace overrides DefaultDeletionGrace; tests set it to zero.
	DeletionGrace time.Duration
}

// NewProvisioner creates a gateway provisioner.
func NewProvisioner(cloud aws.ResourceManager, observer provisioning.Observer) *Provisioner {
	return &Provisioner{cloud: cloud, observer: observer, DeletionGrace: DefaultDeletionGrace}
}

// CreateInternetGateway creates, tags, and attaches an internet gateway.
// An attach failure after a successful create leaves an orphaned,
// unattached gateway; it is not cleaned up here.
func (p *Provisioner) CreateInternetGateway(ctx context.Context, vpcID, name string) (string, error) {
	gatewayID, err := p.cloud.CreateInternetGateway(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create internet gateway: %w", err)
	}

	if err := p.cloud.CreateTags(ctx, gatewayID, map[string]string{aws.TagName: name}); err != nil {
		return "", err
	}

	if err := p.cloud.AttachInternetGateway(ctx, gatewayID, vpcID); err != nil {
		return "", fmt.Errorf("failed to attach internet gateway %s: %w", gatewayID, err)
	}

	provisioning.LogResourceCreated(p.observer, phase, "internet gateway", name, gatewayID)
	return gatewayID, nil
}

// CreateNATGateway allocates an elastic IP, creates a NAT gateway bound to
// it in the given subnet, tags it, and blocks until the provider reports it
// available. The wait is bounded by the provider waiter's own ceiling; no
// additional timeout is layered on top. If the wait fails, the gateway and
// the address remain allocated.
func (p *Provisioner) CreateNATGateway(ctx context.Context, subnetID, name string) (natGatewayID, elasticIP string, err error) {
	allocationID, elasticIP, err := p.cloud.AllocateAddress(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to allocate elastic IP: %w", err)
	}

	natGatewayID, err = p.cloud.CreateNATGateway(ctx, subnetID, allocationID)
	if err != nil {
		return "", "", fmt.Errorf("failed to create NAT gateway: %w", err)
	}

	if err := p.cloud.CreateTags(ctx, natGatewayID, map[string]string{aws.TagName: name}); err != nil {
		return "", "", err
	}

	p.observer.Printf("Waiting for NAT gateway %s to become available...", natGatewayID)
	if err := p.cloud.WaitNATGatewayAvailable(ctx, natGatewayID); err != nil {
		return "", "", fmt.Errorf("NAT gateway %s did not become available: %w", natGatewayID, err)
	}

	provisioning.LogResourceCreated(p.observer, phase, "nat gateway", name, natGatewayID)
	return natGatewayID, elasticIP, nil
}

// DeleteInternetGateway detaches the gateway from the VPC, then deletes it.
// If the detach fails the delete is not attempted.
func (p *Provisioner) DeleteInternetGateway(ctx context.Context, gatewayID, vpcID string) error {
	if err := p.cloud.DetachInternetGateway(ctx, gatewayID, vpcID); err != nil {
		return fmt.Errorf("failed to detach internet gateway %s: %w", gatewayID, err)
	}
	if err := p.cloud.DeleteInternetGateway(ctx, gatewayID); err != nil {
		return err
	}
	provisioning.LogResourceDeleted(p.observer, phase, "internet gateway", gatewayID)
	return nil
}

// DeleteNATGateway looks up the gateway's elastic IP allocation, initiates
// the delete, waits a fixed grace period for deletion to begin, then
// attempts to release the address. A failed release is returned as a
// warning, not an error.
func (p *Provisioner) DeleteNATGateway(ctx context.Context, natGatewayID string) (provisioning.Result, error) {
	var res provisioning.Result

	allocationID, err := p.cloud.NATGatewayAllocation(ctx, natGatewayID)
	if err != nil {
		return res, err
	}

	if err := p.cloud.DeleteNATGateway(ctx, natGatewayID); err != nil {
		return res, err
	}
	provisioning.LogResourceDeleted(p.observer, phase, "nat gateway", natGatewayID)

	time.Sleep(p.DeletionGrace)

	if allocationID != "" {
		if err := p.cloud.ReleaseAddress(ctx, allocationID); err != nil {
			res.Warnf(err, "could not release elastic IP %s", allocationID)
		}
	}

	return res, nil
}
